package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opencensus.io/tag"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/botdetection"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
	"github.com/oseiserwaa/kitchen/pkg/uaparser"
)

const (
	DefaultVisitorWindow = 50
	DefaultVisitorDays   = 30
	DefaultTopN          = 5
)

type VisitorService struct {
	repo     domain.VisitorRepository
	sessions *VisitorSessions
	logger   logger.Logger
	window   int
	days     int
	now      func() time.Time
}

type VisitorServiceConfig struct {
	Repository domain.VisitorRepository
	Sessions   *VisitorSessions
	Logger     logger.Logger
	// Window is how many recent logs feed the breakdowns
	Window int
	Days   int
}

func NewVisitorService(cfg VisitorServiceConfig) *VisitorService {
	window, days := cfg.Window, cfg.Days
	if window <= 0 {
		window = DefaultVisitorWindow
	}
	if days <= 0 {
		days = DefaultVisitorDays
	}
	return &VisitorService{
		repo:     cfg.Repository,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
		window:   window,
		days:     days,
		now:      time.Now,
	}
}

func (s *VisitorService) WithClock(now func() time.Time) *VisitorService {
	s.now = now
	return s
}

// Track counts a page view unless it comes from a bot or from a session that
// was already counted
func (s *VisitorService) Track(ctx context.Context, userAgent, sessionToken string) (*domain.TrackResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "VisitorService", "Track")
	defer span.End()

	if botdetection.IsBotUserAgent(userAgent) {
		tracing.AddAttribute(ctx, "bot_pattern", botdetection.MatchedPattern(userAgent))
		return s.skip(ctx, "bot", sessionToken)
	}

	var sessionID string
	if s.sessions != nil {
		sessionID, sessionToken = s.sessions.Resolve(sessionToken)
		if !s.sessions.MarkCounted(sessionID) {
			return s.skip(ctx, "repeat", sessionToken)
		}
	}

	info := uaparser.Parse(userAgent)
	now := s.now().UTC()
	log := &domain.VisitorLog{
		UserAgent:  userAgent,
		Browser:    info.Browser,
		DeviceType: info.DeviceType,
		OS:         info.OS,
		VisitedAt:  now,
	}

	total, err := s.repo.RecordVisit(ctx, log, now.Format(domain.DayLayout))
	if err != nil {
		if s.sessions != nil {
			s.sessions.Forget(sessionID)
		}
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("user_agent", userAgent).Error(fmt.Sprintf("Failed to record visit: %v", err))
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	tracing.Count(ctx, tracing.VisitsCounted)
	return &domain.TrackResult{Counted: true, Total: total, SessionToken: sessionToken}, nil
}

func (s *VisitorService) skip(ctx context.Context, reason, sessionToken string) (*domain.TrackResult, error) {
	tracing.Count(ctx, tracing.VisitsSkipped, tag.Upsert(tracing.KeyReason, reason))
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.TrackResult{Counted: false, Total: total, SessionToken: sessionToken}, nil
}

// Count returns the running total, or the sum of the daily buckets when no
// total was ever written
func (s *VisitorService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.GetTotal(ctx)
	if err == nil {
		return total, nil
	}
	if !domain.IsNotFound(err) {
		s.logger.Error(fmt.Sprintf("Failed to get visitor total: %v", err))
		return 0, fmt.Errorf("failed to get visitor count: %w", err)
	}

	sum, err := s.repo.SumDaily(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to sum daily visitors: %v", err))
		return 0, fmt.Errorf("failed to get visitor count: %w", err)
	}
	return sum, nil
}

// Stats builds the dashboard view. The daily series covers the last Days
// calendar days including today (UTC); breakdowns only cover the newest
// Window logs, not the full history.
func (s *VisitorService) Stats(ctx context.Context, topN int) (*domain.VisitorStats, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "VisitorService", "Stats")
	defer span.End()

	if topN <= 0 {
		topN = DefaultTopN
	}

	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.repo.DailyCounts(ctx, s.since())
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get daily visitors: %v", err))
		return nil, fmt.Errorf("failed to get daily visitors: %w", err)
	}

	logs, err := s.repo.RecentLogs(ctx, s.window)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get visitor logs: %v", err))
		return nil, fmt.Errorf("failed to get visitor logs: %w", err)
	}

	return &domain.VisitorStats{
		Total:    total,
		Daily:    daily,
		Devices:  topBreakdown(logs, topN, func(l domain.VisitorLog) string { return l.DeviceType }),
		Browsers: topBreakdown(logs, topN, func(l domain.VisitorLog) string { return l.Browser }),
		OS:       topBreakdown(logs, topN, func(l domain.VisitorLog) string { return l.OS }),
		Window:   len(logs),
		Recent:   logs,
	}, nil
}

// since is the first day of the daily series window
func (s *VisitorService) since() string {
	return s.now().UTC().AddDate(0, 0, -(s.days - 1)).Format(domain.DayLayout)
}

// topBreakdown counts logs by field, most frequent first, ties by name
func topBreakdown(logs []domain.VisitorLog, topN int, field func(domain.VisitorLog) string) []domain.BreakdownEntry {
	counts := make(map[string]int)
	for _, l := range logs {
		name := field(l)
		if name == "" {
			name = uaparser.Unknown
		}
		counts[name]++
	}

	entries := make([]domain.BreakdownEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, domain.BreakdownEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// Reset zeroes the running total. Daily buckets and logs are kept, so the
// total and the daily series disagree afterwards.
func (s *VisitorService) Reset(ctx context.Context) error {
	if err := s.repo.ResetTotal(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to reset visitor total: %v", err))
		return fmt.Errorf("failed to reset visitor count: %w", err)
	}
	s.logger.Info("Visitor total reset")
	return nil
}
