package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/domain/mocks"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

func newSessions(t *testing.T) *VisitorSessions {
	sessions := NewVisitorSessions("visitor-secret", 30*time.Minute)
	t.Cleanup(sessions.Stop)
	return sessions
}

func TestVisitorService_DailyBuckets(t *testing.T) {
	ctx := context.Background()
	store := newEmbeddedStorage(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewVisitorService(VisitorServiceConfig{
		Repository: store.Visitors(),
		Sessions:   newSessions(t),
		Logger:     logger.NewTestLogger(t),
	}).WithClock(func() time.Time { return now })

	res, err := svc.Track(ctx, chromeUA, "")
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, int64(1), res.Total)
	assert.NotEmpty(t, res.SessionToken)

	stats, err := svc.Stats(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, []domain.DailyVisitorCount{{Date: "2026-03-01", Count: 1}}, stats.Daily)

	// a second visitor the same day
	res, err = svc.Track(ctx, chromeUA, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	stats, err = svc.Stats(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyVisitorCount{{Date: "2026-03-01", Count: 2}}, stats.Daily)

	now = now.AddDate(0, 0, 1)
	res, err = svc.Track(ctx, chromeUA, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)

	stats, err = svc.Stats(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyVisitorCount{
		{Date: "2026-03-01", Count: 2},
		{Date: "2026-03-02", Count: 1},
	}, stats.Daily)
	assert.Equal(t, 3, stats.Window)
	require.NotEmpty(t, stats.Browsers)
	assert.Equal(t, domain.BreakdownEntry{Name: "Chrome", Count: 3}, stats.Browsers[0])
}

func TestVisitorService_SkipsRepeatSessionsAndBots(t *testing.T) {
	ctx := context.Background()
	svc := NewVisitorService(VisitorServiceConfig{
		Repository: newEmbeddedStorage(t).Visitors(),
		Sessions:   newSessions(t),
		Logger:     logger.NewTestLogger(t),
	})

	first, err := svc.Track(ctx, chromeUA, "")
	require.NoError(t, err)
	require.True(t, first.Counted)

	again, err := svc.Track(ctx, chromeUA, first.SessionToken)
	require.NoError(t, err)
	assert.False(t, again.Counted)
	assert.Equal(t, int64(1), again.Total)
	assert.Equal(t, first.SessionToken, again.SessionToken)

	// a forged token starts a new session
	forged, err := svc.Track(ctx, chromeUA, "abc.def")
	require.NoError(t, err)
	assert.True(t, forged.Counted)
	assert.NotEqual(t, "abc.def", forged.SessionToken)

	bot, err := svc.Track(ctx, "Googlebot/2.1 (+http://www.google.com/bot.html)", "")
	require.NoError(t, err)
	assert.False(t, bot.Counted)
	assert.Equal(t, int64(2), bot.Total)
}

func TestVisitorService_SessionExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	svc := NewVisitorService(VisitorServiceConfig{
		Repository: newEmbeddedStorage(t).Visitors(),
		Sessions:   newSessions(t).WithClock(clock),
		Logger:     logger.NewTestLogger(t),
	}).WithClock(clock)

	first, err := svc.Track(ctx, chromeUA, "")
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	later, err := svc.Track(ctx, chromeUA, first.SessionToken)
	require.NoError(t, err)
	assert.True(t, later.Counted)
	assert.Equal(t, int64(2), later.Total)
}

func TestVisitorService_RecordFailureAllowsRetry(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockVisitorRepository(ctrl)
	svc := NewVisitorService(VisitorServiceConfig{Repository: repo, Sessions: newSessions(t), Logger: logger.NewTestLogger(t)})

	sessions := svc.sessions
	_, token := sessions.Resolve("")

	repo.EXPECT().RecordVisit(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
	_, err := svc.Track(ctx, chromeUA, token)
	require.Error(t, err)

	repo.EXPECT().RecordVisit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, log *domain.VisitorLog, day string) (int64, error) {
			assert.Equal(t, "Chrome", log.Browser)
			assert.Equal(t, "Desktop", log.DeviceType)
			assert.Equal(t, log.VisitedAt.Format(domain.DayLayout), day)
			return 5, nil
		})
	res, err := svc.Track(ctx, chromeUA, token)
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, int64(5), res.Total)
}

func TestVisitorService_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("running total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockVisitorRepository(ctrl)
		svc := NewVisitorService(VisitorServiceConfig{Repository: repo, Logger: logger.NewTestLogger(t)})

		repo.EXPECT().GetTotal(gomock.Any()).Return(int64(42), nil)
		count, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(42), count)
	})

	t.Run("falls back to daily sum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockVisitorRepository(ctrl)
		svc := NewVisitorService(VisitorServiceConfig{Repository: repo, Logger: logger.NewTestLogger(t)})

		repo.EXPECT().GetTotal(gomock.Any()).Return(int64(0), &domain.ErrContentNotFound{Key: "site_visitors"})
		repo.EXPECT().SumDaily(gomock.Any()).Return(int64(7), nil)
		count, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("storage error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockVisitorRepository(ctrl)
		svc := NewVisitorService(VisitorServiceConfig{Repository: repo, Logger: logger.NewTestLogger(t)})

		repo.EXPECT().GetTotal(gomock.Any()).Return(int64(0), errors.New("timeout"))
		_, err := svc.Count(ctx)
		assert.ErrorContains(t, err, "timeout")
	})
}

// Breakdowns only see the recent window; older visits do not move them.
func TestVisitorService_StatsBreakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockVisitorRepository(ctrl)
	svc := NewVisitorService(VisitorServiceConfig{Repository: repo, Logger: logger.NewTestLogger(t), Window: 5, Days: 30}).
		WithClock(func() time.Time { return time.Date(2026, 3, 30, 23, 0, 0, 0, time.UTC) })

	logs := []domain.VisitorLog{
		{Browser: "Safari", DeviceType: "Mobile", OS: "iOS"},
		{Browser: "Chrome", DeviceType: "Desktop", OS: "Windows"},
		{Browser: "Safari", DeviceType: "Mobile", OS: "iOS"},
		{Browser: "Firefox", DeviceType: "Desktop", OS: "Linux"},
		{Browser: "", DeviceType: "Tablet", OS: "Android"},
	}
	repo.EXPECT().GetTotal(gomock.Any()).Return(int64(1000), nil)
	repo.EXPECT().DailyCounts(gomock.Any(), "2026-03-01").Return([]domain.DailyVisitorCount{}, nil)
	repo.EXPECT().RecentLogs(gomock.Any(), 5).Return(logs, nil)

	stats, err := svc.Stats(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), stats.Total)
	assert.Equal(t, 5, stats.Window)
	assert.Equal(t, []domain.BreakdownEntry{{Name: "Safari", Count: 2}, {Name: "Chrome", Count: 1}}, stats.Browsers)
	assert.Equal(t, []domain.BreakdownEntry{{Name: "Desktop", Count: 2}, {Name: "Mobile", Count: 2}}, stats.Devices)
	assert.Equal(t, []domain.BreakdownEntry{{Name: "iOS", Count: 2}, {Name: "Android", Count: 1}}, stats.OS)
}

// Reset zeroes the total only; the daily series keeps its history.
func TestVisitorService_ResetDiverges(t *testing.T) {
	ctx := context.Background()
	svc := NewVisitorService(VisitorServiceConfig{
		Repository: newEmbeddedStorage(t).Visitors(),
		Sessions:   newSessions(t),
		Logger:     logger.NewTestLogger(t),
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Track(ctx, chromeUA, "")
		require.NoError(t, err)
	}
	require.NoError(t, svc.Reset(ctx))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	stats, err := svc.Stats(ctx, 5)
	require.NoError(t, err)
	require.Len(t, stats.Daily, 1)
	assert.Equal(t, int64(3), stats.Daily[0].Count)
}
