package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/oseiserwaa/kitchen/internal/database/schema"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

type visitorRepository struct {
	db *sql.DB
}

// NewVisitorRepository creates a new PostgreSQL visitor repository
func NewVisitorRepository(db *sql.DB) domain.VisitorRepository {
	return &visitorRepository{db: db}
}

// RecordVisit delegates to the track_visit function so the three writes
// share one statement
func (r *visitorRepository) RecordVisit(ctx context.Context, log *domain.VisitorLog, day string) (int64, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.VisitedAt.IsZero() {
		log.VisitedAt = time.Now().UTC()
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT track_visit($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.UserAgent, log.Browser, log.DeviceType, log.OS, log.VisitedAt, day,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}
	return total, nil
}

func (r *visitorRepository) GetTotal(ctx context.Context) (int64, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM site_content WHERE key = $1`, schema.SiteVisitorsKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, &domain.ErrContentNotFound{Key: schema.SiteVisitorsKey}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get visitor total: %w", err)
	}
	return gjson.GetBytes(value, "count").Int(), nil
}

func (r *visitorRepository) SumDaily(ctx context.Context) (int64, error) {
	var sum int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(count), 0) FROM daily_visitors`).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum daily visitors: %w", err)
	}
	return sum, nil
}

func (r *visitorRepository) ResetTotal(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, upsertContentQuery, schema.SiteVisitorsKey, []byte(`{"count":0}`), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to reset visitor total: %w", err)
	}
	return nil
}

func (r *visitorRepository) DailyCounts(ctx context.Context, since string) ([]domain.DailyVisitorCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD'), count FROM daily_visitors
		WHERE date >= $1::date
		ORDER BY date ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily visitors: %w", err)
	}
	defer rows.Close()

	counts := []domain.DailyVisitorCount{}
	for rows.Next() {
		var c domain.DailyVisitorCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily visitors: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily visitors: %w", err)
	}
	return counts, nil
}

func (r *visitorRepository) RecentLogs(ctx context.Context, limit int) ([]domain.VisitorLog, error) {
	query, args, err := psql.Select("id", "user_agent", "browser", "device_type", "os", "visited_at").
		From("visitor_logs").
		OrderBy("visited_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.VisitorLog{}
	for rows.Next() {
		var l domain.VisitorLog
		if err := rows.Scan(&l.ID, &l.UserAgent, &l.Browser, &l.DeviceType, &l.OS, &l.VisitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visitor log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visitor logs: %w", err)
	}
	return logs, nil
}
