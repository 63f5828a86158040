package embedded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oseiserwaa/kitchen/internal/database/schema"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

type visitorRepository struct {
	db *gorm.DB
}

// RecordVisit writes the log, bumps the day bucket and the running total
// inside one transaction. The single connection serialises concurrent calls.
func (r *visitorRepository) RecordVisit(ctx context.Context, log *domain.VisitorLog, day string) (int64, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.VisitedAt.IsZero() {
		log.VisitedAt = time.Now().UTC()
	}

	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := visitorLogRow{
			ID:         log.ID,
			UserAgent:  log.UserAgent,
			Browser:    log.Browser,
			DeviceType: log.DeviceType,
			OS:         log.OS,
			VisitedAt:  log.VisitedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to insert visitor log: %w", err)
		}

		bucket := dailyVisitorRow{Day: day, Visits: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"visits": gorm.Expr("daily_visitors.visits + 1")}),
		}).Create(&bucket).Error
		if err != nil {
			return fmt.Errorf("failed to bump daily visitors: %w", err)
		}

		current, err := readTotal(tx)
		if err != nil && !domain.IsNotFound(err) {
			return err
		}
		total = current + 1
		return writeTotal(tx, total)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}
	return total, nil
}

func readTotal(db *gorm.DB) (int64, error) {
	var row contentRow
	err := db.Where(&contentRow{Key: schema.SiteVisitorsKey}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &domain.ErrContentNotFound{Key: schema.SiteVisitorsKey}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get visitor total: %w", err)
	}
	return gjson.Get(row.Value, "count").Int(), nil
}

func writeTotal(db *gorm.DB, total int64) error {
	row := contentRow{
		Key:       schema.SiteVisitorsKey,
		Value:     fmt.Sprintf(`{"count":%d}`, total),
		UpdatedAt: time.Now().UTC(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save visitor total: %w", err)
	}
	return nil
}

func (r *visitorRepository) GetTotal(ctx context.Context) (int64, error) {
	return readTotal(r.db.WithContext(ctx))
}

func (r *visitorRepository) SumDaily(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&dailyVisitorRow{}).Select("COALESCE(SUM(visits), 0)").Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum daily visitors: %w", err)
	}
	return sum, nil
}

func (r *visitorRepository) ResetTotal(ctx context.Context) error {
	return writeTotal(r.db.WithContext(ctx), 0)
}

// DailyCounts compares days as text; DayLayout sorts the same way as the dates.
func (r *visitorRepository) DailyCounts(ctx context.Context, since string) ([]domain.DailyVisitorCount, error) {
	var rows []dailyVisitorRow
	if err := r.db.WithContext(ctx).Where("day >= ?", since).Order("day ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list daily visitors: %w", err)
	}
	counts := make([]domain.DailyVisitorCount, len(rows))
	for i, row := range rows {
		counts[i] = domain.DailyVisitorCount{Date: row.Day, Count: row.Visits}
	}
	return counts, nil
}

func (r *visitorRepository) RecentLogs(ctx context.Context, limit int) ([]domain.VisitorLog, error) {
	var rows []visitorLogRow
	if err := r.db.WithContext(ctx).Order("visited_at DESC").Order("rowid DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list visitor logs: %w", err)
	}
	logs := make([]domain.VisitorLog, len(rows))
	for i, row := range rows {
		logs[i] = domain.VisitorLog{
			ID:         row.ID,
			UserAgent:  row.UserAgent,
			Browser:    row.Browser,
			DeviceType: row.DeviceType,
			OS:         row.OS,
			VisitedAt:  row.VisitedAt,
		}
	}
	return logs, nil
}
