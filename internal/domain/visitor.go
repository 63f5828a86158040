package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_visitor_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain VisitorRepository

// DayLayout is the format of DailyVisitorCount.Date
const DayLayout = "2006-01-02"

type VisitorLog struct {
	ID         string    `json:"id"`
	UserAgent  string    `json:"user_agent"`
	Browser    string    `json:"browser"`
	DeviceType string    `json:"device_type"`
	OS         string    `json:"os"`
	VisitedAt  time.Time `json:"visited_at"`
}

type DailyVisitorCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type BreakdownEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type VisitorStats struct {
	Total    int64               `json:"total"`
	Daily    []DailyVisitorCount `json:"daily"`
	Devices  []BreakdownEntry    `json:"devices"`
	Browsers []BreakdownEntry    `json:"browsers"`
	OS       []BreakdownEntry    `json:"os"`
	// Window is the number of recent logs the breakdowns were computed over
	Window int          `json:"window"`
	Recent []VisitorLog `json:"recent"`
}

type TrackResult struct {
	Counted      bool   `json:"counted"`
	Total        int64  `json:"count"`
	SessionToken string `json:"sessionToken,omitempty"`
}

type VisitorRepository interface {
	// RecordVisit atomically inserts the log, bumps the daily bucket for day
	// and the running total, and returns the new total
	RecordVisit(ctx context.Context, log *VisitorLog, day string) (int64, error)
	// GetTotal returns ErrContentNotFound when no visit was ever recorded
	GetTotal(ctx context.Context) (int64, error)
	SumDaily(ctx context.Context) (int64, error)
	ResetTotal(ctx context.Context) error
	// DailyCounts returns the buckets dated on or after since (DayLayout) in
	// ascending date order. Days without visits have no bucket.
	DailyCounts(ctx context.Context, since string) ([]DailyVisitorCount, error)
	// RecentLogs returns the newest limit logs, newest first
	RecentLogs(ctx context.Context, limit int) ([]VisitorLog, error)
}
