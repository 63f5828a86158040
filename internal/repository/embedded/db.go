// Package embedded is the single-file SQLite backend. It implements the same
// repositories as the PostgreSQL adapter on top of gorm and a pure Go driver.
package embedded

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type contentRow struct {
	Key       string `gorm:"column:content_key;primaryKey;size:100"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (contentRow) TableName() string { return "site_content" }

type contentItemRow struct {
	ContentKey string `gorm:"primaryKey;size:100"`
	Collection string `gorm:"primaryKey;size:50"`
	Position   int    `gorm:"primaryKey"`
	Item       string `gorm:"not null"`
}

func (contentItemRow) TableName() string { return "site_content_items" }

type menuItemRow struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"index"`
	Image       string
	Featured    bool
	Available   bool
	SpicyLevel  int
	CreatedAt   time.Time
}

func (menuItemRow) TableName() string { return "menu_items" }

type categoryRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Description  string
	DisplayOrder int
}

func (categoryRow) TableName() string { return "categories" }

type reservationRow struct {
	ID              string `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	Email           string `gorm:"not null"`
	Phone           string
	Date            string
	Time            string
	Guests          int
	SpecialRequests string
	Status          string `gorm:"not null"`
	CreatedAt       time.Time
}

func (reservationRow) TableName() string { return "reservations" }

type messageRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Subject   string
	Message   string `gorm:"not null"`
	Status    string `gorm:"not null"`
	CreatedAt time.Time
}

func (messageRow) TableName() string { return "contact_messages" }

type userRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type imageRow struct {
	ID         string `gorm:"primaryKey"`
	Filename   string `gorm:"not null"`
	MimeType   string `gorm:"column:mimetype"`
	Size       int64
	Data       string
	ObjectKey  string
	URL        string `gorm:"column:url"`
	UploadedAt time.Time
}

func (imageRow) TableName() string { return "images" }

type visitorLogRow struct {
	ID         string `gorm:"primaryKey"`
	UserAgent  string
	Browser    string
	DeviceType string
	OS         string `gorm:"column:os"`
	VisitedAt  time.Time `gorm:"index"`
}

func (visitorLogRow) TableName() string { return "visitor_logs" }

type dailyVisitorRow struct {
	Day    string `gorm:"primaryKey;size:10"`
	Visits int64
}

func (dailyVisitorRow) TableName() string { return "daily_visitors" }

// Open opens (or creates) the database file at path and migrates it. The
// pool is capped at one connection so writers queue instead of failing with
// SQLITE_BUSY, and ":memory:" databases survive between calls.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&contentRow{},
		&contentItemRow{},
		&menuItemRow{},
		&categoryRow{},
		&reservationRow{},
		&messageRow{},
		&userRow{},
		&imageRow{},
		&visitorLogRow{},
		&dailyVisitorRow{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return db, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || (err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

func requireAffected(result *gorm.DB, entity, id string) error {
	if result.RowsAffected == 0 {
		return &domain.ErrNotFound{Entity: entity, ID: id}
	}
	return nil
}

type storage struct {
	db           *gorm.DB
	content      *contentRepository
	menu         *menuItemRepository
	categories   *categoryRepository
	reservations *reservationRepository
	messages     *messageRepository
	users        *userRepository
	images       *imageRepository
	visitors     *visitorRepository
}

// NewStorage wraps an opened database in the storage port
func NewStorage(db *gorm.DB) domain.Storage {
	return &storage{
		db:           db,
		content:      &contentRepository{db: db},
		menu:         &menuItemRepository{db: db},
		categories:   &categoryRepository{db: db},
		reservations: &reservationRepository{db: db},
		messages:     &messageRepository{db: db},
		users:        &userRepository{db: db},
		images:       &imageRepository{db: db},
		visitors:     &visitorRepository{db: db},
	}
}

func (s *storage) Content() domain.ContentRepository         { return s.content }
func (s *storage) Menu() domain.MenuItemRepository           { return s.menu }
func (s *storage) Categories() domain.CategoryRepository     { return s.categories }
func (s *storage) Reservations() domain.ReservationRepository { return s.reservations }
func (s *storage) Messages() domain.MessageRepository        { return s.messages }
func (s *storage) Users() domain.UserRepository              { return s.users }
func (s *storage) Images() domain.ImageRepository            { return s.images }
func (s *storage) Visitors() domain.VisitorRepository        { return s.visitors }

func (s *storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
