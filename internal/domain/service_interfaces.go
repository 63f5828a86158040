package domain

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination mocks/mock_services.go -package mocks github.com/oseiserwaa/kitchen/internal/domain AuthService,ContentService,VisitorService,MenuService,CategoryService,ReservationService,MessageService,UserService,ImageService,ExportService

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Issue(user *User) (string, time.Time, error)
	// Verify returns ErrTokenExpired or ErrTokenInvalid on failure
	Verify(token string) (*AuthClaims, error)
}

type ContentService interface {
	// Get returns nil, nil when key was never saved
	Get(ctx context.Context, key ContentKey) (json.RawMessage, error)
	Set(ctx context.Context, key ContentKey, raw json.RawMessage) error
	Delete(ctx context.Context, key ContentKey) error
	Keys(ctx context.Context) ([]ContentKey, error)
}

type VisitorService interface {
	Track(ctx context.Context, userAgent, sessionToken string) (*TrackResult, error)
	Count(ctx context.Context) (int64, error)
	Stats(ctx context.Context, topN int) (*VisitorStats, error)
	Reset(ctx context.Context) error
}

type MenuService interface {
	List(ctx context.Context) ([]*MenuItem, error)
	Create(ctx context.Context, in *MenuItemInput) (*MenuItem, error)
	Update(ctx context.Context, id string, in *MenuItemInput) (*MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, in *CategoryInput) (*Category, error)
	Update(ctx context.Context, id string, in *CategoryInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type ReservationService interface {
	Create(ctx context.Context, req *CreateReservationRequest) (*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, id string, status ReservationStatus) error
	Delete(ctx context.Context, id string) error
}

type MessageService interface {
	Create(ctx context.Context, req *CreateMessageRequest) (*ContactMessage, error)
	List(ctx context.Context) ([]*ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status MessageStatus) error
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
	EnsureRootUser(ctx context.Context, email, password, name string) (*User, bool, error)
}

type ImageService interface {
	Upload(ctx context.Context, filename, mimeType string, data []byte) (*UploadedImage, error)
	Get(ctx context.Context, id string) (*ImageView, error)
	Delete(ctx context.Context, id string) error
}

// CSVExport is a rendered download
type CSVExport struct {
	Filename string
	Data     []byte
	Rows     int
}

type ExportService interface {
	Reservations(ctx context.Context) (*CSVExport, error)
	Messages(ctx context.Context) (*CSVExport, error)
}
