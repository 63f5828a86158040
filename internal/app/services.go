package app

import (
	"fmt"
	"time"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/service"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
	"github.com/oseiserwaa/kitchen/pkg/ratelimiter"
)

// Public endpoint budgets per client address
const (
	FormSubmissions = 10
	FormWindow      = time.Hour
	VisitRequests   = 60
	VisitWindow     = time.Minute
)

// Services is the full service graph over one storage. The admin CLI builds
// the same graph as the server.
type Services struct {
	Auth          *service.AuthService
	Content       *service.ContentService
	Visitors      *service.VisitorService
	Menu          *service.MenuService
	Categories    *service.CategoryService
	Reservations  *service.ReservationService
	Messages      *service.MessageService
	Users         *service.UserService
	Images        *service.ImageService
	Exports       *service.ExportService
	Notifications *service.NotificationService

	Limiter  *ratelimiter.Limiter
	sessions *service.VisitorSessions
}

// NewServices wires every service. A nil mailer disables notification mail.
func NewServices(cfg *config.Config, storage domain.Storage, m mailer.Mailer, log logger.Logger) (*Services, error) {
	limiter := ratelimiter.New()
	limiter.SetPolicy(ratelimiter.NamespaceForm, FormSubmissions, FormWindow)
	limiter.SetPolicy(ratelimiter.NamespaceVisit, VisitRequests, VisitWindow)

	auth, err := service.NewAuthService(service.AuthServiceConfig{
		Users:     storage.Users(),
		Limiter:   limiter,
		JWTSecret: cfg.Security.JWTSecret,
		TokenTTL:  cfg.Security.TokenTTL,
		Logger:    log,
	})
	if err != nil {
		limiter.Stop()
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		limiter.Stop()
		return nil, err
	}

	sessions := service.NewVisitorSessions(cfg.Security.JWTSecret, cfg.Visitors.SessionTTL)
	notifications := service.NewNotificationService(service.NotificationServiceConfig{
		Mailer:     m,
		Logger:     log,
		To:         cfg.NotifyEmail,
		Restaurant: cfg.RestaurantName,
	})

	return &Services{
		Auth:    auth,
		Content: service.NewContentService(storage.Content(), log),
		Visitors: service.NewVisitorService(service.VisitorServiceConfig{
			Repository: storage.Visitors(),
			Sessions:   sessions,
			Logger:     log,
			Window:     cfg.Visitors.Window,
			Days:       cfg.Visitors.Days,
		}),
		Menu:          service.NewMenuService(storage.Menu(), log),
		Categories:    service.NewCategoryService(storage.Categories(), log),
		Reservations:  service.NewReservationService(storage.Reservations(), notifications, log),
		Messages:      service.NewMessageService(storage.Messages(), notifications, log),
		Users:         service.NewUserService(storage.Users(), log),
		Images:        service.NewImageService(storage.Images(), blobs, cfg.Images.MaxBytes, log),
		Exports:       service.NewExportService(storage.Reservations(), storage.Messages(), log),
		Notifications: notifications,
		Limiter:       limiter,
		sessions:      sessions,
	}, nil
}

func newBlobStore(cfg *config.Config) (domain.ImageBlobStore, error) {
	if cfg.Images.Store != config.ImageStoreS3 {
		return service.InlineBlobStore{}, nil
	}
	store, err := service.NewS3BlobStoreFromConfig(cfg.Images.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 image store: %w", err)
	}
	return store, nil
}

// Close waits for pending notification mail and stops background sweepers
func (s *Services) Close() {
	s.Notifications.Wait()
	s.Limiter.Stop()
	s.sessions.Stop()
}
