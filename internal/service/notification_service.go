package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
	"github.com/oseiserwaa/kitchen/pkg/notifytmpl"
)

const notificationTimeout = 30 * time.Second

// Notifier is told about submissions from the public site
type Notifier interface {
	ReservationCreated(ctx context.Context, r *domain.Reservation)
	MessageReceived(ctx context.Context, m *domain.ContactMessage)
}

// NotificationService mails the restaurant owner in the background. Failures
// are logged and never reach the visitor who submitted the form.
type NotificationService struct {
	mailer     mailer.Mailer
	renderer   *notifytmpl.Renderer
	logger     logger.Logger
	to         string
	restaurant string
	wg         sync.WaitGroup
}

type NotificationServiceConfig struct {
	Mailer     mailer.Mailer
	Renderer   *notifytmpl.Renderer
	Logger     logger.Logger
	To         string
	Restaurant string
}

func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = notifytmpl.NewRenderer()
	}
	return &NotificationService{
		mailer:     cfg.Mailer,
		renderer:   renderer,
		logger:     cfg.Logger,
		to:         cfg.To,
		restaurant: cfg.Restaurant,
	}
}

func (s *NotificationService) ReservationCreated(ctx context.Context, r *domain.Reservation) {
	s.dispatch(ctx, notifytmpl.KindReservation, r.ID, map[string]interface{}{
		"restaurant": s.restaurant,
		"reservation": map[string]interface{}{
			"name":            r.Name,
			"email":           r.Email,
			"phone":           r.Phone,
			"date":            r.Date,
			"time":            r.Time,
			"guests":          r.Guests,
			"specialRequests": r.SpecialRequests,
		},
	})
}

func (s *NotificationService) MessageReceived(ctx context.Context, m *domain.ContactMessage) {
	s.dispatch(ctx, notifytmpl.KindMessage, m.ID, map[string]interface{}{
		"restaurant": s.restaurant,
		"message": map[string]interface{}{
			"name":    m.Name,
			"email":   m.Email,
			"subject": m.Subject,
			"message": m.Message,
		},
	})
}

func (s *NotificationService) dispatch(ctx context.Context, kind notifytmpl.Kind, id string, data map[string]interface{}) {
	if s.mailer == nil || s.to == "" {
		return
	}

	rendered, err := s.renderer.Render(kind, data)
	if err != nil {
		s.logger.WithField("kind", string(kind)).Error(fmt.Sprintf("Failed to render notification: %v", err))
		return
	}

	// detached from the request so the response does not cancel delivery
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		err := s.mailer.Send(sendCtx, mailer.Message{
			To:      s.to,
			Subject: rendered.Subject,
			HTML:    rendered.HTML,
			Text:    rendered.Text,
		})
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"kind": string(kind),
				"id":   id,
			}).Error(fmt.Sprintf("Failed to send notification: %v", err))
		}
	}()
}

// Wait blocks until every queued notification has been attempted
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
