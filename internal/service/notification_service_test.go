package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/domain/mocks"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
)

func TestNotificationService_Reservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMailer := mocks.NewMockMailer(ctrl)
	svc := NewNotificationService(NotificationServiceConfig{
		Mailer:     mockMailer,
		Logger:     logger.NewTestLogger(t),
		To:         "owner@oseiserwaa.com",
		Restaurant: "Osei Serwaa Kitchen",
	})

	mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, "owner@oseiserwaa.com", msg.To)
			assert.Equal(t, "New reservation: Ama (4 guests, 2026-04-01 19:00)", msg.Subject)
			assert.Contains(t, msg.Text, "Osei Serwaa Kitchen")
			assert.Contains(t, msg.Text, "Special requests: Birthday cake")
			return nil
		})

	svc.ReservationCreated(context.Background(), &domain.Reservation{
		ID: "r1", Name: "Ama", Email: "ama@example.com", Date: "2026-04-01", Time: "19:00", Guests: 4,
		SpecialRequests: "Birthday cake",
	})
	svc.Wait()
}

func TestNotificationService_FailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMailer := mocks.NewMockMailer(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	svc := NewNotificationService(NotificationServiceConfig{Mailer: mockMailer, Logger: mockLogger, To: "owner@example.com"})

	mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger)
	mockLogger.EXPECT().Error(gomock.Any())

	// the request context is already gone by the time the mail goes out
	ctx, cancel := context.WithCancel(context.Background())
	svc.MessageReceived(ctx, &domain.ContactMessage{ID: "m1", Name: "Efua", Email: "efua@example.com", Message: "Hi"})
	cancel()
	svc.Wait()
}

func TestNotificationService_NoRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMailer := mocks.NewMockMailer(ctrl)
	svc := NewNotificationService(NotificationServiceConfig{Mailer: mockMailer, Logger: logger.NewTestLogger(t)})

	svc.MessageReceived(context.Background(), &domain.ContactMessage{ID: "m1"})
	svc.Wait()
}
