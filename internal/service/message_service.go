package service

import (
	"context"
	"fmt"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type MessageService struct {
	repo     domain.MessageRepository
	notifier Notifier
	logger   logger.Logger
}

func NewMessageService(repo domain.MessageRepository, notifier Notifier, logger logger.Logger) *MessageService {
	return &MessageService{repo: repo, notifier: notifier, logger: logger}
}

func (s *MessageService) Create(ctx context.Context, req *domain.CreateMessageRequest) (*domain.ContactMessage, error) {
	message, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, message); err != nil {
		s.logger.WithField("email", message.Email).Error(fmt.Sprintf("Failed to create message: %v", err))
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.MessageReceived(ctx, message)
	}
	return message, nil
}

func (s *MessageService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list messages: %v", err))
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *MessageService) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) error {
	req := domain.UpdateMessageStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("message_id", id).Error(fmt.Sprintf("Failed to update message status: %v", err))
		return fmt.Errorf("failed to update message status: %w", err)
	}
	return nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("message_id", id).Error(fmt.Sprintf("Failed to delete message: %v", err))
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
