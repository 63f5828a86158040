package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_message_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain MessageRepository

type MessageStatus string

const (
	MessageUnread   MessageStatus = "unread"
	MessageRead     MessageStatus = "read"
	MessageReplied  MessageStatus = "replied"
	MessageArchived MessageStatus = "archived"
)

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied, MessageArchived:
		return true
	}
	return false
}

// ContactMessage is a note left through the public contact form
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CreateMessageRequest struct {
	Name    string `json:"name" valid:"required"`
	Email   string `json:"email" valid:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" valid:"required"`
}

func (r *CreateMessageRequest) Validate() (*ContactMessage, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return nil, NewValidationError("Missing required fields")
	}
	if !govalidator.IsEmail(r.Email) {
		return nil, NewValidationError("invalid email address")
	}

	return &ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Subject: strings.TrimSpace(r.Subject),
		Message: r.Message,
		Status:  MessageUnread,
	}, nil
}

type UpdateMessageStatusRequest struct {
	Status MessageStatus `json:"status"`
}

func (r *UpdateMessageStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return NewValidationError("Invalid status value")
	}
	return nil
}

// MessageRepository lists newest first
type MessageRepository interface {
	List(ctx context.Context) ([]*ContactMessage, error)
	Get(ctx context.Context, id string) (*ContactMessage, error)
	Create(ctx context.Context, message *ContactMessage) error
	UpdateStatus(ctx context.Context, id string, status MessageStatus) error
	Delete(ctx context.Context, id string) error
}
