package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain UserRepository

const RoleAdmin = "admin"

// User is a back-office account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" valid:"required"`
	Email    string `json:"email" valid:"required"`
	Password string `json:"password" valid:"required"`
	Role     string `json:"role"`
}

// Validate normalises the request. Emails are compared lowercased.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return NewValidationError("Missing required fields")
	}
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError("invalid email address")
	}
	if len(r.Password) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}
	if r.Role == "" {
		r.Role = RoleAdmin
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" valid:"required"`
	Password string `json:"password" valid:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return NewValidationError("email and password are required")
	}
	return nil
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type UserRepository interface {
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id string) (*User, error)
	// GetByEmail returns ErrNotFound with the email as ID when absent
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create returns ErrUserAlreadyExists when the email is taken
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
