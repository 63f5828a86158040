package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/crypto"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

func NewUserService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list users: %v", err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		var exists *domain.ErrUserAlreadyExists
		if errors.As(err, &exists) {
			return nil, err
		}
		s.logger.WithField("email", req.Email).Error(fmt.Sprintf("Failed to create user: %v", err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("user_id", id).Error(fmt.Sprintf("Failed to delete user: %v", err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureRootUser creates the configured admin unless an account with that
// email exists. The bool reports whether a user was created.
func (s *UserService) EnsureRootUser(ctx context.Context, email, password, name string) (*domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !domain.IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to look up root user: %w", err)
	}

	if name == "" {
		name = "Admin"
	}
	user, err := s.Create(ctx, &domain.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	s.logger.WithField("email", email).Info("Root user created")
	return user, true, nil
}
