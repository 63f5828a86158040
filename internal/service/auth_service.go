package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/crypto"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/ratelimiter"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

const (
	LoginAttempts = 5
	LoginWindow   = 5 * time.Minute
)

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users   domain.UserRepository
	limiter *ratelimiter.Limiter
	logger  logger.Logger
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

type AuthServiceConfig struct {
	Users     domain.UserRepository
	Limiter   *ratelimiter.Limiter
	JWTSecret string
	TokenTTL  time.Duration
	Logger    logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cfg.Limiter != nil {
		cfg.Limiter.SetPolicy(ratelimiter.NamespaceLogin, LoginAttempts, LoginWindow)
	}
	return &AuthService{
		users:   cfg.Users,
		limiter: cfg.Limiter,
		logger:  cfg.Logger,
		secret:  []byte(cfg.JWTSecret),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// WithClock replaces the time source used to issue and check tokens
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AuthService", "Login")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(ratelimiter.NamespaceLogin, req.Email) {
		s.logger.WithField("email", req.Email).Warn("Login rate limit exceeded")
		return nil, &domain.ErrRateLimited{RetryAfter: s.limiter.RetryAfter(ratelimiter.NamespaceLogin, req.Email)}
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("email", req.Email).Error(fmt.Sprintf("Failed to load user for login: %v", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !crypto.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.Issue(user)
	if err != nil {
		return nil, err
	}
	if s.limiter != nil {
		s.limiter.Reset(ratelimiter.NamespaceLogin, req.Email)
	}

	return &domain.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Issue signs an HS256 token for user valid for the configured TTL
func (s *AuthService) Issue(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) Verify(token string) (*domain.AuthClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
