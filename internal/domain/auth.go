package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AuthClaims is what a verified bearer token says about its holder
type AuthClaims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}
