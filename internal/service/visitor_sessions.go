package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/oseiserwaa/kitchen/pkg/cache"
	"github.com/oseiserwaa/kitchen/pkg/crypto"
)

// VisitorSessions issues signed session tokens and remembers which sessions
// were already counted. It is analytics-grade: clearing the token or
// restarting the server counts the visitor again.
type VisitorSessions struct {
	secret  string
	ttl     time.Duration
	counted *cache.TTLCache[struct{}]
}

func NewVisitorSessions(secret string, ttl time.Duration) *VisitorSessions {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &VisitorSessions{
		secret:  secret,
		ttl:     ttl,
		counted: cache.NewTTLCache[struct{}](time.Minute),
	}
}

// WithClock replaces the time source of the counted-session cache
func (v *VisitorSessions) WithClock(now func() time.Time) *VisitorSessions {
	v.counted.WithClock(now)
	return v
}

// Resolve returns the session id carried by token, or a fresh id and token
// when token is empty or was not signed by us
func (v *VisitorSessions) Resolve(token string) (id string, signed string) {
	if token != "" {
		if id, err := crypto.VerifySignedValue(token, v.secret); err == nil {
			return id, token
		}
	}
	id = uuid.New().String()
	return id, crypto.SignValue(id, v.secret)
}

// MarkCounted reports false when id was already counted within the TTL
func (v *VisitorSessions) MarkCounted(id string) bool {
	return v.counted.SetIfAbsent(id, struct{}{}, v.ttl)
}

// Forget lets id be counted again, used when recording the visit failed
func (v *VisitorSessions) Forget(id string) {
	v.counted.Delete(id)
}

func (v *VisitorSessions) Stop() {
	v.counted.Stop()
}
