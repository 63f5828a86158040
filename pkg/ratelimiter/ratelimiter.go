package ratelimiter

import (
	"sync"
	"time"
)

// Well known namespaces
const (
	NamespaceLogin = "login"
	NamespaceVisit = "visit"
	NamespaceForm  = "form"
)

// Policy caps attempts per key inside a sliding window
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

type bucketKey struct {
	namespace string
	key       string
}

// Limiter is a sliding window limiter keyed by namespace and caller key.
// Namespaces without a policy deny everything.
//
//	rl := ratelimiter.New()
//	rl.SetPolicy(ratelimiter.NamespaceLogin, 5, 5*time.Minute)
//	if !rl.Allow(ratelimiter.NamespaceLogin, email) { ... }
type Limiter struct {
	mu       sync.Mutex
	attempts map[bucketKey][]time.Time
	policies map[string]Policy
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func New() *Limiter {
	rl := &Limiter{
		attempts: make(map[bucketKey][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweep(time.Minute)
	return rl
}

// WithClock replaces the time source, for tests
func (rl *Limiter) WithClock(now func() time.Time) *Limiter {
	rl.mu.Lock()
	rl.now = now
	rl.mu.Unlock()
	return rl
}

func (rl *Limiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// recent drops attempts older than the window. Caller holds mu.
func (rl *Limiter) recent(k bucketKey, window time.Duration, now time.Time) []time.Time {
	cutoff := now.Add(-window)
	list := rl.attempts[k]
	kept := list[:0]
	for _, at := range list {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(rl.attempts, k)
		return nil
	}
	rl.attempts[k] = kept
	return kept
}

// Allow records an attempt and reports whether it fits the namespace policy
func (rl *Limiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return false
	}

	now := rl.now()
	k := bucketKey{namespace, key}
	valid := rl.recent(k, policy.Window, now)
	if len(valid) >= policy.MaxAttempts {
		return false
	}
	rl.attempts[k] = append(valid, now)
	return true
}

// Reset forgets the attempts of key, typically after a successful login
func (rl *Limiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, bucketKey{namespace, key})
}

// RetryAfter is the number of whole seconds until the oldest attempt leaves
// the window, for the Retry-After header. Zero when nothing is pending.
func (rl *Limiter) RetryAfter(namespace, key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return 0
	}
	now := rl.now()
	valid := rl.recent(bucketKey{namespace, key}, policy.Window, now)
	if len(valid) == 0 {
		return 0
	}
	remaining := valid[0].Add(policy.Window).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

func (rl *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *Limiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k := range rl.attempts {
		policy, ok := rl.policies[k.namespace]
		if !ok {
			delete(rl.attempts, k)
			continue
		}
		rl.recent(k, policy.Window, now)
	}
}

// Stop ends the background sweeper. Safe to call more than once.
func (rl *Limiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
