// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts hits per key in fixed windows. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

type bucket struct {
	count int
	reset time.Time
}

// New returns a limiter allowing limit hits per key per window and starts
// a janitor that drops expired keys. Call Stop to end the janitor.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string]*bucket),
		limit:  limit,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.janitor(2 * window)
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.hits[key]
	if !ok || !now.Before(b.reset) {
		l.hits[key] = &bucket{count: 1, reset: now.Add(l.window)}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Remaining returns how many hits key has left in its window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.hits[key]
	if !ok || !l.now().Before(b.reset) {
		return l.limit
	}
	if n := l.limit - b.count; n > 0 {
		return n
	}
	return 0
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
}

// Stop ends the janitor goroutine.
func (l *Limiter) Stop() {
	l.stopped.Do(func() { close(l.stop) })
}

func (l *Limiter) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.mu.Lock()
			now := l.now()
			for k, b := range l.hits {
				if !now.Before(b.reset) {
					delete(l.hits, k)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP returns the caller's address, preferring the first
// X-Forwarded-For hop, then X-Real-IP, then RemoteAddr without its port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginLimiter guards the admin sign-in form per client IP and per username.
type LoginLimiter struct {
	byIP   *Limiter
	byUser *Limiter
}

// Messages returned by LoginLimiter.Check.
const (
	MsgTooManyFromIP  = "Too many login attempts. Please wait a minute before trying again."
	MsgTooManyForUser = "Too many login attempts for this account. Please wait a few minutes."
)

// NewLoginLimiter allows ipLimit attempts per IP per minute and userLimit
// attempts per username per five minutes.
func NewLoginLimiter(ipLimit, userLimit int) *LoginLimiter {
	if ipLimit <= 0 {
		ipLimit = 10
	}
	if userLimit <= 0 {
		userLimit = 5
	}
	return &LoginLimiter{
		byIP:   New(ipLimit, time.Minute),
		byUser: New(userLimit, 5*time.Minute),
	}
}

// Check records an attempt and returns ("", true) when it may proceed or
// the reason it was refused.
func (ll *LoginLimiter) Check(r *http.Request, username string) (string, bool) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return MsgTooManyFromIP, false
	}
	if key := userKey(username); key != "" && !ll.byUser.Allow(key) {
		return MsgTooManyForUser, false
	}
	return "", true
}

// Succeeded clears the username counter after a good login.
func (ll *LoginLimiter) Succeeded(username string) {
	if key := userKey(username); key != "" {
		ll.byUser.Reset(key)
	}
}

// Stop ends both janitors.
func (ll *LoginLimiter) Stop() {
	ll.byIP.Stop()
	ll.byUser.Stop()
}

func userKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
