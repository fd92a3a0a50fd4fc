package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"paydesk/internal/transport/http/api"
)

// maxTrackedKeys bounds the bucket map; expired buckets are swept once it is reached.
const maxTrackedKeys = 10000

type window struct {
	hits  int
	reset time.Time
}

// limiter is a fixed-window counter keyed by whatever keyOf derives from the request.
type limiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	keyOf   func(*http.Request) string
	windows map[string]*window
}

func newLimiter(limit int, period time.Duration, keyOf func(*http.Request) string) *limiter {
	return &limiter{limit: limit, period: period, keyOf: keyOf, windows: map[string]*window{}}
}

// RateLimit caps every request per signed-in user, or per client IP before login.
func RateLimit(limit int, period time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(limit, period, actorKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type routeClass int

const (
	classLogin routeClass = iota + 1
	classMoney
)

type throttledRoute struct {
	method  string
	pattern []string
	class   routeClass
}

// throttledRoutes are matched against the path below /api/v1; "*" matches one segment.
var throttledRoutes = []throttledRoute{
	{http.MethodPost, []string{"auth", "login"}, classLogin},
	{http.MethodPost, []string{"auth", "register"}, classLogin},
	{http.MethodPost, []string{"employees", "*", "credit-salary"}, classMoney},
	{http.MethodPost, []string{"employees", "*", "send-payslip"}, classMoney},
}

// SensitiveMutationRateLimit adds tighter budgets on top of RateLimit: login and
// registration get a quarter of baseLimit per IP and per submitted email, salary
// credits and payslip sends get half of it per user.
func SensitiveMutationRateLimit(baseLimit int, period time.Duration) func(http.Handler) http.Handler {
	loginByIP := newLimiter(max(baseLimit/4, 1), period, ipKey)
	loginByEmail := newLimiter(max(baseLimit/4, 1), period, emailKey)
	money := newLimiter(max(baseLimit/2, 1), period, actorKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch classify(r) {
			case classLogin:
				if !loginByIP.allow(w, r) || !loginByEmail.allow(w, r) {
					return
				}
			case classMoney:
				if !money.allow(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func classify(r *http.Request) routeClass {
	segments := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1"), "/"), "/")
	for _, route := range throttledRoutes {
		if r.Method == route.method && matchSegments(route.pattern, segments) {
			return route.class
		}
	}
	return 0
}

func matchSegments(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, p := range pattern {
		if p != "*" && p != segments[i] {
			return false
		}
	}
	return true
}

func actorKey(r *http.Request) string {
	if session, ok := GetSession(r.Context()); ok {
		return "user:" + session.UserID
	}
	return ipKey(r)
}

func ipKey(r *http.Request) string {
	if fwd, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(fwd) != "" {
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// emailKey peeks at the JSON credentials and restores the body for the handler.
func emailKey(r *http.Request) string {
	if r.Body == nil || !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return ipKey(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ipKey(r)
	}
	var creds struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(raw, &creds) != nil || strings.TrimSpace(creds.Email) == "" {
		return ipKey(r)
	}
	return "email:" + strings.ToLower(strings.TrimSpace(creds.Email))
}

func (l *limiter) allow(w http.ResponseWriter, r *http.Request) bool {
	if l.limit <= 0 {
		return true
	}
	key := l.keyOf(r)
	now := time.Now()

	l.mu.Lock()
	win, ok := l.windows[key]
	if !ok || now.After(win.reset) {
		if !ok && len(l.windows) >= maxTrackedKeys {
			l.sweep(now)
		}
		win = &window{reset: now.Add(l.period)}
		l.windows[key] = win
	}
	win.hits++
	hits, reset := win.hits, win.reset
	l.mu.Unlock()

	resetIn := int(reset.Sub(now).Round(time.Second) / time.Second)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(l.limit-hits, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))
	if hits <= l.limit {
		return true
	}

	w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
	slog.Warn("rate limit exceeded", "key", key, "method", r.Method, "path", r.URL.Path, "limit", l.limit)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

// sweep drops expired windows. Callers hold l.mu.
func (l *limiter) sweep(now time.Time) {
	for key, win := range l.windows {
		if now.After(win.reset) {
			delete(l.windows, key)
		}
	}
}
