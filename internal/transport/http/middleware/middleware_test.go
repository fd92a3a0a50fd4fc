package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paydesk/internal/platform/metrics"
	"paydesk/internal/requestctx"
)

type stubAuthenticator struct {
	sessions map[string]requestctx.Session
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (requestctx.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return requestctx.Session{}, errors.New("invalid token")
	}
	return session, nil
}

type stubPermissions struct {
	grants map[string][]string
	err    error
}

func (s stubPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, p := range s.grants[role] {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated request id to be echoed, ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "client-supplied" {
		t.Fatalf("expected client request id to be kept, got %q", seen)
	}
}

func TestAuthAttachesSessionForValidToken(t *testing.T) {
	authn := stubAuthenticator{sessions: map[string]requestctx.Session{
		"good": {UserID: "u-1", Role: "hr", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)},
	}}
	chain := Auth(authn)(RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSession(r.Context())
		if !ok || session.UserID != "u-1" {
			t.Fatalf("expected session for u-1, got %+v", session)
		}
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRequireSessionRejectsAnonymousAndBadTokens(t *testing.T) {
	chain := Auth(stubAuthenticator{})(RequireSession(http.HandlerFunc(okHandler)))

	for _, header := range []string{"", "Bearer nope", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	if got := BearerToken(req); got != "abc.def" {
		t.Fatalf("expected token, got %q", got)
	}
	req.Header.Set("Authorization", "Bearer")
	if got := BearerToken(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestRequirePermission(t *testing.T) {
	perms := stubPermissions{grants: map[string][]string{
		"viewer": {"payroll.read"},
		"admin":  {"payroll.read", "payroll.credit"},
	}}

	tests := []struct {
		name   string
		ctx    context.Context
		store  PermissionStore
		status int
	}{
		{name: "anonymous", ctx: context.Background(), store: perms, status: http.StatusUnauthorized},
		{name: "forbidden", ctx: requestctx.WithSession(context.Background(), requestctx.Session{UserID: "u", Role: "viewer"}), store: perms, status: http.StatusForbidden},
		{name: "allowed", ctx: requestctx.WithSession(context.Background(), requestctx.Session{UserID: "u", Role: "admin"}), store: perms, status: http.StatusNoContent},
		{name: "store error", ctx: requestctx.WithSession(context.Background(), requestctx.Session{UserID: "u", Role: "admin"}), store: stubPermissions{err: errors.New("boom")}, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := RequirePermission("payroll.credit", tc.store)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/e1/credit-salary", nil).WithContext(tc.ctx)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestRecovererReturns500(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestLoggerFeedsCollector(t *testing.T) {
	collector := metrics.New()
	h := Logger(collector)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	snap := collector.Snapshot()
	if snap["requestsTotal"] != uint64(1) || snap["errorsTotal"] != uint64(1) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRequestHashIsStable(t *testing.T) {
	a := RequestHash([]byte(`{"month":"March","year":2026}`))
	b := RequestHash([]byte(`{"month":"March","year":2026}`))
	c := RequestHash([]byte(`{"month":"April","year":2026}`))
	if a != b || a == c || len(a) != 64 {
		t.Fatalf("unexpected hashes %q %q %q", a, b, c)
	}
}

func TestNilIdempotencyStoreIsNoop(t *testing.T) {
	var store *IdempotencyStore
	if _, found, err := store.Check(context.Background(), "u", "e", "k", "h"); found || err != nil {
		t.Fatalf("expected noop check, found=%v err=%v", found, err)
	}
	if err := store.Save(context.Background(), "u", "e", "k", "h", []byte(`{}`)); err != nil {
		t.Fatalf("expected noop save, got %v", err)
	}
}

func TestSecureHeaders(t *testing.T) {
	h := SecureHeaders(true)(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/e1/payslip.pdf", nil))

	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store on api routes, got %q", rec.Header().Get("Cache-Control"))
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected HSTS in production")
	}

	rec = httptest.NewRecorder()
	SecureHeaders(false)(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("Cache-Control") != "" || rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("unexpected headers on health route: %v", rec.Header())
	}
}
