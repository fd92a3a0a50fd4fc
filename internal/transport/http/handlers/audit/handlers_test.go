package audithandler

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/audit"
	"paydesk/internal/requestctx"
)

type fakeService struct {
	events         []audit.Event
	filter         audit.Filter
	includeDetails bool
	limit, offset  int
}

func (f *fakeService) Count(_ context.Context, filter audit.Filter) (int64, error) {
	f.filter = filter
	return int64(len(f.events)), nil
}

func (f *fakeService) List(_ context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error) {
	f.filter, f.includeDetails, f.limit, f.offset = filter, includeDetails, limit, offset
	return f.events, nil
}

type staticPerms map[string]bool

func (p staticPerms) HasPermission(_ context.Context, _, permission string) (bool, error) {
	return p[permission], nil
}

func newRouter(svc *fakeService, perms staticPerms) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestctx.WithSession(req.Context(), requestctx.Session{UserID: "admin-1", Role: "admin"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	NewHandler(svc, perms).RegisterRoutes(r)
	return r
}

func sampleEvents() []audit.Event {
	actor := "admin-1"
	return []audit.Event{{
		ID:         "evt-1",
		ActorID:    &actor,
		Action:     audit.ActionSalaryCredited,
		EntityType: audit.EntityPayment,
		EntityID:   "pay-1",
		RequestID:  "req-1",
		IP:         "10.0.0.1",
		CreatedAt:  time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC),
	}}
}

func TestListEventsPassesFilters(t *testing.T) {
	svc := &fakeService{events: sampleEvents()}
	rec := httptest.NewRecorder()
	newRouter(svc, staticPerms{"audit.read": true}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/audit/events?action=salary.credited&entityId=pay-1&includeDetails=true&page=2&limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Total-Count") != "1" {
		t.Fatalf("unexpected total %q", rec.Header().Get("X-Total-Count"))
	}
	if svc.filter.Action != audit.ActionSalaryCredited || svc.filter.EntityID != "pay-1" || !svc.includeDetails {
		t.Fatalf("unexpected filter %+v details=%v", svc.filter, svc.includeDetails)
	}
	if svc.limit != 5 || svc.offset != 5 {
		t.Fatalf("expected limit 5 offset 5, got %d %d", svc.limit, svc.offset)
	}
}

func TestExportEventsCSV(t *testing.T) {
	svc := &fakeService{events: sampleEvents()}
	rec := httptest.NewRecorder()
	newRouter(svc, staticPerms{"audit.read": true}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events.csv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	want := []string{"evt-1", "admin-1", "salary.credited", "payment", "pay-1", "req-1", "10.0.0.1", "2026-03-31T12:00:00Z"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Fatalf("column %d: expected %q, got %q", i, cell, rows[1][i])
		}
	}
	if svc.limit != exportLimit || svc.includeDetails {
		t.Fatalf("export should read up to %d rows without details", exportLimit)
	}
}

func TestAuditRequiresPermission(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeService{}, staticPerms{"payroll.read": true}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
