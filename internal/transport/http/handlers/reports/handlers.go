package reportshandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/auth"
	"paydesk/internal/domain/reports"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Service interface {
	JobRuns(ctx context.Context, filter reports.JobRunFilter, limit, offset int) (reports.JobRunPage, error)
	JobRun(ctx context.Context, runID string) (reports.JobRun, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
}

func NewHandler(service Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/job-runs", h.handleJobRuns)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/job-runs/{runID}", h.handleJobRun)
	})
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()
	filter := reports.JobRunFilter{
		JobType: q.Get("jobType"),
		Status:  q.Get("status"),
	}

	v := shared.NewValidator()
	filter.StartedFrom = parseTimeParam(v, "startedFrom", q.Get("startedFrom"))
	filter.StartedTo = parseTimeParam(v, "startedTo", q.Get("startedTo"))
	if v.Reject(w, reqID) {
		return
	}

	page := shared.ParsePagination(r, 25, 200)
	result, err := h.Service.JobRuns(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		if errors.Is(err, reports.ErrInvalidRange) {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "startedTo", Reason: "must not be before startedFrom"}})
			return
		}
		slog.Error("job run list failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(result.Total, 10))
	api.Success(w, result, reqID)
}

func (h *Handler) handleJobRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	run, err := h.Service.JobRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		if errors.Is(err, reports.ErrJobRunNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job run not found", reqID)
			return
		}
		slog.Error("job run lookup failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "job_run_failed", "failed to load job run", reqID)
		return
	}
	api.Success(w, run, reqID)
}

// parseTimeParam accepts RFC3339 timestamps or plain dates.
func parseTimeParam(v *shared.Validator, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	v.Add(field, "must be an RFC3339 timestamp or YYYY-MM-DD date")
	return nil
}
