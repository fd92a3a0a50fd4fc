package employeeshandler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/audit"
	"paydesk/internal/domain/auth"
	"paydesk/internal/domain/employees"
	"paydesk/internal/export"
	"paydesk/internal/platform/metrics"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Service interface {
	List(ctx context.Context, q employees.ListQuery) (employees.Page, error)
	Export(ctx context.Context, q employees.ListQuery) ([]employees.Employee, error)
	Get(ctx context.Context, id string) (employees.Employee, error)
	Create(ctx context.Context, in employees.Input) (employees.Employee, error)
	Update(ctx context.Context, id string, patch employees.Patch) (employees.Employee, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (employees.Stats, error)
	History(ctx context.Context, id string) ([]employees.IncrementRecord, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Metrics *metrics.Collector
	Audit   audit.Recorder
}

func NewHandler(service Service, perms middleware.PermissionStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Metrics: collector}
}

// RegisterRoutes mounts roster routes on a router rooted at /employees.
func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)
	write := middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)

	r.With(read).Get("/", h.handleList)
	r.With(write).Post("/", h.handleCreate)
	r.With(read).Get("/stats", h.handleStats)
	r.With(read).Get("/export.csv", h.handleExportCSV)
	r.With(read).Get("/export.xlsx", h.handleExportXLSX)
	r.With(read).Get("/{employeeID}", h.handleGet)
	r.With(write).Put("/{employeeID}", h.handleUpdate)
	r.With(write).Delete("/{employeeID}", h.handleDelete)
	r.With(read).Get("/{employeeID}/history", h.handleHistory)
}

type employeePatchRequest struct {
	Name   *string           `json:"name"`
	Email  *string           `json:"email"`
	Role   *string           `json:"role"`
	Salary *shared.RawAmount `json:"salary"`
}

type employeeRequest struct {
	Name   string           `json:"name"`
	Email  string           `json:"email"`
	Role   string           `json:"role"`
	Salary shared.RawAmount `json:"salary"`
}

func listQuery(r *http.Request) employees.ListQuery {
	page := shared.ParsePagination(r, employees.DefaultLimit, employees.MaxLimit)
	q := r.URL.Query()
	return employees.ListQuery{
		Page:   page.Page,
		Limit:  page.Limit,
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Sort:   q.Get("sort"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), listQuery(r))
	if err != nil {
		h.fail(w, r, err, "employee_list_failed")
		return
	}
	api.Success(w, page, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("email", payload.Email, "is required")
	v.Required("role", payload.Role, "is required")
	v.Required("salary", payload.Salary.String(), "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Service.Create(r.Context(), employees.Input{
		Name:   payload.Name,
		Email:  payload.Email,
		Role:   payload.Role,
		Salary: payload.Salary.String(),
	})
	if err != nil {
		h.fail(w, r, err, "employee_create_failed")
		return
	}
	slog.Info("employee created", "employeeId", emp.ID, "requestId", middleware.GetRequestID(r.Context()))
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionEmployeeCreated,
		EntityType: audit.EntityEmployee,
		EntityID:   emp.ID,
		Details:    map[string]string{"email": emp.Email, "salary": emp.Salary.String()},
	})
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "employee_fetch_failed")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employeePatchRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	patch := employees.Patch{Name: payload.Name, Email: payload.Email, Role: payload.Role}
	if payload.Salary != nil {
		salary, err := employees.ParseSalary(payload.Salary.String())
		if err != nil {
			h.fail(w, r, err, "employee_update_failed")
			return
		}
		patch.Salary = &salary
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), patch)
	if err != nil {
		h.fail(w, r, err, "employee_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionEmployeeUpdated,
		EntityType: audit.EntityEmployee,
		EntityID:   emp.ID,
		Details:    payload,
	})
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Service.Delete(r.Context(), employeeID); err != nil {
		h.fail(w, r, err, "employee_delete_failed")
		return
	}
	slog.Info("employee deleted", "employeeId", employeeID, "requestId", middleware.GetRequestID(r.Context()))
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionEmployeeDeleted,
		EntityType: audit.EntityEmployee,
		EntityID:   employeeID,
	})
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err, "employee_stats_failed")
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.History(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "employee_history_failed")
		return
	}
	if history == nil {
		history = []employees.IncrementRecord{}
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", export.WriteRosterCSV)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteRosterXLSX)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format, contentType string, write func(io.Writer, []export.RosterRow) error) {
	list, err := h.Service.Export(r.Context(), listQuery(r))
	if err != nil {
		h.fail(w, r, err, "employee_export_failed")
		return
	}
	rows := make([]export.RosterRow, 0, len(list))
	for _, emp := range list {
		rows = append(rows, export.RosterRow{
			ID:         emp.ID,
			Name:       emp.Name,
			Email:      emp.Email,
			Role:       emp.Role,
			Salary:     emp.Salary,
			JoinedDate: emp.CreatedAt,
		})
	}

	var buf bytes.Buffer
	if err := write(&buf, rows); err != nil {
		h.fail(w, r, err, "employee_export_failed")
		return
	}
	h.Metrics.ExportServed("roster." + format)
	filename := "employees-" + time.Now().UTC().Format("2006-01-02") + "." + format
	shared.WriteAttachment(w, contentType, filename, buf.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employees.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", err.Error(), reqID)
	case errors.Is(err, employees.ErrEmptyPatch):
		api.Fail(w, http.StatusBadRequest, "empty_update", err.Error(), reqID)
	case errors.Is(err, employees.ErrInvalidName):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "name", Reason: err.Error()}})
	case errors.Is(err, employees.ErrInvalidEmail):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "email", Reason: err.Error()}})
	case errors.Is(err, employees.ErrInvalidRole):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "role", Reason: err.Error()}})
	case errors.Is(err, employees.ErrInvalidSalary):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "salary", Reason: err.Error()}})
	case errors.Is(err, export.ErrEmptyExportSet):
		api.Fail(w, http.StatusUnprocessableEntity, "nothing_to_export", "no employees match the export filters", reqID)
	default:
		slog.Error("employee request failed", "code", fallbackCode, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal server error", reqID)
	}
}
