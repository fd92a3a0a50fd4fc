package payrollhandler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/audit"
	"paydesk/internal/domain/auth"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/platform/email"
	"paydesk/internal/platform/jobs"
	"paydesk/internal/platform/metrics"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Service interface {
	CurrentPeriod() payroll.Period
	Breakup(ctx context.Context, employeeID string) ([]payroll.BreakupLine, error)
	Project(ctx context.Context, employeeID string, period payroll.Period) (payroll.Projection, error)
	AddAllowance(ctx context.Context, employeeID, label, rawAmount string) (payroll.Allowance, error)
	SetOverride(ctx context.Context, employeeID, component, rawAmount string) error
	ClearOverride(ctx context.Context, employeeID, component string) error
	ListDeductions(ctx context.Context, employeeID string, period *payroll.Period) ([]payroll.Deduction, error)
	AddDeduction(ctx context.Context, employeeID string, in payroll.DeductionInput) (payroll.Deduction, error)
	UpdateDeduction(ctx context.Context, deductionID, reason, rawAmount string) (payroll.Deduction, error)
	RemoveDeduction(ctx context.Context, deductionID string) error
	CreditSalary(ctx context.Context, employeeID string, period payroll.Period) (payroll.Payment, payroll.Projection, error)
	PaymentHistory(ctx context.Context, employeeID string) ([]payroll.Payment, error)
	Payslip(ctx context.Context, employeeID string, period payroll.Period) (payroll.Payslip, error)
}

// Dispatcher runs work off the request path.
type Dispatcher interface {
	Enqueue(jobType string, run jobs.RunFunc) bool
}

type Handler struct {
	Service     Service
	Perms       middleware.PermissionStore
	Idempotency middleware.IdempotencyKeeper
	Mailer      email.Mailer
	Jobs        Dispatcher
	Metrics     *metrics.Collector
	Audit       audit.Recorder
	MailFrom    string
}

func NewHandler(service Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

// RegisterRoutes mounts payroll routes on a router rooted at /employees.
func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermPayrollRead, h.Perms)
	write := middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)
	credit := middleware.RequirePermission(auth.PermPayrollCredit, h.Perms)

	r.With(write).Put("/deductions/{deductionID}", h.handleUpdateDeduction)
	r.With(write).Delete("/deductions/{deductionID}", h.handleDeleteDeduction)

	r.With(read).Get("/{employeeID}/breakup", h.handleBreakup)
	r.With(read).Get("/{employeeID}/breakup.csv", h.handleBreakupCSV)
	r.With(read).Get("/{employeeID}/projection", h.handleProjection)
	r.With(write).Post("/{employeeID}/allowance", h.handleAddAllowance)
	r.With(write).Put("/{employeeID}/components/{component}", h.handleSetComponent)
	r.With(write).Delete("/{employeeID}/components/{component}", h.handleClearComponent)
	r.With(read).Get("/{employeeID}/deductions", h.handleListDeductions)
	r.With(write).Post("/{employeeID}/deductions", h.handleAddDeduction)
	r.With(credit).Post("/{employeeID}/credit-salary", h.handleCreditSalary)
	r.With(read).Get("/{employeeID}/payroll", h.handlePaymentHistory)
	r.With(read).Get("/{employeeID}/payroll.csv", h.handleLedgerCSV)
	r.With(read).Get("/{employeeID}/payslip.csv", h.handlePayslipCSV)
	r.With(read).Get("/{employeeID}/payslip.pdf", h.handlePayslipPDF)
	r.With(credit).Post("/{employeeID}/send-payslip", h.handleSendPayslip)
}

type allowanceRequest struct {
	Label  string           `json:"label"`
	Amount shared.RawAmount `json:"amount"`
}

type componentRequest struct {
	Amount shared.RawAmount `json:"amount"`
}

type deductionRequest struct {
	Reason string           `json:"reason"`
	Amount shared.RawAmount `json:"amount"`
	Month  string           `json:"month"`
	Year   int              `json:"year"`
}

type deductionChangeRequest struct {
	Reason string           `json:"reason"`
	Amount shared.RawAmount `json:"amount"`
}

type periodRequest struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// periodFromQuery reads ?month=&year=. Missing parts default to the current
// period.
func (h *Handler) periodFromQuery(r *http.Request) (payroll.Period, error) {
	current := h.Service.CurrentPeriod()
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	rawYear := strings.TrimSpace(r.URL.Query().Get("year"))
	if month == "" && rawYear == "" {
		return current, nil
	}
	year := current.Year
	if rawYear != "" {
		parsed, err := strconv.Atoi(rawYear)
		if err != nil {
			return payroll.Period{}, payroll.ErrInvalidPeriod
		}
		year = parsed
	}
	if month == "" {
		month = current.MonthName()
	}
	return payroll.ParsePeriod(month, year)
}

func (h *Handler) periodFromBody(req periodRequest) (payroll.Period, error) {
	current := h.Service.CurrentPeriod()
	if strings.TrimSpace(req.Month) == "" && req.Year == 0 {
		return current, nil
	}
	month := req.Month
	if strings.TrimSpace(month) == "" {
		month = current.MonthName()
	}
	year := req.Year
	if year == 0 {
		year = current.Year
	}
	return payroll.ParsePeriod(month, year)
}

func (h *Handler) handleBreakup(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Service.Breakup(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "breakup_failed")
		return
	}
	api.Success(w, lines, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodFromQuery(r)
	if err != nil {
		h.fail(w, r, err, "projection_failed")
		return
	}
	projection, err := h.Service.Project(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		h.fail(w, r, err, "projection_failed")
		return
	}
	api.Success(w, projection, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddAllowance(w http.ResponseWriter, r *http.Request) {
	var payload allowanceRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	allowance, err := h.Service.AddAllowance(r.Context(), chi.URLParam(r, "employeeID"), payload.Label, payload.Amount.String())
	if err != nil {
		h.fail(w, r, err, "allowance_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionAllowanceAdded,
		EntityType: audit.EntityEmployee,
		EntityID:   allowance.EmployeeID,
		Details:    allowance,
	})
	api.Created(w, allowance, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetComponent(w http.ResponseWriter, r *http.Request) {
	var payload componentRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	component := chi.URLParam(r, "component")
	if err := h.Service.SetOverride(r.Context(), employeeID, component, payload.Amount.String()); err != nil {
		h.fail(w, r, err, "component_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionComponentSet,
		EntityType: audit.EntityEmployee,
		EntityID:   employeeID,
		Details:    map[string]string{"component": component, "amount": payload.Amount.String()},
	})
	h.respondWithProjection(w, r, employeeID)
}

func (h *Handler) handleClearComponent(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	component := chi.URLParam(r, "component")
	if err := h.Service.ClearOverride(r.Context(), employeeID, component); err != nil {
		h.fail(w, r, err, "component_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionComponentCleared,
		EntityType: audit.EntityEmployee,
		EntityID:   employeeID,
		Details:    map[string]string{"component": component},
	})
	h.respondWithProjection(w, r, employeeID)
}

// respondWithProjection answers a component mutation with the recomputed
// projection for the current period.
func (h *Handler) respondWithProjection(w http.ResponseWriter, r *http.Request, employeeID string) {
	projection, err := h.Service.Project(r.Context(), employeeID, h.Service.CurrentPeriod())
	if err != nil {
		h.fail(w, r, err, "projection_failed")
		return
	}
	api.Success(w, projection, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDeductions(w http.ResponseWriter, r *http.Request) {
	var period *payroll.Period
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		p, err := h.periodFromQuery(r)
		if err != nil {
			h.fail(w, r, err, "deduction_list_failed")
			return
		}
		period = &p
	}
	deductions, err := h.Service.ListDeductions(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		h.fail(w, r, err, "deduction_list_failed")
		return
	}
	if deductions == nil {
		deductions = []payroll.Deduction{}
	}
	api.Success(w, deductions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddDeduction(w http.ResponseWriter, r *http.Request) {
	var payload deductionRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	period, err := h.periodFromBody(periodRequest{Month: payload.Month, Year: payload.Year})
	if err != nil {
		h.fail(w, r, err, "deduction_create_failed")
		return
	}
	deduction, err := h.Service.AddDeduction(r.Context(), chi.URLParam(r, "employeeID"), payroll.DeductionInput{
		Reason: payload.Reason,
		Amount: payload.Amount.String(),
		Month:  period.MonthName(),
		Year:   period.Year,
	})
	if err != nil {
		h.fail(w, r, err, "deduction_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionDeductionAdded,
		EntityType: audit.EntityDeduction,
		EntityID:   deduction.ID,
		Details:    deduction,
	})
	api.Created(w, deduction, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDeduction(w http.ResponseWriter, r *http.Request) {
	var payload deductionChangeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	deduction, err := h.Service.UpdateDeduction(r.Context(), chi.URLParam(r, "deductionID"), payload.Reason, payload.Amount.String())
	if err != nil {
		h.fail(w, r, err, "deduction_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionDeductionUpdated,
		EntityType: audit.EntityDeduction,
		EntityID:   deduction.ID,
		Details:    deduction,
	})
	api.Success(w, deduction, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDeduction(w http.ResponseWriter, r *http.Request) {
	deductionID := chi.URLParam(r, "deductionID")
	if err := h.Service.RemoveDeduction(r.Context(), deductionID); err != nil {
		h.fail(w, r, err, "deduction_delete_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionDeductionRemoved,
		EntityType: audit.EntityDeduction,
		EntityID:   deductionID,
	})
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.PaymentHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "payroll_history_failed")
		return
	}
	if payments == nil {
		payments = []payroll.Payment{}
	}
	api.Success(w, payments, middleware.GetRequestID(r.Context()))
}
