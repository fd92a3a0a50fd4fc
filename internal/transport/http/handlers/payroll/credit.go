package payrollhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/audit"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/export"
	"paydesk/internal/platform/email"
	"paydesk/internal/platform/jobs"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

const creditEndpoint = "payroll.credit"

type creditResponse struct {
	Payment    payroll.Payment    `json:"payment"`
	Projection payroll.Projection `json:"projection"`
}

func (h *Handler) handleCreditSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload periodRequest
	if err := shared.DecodeOptionalJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	period, err := h.periodFromBody(payload)
	if err != nil {
		h.fail(w, r, err, "credit_failed")
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	requestHash := middleware.RequestHash([]byte(fmt.Sprintf("%s|%s|%d", employeeID, period.MonthName(), period.Year)))
	if idempotencyKey != "" && h.Idempotency != nil {
		stored, found, err := h.Idempotency.Check(r.Context(), session.UserID, creditEndpoint, idempotencyKey, requestHash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used for a different request", reqID)
			return
		}
		if err != nil {
			slog.Warn("idempotency check failed", "err", err, "requestId", reqID)
		}
		if found {
			w.Header().Set("Idempotent-Replayed", "true")
			api.Created(w, json.RawMessage(stored), reqID)
			return
		}
	}

	payment, projection, err := h.Service.CreditSalary(r.Context(), employeeID, period)
	if err != nil {
		if errors.Is(err, payroll.ErrAlreadyCredited) {
			h.Metrics.CreditConflict()
		}
		if errors.Is(err, payroll.ErrNegativeNetPay) {
			api.FailWithDetails(w, http.StatusUnprocessableEntity, "negative_net_pay", err.Error(), projection.Summary, reqID)
			return
		}
		h.fail(w, r, err, "credit_failed")
		return
	}
	h.Metrics.SalaryCredited()
	slog.Info("salary credited",
		"employeeId", employeeID,
		"period", period.String(),
		"amount", payment.Amount.String(),
		"actor", session.UserID,
		"requestId", reqID,
	)

	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionSalaryCredited,
		EntityType: audit.EntityPayment,
		EntityID:   payment.ID,
		Details:    payment,
	})

	response := creditResponse{Payment: payment, Projection: projection}
	if idempotencyKey != "" && h.Idempotency != nil {
		body, err := json.Marshal(response)
		if err != nil {
			slog.Warn("credit response marshal failed", "err", err)
		} else if err := h.Idempotency.Save(r.Context(), session.UserID, creditEndpoint, idempotencyKey, requestHash, body); err != nil {
			slog.Warn("idempotency save failed", "err", err, "requestId", reqID)
		}
	}
	api.Created(w, response, reqID)
}

// handleSendPayslip renders the payslip now and mails it from the job queue.
func (h *Handler) handleSendPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if h.Jobs == nil || h.Mailer == nil {
		api.Fail(w, http.StatusServiceUnavailable, "email_unavailable", "payslip email is not configured", reqID)
		return
	}

	var payload periodRequest
	if err := shared.DecodeOptionalJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	period, err := h.periodFromBody(payload)
	if err != nil {
		h.fail(w, r, err, "payslip_send_failed")
		return
	}

	slip, err := h.Service.Payslip(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		h.fail(w, r, err, "payslip_send_failed")
		return
	}
	if strings.TrimSpace(slip.Employee.Email) == "" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "email", Reason: "employee has no email address"}})
		return
	}
	pdf, err := export.RenderPDF(export.NewPayslipDocument(slip))
	if err != nil {
		h.fail(w, r, err, "payslip_send_failed")
		return
	}

	msg := email.Message{
		From:    h.MailFrom,
		To:      slip.Employee.Email,
		Subject: "Payslip for " + period.String(),
		Body:    fmt.Sprintf("Hello %s,\n\nYour payslip for %s is attached.\n", slip.Employee.Name, period),
		Attachments: []email.Attachment{{
			Name:        payslipFilename(period, "pdf"),
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	employeeID := slip.Employee.EmployeeID
	queued := h.Jobs.Enqueue(jobs.JobSendPayslip, func(ctx context.Context) (any, error) {
		details := map[string]any{"employeeId": employeeID, "period": period.String()}
		if err := h.Mailer.Send(ctx, msg); err != nil {
			return details, err
		}
		h.Metrics.PayslipSent()
		return details, nil
	})
	if !queued {
		api.Fail(w, http.StatusServiceUnavailable, "queue_full", "payslip could not be queued, retry later", reqID)
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		Action:     audit.ActionPayslipQueued,
		EntityType: audit.EntityEmployee,
		EntityID:   employeeID,
		Details:    map[string]string{"to": slip.Employee.Email, "period": period.String()},
	})
	api.WriteJSON(w, http.StatusAccepted, api.Envelope{
		Success:   true,
		Data:      map[string]string{"status": "queued", "to": slip.Employee.Email, "period": period.String()},
		RequestID: reqID,
	})
}
