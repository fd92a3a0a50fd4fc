package payrollhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"paydesk/internal/domain/payroll"
	"paydesk/internal/export"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

var validationFields = []struct {
	err   error
	field string
}{
	{payroll.ErrInvalidAmount, "amount"},
	{payroll.ErrInvalidLabel, "label"},
	{payroll.ErrInvalidReason, "reason"},
	{payroll.ErrInvalidPeriod, "period"},
	{payroll.ErrInvalidComponent, "component"},
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	reqID := middleware.GetRequestID(r.Context())
	for _, vf := range validationFields {
		if errors.Is(err, vf.err) {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: vf.field, Reason: err.Error()}})
			return
		}
	}
	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, payroll.ErrDeductionNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "deduction not found", reqID)
	case errors.Is(err, payroll.ErrAlreadyCredited):
		api.Fail(w, http.StatusConflict, "already_credited", err.Error(), reqID)
	case errors.Is(err, payroll.ErrNegativeNetPay):
		api.Fail(w, http.StatusUnprocessableEntity, "negative_net_pay", err.Error(), reqID)
	case errors.Is(err, export.ErrEmptyExportSet):
		api.Fail(w, http.StatusUnprocessableEntity, "nothing_to_export", "there is nothing to export", reqID)
	default:
		slog.Error("payroll request failed", "code", fallbackCode, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal server error", reqID)
	}
}
