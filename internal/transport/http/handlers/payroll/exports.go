package payrollhandler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/payroll"
	"paydesk/internal/export"
	"paydesk/internal/transport/http/shared"
)

func payslipFilename(period payroll.Period, ext string) string {
	return fmt.Sprintf("payslip-%s-%d.%s", strings.ToLower(period.MonthName()), period.Year, ext)
}

func (h *Handler) handlePayslipCSV(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodFromQuery(r)
	if err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	projection, err := h.Service.Project(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	var buf bytes.Buffer
	if err := export.WritePayslipCSV(&buf, export.PayslipRows(projection)); err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	h.Metrics.ExportServed("payslip.csv")
	shared.WriteAttachment(w, "text/csv; charset=utf-8", payslipFilename(period, "csv"), buf.Bytes())
}

func (h *Handler) handlePayslipPDF(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodFromQuery(r)
	if err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	slip, err := h.Service.Payslip(r.Context(), chi.URLParam(r, "employeeID"), period)
	if err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	pdf, err := export.RenderPDF(export.NewPayslipDocument(slip))
	if err != nil {
		h.fail(w, r, err, "payslip_export_failed")
		return
	}
	h.Metrics.ExportServed("payslip.pdf")
	shared.WriteAttachment(w, "application/pdf", payslipFilename(period, "pdf"), pdf)
}

func (h *Handler) handleLedgerCSV(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.PaymentHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "payroll_history_failed")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteLedgerCSV(&buf, export.LedgerRows(payments)); err != nil {
		h.fail(w, r, err, "payroll_history_failed")
		return
	}
	h.Metrics.ExportServed("ledger.csv")
	shared.WriteAttachment(w, "text/csv; charset=utf-8", "payroll-history.csv", buf.Bytes())
}

func (h *Handler) handleBreakupCSV(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Service.Breakup(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "breakup_failed")
		return
	}
	var buf bytes.Buffer
	if err := export.WritePayslipCSV(&buf, export.BreakupRows(lines)); err != nil {
		h.fail(w, r, err, "breakup_failed")
		return
	}
	h.Metrics.ExportServed("breakup.csv")
	shared.WriteAttachment(w, "text/csv; charset=utf-8", "salary-breakup.csv", buf.Bytes())
}
