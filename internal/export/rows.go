package export

import (
	"time"

	"github.com/shopspring/decimal"

	"paydesk/internal/domain/payroll"
)

// RosterRow is one employee in a roster export.
type RosterRow struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Salary     decimal.Decimal
	JoinedDate time.Time
}

// PayslipRow is one component line of a payslip export.
type PayslipRow struct {
	Component string
	Amount    decimal.Decimal
}

// LedgerRow is one credited payment.
type LedgerRow struct {
	Month       string
	Year        int
	Amount      decimal.Decimal
	Status      string
	PaymentDate time.Time
}

var (
	rosterHeader  = []string{"ID", "Name", "Email", "Role", "Salary", "Joined Date"}
	payslipHeader = []string{"Component", "Amount"}
	ledgerHeader  = []string{"Month", "Year", "Amount", "Status", "Payment Date"}
)

const dateLayout = "2006-01-02"

// BreakupRows maps a salary breakup onto payslip rows.
func BreakupRows(lines []payroll.BreakupLine) []PayslipRow {
	rows := make([]PayslipRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, PayslipRow{Component: line.Name, Amount: line.Value})
	}
	return rows
}

// PayslipRows lists the earnings of a projection, then its deductions, then
// the net pay.
func PayslipRows(p payroll.Projection) []PayslipRow {
	rows := make([]PayslipRow, 0, len(p.Earnings)+len(p.Deductions)+1)
	for _, line := range p.Earnings {
		rows = append(rows, PayslipRow{Component: line.Label, Amount: line.Amount})
	}
	for _, line := range p.Deductions {
		rows = append(rows, PayslipRow{Component: "Deduction: " + line.Reason, Amount: line.Amount.Neg()})
	}
	rows = append(rows, PayslipRow{Component: "Net Pay", Amount: p.Summary.NetPay})
	return rows
}

func LedgerRows(payments []payroll.Payment) []LedgerRow {
	rows := make([]LedgerRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, LedgerRow{
			Month:       p.Month,
			Year:        p.Year,
			Amount:      p.Amount,
			Status:      p.Status,
			PaymentDate: p.PaymentDate,
		})
	}
	return rows
}
