package export

import (
	"strconv"
	"strings"

	"paydesk/internal/domain/payroll"
)

// Section is one block of a paginated document, rendered in order.
type Section interface {
	sectionName() string
}

type TitleSection struct {
	Text     string
	Subtitle string
}

type Field struct {
	Label string
	Value string
}

type IdentitySection struct {
	Fields []Field
}

// TableSection is a titled table. Footer, when set, is drawn as a total row.
type TableSection struct {
	Heading string
	Columns []string
	Rows    [][]string
	Footer  []string
}

type SummarySection struct {
	Fields  []Field
	Flagged bool
}

func (TitleSection) sectionName() string    { return "title" }
func (IdentitySection) sectionName() string { return "identity" }
func (t TableSection) sectionName() string  { return "table:" + strings.ToLower(t.Heading) }
func (SummarySection) sectionName() string  { return "summary" }

// PayslipDocument is the logical layout of a payslip, independent of any
// rendering engine.
type PayslipDocument struct {
	Sections []Section
}

// Outline lists section names in order.
func (d PayslipDocument) Outline() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.sectionName())
	}
	return names
}

func NewPayslipDocument(slip payroll.Payslip) PayslipDocument {
	p := slip.Projection
	sections := []Section{
		TitleSection{Text: "Payslip", Subtitle: p.Period.String()},
		IdentitySection{Fields: []Field{
			{Label: "Employee", Value: slip.Employee.Name},
			{Label: "Employee Code", Value: shortCode(slip.Employee.EmployeeCode)},
			{Label: "Email", Value: slip.Employee.Email},
			{Label: "Role", Value: slip.Employee.Role},
			{Label: "Period", Value: p.Period.String()},
		}},
	}

	earnings := TableSection{
		Heading: "Earnings",
		Columns: []string{"Component", "Amount"},
		Footer:  []string{"Total Earnings", p.Summary.GrossPay.StringFixed(2)},
	}
	for _, line := range p.Earnings {
		earnings.Rows = append(earnings.Rows, []string{line.Label, line.Amount.StringFixed(2)})
	}
	sections = append(sections, earnings)

	if len(p.Deductions) > 0 {
		deductions := TableSection{
			Heading: "Deductions",
			Columns: []string{"Reason", "Amount"},
			Footer:  []string{"Total Deductions", p.Summary.TotalDeductions.StringFixed(2)},
		}
		for _, line := range p.Deductions {
			deductions.Rows = append(deductions.Rows, []string{line.Reason, line.Amount.StringFixed(2)})
		}
		sections = append(sections, deductions)
	}

	sections = append(sections, SummarySection{
		Fields: []Field{
			{Label: "Net Pay", Value: p.Summary.NetPay.StringFixed(2)},
			{Label: "Payout", Value: strconv.FormatInt(p.Summary.PayoutPercentage, 10) + "%"},
		},
		Flagged: p.Summary.NetPay.IsNegative(),
	})

	if len(slip.Payments) > 0 {
		history := TableSection{
			Heading: "Payment History",
			Columns: []string{"Month", "Year", "Amount", "Status", "Paid On"},
		}
		for _, row := range LedgerRows(slip.Payments) {
			history.Rows = append(history.Rows, []string{
				row.Month,
				strconv.Itoa(row.Year),
				row.Amount.StringFixed(2),
				row.Status,
				row.PaymentDate.Format(dateLayout),
			})
		}
		sections = append(sections, history)
	}

	return PayslipDocument{Sections: sections}
}

// shortCode is the first segment of an employee code, upper-cased.
func shortCode(code string) string {
	head, _, _ := strings.Cut(code, "-")
	return strings.ToUpper(head)
}
