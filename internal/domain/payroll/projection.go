package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type EarningLine struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     string          `json:"kind"`
	Explicit bool            `json:"explicit"`
}

type DeductionLine struct {
	ID     string          `json:"id"`
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

type Summary struct {
	GrossPay         decimal.Decimal `json:"grossPay"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetPay           decimal.Decimal `json:"netPay"`
	PayoutPercentage int64           `json:"payoutPercentage"`
	Warnings         []string        `json:"warnings,omitempty"`
}

type Projection struct {
	Period     Period          `json:"period"`
	Earnings   []EarningLine   `json:"earnings"`
	Deductions []DeductionLine `json:"deductions"`
	Summary    Summary         `json:"summary"`
}

type ProjectionInput struct {
	GrossSalary decimal.Decimal
	Overrides   Overrides
	Allowances  []Allowance
	Deductions  []Deduction
	Period      Period
}

// InputFromSnapshot builds the projection input for one period.
func InputFromSnapshot(snapshot Snapshot, period Period) ProjectionInput {
	return ProjectionInput{
		GrossSalary: snapshot.Compensation.GrossSalary,
		Overrides:   snapshot.Compensation.Overrides,
		Allowances:  snapshot.Allowances,
		Deductions:  snapshot.Deductions,
		Period:      period,
	}
}

// Project computes what an employee would be paid for in.Period. It has no
// side effects and returns the same result for the same input.
func Project(in ProjectionInput) (Projection, error) {
	earnings, err := ResolveComponents(in.Overrides, in.GrossSalary)
	if err != nil {
		return Projection{}, err
	}
	for _, allowance := range in.Allowances {
		if allowance.Amount.IsNegative() {
			return Projection{}, ErrInvalidAmount
		}
		earnings = append(earnings, EarningLine{
			Key:    allowance.ID,
			Label:  allowance.Label,
			Amount: allowance.Amount,
			Kind:   EarningKindCustom,
		})
	}

	scoped := DeductionsFor(in.Deductions, in.Period)
	deductions := make([]DeductionLine, 0, len(scoped))
	for _, d := range scoped {
		if d.Amount.IsNegative() {
			return Projection{}, ErrInvalidAmount
		}
		deductions = append(deductions, DeductionLine{ID: d.ID, Reason: d.Reason, Amount: d.Amount})
	}

	return Projection{
		Period:     in.Period,
		Earnings:   earnings,
		Deductions: deductions,
		Summary:    summarize(earnings, deductions),
	}, nil
}

// DeductionsFor keeps the deductions scoped to period, oldest first.
func DeductionsFor(all []Deduction, period Period) []Deduction {
	out := make([]Deduction, 0, len(all))
	for _, d := range all {
		if period.Matches(d.Month, d.Year) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func summarize(earnings []EarningLine, deductions []DeductionLine) Summary {
	gross := sumAmounts(earnings, func(l EarningLine) decimal.Decimal { return l.Amount })
	total := sumAmounts(deductions, func(l DeductionLine) decimal.Decimal { return l.Amount })
	net := gross.Sub(total)

	summary := Summary{
		GrossPay:        gross,
		TotalDeductions: total,
		NetPay:          net,
	}
	if gross.IsPositive() {
		summary.PayoutPercentage = net.Mul(hundred).Div(gross).Round(0).IntPart()
	}
	if net.IsNegative() {
		summary.Warnings = append(summary.Warnings, WarningNegativeNet)
	}
	return summary
}
