package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
)

// ParseAmount parses a user supplied amount. Empty, non-numeric and negative
// values are rejected, as are values with more than two decimals or beyond
// the money column range.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, ok := money.Parse(raw)
	if !ok {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func NewAllowance(employeeID, label, rawAmount string) (Allowance, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Allowance{}, ErrInvalidLabel
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Allowance{}, err
	}
	return Allowance{EmployeeID: employeeID, Label: label, Amount: amount}, nil
}

// DeductionInput is the administrator supplied part of a deduction.
type DeductionInput struct {
	Reason string
	Amount string
	Month  string
	Year   int
}

func NewDeduction(employeeID string, in DeductionInput) (Deduction, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return Deduction{}, ErrInvalidReason
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Deduction{}, err
	}
	period, err := ParsePeriod(in.Month, in.Year)
	if err != nil {
		return Deduction{}, err
	}
	return Deduction{
		EmployeeID: employeeID,
		Reason:     reason,
		Amount:     amount,
		Month:      period.MonthName(),
		Year:       period.Year,
	}, nil
}

// ApplyDeductionChange edits reason and amount in place, keeping the id and
// the period. Empty fields leave the current value.
func ApplyDeductionChange(current Deduction, reason, rawAmount string) (Deduction, error) {
	if strings.TrimSpace(reason) != "" {
		current.Reason = strings.TrimSpace(reason)
	}
	if strings.TrimSpace(rawAmount) != "" {
		amount, err := ParseAmount(rawAmount)
		if err != nil {
			return Deduction{}, err
		}
		current.Amount = amount
	}
	return current, nil
}
