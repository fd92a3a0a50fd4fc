package payroll

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be a non-negative number with at most 2 decimals below 10^12")
	ErrInvalidLabel      = errors.New("allowance label is required")
	ErrInvalidReason     = errors.New("deduction reason is required")
	ErrInvalidPeriod     = errors.New("month and year must name a valid period")
	ErrInvalidComponent  = errors.New("unknown salary component")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrDeductionNotFound = errors.New("deduction not found")
	ErrAlreadyCredited   = errors.New("salary already credited for this period")
	ErrNegativeNetPay    = errors.New("net pay is negative for this period")
)
