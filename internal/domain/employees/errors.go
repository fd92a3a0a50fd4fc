package employees

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidName   = errors.New("name is required")
	ErrInvalidEmail  = errors.New("a valid email is required")
	ErrInvalidRole   = errors.New("role is required")
	ErrInvalidSalary = errors.New("salary must be a non-negative amount with at most 2 decimals below 10^12")
	ErrEmptyPatch    = errors.New("no fields to update")
)
