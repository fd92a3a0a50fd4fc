package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store_iface.go StoreAPI
type StoreAPI interface {
	GetCompensation(ctx context.Context, employeeID string) (Compensation, error)
	SetOverride(ctx context.Context, employeeID, component string, amount *decimal.Decimal) error
	ListAllowances(ctx context.Context, employeeID string) ([]Allowance, error)
	CreateAllowance(ctx context.Context, allowance Allowance) (Allowance, error)
	ListDeductions(ctx context.Context, employeeID string) ([]Deduction, error)
	GetDeduction(ctx context.Context, deductionID string) (Deduction, error)
	CreateDeduction(ctx context.Context, deduction Deduction) (Deduction, error)
	UpdateDeduction(ctx context.Context, deduction Deduction) (Deduction, error)
	DeleteDeduction(ctx context.Context, deductionID string) error
	CreatePayment(ctx context.Context, payment Payment) (Payment, error)
	ListPayments(ctx context.Context, employeeID string) ([]Payment, error)
}
