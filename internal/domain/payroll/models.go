package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compensation is the read-only view of an employee that payroll computes over.
type Compensation struct {
	EmployeeID   string          `json:"employeeId"`
	EmployeeCode string          `json:"employeeCode"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	GrossSalary  decimal.Decimal `json:"salary"`
	Overrides    Overrides       `json:"-"`
}

type Allowance struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Deduction struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Reason     string          `json:"reason"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month"`
	Year       int             `json:"year"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Payment struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// Snapshot is everything a projection needs, fetched together.
type Snapshot struct {
	Compensation Compensation
	Allowances   []Allowance
	Deductions   []Deduction
}

// Payslip bundles the data rendered into payslip exports.
type Payslip struct {
	Employee   Compensation `json:"employee"`
	Projection Projection   `json:"projection"`
	Payments   []Payment    `json:"payments"`
}
