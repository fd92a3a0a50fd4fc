package employees

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employeeCode"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Salary       decimal.Decimal `json:"salary"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ShortCode is the display form of the employee code: its first segment,
// upper-cased.
func (e Employee) ShortCode() string {
	head, _, _ := strings.Cut(e.EmployeeCode, "-")
	return strings.ToUpper(head)
}

type Page struct {
	Employees   []Employee `json:"employees"`
	TotalItems  int64      `json:"totalItems"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

type Stats struct {
	TotalEmployees      int64           `json:"totalEmployees"`
	TotalSalary         decimal.Decimal `json:"totalSalary"`
	AverageSalary       decimal.Decimal `json:"averageSalary"`
	HighestPaidEmployee *string         `json:"highestPaidEmployee"`
}

type IncrementRecord struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	PreviousSalary decimal.Decimal `json:"previousSalary"`
	NewSalary      decimal.Decimal `json:"newSalary"`
	IncrementDate  time.Time       `json:"incrementDate"`
}

// Input is a new employee as submitted by an administrator.
type Input struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Salary string `json:"salary"`
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name   *string
	Email  *string
	Role   *string
	Salary *decimal.Decimal
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.Salary == nil
}
