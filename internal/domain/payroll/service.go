package payroll

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the time source used for the current period and payment dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CurrentPeriod() Period {
	return PeriodOf(s.now())
}

func (s *Service) Breakup(ctx context.Context, employeeID string) ([]BreakupLine, error) {
	comp, err := s.store.GetCompensation(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return Breakup(comp.GrossSalary)
}

// Snapshot fetches compensation, allowances and deductions concurrently and
// returns once all three have completed.
func (s *Service) Snapshot(ctx context.Context, employeeID string) (Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comp, err := s.store.GetCompensation(gctx, employeeID)
		snapshot.Compensation = comp
		return err
	})
	g.Go(func() error {
		allowances, err := s.store.ListAllowances(gctx, employeeID)
		snapshot.Allowances = allowances
		return err
	})
	g.Go(func() error {
		deductions, err := s.store.ListDeductions(gctx, employeeID)
		snapshot.Deductions = deductions
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *Service) Project(ctx context.Context, employeeID string, period Period) (Projection, error) {
	snapshot, err := s.Snapshot(ctx, employeeID)
	if err != nil {
		return Projection{}, err
	}
	return Project(InputFromSnapshot(snapshot, period))
}

func (s *Service) AddAllowance(ctx context.Context, employeeID, label, rawAmount string) (Allowance, error) {
	allowance, err := NewAllowance(employeeID, label, rawAmount)
	if err != nil {
		return Allowance{}, err
	}
	return s.store.CreateAllowance(ctx, allowance)
}

func (s *Service) SetOverride(ctx context.Context, employeeID, component, rawAmount string) error {
	key, err := NormalizeComponent(component)
	if err != nil {
		return err
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return err
	}
	return s.store.SetOverride(ctx, employeeID, key, &amount)
}

// ClearOverride returns a component to its derived value.
func (s *Service) ClearOverride(ctx context.Context, employeeID, component string) error {
	key, err := NormalizeComponent(component)
	if err != nil {
		return err
	}
	return s.store.SetOverride(ctx, employeeID, key, nil)
}

// ListDeductions returns all deductions of an employee, or only those of
// period when it is set.
func (s *Service) ListDeductions(ctx context.Context, employeeID string, period *Period) ([]Deduction, error) {
	all, err := s.store.ListDeductions(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return all, nil
	}
	return DeductionsFor(all, *period), nil
}

func (s *Service) AddDeduction(ctx context.Context, employeeID string, in DeductionInput) (Deduction, error) {
	deduction, err := NewDeduction(employeeID, in)
	if err != nil {
		return Deduction{}, err
	}
	return s.store.CreateDeduction(ctx, deduction)
}

func (s *Service) UpdateDeduction(ctx context.Context, deductionID, reason, rawAmount string) (Deduction, error) {
	current, err := s.store.GetDeduction(ctx, deductionID)
	if err != nil {
		return Deduction{}, err
	}
	updated, err := ApplyDeductionChange(current, reason, rawAmount)
	if err != nil {
		return Deduction{}, err
	}
	return s.store.UpdateDeduction(ctx, updated)
}

func (s *Service) RemoveDeduction(ctx context.Context, deductionID string) error {
	return s.store.DeleteDeduction(ctx, deductionID)
}

// CreditSalary records the projected net pay for period as paid. A period can
// be credited once per employee.
func (s *Service) CreditSalary(ctx context.Context, employeeID string, period Period) (Payment, Projection, error) {
	projection, err := s.Project(ctx, employeeID, period)
	if err != nil {
		return Payment{}, Projection{}, err
	}
	if projection.Summary.NetPay.IsNegative() {
		return Payment{}, projection, ErrNegativeNetPay
	}
	payment, err := s.store.CreatePayment(ctx, Payment{
		EmployeeID:  employeeID,
		Month:       period.MonthName(),
		Year:        period.Year,
		Amount:      projection.Summary.NetPay,
		Status:      PaymentStatusPaid,
		PaymentDate: s.now().UTC(),
	})
	if err != nil {
		return Payment{}, projection, err
	}
	return payment, projection, nil
}

func (s *Service) PaymentHistory(ctx context.Context, employeeID string) ([]Payment, error) {
	return s.store.ListPayments(ctx, employeeID)
}

func (s *Service) Payslip(ctx context.Context, employeeID string, period Period) (Payslip, error) {
	snapshot, err := s.Snapshot(ctx, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	projection, err := Project(InputFromSnapshot(snapshot, period))
	if err != nil {
		return Payslip{}, err
	}
	payments, err := s.store.ListPayments(ctx, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	return Payslip{Employee: snapshot.Compensation, Projection: projection, Payments: payments}, nil
}
