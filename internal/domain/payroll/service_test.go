package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydesk/internal/domain/payroll"
	"paydesk/internal/domain/payroll/mocks"
)

var fixedNow = time.Date(2026, time.March, 28, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*payroll.Service, *mocks.MockStoreAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStoreAPI(ctrl)
	return payroll.NewService(store).WithClock(func() time.Time { return fixedNow }), store
}

func expectSnapshot(store *mocks.MockStoreAPI, gross int64, allowances []payroll.Allowance, deductions []payroll.Deduction) {
	store.EXPECT().GetCompensation(gomock.Any(), "emp-1").Return(payroll.Compensation{
		EmployeeID:  "emp-1",
		Name:        "Asha Rao",
		GrossSalary: decimal.NewFromInt(gross),
	}, nil)
	store.EXPECT().ListAllowances(gomock.Any(), "emp-1").Return(allowances, nil)
	store.EXPECT().ListDeductions(gomock.Any(), "emp-1").Return(deductions, nil)
}

func TestServiceProjectJoinsAllFetches(t *testing.T) {
	svc, store := newService(t)
	expectSnapshot(store, 60000,
		[]payroll.Allowance{{ID: "a1", Label: "Internet", Amount: decimal.NewFromInt(2000)}},
		[]payroll.Deduction{
			{ID: "d1", Reason: "Unpaid Leave", Amount: decimal.NewFromInt(3000), Month: "March", Year: 2026},
			{ID: "d2", Reason: "Advance", Amount: decimal.NewFromInt(9000), Month: "April", Year: 2026},
		},
	)

	projection, err := svc.Project(context.Background(), "emp-1", svc.CurrentPeriod())
	require.NoError(t, err)
	assert.Equal(t, "59000", projection.Summary.NetPay.String())
	assert.Equal(t, int64(95), projection.Summary.PayoutPercentage)
	require.Len(t, projection.Deductions, 1)
	assert.Equal(t, "d1", projection.Deductions[0].ID)
}

func TestServiceProjectPropagatesFetchError(t *testing.T) {
	svc, store := newService(t)
	store.EXPECT().GetCompensation(gomock.Any(), "emp-1").Return(payroll.Compensation{}, payroll.ErrEmployeeNotFound)
	store.EXPECT().ListAllowances(gomock.Any(), "emp-1").Return(nil, nil).AnyTimes()
	store.EXPECT().ListDeductions(gomock.Any(), "emp-1").Return(nil, nil).AnyTimes()

	_, err := svc.Project(context.Background(), "emp-1", svc.CurrentPeriod())
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestServiceCreditSalaryRecordsNetPay(t *testing.T) {
	svc, store := newService(t)
	expectSnapshot(store, 60000, nil, []payroll.Deduction{
		{ID: "d1", Reason: "Unpaid Leave", Amount: decimal.NewFromInt(3000), Month: "March", Year: 2026},
	})
	store.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p payroll.Payment) (payroll.Payment, error) {
		assert.Equal(t, "emp-1", p.EmployeeID)
		assert.Equal(t, "March", p.Month)
		assert.Equal(t, 2026, p.Year)
		assert.Equal(t, "57000", p.Amount.String())
		assert.Equal(t, payroll.PaymentStatusPaid, p.Status)
		assert.True(t, p.PaymentDate.Equal(fixedNow))
		p.ID = "pay-1"
		return p, nil
	})

	payment, projection, err := svc.CreditSalary(context.Background(), "emp-1", svc.CurrentPeriod())
	require.NoError(t, err)
	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, "57000", projection.Summary.NetPay.String())
}

func TestServiceCreditSalaryRejectsDuplicatePeriod(t *testing.T) {
	svc, store := newService(t)
	expectSnapshot(store, 1000, nil, nil)
	store.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(payroll.Payment{}, payroll.ErrAlreadyCredited)

	_, _, err := svc.CreditSalary(context.Background(), "emp-1", svc.CurrentPeriod())
	assert.ErrorIs(t, err, payroll.ErrAlreadyCredited)
}

func TestServiceCreditSalaryRefusesNegativeNet(t *testing.T) {
	svc, store := newService(t)
	expectSnapshot(store, 1000, nil, []payroll.Deduction{
		{ID: "d1", Reason: "Advance", Amount: decimal.NewFromInt(5000), Month: "March", Year: 2026},
	})

	_, projection, err := svc.CreditSalary(context.Background(), "emp-1", svc.CurrentPeriod())
	assert.ErrorIs(t, err, payroll.ErrNegativeNetPay)
	assert.Equal(t, "-4000", projection.Summary.NetPay.String())
}

func TestServiceAddAllowanceValidatesBeforeStore(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddAllowance(context.Background(), "emp-1", "", "100")
	assert.ErrorIs(t, err, payroll.ErrInvalidLabel)

	_, err = svc.AddAllowance(context.Background(), "emp-1", "Internet", "NaN-ish")
	assert.ErrorIs(t, err, payroll.ErrInvalidAmount)
}

func TestServiceOverrides(t *testing.T) {
	svc, store := newService(t)
	store.EXPECT().SetOverride(gomock.Any(), "emp-1", payroll.ComponentBasic, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, amount *decimal.Decimal) error {
			require.NotNil(t, amount)
			assert.Equal(t, "45000", amount.String())
			return nil
		})
	store.EXPECT().SetOverride(gomock.Any(), "emp-1", payroll.ComponentHRA, nil).Return(nil)

	require.NoError(t, svc.SetOverride(context.Background(), "emp-1", "Basic", "45000"))
	require.NoError(t, svc.ClearOverride(context.Background(), "emp-1", "hra"))
	assert.ErrorIs(t, svc.SetOverride(context.Background(), "emp-1", "bonus", "1"), payroll.ErrInvalidComponent)
}

func TestServiceDeductionLifecycle(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	input := payroll.DeductionInput{Reason: "Canteen", Amount: "250", Month: "March", Year: 2026}

	gomock.InOrder(
		store.EXPECT().CreateDeduction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d payroll.Deduction) (payroll.Deduction, error) {
			d.ID = "d-1"
			return d, nil
		}),
		store.EXPECT().DeleteDeduction(gomock.Any(), "d-1").Return(nil),
		store.EXPECT().ListDeductions(gomock.Any(), "emp-1").Return([]payroll.Deduction{}, nil),
		store.EXPECT().CreateDeduction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d payroll.Deduction) (payroll.Deduction, error) {
			d.ID = "d-2"
			return d, nil
		}),
	)

	first, err := svc.AddDeduction(ctx, "emp-1", input)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveDeduction(ctx, first.ID))

	remaining, err := svc.ListDeductions(ctx, "emp-1", nil)
	require.NoError(t, err)
	for _, d := range remaining {
		assert.NotEqual(t, first.ID, d.ID)
	}

	second, err := svc.AddDeduction(ctx, "emp-1", input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Reason, second.Reason)
	assert.True(t, first.Amount.Equal(second.Amount))
}

func TestServiceUpdateDeductionPreservesID(t *testing.T) {
	svc, store := newService(t)
	current := payroll.Deduction{ID: "d-9", EmployeeID: "emp-1", Reason: "Loan", Amount: decimal.NewFromInt(100), Month: "March", Year: 2026}
	store.EXPECT().GetDeduction(gomock.Any(), "d-9").Return(current, nil)
	store.EXPECT().UpdateDeduction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d payroll.Deduction) (payroll.Deduction, error) {
		return d, nil
	})

	updated, err := svc.UpdateDeduction(context.Background(), "d-9", "", "120")
	require.NoError(t, err)
	assert.Equal(t, "d-9", updated.ID)
	assert.Equal(t, "Loan", updated.Reason)
	assert.Equal(t, "120", updated.Amount.String())
}

func TestServiceUpdateMissingDeduction(t *testing.T) {
	svc, store := newService(t)
	store.EXPECT().GetDeduction(gomock.Any(), "nope").Return(payroll.Deduction{}, payroll.ErrDeductionNotFound)

	_, err := svc.UpdateDeduction(context.Background(), "nope", "x", "1")
	assert.True(t, errors.Is(err, payroll.ErrDeductionNotFound))
}

func TestServiceListDeductionsForPeriod(t *testing.T) {
	svc, store := newService(t)
	store.EXPECT().ListDeductions(gomock.Any(), "emp-1").Return([]payroll.Deduction{
		{ID: "m", Month: "March", Year: 2026, Amount: decimal.NewFromInt(1)},
		{ID: "a", Month: "April", Year: 2026, Amount: decimal.NewFromInt(1)},
	}, nil)

	april := payroll.Period{Month: time.April, Year: 2026}
	scoped, err := svc.ListDeductions(context.Background(), "emp-1", &april)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "a", scoped[0].ID)
}

func TestServicePayslipIncludesHistory(t *testing.T) {
	svc, store := newService(t)
	expectSnapshot(store, 100000, nil, nil)
	store.EXPECT().ListPayments(gomock.Any(), "emp-1").Return([]payroll.Payment{
		{ID: "p1", Month: "February", Year: 2026, Amount: decimal.NewFromInt(100000), Status: payroll.PaymentStatusPaid},
	}, nil)

	slip, err := svc.Payslip(context.Background(), "emp-1", svc.CurrentPeriod())
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", slip.Employee.Name)
	assert.Len(t, slip.Projection.Earnings, 5)
	assert.Len(t, slip.Payments, 1)
}
