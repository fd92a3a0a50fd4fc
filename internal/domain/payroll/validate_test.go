package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "2000", want: "2000"},
		{raw: " 150.50 ", want: "150.5"},
		{raw: "0", want: "0"},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "1e13", wantErr: true},
		{raw: "0.005", wantErr: true},
		{raw: "1e20000000", wantErr: true},
		{raw: "999999999999.99", want: "999999999999.99"},
		{raw: "12.50", want: "12.5"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewAllowanceValidation(t *testing.T) {
	_, err := NewAllowance("emp-1", "  ", "100")
	assert.ErrorIs(t, err, ErrInvalidLabel)

	_, err = NewAllowance("emp-1", "Internet", "lots")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	allowance, err := NewAllowance("emp-1", " Internet ", "2000")
	require.NoError(t, err)
	assert.Equal(t, "Internet", allowance.Label)
	assert.Equal(t, "emp-1", allowance.EmployeeID)
	assert.Equal(t, "2000", allowance.Amount.String())
}

func TestNewDeductionNormalizesPeriod(t *testing.T) {
	deduction, err := NewDeduction("emp-1", DeductionInput{Reason: "Unpaid Leave", Amount: "3000", Month: "mar", Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "March", deduction.Month)
	assert.Equal(t, 2026, deduction.Year)

	_, err = NewDeduction("emp-1", DeductionInput{Reason: "", Amount: "1", Month: "March", Year: 2026})
	assert.ErrorIs(t, err, ErrInvalidReason)

	_, err = NewDeduction("emp-1", DeductionInput{Reason: "Fine", Amount: "-3", Month: "March", Year: 2026})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewDeduction("emp-1", DeductionInput{Reason: "Fine", Amount: "3", Month: "Smarch", Year: 2026})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestApplyDeductionChangeKeepsIdentity(t *testing.T) {
	current := Deduction{ID: "d-1", EmployeeID: "emp-1", Reason: "Loan", Amount: decimal.NewFromInt(100), Month: "March", Year: 2026}

	updated, err := ApplyDeductionChange(current, "Loan repayment", "")
	require.NoError(t, err)
	assert.Equal(t, "d-1", updated.ID)
	assert.Equal(t, "Loan repayment", updated.Reason)
	assert.Equal(t, "100", updated.Amount.String())
	assert.Equal(t, "March", updated.Month)

	_, err = ApplyDeductionChange(current, "", "-4")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseMonth(t *testing.T) {
	for _, raw := range []string{"March", "march", " MAR ", "3", "03"} {
		m, err := ParseMonth(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, time.March, m, raw)
	}
	for _, raw := range []string{"", "13", "0", "Marc", "Smarch"} {
		_, err := ParseMonth(raw)
		assert.ErrorIs(t, err, ErrInvalidPeriod, raw)
	}
}

func TestParsePeriodYearBounds(t *testing.T) {
	_, err := ParsePeriod("March", 1899)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	period, err := ParsePeriod("December", 2026)
	require.NoError(t, err)
	assert.Equal(t, "December 2026", period.String())
	assert.True(t, period.Matches("dec", 2026))
	assert.False(t, period.Matches("December", 2025))
}

func TestNormalizeComponent(t *testing.T) {
	key, err := NormalizeComponent(" HRA ")
	require.NoError(t, err)
	assert.Equal(t, ComponentHRA, key)

	_, err = NormalizeComponent("bonus")
	assert.ErrorIs(t, err, ErrInvalidComponent)
}

func TestFromNullable(t *testing.T) {
	assert.False(t, FromNullable(decimal.NullDecimal{}).IsExplicit())

	value := FromNullable(decimal.NullDecimal{Decimal: decimal.NewFromInt(7), Valid: true})
	amount, ok := value.Amount()
	assert.True(t, ok)
	assert.Equal(t, "7", amount.String())
}
