package money

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Column limits of the NUMERIC(14,2) money columns.
const (
	MaxScale         = 2
	MaxIntegerDigits = 12
)

// Parse reads a non-negative amount that fits a money column. It reports
// false for anything else, including values that would need rounding.
// Digits are counted on the coefficient so huge exponents are never expanded.
func Parse(raw string) (decimal.Decimal, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return Check(amount)
}

// Check validates an already decoded amount and returns it at its shortest
// scale.
func Check(amount decimal.Decimal) (decimal.Decimal, bool) {
	if amount.Sign() == 0 {
		return decimal.Zero, true
	}
	if amount.IsNegative() {
		return decimal.Zero, false
	}

	digits := amount.Coefficient().String()
	exp := int64(amount.Exponent())
	trimmed := strings.TrimRight(digits, "0")
	exp += int64(len(digits) - len(trimmed))

	if exp < -MaxScale {
		return decimal.Zero, false
	}
	if int64(len(trimmed))+exp > MaxIntegerDigits {
		return decimal.Zero, false
	}

	coef, _ := new(big.Int).SetString(trimmed, 10)
	return decimal.NewFromBigInt(coef, int32(exp)), true
}
