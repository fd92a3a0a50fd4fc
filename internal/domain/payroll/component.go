package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ComponentValue is either an explicit amount set by an administrator or a
// marker that the component is derived from the gross salary.
type ComponentValue struct {
	explicit bool
	amount   decimal.Decimal
}

func Explicit(amount decimal.Decimal) ComponentValue {
	return ComponentValue{explicit: true, amount: amount}
}

func Derived() ComponentValue {
	return ComponentValue{}
}

func (v ComponentValue) IsExplicit() bool {
	return v.explicit
}

// Amount returns the explicit amount and true, or zero and false when derived.
func (v ComponentValue) Amount() (decimal.Decimal, bool) {
	if !v.explicit {
		return decimal.Zero, false
	}
	return v.amount, true
}

// FromNullable maps a nullable column value onto a ComponentValue.
func FromNullable(value decimal.NullDecimal) ComponentValue {
	if !value.Valid {
		return Derived()
	}
	return Explicit(value.Decimal)
}

// Overrides holds per-component values keyed by component key. Missing keys
// are derived.
type Overrides map[string]ComponentValue

func (o Overrides) Get(key string) ComponentValue {
	if o == nil {
		return Derived()
	}
	return o[key]
}

// NormalizeComponent validates a component key case-insensitively.
func NormalizeComponent(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range StandardComponents {
		if key == candidate {
			return key, nil
		}
	}
	return "", ErrInvalidComponent
}

// ResolveComponents returns the five standard earnings lines, using explicit
// overrides where present and the breakup of gross otherwise.
func ResolveComponents(overrides Overrides, gross decimal.Decimal) ([]EarningLine, error) {
	derived, err := Breakup(gross)
	if err != nil {
		return nil, err
	}
	lines := make([]EarningLine, 0, len(derived))
	for _, line := range derived {
		value := overrides.Get(line.Key)
		amount, explicit := value.Amount()
		if !explicit {
			amount = line.Value
		}
		if amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		lines = append(lines, EarningLine{
			Key:      line.Key,
			Label:    line.Name,
			Amount:   amount,
			Kind:     EarningKindStandard,
			Explicit: explicit,
		})
	}
	return lines, nil
}
