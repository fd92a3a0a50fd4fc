package payroll

import "github.com/shopspring/decimal"

type BreakupLine struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	ColorTag string          `json:"color"`
}

type componentSpec struct {
	key   string
	name  string
	color string
	ratio decimal.Decimal
}

// The last entry takes the remainder, its ratio is unused.
var componentSpecs = []componentSpec{
	{key: ComponentBasic, name: "Basic Salary", color: "#4f46e5", ratio: decimal.RequireFromString("0.40")},
	{key: ComponentHRA, name: "HRA", color: "#10b981", ratio: decimal.RequireFromString("0.20")},
	{key: ComponentDA, name: "DA", color: "#f59e0b", ratio: decimal.RequireFromString("0.10")},
	{key: ComponentTravel, name: "Travel Allowance", color: "#06b6d4", ratio: decimal.RequireFromString("0.05")},
	{key: ComponentSpecial, name: "Special Allowance", color: "#8b5cf6"},
}

// Breakup splits gross into the five standard components. Each ratio component
// is rounded to a whole unit (half away from zero) on its own and the special
// allowance absorbs whatever is left, so the lines always sum to gross.
func Breakup(gross decimal.Decimal) ([]BreakupLine, error) {
	if gross.IsNegative() {
		return nil, ErrInvalidAmount
	}

	lines := make([]BreakupLine, 0, len(componentSpecs))
	allocated := decimal.Zero
	last := len(componentSpecs) - 1
	for _, spec := range componentSpecs[:last] {
		value := gross.Mul(spec.ratio).Round(0)
		allocated = allocated.Add(value)
		lines = append(lines, BreakupLine{Key: spec.key, Name: spec.name, Value: value, ColorTag: spec.color})
	}
	remainder := componentSpecs[last]
	lines = append(lines, BreakupLine{
		Key:      remainder.key,
		Name:     remainder.name,
		Value:    gross.Sub(allocated),
		ColorTag: remainder.color,
	})
	return lines, nil
}

// ComponentLabel returns the display name of a standard component key.
func ComponentLabel(key string) (string, bool) {
	for _, spec := range componentSpecs {
		if spec.key == key {
			return spec.name, true
		}
	}
	return "", false
}

func sumAmounts[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}
