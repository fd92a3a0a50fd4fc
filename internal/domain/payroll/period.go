package payroll

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is the month/year a projection, deduction or payment is scoped to.
type Period struct {
	Month time.Month
	Year  int
}

// ParseMonth accepts a full English month name, a three letter abbreviation
// or a number from 1 to 12, ignoring case and surrounding space.
func ParseMonth(raw string) (time.Month, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, ErrInvalidPeriod
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > 12 {
			return 0, ErrInvalidPeriod
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if value == name || value == name[:3] {
			return m, nil
		}
	}
	return 0, ErrInvalidPeriod
}

func ParsePeriod(month string, year int) (Period, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return Period{}, err
	}
	if year < minYear || year > maxYear {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Month: m, Year: year}, nil
}

func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

func (p Period) MonthName() string {
	return p.Month.String()
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Matches reports whether a stored month/year pair names this period.
func (p Period) Matches(month string, year int) bool {
	if year != p.Year {
		return false
	}
	m, err := ParseMonth(month)
	return err == nil && m == p.Month
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month string `json:"month"`
		Year  int    `json:"year"`
	}{Month: p.MonthName(), Year: p.Year})
}
