package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact fixed-point amount with two fractional digits. It
// serializes as a string ("150.50") and relies on decimal arithmetic so
// accumulation never drifts the way binary floats do.
type Money struct {
	decimal.Decimal
}

const maxIntegerDigits = 10

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyZero() Money {
	return Money{decimal.Zero}
}

// ParseAmount parses a decimal string with at most two fractional digits
// and ten integer digits. Zero and negative amounts are accepted; the
// schema is deliberately permissive about sign.
func ParseAmount(value, field string) (Money, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Money{}, NewFieldError(field, "A valid number is required.")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, NewFieldError(field, "A valid number is required.")
	}
	if d.Exponent() < -2 {
		return Money{}, NewFieldError(field, "Ensure that there are no more than 2 decimal places.")
	}
	if len(d.Abs().Truncate(0).String()) > maxIntegerDigits {
		return Money{}, NewFieldError(field, "Ensure that there are no more than 10 digits before the decimal point.")
	}
	return Money{d}, nil
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String formats with exactly two fractional digits.
func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}
