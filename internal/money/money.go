package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every rounded amount carries.
const Scale = 2

// Money is a fixed-precision monetary amount. All derived amounts (division,
// percentages, per-distance charges) are rounded half away from zero to two
// decimal places; addition and integer multiplication are exact.
type Money struct {
	dec decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// FromString parses a decimal string such as "12.34".
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", value, err)
	}
	return Money{dec: d}, nil
}

// MustFromString parses a decimal string and panics on failure. Intended for
// constants in tests and seed data.
func MustFromString(value string) Money {
	m, err := FromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

// FromFloat converts a float amount, rounding to scale immediately so float
// noise never enters the value.
func FromFloat(value float64) Money {
	return Money{dec: decimal.NewFromFloat(value).Round(Scale)}
}

// FromCents builds an amount from an integer count of minor units.
func FromCents(cents int64) Money {
	return Money{dec: decimal.New(cents, -Scale)}
}

// FromDecimal wraps an existing decimal without rounding.
func FromDecimal(d decimal.Decimal) Money {
	return Money{dec: d}
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{dec: m.dec.Add(other.dec)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{dec: m.dec.Sub(other.dec)}
}

// MulInt returns m multiplied by an integer quantity. Exact.
func (m Money) MulInt(qty int) Money {
	return Money{dec: m.dec.Mul(decimal.NewFromInt(int64(qty)))}
}

// DivInt divides by an integer and rounds to scale.
func (m Money) DivInt(divisor int) Money {
	if divisor == 0 {
		return Money{}
	}
	return Money{dec: m.dec.Div(decimal.NewFromInt(int64(divisor))).Round(Scale)}
}

// MulDecimal multiplies by an arbitrary decimal factor and rounds to scale.
func (m Money) MulDecimal(factor decimal.Decimal) Money {
	return Money{dec: m.dec.Mul(factor).Round(Scale)}
}

// Percent returns value% of m, rounded to scale.
func (m Money) Percent(value decimal.Decimal) Money {
	return Money{dec: m.dec.Mul(value).Div(decimal.NewFromInt(100)).Round(Scale)}
}

// Round normalises the amount to scale.
func (m Money) Round() Money {
	return Money{dec: m.dec.Round(Scale)}
}

// Cmp compares two amounts: -1 when m < other, 0 when equal, 1 when greater.
func (m Money) Cmp(other Money) int {
	return m.dec.Cmp(other.dec)
}

// Equal reports whether both amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) bool {
	return m.dec.LessThan(other.dec)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// ClampZero returns zero when the amount is negative, otherwise the amount.
func (m Money) ClampZero() Money {
	if m.dec.IsNegative() {
		return Money{}
	}
	return m
}

// String renders the amount with the fixed scale, e.g. "6.67".
func (m Money) String() string {
	return m.dec.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a fixed-scale decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.dec = d
	return nil
}
