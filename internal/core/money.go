// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer cents. Decimal conversion at the edges goes
// through shopspring/decimal so no float rounding leaks into stored values.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Money struct {
	Cents int64
}

var errTotalOutOfRange = Errorf(ErrInvalidArgument, "Amount total out of range")

// maxMoney caps a single amount at 1e11 units (1e13 cents). A full list of
// MaxListSize amounts then sums to at most 1e16 cents.
var maxMoney = decimal.New(1, 11)

// MoneyFromDecimal rounds d half away from zero to whole cents.
//
// Examples:
//
//	MoneyFromDecimal(12.34) -> 1234
//	MoneyFromDecimal(12.345) -> 1235
//	MoneyFromDecimal(-0.005) -> -1
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.Abs().GreaterThan(maxMoney) {
		return Money{}, Errorf(ErrInvalidArgument, "amount %s out of range", d.String())
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}, nil
}

// MoneyFromFloat converts a JSON number that has already been decoded into
// a float64.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, Errorf(ErrInvalidArgument, "amount is not a finite number")
	}
	return MoneyFromDecimal(decimal.NewFromFloat(f))
}

// ParseMoney converts a decimal string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Negative
// values are allowed; callers that need a lower bound check it themselves.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, Errorf(ErrInvalidArgument, "amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, Errorf(ErrInvalidArgument, "invalid amount %q", s)
	}
	return MoneyFromDecimal(d)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Add returns m+o, or ErrInvalidArgument when the sum leaves the int64
// range.
func (m Money) Add(o Money) (Money, error) {
	if (o.Cents > 0 && m.Cents > math.MaxInt64-o.Cents) ||
		(o.Cents < 0 && m.Cents < math.MinInt64-o.Cents) {
		return Money{}, errTotalOutOfRange
	}
	return Money{Cents: m.Cents + o.Cents}, nil
}

// Sub returns m-o with the same range check as Add.
func (m Money) Sub(o Money) (Money, error) {
	if (o.Cents > 0 && m.Cents < math.MinInt64+o.Cents) ||
		(o.Cents < 0 && m.Cents > math.MaxInt64+o.Cents) {
		return Money{}, errTotalOutOfRange
	}
	return Money{Cents: m.Cents - o.Cents}, nil
}

func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// Percent returns m as a percentage of of, or 0 when of is not positive.
func (m Money) Percent(of Money) float64 {
	if of.Cents <= 0 {
		return 0
	}
	return m.Decimal().Div(of.Decimal()).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}
