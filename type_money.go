package fundsim

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the fund's reporting currency. The engine is single-currency
// (multi-currency handling is a non-goal); the currency only matters for
// formatting amounts in reports.
const Currency = "BRL"

// Money represents a monetary value in the reporting currency.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from an engine amount.
func M(value float64) Money { return Money{value: decimal.NewFromFloat(value)} }

// MD builds a Money from an exact decimal amount, as decoded from a
// configuration file.
func MD(value decimal.Decimal) Money { return Money{value: value} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }
func (m Money) IsZero() bool      { return m.value.IsZero() }
func (m Money) IsNegative() bool  { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) }

// AsFloat returns the amount as a float64 for engine arithmetic.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// Decimal returns the exact decimal amount, for encoding.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String formats the amount with the reporting currency conventions.
func (m Money) String() string {
	cur := *money.New(0, Currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a
// sign. Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
