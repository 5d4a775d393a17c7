package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrSubCentPrecision = errors.New("amount has sub-cent precision")
)

// Money is a non-negative currency amount stored as a minor-unit (cent)
// count. All arithmetic is exact integer arithmetic; the decimal view
// exists for display only.
type Money struct {
	cents int64
}

// NewMoney creates a Money from a cent count.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromDecimal creates a Money from a decimal amount such as 12.34.
// Amounts with precision below one cent are rejected, with a small tolerance
// for floating-point noise.
func NewMoneyFromDecimal(amount float64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	cents := amount * 100
	rounded := math.Round(cents)
	if math.Abs(cents-rounded) > 1e-6 {
		return Money{}, ErrSubCentPrecision
	}
	return Money{cents: int64(rounded)}, nil
}

// MustMoney creates a Money from a cent count and panics if it is negative.
// Intended for literals in configuration mapping and tests.
func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the minor-unit count.
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount as a decimal number, for display.
func (m Money) Decimal() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns the difference, failing if the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if other.cents > m.cents {
		return Money{}, fmt.Errorf("cannot subtract %s from %s: %w", other, m, ErrNegativeAmount)
	}
	return Money{cents: m.cents - other.cents}, nil
}

// Multiply scales the amount by factor, rounding to the nearest cent.
// Negative factors are rejected to preserve the non-negative invariant.
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: int64(math.Round(float64(m.cents) * factor))}, nil
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

func (m Money) String() string {
	return fmt.Sprintf("$%d.%02d", m.cents/100, m.cents%100)
}
