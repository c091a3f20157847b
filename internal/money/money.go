// Package money contains the exact monetary value used by the order breakdown.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
)

var (
	ErrCurrencyMismatch = errors.New("currency_mismatch")
	ErrInvalidCurrency  = errors.New("invalid_currency")
)

// Money is an amount in minor currency units (e.g. cents) with an ISO 4217 code.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New returns a Money with a normalized currency code.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: NormalizeCurrency(currency)}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return New(0, currency)
}

// NormalizeCurrency trims and upper-cases an ISO 4217 code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// ValidateCurrency reports whether code is a recognised ISO 4217 currency.
func ValidateCurrency(code string) error {
	if _, ok := isoUnit(code); !ok {
		return ErrInvalidCurrency
	}
	return nil
}

// Add returns m+other. Both values must share one currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Neg returns the arithmetic negation of m.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }
func (m Money) IsPositive() bool { return m.Amount > 0 }

// Sign returns -1, 0 or 1.
func (m Money) Sign() int {
	switch {
	case m.Amount < 0:
		return -1
	case m.Amount > 0:
		return 1
	default:
		return 0
	}
}

// Equal compares amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// Decimal returns the amount in major units, e.g. 4500 USD -> 45.00.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -int32(MinorUnits(m.Currency)))
}

// MulQuantity multiplies a unit price by an exact quantity and rounds half-even
// back to minor units.
func (m Money) MulQuantity(quantity decimal.Decimal) Money {
	total := decimal.NewFromInt(m.Amount).Mul(quantity).RoundBank(0)
	return Money{Amount: total.IntPart(), Currency: m.Currency}
}

func (m Money) String() string {
	scale := MinorUnits(m.Currency)
	return m.Currency + " " + m.Decimal().StringFixed(int32(scale))
}

// MinorUnits returns the number of decimal places of the currency's minor unit
// from the CLDR standard rounding. Unrecognised codes use two.
func MinorUnits(currency string) int {
	unit, ok := isoUnit(currency)
	if !ok {
		return 2
	}
	scale, _ := xcurrency.Standard.Rounding(unit)
	return scale
}

// isoUnit resolves a recognised ISO 4217 code. XXX (no currency) is rejected.
func isoUnit(code string) (xcurrency.Unit, bool) {
	unit, err := xcurrency.ParseISO(NormalizeCurrency(code))
	if err != nil || unit == (xcurrency.Unit{}) {
		return xcurrency.Unit{}, false
	}
	return unit, true
}
