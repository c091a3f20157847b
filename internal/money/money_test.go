package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_SameCurrency(t *testing.T) {
	sum, err := New(4500, "usd").Add(New(4500, "USD"))
	require.NoError(t, err)
	assert.Equal(t, Money{Amount: 9000, Currency: "USD"}, sum)
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	_, err := New(100, "USD").Add(New(100, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNeg(t *testing.T) {
	m := New(-2000, "USD").Neg()
	assert.Equal(t, int64(2000), m.Amount)
	assert.Equal(t, 1, m.Sign())
	assert.Equal(t, 0, Zero("USD").Sign())
	assert.True(t, New(-1, "USD").IsNegative())
}

func TestMulQuantity_RoundsHalfEven(t *testing.T) {
	unit := New(4500, "USD")
	assert.Equal(t, int64(9000), unit.MulQuantity(decimal.NewFromInt(2)).Amount)

	// 333 * 1.5 = 499.5 -> 500 (half-even rounds to the even neighbour)
	assert.Equal(t, int64(500), New(333, "USD").MulQuantity(decimal.RequireFromString("1.5")).Amount)
	// 5 * 0.5 = 2.5 -> 2
	assert.Equal(t, int64(2), New(5, "USD").MulQuantity(decimal.RequireFromString("0.5")).Amount)
}

func TestRepeatedAdditionHasNoDrift(t *testing.T) {
	total := Zero("USD")
	for i := 0; i < 1000; i++ {
		var err error
		total, err = total.Add(New(10, "USD"))
		require.NoError(t, err)
	}
	assert.Equal(t, "100.00", total.Decimal().StringFixed(2))
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency(" usd "))
	assert.ErrorIs(t, ValidateCurrency("US"), ErrInvalidCurrency)
	assert.ErrorIs(t, ValidateCurrency("U5D"), ErrInvalidCurrency)
	assert.ErrorIs(t, ValidateCurrency("ABC"), ErrInvalidCurrency, "well formed but not ISO 4217")
	assert.ErrorIs(t, ValidateCurrency("XXX"), ErrInvalidCurrency)
	assert.NoError(t, ValidateCurrency("ISK"))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, 2, MinorUnits("USD"))
	assert.Equal(t, 0, MinorUnits("jpy"))
	assert.Equal(t, 3, MinorUnits("KWD"))
	assert.Equal(t, 3, MinorUnits("TND"))
	assert.Equal(t, 0, MinorUnits("CLP"))
	assert.Equal(t, 2, MinorUnits("ABC"))
}

func TestFormatter_Money(t *testing.T) {
	f := NewFormatter("en-US", nil)

	cases := []struct {
		in   Money
		want string
	}{
		{New(9000, "USD"), "$90.00"},
		{New(-2000, "USD"), "-$20.00"},
		{New(123456789, "USD"), "$1,234,567.89"},
		{New(5, "USD"), "$0.05"},
		{New(1500, "JPY"), "¥1,500"},
		{New(1000, "CHF"), "CHF 10.00"},
		{Zero("EUR"), "€0.00"},
		{New(1050, "CAD"), "CA$10.50"},
		{New(2500, "KRW"), "₩2,500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, f.Money(tc.in), tc.in.String())
	}
}

func TestFormatter_SymbolFollowsLocale(t *testing.T) {
	assert.Equal(t, "US$90.00", NewFormatter("en-GB", nil).Money(New(9000, "USD")))
	assert.Equal(t, "$90.00", NewFormatter("en-AU", nil).Money(New(9000, "AUD")))
}

func TestFormatter_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	f := NewFormatter("not a locale!", nil)
	assert.Equal(t, "en", f.Locale())
	assert.Equal(t, "$45.00", f.Money(New(4500, "USD")))
}

func TestFormatter_Quantity(t *testing.T) {
	f := NewFormatter("en", nil)
	assert.Equal(t, "2", f.Quantity(decimal.NewFromInt(2)))
	assert.Equal(t, "1.5", f.Quantity(decimal.RequireFromString("1.50")))
	assert.Equal(t, "1,200", f.Quantity(decimal.NewFromInt(1200)))
}

func TestFormatter_Dates(t *testing.T) {
	f := NewFormatter("en", time.UTC)
	ts := time.Date(2026, time.March, 2, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Mon, Mar 2, 2026", f.Date(ts))
	assert.Equal(t, "Mon, Mar 2, 3:04 PM", f.DateTime(ts))
}
