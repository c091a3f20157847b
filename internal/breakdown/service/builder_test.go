package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/commission"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/smallbiznis/storefront/internal/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	both         = []lineitemdomain.Role{lineitemdomain.RoleCustomer, lineitemdomain.RoleProvider}
	customerOnly = []lineitemdomain.Role{lineitemdomain.RoleCustomer}
	providerOnly = []lineitemdomain.Role{lineitemdomain.RoleProvider}
)

func usd(amount int64) money.Money { return money.New(amount, "USD") }

func lineItem(code lineitemdomain.Code, qty int64, unit int64, reversal bool, roles []lineitemdomain.Role) lineitemdomain.LineItem {
	return lineitemdomain.LineItem{
		Code:       code,
		IncludeFor: roles,
		Quantity:   option.Some(decimal.NewFromInt(qty)),
		UnitPrice:  option.Some(usd(unit)),
		LineTotal:  option.Some(usd(unit * qty)),
		Reversal:   reversal,
	}
}

func flat(code lineitemdomain.Code, total int64, reversal bool, roles []lineitemdomain.Role) lineitemdomain.LineItem {
	return lineitemdomain.LineItem{
		Code:       code,
		IncludeFor: roles,
		UnitPrice:  option.Some(usd(total)),
		LineTotal:  option.Some(usd(total)),
		Reversal:   reversal,
	}
}

func build(t *testing.T, tx lineitemdomain.Transaction, role lineitemdomain.Role) breakdowndomain.Breakdown {
	t.Helper()
	out, err := NewBuilder().Build(breakdowndomain.Input{
		Transaction:     tx,
		Role:            role,
		MarketplaceName: "Saunatime",
		Currency:        "USD",
		Formatter:       money.NewFormatter("en-US", time.UTC),
	})
	require.NoError(t, err)
	return out
}

func nightBooking() lineitemdomain.Transaction {
	return lineitemdomain.Transaction{
		ID: "tx-1",
		LineItems: []lineitemdomain.LineItem{
			lineItem(lineitemdomain.CodeNight, 2, 4500, false, both),
		},
		PayinTotal:  option.Some(usd(9000)),
		PayoutTotal: option.Some(usd(9000)),
		Status:      lineitemdomain.StatusAccepted,
		Booking: option.Some(lineitemdomain.Booking{
			Start: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		}),
	}
}

func TestBuild_SimpleNightBooking(t *testing.T) {
	tx := nightBooking()
	for _, role := range both {
		out := build(t, tx, role)

		assert.Equal(t, lineitemdomain.CodeNight, out.UnitType)
		assert.Equal(t, []breakdowndomain.RowKind{
			breakdowndomain.RowBookingPeriod,
			breakdowndomain.RowBasePrice,
			breakdowndomain.RowTotal,
		}, out.Kinds(), role)
		assert.False(t, out.CommissionNote)
		assert.Empty(t, out.Errors)

		base, ok := out.Row(breakdowndomain.RowBasePrice)
		require.True(t, ok)
		assert.Equal(t, "$45.00 × 2 nights", base.Label)
		assert.Contains(t, base.Label, "2 nights")
		assert.Equal(t, "$90.00", base.FormattedValue)
		assert.Equal(t, keyBaseUnitNight, base.LabelKey)

		total, ok := out.Row(breakdowndomain.RowTotal)
		require.True(t, ok)
		expected := tx.PayinTotal
		if role == lineitemdomain.RoleProvider {
			expected = tx.PayoutTotal
		}
		want, _ := expected.Get()
		assert.Equal(t, want, *total.Value)

		period, ok := out.Row(breakdowndomain.RowBookingPeriod)
		require.True(t, ok)
		require.NotNil(t, period.Period)
		assert.Equal(t, "Mon, Mar 2, 2026", period.Period.Start)
		assert.Equal(t, "Wed, Mar 4, 2026", period.Period.End)
	}
}

func TestBuild_CommissionWithRefund(t *testing.T) {
	tx := lineitemdomain.Transaction{
		LineItems: []lineitemdomain.LineItem{
			lineItem(lineitemdomain.CodeNight, 2, 5000, false, both),
			lineItem(lineitemdomain.CodeNight, -2, 5000, true, both),
			flat(lineitemdomain.CodeProviderCommission, -2000, false, providerOnly),
			flat(lineitemdomain.CodeProviderCommission, 2000, true, providerOnly),
		},
		PayinTotal:  option.Some(usd(0)),
		PayoutTotal: option.Some(usd(0)),
		Status:      lineitemdomain.StatusCanceled,
	}

	out := build(t, tx, lineitemdomain.RoleProvider)
	assert.Equal(t, []breakdowndomain.RowKind{
		breakdowndomain.RowBasePrice,
		breakdowndomain.RowSubtotal,
		breakdowndomain.RowRefund,
		breakdowndomain.RowProviderCommission,
		breakdowndomain.RowProviderCommissionRefund,
		breakdowndomain.RowTotal,
	}, out.Kinds())

	fee, _ := out.Row(breakdowndomain.RowProviderCommission)
	assert.Equal(t, "-$20.00", fee.FormattedValue)
	assert.Equal(t, "Saunatime fee", fee.Label)

	feeRefund, _ := out.Row(breakdowndomain.RowProviderCommissionRefund)
	assert.Equal(t, "$20.00", feeRefund.FormattedValue)
	assert.Equal(t, "Refund Saunatime fee", feeRefund.Label)

	refund, _ := out.Row(breakdowndomain.RowRefund)
	assert.Equal(t, "-$100.00", refund.FormattedValue)

	subtotal, _ := out.Row(breakdowndomain.RowSubtotal)
	assert.Equal(t, "$100.00", subtotal.FormattedValue)

	total, _ := out.Row(breakdowndomain.RowTotal)
	assert.Equal(t, "Total payout", total.Label)

	assert.True(t, out.CommissionNote)
	assert.Contains(t, out.NoteText, "Saunatime")

	// The customer never sees the provider commission.
	customer := build(t, tx, lineitemdomain.RoleCustomer)
	for _, kind := range customer.Kinds() {
		assert.NotEqual(t, breakdowndomain.RowProviderCommission, kind)
		assert.NotEqual(t, breakdowndomain.RowProviderCommissionRefund, kind)
	}
	assert.False(t, customer.CommissionNote)
}

func TestBuild_UnknownCustomLineItem(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat("line-item/car-cleaning", 5000, false, both))
	tx.LineItems[1].Quantity = option.Some(decimal.NewFromInt(1))

	for _, role := range both {
		out := build(t, tx, role)
		row, ok := out.Row(breakdowndomain.RowUnknownItems)
		require.True(t, ok, role)
		require.Len(t, row.Items, 1)
		assert.Equal(t, "Car cleaning", row.Items[0].Label)
		assert.Equal(t, "$50.00", row.Items[0].FormattedValue)
		assert.Equal(t, "car-cleaning", row.Items[0].ID)
	}
}

func TestBuild_UnknownItemWithQuantityAndRoleFilter(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems,
		lineItem("line-item/extra-towels", 3, 500, false, customerOnly),
		lineItem("line-item/extra-towels", 1, 500, false, customerOnly),
	)

	customer := build(t, tx, lineitemdomain.RoleCustomer)
	row, ok := customer.Row(breakdowndomain.RowUnknownItems)
	require.True(t, ok)
	require.Len(t, row.Items, 2)
	assert.Equal(t, "Extra towels × 3", row.Items[0].Label)
	assert.Equal(t, "$15.00", row.Items[0].FormattedValue)
	assert.Equal(t, "extra-towels", row.Items[0].ID)
	assert.Equal(t, "extra-towels-2", row.Items[1].ID)

	provider := build(t, tx, lineitemdomain.RoleProvider)
	_, ok = provider.Row(breakdowndomain.RowUnknownItems)
	assert.False(t, ok)
}

func TestBuild_MalformedCommission(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat(lineitemdomain.CodeProviderCommission, 100, false, providerOnly))

	out := build(t, tx, lineitemdomain.RoleProvider)
	_, ok := out.Row(breakdowndomain.RowProviderCommission)
	assert.False(t, ok, "a positive provider commission must not render")

	require.Len(t, out.Errors, 1)
	rowErr := out.Errors[0]
	assert.Equal(t, breakdowndomain.RowProviderCommission, rowErr.Kind)
	assert.Equal(t, lineitemdomain.CodeProviderCommission, rowErr.Code)
	assert.ErrorIs(t, rowErr, commission.ErrInvalidCommission)

	var invalid *commission.InvalidCommissionError
	require.True(t, errors.As(out.Err(), &invalid))
	assert.Equal(t, commission.ReasonPositive, invalid.Reason)

	// The rest of the receipt still renders.
	_, ok = out.Row(breakdowndomain.RowTotal)
	assert.True(t, ok)
	assert.False(t, out.CommissionNote)
}

func TestBuild_NegativeCustomerCommission(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat(lineitemdomain.CodeCustomerCommission, -500, false, customerOnly))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowCustomerCommission)
	assert.False(t, ok)
	require.Len(t, out.Errors, 1)
	assert.ErrorIs(t, out.Err(), commission.ErrInvalidCommission)
}

func TestBuild_EmptyObjectCommissionIsAbsent(t *testing.T) {
	tx := nightBooking()
	empty := lineitemdomain.LineItem{Code: lineitemdomain.CodeCustomerCommission, IncludeFor: customerOnly}
	tx.LineItems = append(tx.LineItems, empty)

	out := build(t, tx, lineitemdomain.RoleCustomer)
	assert.Empty(t, out.Errors)
	_, ok := out.Row(breakdowndomain.RowCustomerCommission)
	assert.False(t, ok)
	_, ok = out.Row(breakdowndomain.RowSubtotal)
	assert.False(t, ok, "an absent commission does not make the subtotal useful")
}

func TestBuild_CustomerCommissionShowsSubtotal(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat(lineitemdomain.CodeCustomerCommission, 900, false, customerOnly))
	tx.PayinTotal = option.Some(usd(9900))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	assert.Equal(t, []breakdowndomain.RowKind{
		breakdowndomain.RowBookingPeriod,
		breakdowndomain.RowBasePrice,
		breakdowndomain.RowSubtotal,
		breakdowndomain.RowCustomerCommission,
		breakdowndomain.RowTotal,
	}, out.Kinds())

	subtotal, _ := out.Row(breakdowndomain.RowSubtotal)
	assert.Equal(t, "$90.00", subtotal.FormattedValue)
	total, _ := out.Row(breakdowndomain.RowTotal)
	assert.Equal(t, "$99.00", total.FormattedValue)
	assert.Equal(t, "Total price", total.Label)

	// Provider cannot see the customer commission, so no subtotal either.
	provider := build(t, tx, lineitemdomain.RoleProvider)
	_, ok := provider.Row(breakdowndomain.RowSubtotal)
	assert.False(t, ok)
}

func TestBuild_TotalsAgreeWithLineItems(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems,
		flat(lineitemdomain.CodeCustomerCommission, 900, false, customerOnly),
		flat(lineitemdomain.CodeProviderCommission, -900, false, providerOnly),
		flat(lineitemdomain.CodeShippingFee, 1000, false, both),
	)
	tx.PayinTotal = option.Some(usd(10900))
	tx.PayoutTotal = option.Some(usd(9100))

	customer := build(t, tx, lineitemdomain.RoleCustomer)
	subtotal, _ := customer.Row(breakdowndomain.RowSubtotal)
	fee, _ := customer.Row(breakdowndomain.RowCustomerCommission)
	total, _ := customer.Row(breakdowndomain.RowTotal)
	sum, err := subtotal.Value.Add(*fee.Value)
	require.NoError(t, err)
	assert.Equal(t, *total.Value, sum)

	provider := build(t, tx, lineitemdomain.RoleProvider)
	subtotal, _ = provider.Row(breakdowndomain.RowSubtotal)
	fee, _ = provider.Row(breakdowndomain.RowProviderCommission)
	total, _ = provider.Row(breakdowndomain.RowTotal)
	sum, err = subtotal.Value.Add(*fee.Value)
	require.NoError(t, err)
	assert.Equal(t, *total.Value, sum)
}

func TestBuild_ShippingAndPickupFees(t *testing.T) {
	tx := lineitemdomain.Transaction{
		LineItems: []lineitemdomain.LineItem{
			lineItem(lineitemdomain.CodeItem, 1, 2500, false, both),
			flat(lineitemdomain.CodeShippingFee, 700, false, both),
			flat(lineitemdomain.CodePickupFee, 0, false, both),
		},
		PayinTotal: option.Some(usd(3200)),
	}
	out := build(t, tx, lineitemdomain.RoleCustomer)
	assert.Equal(t, []breakdowndomain.RowKind{
		breakdowndomain.RowBasePrice,
		breakdowndomain.RowShippingFee,
		breakdowndomain.RowPickupFee,
		breakdowndomain.RowTotal,
	}, out.Kinds())
	base, _ := out.Row(breakdowndomain.RowBasePrice)
	assert.Equal(t, "$25.00 × 1 item", base.Label)
	shipping, _ := out.Row(breakdowndomain.RowShippingFee)
	assert.Equal(t, "Shipping", shipping.Label)
	assert.Equal(t, "$7.00", shipping.FormattedValue)
}

func TestBuild_DayBookingEndIsExclusive(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = []lineitemdomain.LineItem{lineItem(lineitemdomain.CodeDay, 2, 4500, false, both)}
	out := build(t, tx, lineitemdomain.RoleCustomer)

	period, ok := out.Row(breakdowndomain.RowBookingPeriod)
	require.True(t, ok)
	assert.Equal(t, "Tue, Mar 3, 2026", period.Period.End)
	base, _ := out.Row(breakdowndomain.RowBasePrice)
	assert.Equal(t, "$45.00 × 2 days", base.Label)
}

func TestBuild_HourBookingShowsTime(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = []lineitemdomain.LineItem{lineItem(lineitemdomain.CodeHour, 1, 1500, false, both)}
	displayStart := time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC)
	displayEnd := time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC)
	tx.Booking = option.Some(lineitemdomain.Booking{
		Start:        displayStart.Add(-time.Hour),
		End:          displayEnd.Add(time.Hour),
		DisplayStart: &displayStart,
		DisplayEnd:   &displayEnd,
	})
	out := build(t, tx, lineitemdomain.RoleCustomer)

	period, _ := out.Row(breakdowndomain.RowBookingPeriod)
	assert.Equal(t, "Mon, Mar 2, 3:00 PM", period.Period.Start)
	assert.Equal(t, "Mon, Mar 2, 4:00 PM", period.Period.End)
	base, _ := out.Row(breakdowndomain.RowBasePrice)
	assert.Equal(t, "$15.00 × 1 hour", base.Label)
}

func TestBuild_NoBookingWithoutUnitType(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = []lineitemdomain.LineItem{flat(lineitemdomain.CodeShippingFee, 700, false, both)}
	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowBookingPeriod)
	assert.False(t, ok)
	_, ok = out.Row(breakdowndomain.RowBasePrice)
	assert.False(t, ok)
}

func TestBuild_ProviderTotalLabels(t *testing.T) {
	cases := map[lineitemdomain.TransactionStatus]string{
		lineitemdomain.StatusPending:   "You'll make",
		lineitemdomain.StatusAccepted:  "You'll make",
		lineitemdomain.StatusReceived:  "You made",
		lineitemdomain.StatusCompleted: "You made",
		lineitemdomain.StatusCanceled:  "Total payout",
	}
	for status, want := range cases {
		tx := nightBooking()
		tx.Status = status
		total, ok := build(t, tx, lineitemdomain.RoleProvider).Row(breakdowndomain.RowTotal)
		require.True(t, ok)
		assert.Equal(t, want, total.Label, status)
	}
}

func TestBuild_MissingTotalIsOmitted(t *testing.T) {
	tx := nightBooking()
	tx.PayoutTotal = option.None[money.Money]()
	out := build(t, tx, lineitemdomain.RoleProvider)
	_, ok := out.Row(breakdowndomain.RowTotal)
	assert.False(t, ok)
	assert.Empty(t, out.Errors)
}

func TestBuild_EmptyTransaction(t *testing.T) {
	out := build(t, lineitemdomain.Transaction{}, lineitemdomain.RoleCustomer)
	assert.Empty(t, out.Rows)
	assert.Empty(t, out.Errors)
	assert.False(t, out.CommissionNote)
}

func TestBuild_CurrencyMismatchOmitsSubtotal(t *testing.T) {
	tx := nightBooking()
	eur := flat(lineitemdomain.CodeShippingFee, 700, false, both)
	eur.LineTotal = option.Some(money.New(700, "EUR"))
	tx.LineItems = append(tx.LineItems, eur, flat(lineitemdomain.CodeCustomerCommission, 900, false, customerOnly))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowSubtotal)
	assert.False(t, ok)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, breakdowndomain.RowSubtotal, out.Errors[0].Kind)
	assert.ErrorIs(t, out.Err(), money.ErrCurrencyMismatch)
}

func TestBuild_PositiveRefundIsRejected(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, lineItem(lineitemdomain.CodeNight, 2, 4500, true, both))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowRefund)
	assert.False(t, ok)
	assert.ErrorIs(t, out.Err(), breakdowndomain.ErrInvalidRefund)
}

func malformedItem(code lineitemdomain.Code, reversal bool, roles []lineitemdomain.Role) lineitemdomain.LineItem {
	item := flat(code, 0, reversal, roles)
	item.LineTotal = option.None[money.Money]()
	item.Malformed = true
	return item
}

func TestBuild_MalformedFeeIsReported(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems,
		malformedItem(lineitemdomain.CodeShippingFee, false, both),
		flat(lineitemdomain.CodeCustomerCommission, 400, false, customerOnly),
	)
	tx.PayinTotal = option.Some(usd(14400))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	assert.Equal(t, []breakdowndomain.RowKind{
		breakdowndomain.RowBookingPeriod,
		breakdowndomain.RowBasePrice,
		breakdowndomain.RowCustomerCommission,
		breakdowndomain.RowTotal,
	}, out.Kinds())
	require.Len(t, out.Errors, 2)
	assert.Equal(t, breakdowndomain.RowShippingFee, out.Errors[0].Kind)
	assert.Equal(t, lineitemdomain.CodeShippingFee, out.Errors[0].Code)
	assert.Equal(t, breakdowndomain.RowSubtotal, out.Errors[1].Kind)
	assert.ErrorIs(t, out.Err(), lineitemdomain.ErrMalformedLineTotal)

	// Without a commission there is no subtotal, only the fee error.
	provider := build(t, tx, lineitemdomain.RoleProvider)
	require.Len(t, provider.Errors, 1)
	assert.Equal(t, breakdowndomain.RowShippingFee, provider.Errors[0].Kind)
}

func TestBuild_MalformedBasePriceIsNotRebuilt(t *testing.T) {
	tx := nightBooking()
	tx.LineItems[0].LineTotal = option.None[money.Money]()
	tx.LineItems[0].Malformed = true

	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowBasePrice)
	assert.False(t, ok)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, breakdowndomain.RowBasePrice, out.Errors[0].Kind)
	assert.ErrorIs(t, out.Errors[0], lineitemdomain.ErrMalformedLineTotal)
}

func TestBuild_MalformedUnknownItemKeepsOthers(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems,
		flat("line-item/car-cleaning", 5000, false, both),
		malformedItem("line-item/extra-towels", false, both),
	)

	out := build(t, tx, lineitemdomain.RoleCustomer)
	row, ok := out.Row(breakdowndomain.RowUnknownItems)
	require.True(t, ok)
	require.Len(t, row.Items, 1)
	assert.Equal(t, "car-cleaning", row.Items[0].ID)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, breakdowndomain.RowUnknownItem, out.Errors[0].Kind)
	assert.Equal(t, lineitemdomain.Code("line-item/extra-towels"), out.Errors[0].Code)
	assert.ErrorIs(t, out.Err(), lineitemdomain.ErrMalformedLineTotal)
}

func TestBuild_MalformedRefundIsReported(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, malformedItem(lineitemdomain.CodeNight, true, both))

	out := build(t, tx, lineitemdomain.RoleProvider)
	_, ok := out.Row(breakdowndomain.RowRefund)
	assert.False(t, ok)
	var kinds []breakdowndomain.RowKind
	for _, rowErr := range out.Errors {
		kinds = append(kinds, rowErr.Kind)
	}
	assert.Contains(t, kinds, breakdowndomain.RowRefund)
	assert.ErrorIs(t, out.Err(), lineitemdomain.ErrMalformedLineTotal)
}

func TestBuild_CommissionReversalAloneHidesSubtotal(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat(lineitemdomain.CodeCustomerCommission, -400, true, customerOnly))

	out := build(t, tx, lineitemdomain.RoleCustomer)
	_, ok := out.Row(breakdowndomain.RowSubtotal)
	assert.False(t, ok)
	_, ok = out.Row(breakdowndomain.RowCustomerCommissionRefund)
	assert.True(t, ok)
	assert.Empty(t, out.Errors)
}

func TestBuild_IsDeterministic(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems,
		flat("line-item/car-cleaning", 5000, false, both),
		flat(lineitemdomain.CodeCustomerCommission, 900, false, customerOnly),
	)
	first := build(t, tx, lineitemdomain.RoleCustomer)
	second := build(t, tx, lineitemdomain.RoleCustomer)
	assert.Equal(t, first, second)
}

func TestBuild_InvalidInput(t *testing.T) {
	_, err := NewBuilder().Build(breakdowndomain.Input{Role: "operator", Currency: "USD"})
	assert.ErrorIs(t, err, breakdowndomain.ErrInvalidRole)

	_, err = NewBuilder().Build(breakdowndomain.Input{Role: lineitemdomain.RoleCustomer, Currency: "dollars"})
	assert.ErrorIs(t, err, breakdowndomain.ErrInvalidCurrency)
}

func TestBuilder_WithKnownCodes(t *testing.T) {
	tx := nightBooking()
	tx.LineItems = append(tx.LineItems, flat("line-item/deposit", 5000, false, both))

	out, err := NewBuilder(WithKnownCodes("line-item/deposit")).Build(breakdowndomain.Input{
		Transaction: tx,
		Role:        lineitemdomain.RoleCustomer,
		Currency:    "USD",
	})
	require.NoError(t, err)
	_, ok := out.Row(breakdowndomain.RowUnknownItems)
	assert.False(t, ok)
}

func TestCatalog_Format(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "Refund Saunatime fee", c.Format(keyRefundProviderFee, map[string]string{"marketplaceName": "Saunatime"}))
	assert.Equal(t, "OrderBreakdown.missing", c.Format("OrderBreakdown.missing", nil))
}
