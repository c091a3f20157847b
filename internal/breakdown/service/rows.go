package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/commission"
	"github.com/smallbiznis/storefront/internal/lineitem"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
)

var one = decimal.NewFromInt(1)

func (b *Builder) bookingPeriod(c *buildContext) (breakdowndomain.Row, bool, error) {
	booking, ok := c.tx.Booking.Get()
	if !ok || !c.hasUnitType {
		return breakdowndomain.Row{}, false, nil
	}

	start, end := booking.DisplayRange()
	// Day bookings store an exclusive end date.
	if c.unitType == lineitemdomain.CodeDay {
		end = end.AddDate(0, 0, -1)
		if end.Before(start) {
			end = start
		}
	}

	formatDate := c.format.Date
	if c.unitType == lineitemdomain.CodeHour {
		formatDate = c.format.DateTime
	}
	period := &breakdowndomain.Period{
		StartLabel: b.catalog.Format(keyBookingStart, nil),
		Start:      formatDate(start),
		StartAt:    start,
		EndLabel:   b.catalog.Format(keyBookingEnd, nil),
		End:        formatDate(end),
		EndAt:      end,
	}
	return breakdowndomain.Row{
		Kind:           breakdowndomain.RowBookingPeriod,
		LabelKey:       keyBookingPeriod,
		Label:          b.catalog.Format(keyBookingPeriod, nil),
		FormattedValue: period.Start + " - " + period.End,
		Period:         period,
	}, true, nil
}

func (b *Builder) basePrice(c *buildContext) (breakdowndomain.Row, bool, error) {
	if !c.hasUnitType {
		return breakdowndomain.Row{}, false, nil
	}
	item, ok := lineitem.FirstByCodeAndReversal(c.items, c.unitType, false)
	if !ok {
		return breakdowndomain.Row{}, false, nil
	}
	if item.Malformed {
		return breakdowndomain.Row{}, false, malformed(breakdowndomain.RowBasePrice, item)
	}

	unitPrice, hasUnitPrice := item.UnitPrice.Get()
	quantity, hasQuantity := item.Quantity.Get()

	value, hasValue := item.LineTotal.Get()
	if !hasValue && hasUnitPrice && hasQuantity {
		value, hasValue = unitPrice.MulQuantity(quantity), true
	}
	if !hasValue {
		return breakdowndomain.Row{}, false, nil
	}

	key := keyBaseUnitFlat
	var args map[string]string
	if hasUnitPrice && hasQuantity {
		key = baseUnitKeys[c.unitType]
		noun := unitNouns[c.unitType]
		unit := noun.other
		if quantity.Equal(one) {
			unit = noun.one
		}
		args = map[string]string{
			"unitPrice": c.format.Money(unitPrice),
			"quantity":  c.format.Quantity(quantity),
			"unit":      unit,
		}
	}
	return b.moneyRow(c, breakdowndomain.RowBasePrice, key, args, value), true, nil
}

func (b *Builder) shippingFee(c *buildContext) (breakdowndomain.Row, bool, error) {
	return b.fee(c, lineitemdomain.CodeShippingFee, breakdowndomain.RowShippingFee, keyShippingFee)
}

func (b *Builder) pickupFee(c *buildContext) (breakdowndomain.Row, bool, error) {
	return b.fee(c, lineitemdomain.CodePickupFee, breakdowndomain.RowPickupFee, keyPickupFee)
}

func (b *Builder) fee(c *buildContext, code lineitemdomain.Code, kind breakdowndomain.RowKind, key string) (breakdowndomain.Row, bool, error) {
	item, ok := lineitem.FirstByCodeAndReversal(c.items, code, false)
	if !ok {
		return breakdowndomain.Row{}, false, nil
	}
	if item.Malformed {
		return breakdowndomain.Row{}, false, malformed(kind, item)
	}
	total, ok := item.LineTotal.Get()
	if !ok {
		return breakdowndomain.Row{}, false, nil
	}
	return b.moneyRow(c, kind, key, nil, total), true, nil
}

func (b *Builder) unknownItems(c *buildContext) (breakdowndomain.Row, bool, error) {
	unknown := lineitem.UnknownItems(c.items, b.knownCodes)

	children := make([]breakdowndomain.Row, 0, len(unknown))
	seen := make(map[string]int, len(unknown))
	var errs []error
	for _, item := range unknown {
		if !item.IncludesRole(c.role) {
			continue
		}
		if item.Malformed {
			errs = append(errs, malformed(breakdowndomain.RowUnknownItem, item))
			continue
		}
		total, ok := item.LineTotal.Get()
		if !ok {
			continue
		}

		args := map[string]string{"label": lineitem.HumanizeCode(item.Code)}
		key := keyUnknownItem
		if quantity, ok := item.Quantity.Get(); ok && quantity.GreaterThan(one) {
			key = keyUnknownItemQuantity
			args["quantity"] = c.format.Quantity(quantity)
		}

		row := b.moneyRow(c, breakdowndomain.RowUnknownItem, key, args, total)
		id := lineitem.RowID(item.Code)
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		row.ID = id
		children = append(children, row)
	}
	// Malformed children are reported while the remaining items stay listed.
	err := errors.Join(errs...)
	if len(children) == 0 {
		return breakdowndomain.Row{}, false, err
	}
	return breakdowndomain.Row{
		Kind:     breakdowndomain.RowUnknownItems,
		LabelKey: keyUnknownItems,
		Label:    b.catalog.Format(keyUnknownItems, nil),
		Items:    children,
	}, true, err
}

// subtotal is only useful when something sits between it and the total: a
// commission for this role or a refund of the booked unit.
func (b *Builder) subtotal(c *buildContext) (breakdowndomain.Row, bool, error) {
	if !b.hasRoleCommission(c) && !hasUnitRefund(c) {
		return breakdowndomain.Row{}, false, nil
	}
	items := lineitem.NonCommissionNonReversal(c.items)
	if len(items) == 0 {
		return breakdowndomain.Row{}, false, nil
	}
	if item, ok := lineitem.FirstMalformed(items); ok {
		return breakdowndomain.Row{}, false, malformed(breakdowndomain.RowSubtotal, item)
	}
	sum, err := lineitem.SumStrict(items, c.currency)
	if err != nil {
		return breakdowndomain.Row{}, false, err
	}
	return b.moneyRow(c, breakdowndomain.RowSubtotal, keySubTotal, nil, sum), true, nil
}

func (b *Builder) refund(c *buildContext) (breakdowndomain.Row, bool, error) {
	items := lineitem.NonCommissionReversals(c.items)
	if len(items) == 0 {
		return breakdowndomain.Row{}, false, nil
	}
	if item, ok := lineitem.FirstMalformed(items); ok {
		return breakdowndomain.Row{}, false, malformed(breakdowndomain.RowRefund, item)
	}
	sum, err := lineitem.SumStrict(items, c.currency)
	if err != nil {
		return breakdowndomain.Row{}, false, err
	}
	if sum.IsPositive() {
		return breakdowndomain.Row{}, false, fmt.Errorf("positive refund %s: %w", sum, breakdowndomain.ErrInvalidRefund)
	}
	return b.moneyRow(c, breakdowndomain.RowRefund, keyRefund, nil, sum), true, nil
}

func (b *Builder) commission(c *buildContext) (breakdowndomain.Row, bool, error) {
	return b.commissionRow(c, false, c.view.commissionKind, c.view.commissionLabelKey, c.view.validate)
}

func (b *Builder) commissionRefund(c *buildContext) (breakdowndomain.Row, bool, error) {
	return b.commissionRow(c, true, c.view.refundKind, c.view.refundLabelKey, c.view.validateRefund)
}

func (b *Builder) commissionRow(
	c *buildContext,
	reversal bool,
	kind breakdowndomain.RowKind,
	key string,
	validate func(lineitemdomain.LineItem) error,
) (breakdowndomain.Row, bool, error) {
	item, ok := lineitem.FirstByCodeAndReversal(c.items, c.view.commissionCode, reversal)
	if !ok || !commission.Present(item) {
		return breakdowndomain.Row{}, false, nil
	}
	if err := validate(item); err != nil {
		return breakdowndomain.Row{}, false, &breakdowndomain.RowError{Kind: kind, Code: item.Code, Err: err}
	}
	total, _ := item.LineTotal.Get()
	args := map[string]string{"marketplaceName": c.marketplaceName}
	return b.moneyRow(c, kind, key, args, total), true, nil
}

// total is the authoritative transaction total; it is never recomputed from
// line items.
func (b *Builder) total(c *buildContext) (breakdowndomain.Row, bool, error) {
	total, ok := c.view.total(c.tx).Get()
	if !ok {
		return breakdowndomain.Row{}, false, nil
	}
	key := c.view.totalLabelKey(c.tx.Status)
	return b.moneyRow(c, breakdowndomain.RowTotal, key, nil, total), true, nil
}

func (b *Builder) hasRoleCommission(c *buildContext) bool {
	for _, item := range c.items {
		if item.Code == c.view.commissionCode && !item.Reversal && commission.Present(item) {
			return true
		}
	}
	return false
}

func hasUnitRefund(c *buildContext) bool {
	if !c.hasUnitType {
		return false
	}
	_, ok := lineitem.FirstByCodeAndReversal(c.items, c.unitType, true)
	return ok
}

func malformed(kind breakdowndomain.RowKind, item lineitemdomain.LineItem) *breakdowndomain.RowError {
	return &breakdowndomain.RowError{Kind: kind, Code: item.Code, Err: lineitemdomain.ErrMalformedLineTotal}
}

func (b *Builder) moneyRow(c *buildContext, kind breakdowndomain.RowKind, key string, args map[string]string, value money.Money) breakdowndomain.Row {
	v := value
	return breakdowndomain.Row{
		Kind:           kind,
		LabelKey:       key,
		Label:          b.catalog.Format(key, args),
		Value:          &v,
		FormattedValue: c.format.Money(value),
	}
}
