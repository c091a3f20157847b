package service

import (
	"strings"

	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
)

const (
	keyBookingPeriod       = "OrderBreakdown.bookingPeriod"
	keyBookingStart        = "OrderBreakdown.bookingStart"
	keyBookingEnd          = "OrderBreakdown.bookingEnd"
	keyBaseUnitNight       = "OrderBreakdown.baseUnitNight"
	keyBaseUnitDay         = "OrderBreakdown.baseUnitDay"
	keyBaseUnitHour        = "OrderBreakdown.baseUnitHour"
	keyBaseUnitQuantity    = "OrderBreakdown.baseUnitQuantity"
	keyBaseUnitFlat        = "OrderBreakdown.baseUnitFlat"
	keyShippingFee         = "OrderBreakdown.shippingFee"
	keyPickupFee           = "OrderBreakdown.pickupFee"
	keyUnknownItems        = "OrderBreakdown.unknownItems"
	keyUnknownItem         = "OrderBreakdown.unknownItem"
	keyUnknownItemQuantity = "OrderBreakdown.unknownItemQuantity"
	keySubTotal            = "OrderBreakdown.subTotal"
	keyRefund              = "OrderBreakdown.refund"
	keyCustomerCommission  = "OrderBreakdown.commission"
	keyProviderCommission  = "OrderBreakdown.providerCommission"
	keyRefundCustomerFee   = "OrderBreakdown.refundCustomerFee"
	keyRefundProviderFee   = "OrderBreakdown.refundProviderFee"
	keyTotal               = "OrderBreakdown.total"
	keyProviderTotal       = "OrderBreakdown.providerTotalDefault"
	keyProviderTotalMade   = "OrderBreakdown.providerTotalReceived"
	keyProviderTotalCancel = "OrderBreakdown.providerTotalCanceled"
	keyCommissionFeeNote   = "OrderBreakdown.commissionFeeNote"
)

// Catalog maps label keys to copy with {placeholder} arguments.
type Catalog map[string]string

// DefaultCatalog is the English receipt copy.
func DefaultCatalog() Catalog {
	return Catalog{
		keyBookingPeriod:       "Booking period",
		keyBookingStart:        "Booking start",
		keyBookingEnd:          "Booking end",
		keyBaseUnitNight:       "{unitPrice} × {quantity} {unit}",
		keyBaseUnitDay:         "{unitPrice} × {quantity} {unit}",
		keyBaseUnitHour:        "{unitPrice} × {quantity} {unit}",
		keyBaseUnitQuantity:    "{unitPrice} × {quantity} {unit}",
		keyBaseUnitFlat:        "Base price",
		keyShippingFee:         "Shipping",
		keyPickupFee:           "Pickup",
		keyUnknownItems:        "Additional items",
		keyUnknownItem:         "{label}",
		keyUnknownItemQuantity: "{label} × {quantity}",
		keySubTotal:            "Subtotal",
		keyRefund:              "Refund",
		keyCustomerCommission:  "{marketplaceName} fee",
		keyProviderCommission:  "{marketplaceName} fee",
		keyRefundCustomerFee:   "Refund {marketplaceName} fee",
		keyRefundProviderFee:   "Refund {marketplaceName} fee",
		keyTotal:               "Total price",
		keyProviderTotal:       "You'll make",
		keyProviderTotalMade:   "You made",
		keyProviderTotalCancel: "Total payout",
		keyCommissionFeeNote:   "{marketplaceName}'s fee helps us operate the marketplace and keep payments secure.",
	}
}

// Format resolves key and replaces {name} placeholders. Unknown keys render
// as the key itself so a missing translation is visible, not blank.
func (c Catalog) Format(key string, args map[string]string) string {
	text, ok := c[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

type unitNoun struct {
	one, other string
}

var unitNouns = map[lineitemdomain.Code]unitNoun{
	lineitemdomain.CodeNight: {"night", "nights"},
	lineitemdomain.CodeDay:   {"day", "days"},
	lineitemdomain.CodeHour:  {"hour", "hours"},
	lineitemdomain.CodeItem:  {"item", "items"},
}

var baseUnitKeys = map[lineitemdomain.Code]string{
	lineitemdomain.CodeNight: keyBaseUnitNight,
	lineitemdomain.CodeDay:   keyBaseUnitDay,
	lineitemdomain.CodeHour:  keyBaseUnitHour,
	lineitemdomain.CodeItem:  keyBaseUnitQuantity,
}
