// Package domain contains the receipt row model produced by the order
// breakdown.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
)

// RowKind identifies a receipt row. Rows are emitted in the order listed.
type RowKind string

const (
	RowBookingPeriod            RowKind = "booking_period"
	RowBasePrice                RowKind = "base_price"
	RowShippingFee              RowKind = "shipping_fee"
	RowPickupFee                RowKind = "pickup_fee"
	RowUnknownItems             RowKind = "unknown_items"
	RowUnknownItem              RowKind = "unknown_item"
	RowSubtotal                 RowKind = "subtotal"
	RowRefund                   RowKind = "refund"
	RowCustomerCommission       RowKind = "customer_commission"
	RowCustomerCommissionRefund RowKind = "customer_commission_refund"
	RowProviderCommission       RowKind = "provider_commission"
	RowProviderCommissionRefund RowKind = "provider_commission_refund"
	RowTotal                    RowKind = "total"
)

// IsCommission reports whether the row shows a commission or its refund.
func (k RowKind) IsCommission() bool {
	switch k {
	case RowCustomerCommission, RowCustomerCommissionRefund,
		RowProviderCommission, RowProviderCommissionRefund:
		return true
	default:
		return false
	}
}

// Row is one renderable receipt line.
type Row struct {
	Kind           RowKind      `json:"kind"`
	ID             string       `json:"id"`
	LabelKey       string       `json:"label_key"`
	Label          string       `json:"label"`
	Value          *money.Money `json:"value,omitempty"`
	FormattedValue string       `json:"formatted_value,omitempty"`
	Period         *Period      `json:"period,omitempty"`
	Items          []Row        `json:"items,omitempty"`
}

// Period is the booking date range shown on the booking period row.
type Period struct {
	StartLabel string    `json:"start_label"`
	Start      string    `json:"start"`
	StartAt    time.Time `json:"start_at"`
	EndLabel   string    `json:"end_label"`
	End        string    `json:"end"`
	EndAt      time.Time `json:"end_at"`
}

// Breakdown is the ordered receipt for one viewer role.
type Breakdown struct {
	TransactionID  string              `json:"transaction_id,omitempty"`
	Role           lineitemdomain.Role `json:"role"`
	UnitType       lineitemdomain.Code `json:"unit_type,omitempty"`
	Rows           []Row               `json:"rows"`
	CommissionNote bool                `json:"commission_note"`
	NoteText       string              `json:"commission_note_text,omitempty"`
	Errors         []*RowError         `json:"errors,omitempty"`
}

// Row returns the first row of kind.
func (b Breakdown) Row(kind RowKind) (Row, bool) {
	for _, row := range b.Rows {
		if row.Kind == kind {
			return row, true
		}
	}
	return Row{}, false
}

// Kinds lists row kinds in output order.
func (b Breakdown) Kinds() []RowKind {
	out := make([]RowKind, 0, len(b.Rows))
	for _, row := range b.Rows {
		out = append(out, row.Kind)
	}
	return out
}

// Formatter renders values for the receipt. *money.Formatter implements it.
type Formatter interface {
	Money(money.Money) string
	Quantity(decimal.Decimal) string
	Date(time.Time) string
	DateTime(time.Time) string
}

// Input is everything one breakdown computation reads.
type Input struct {
	Transaction     lineitemdomain.Transaction
	Role            lineitemdomain.Role
	MarketplaceName string
	Currency        string
	Formatter       Formatter
}
