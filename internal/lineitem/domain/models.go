// Package domain contains the line item and transaction snapshot models read by
// the order breakdown.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/smallbiznis/storefront/internal/option"
)

// Code is a namespaced line item tag such as "line-item/night".
type Code string

const CodePrefix = "line-item/"

const (
	CodeNight              Code = "line-item/night"
	CodeDay                Code = "line-item/day"
	CodeHour               Code = "line-item/hour"
	CodeItem               Code = "line-item/item"
	CodeCustomerCommission Code = "line-item/customer-commission"
	CodeProviderCommission Code = "line-item/provider-commission"
	CodeShippingFee        Code = "line-item/shipping-fee"
	CodePickupFee          Code = "line-item/pickup-fee"
)

// KnownCodes is the registry of codes that get a dedicated receipt row.
var KnownCodes = map[Code]struct{}{
	CodeNight:              {},
	CodeDay:                {},
	CodeHour:               {},
	CodeItem:               {},
	CodeCustomerCommission: {},
	CodeProviderCommission: {},
	CodeShippingFee:        {},
	CodePickupFee:          {},
}

// UnitTypeCodes are the primary priced units, in lookup order.
var UnitTypeCodes = []Code{CodeNight, CodeDay, CodeHour, CodeItem}

// IsUnitType reports whether c is one of UnitTypeCodes.
func (c Code) IsUnitType() bool {
	return slices.Contains(UnitTypeCodes, c)
}

// Name returns the code without the "line-item/" namespace.
func (c Code) Name() string {
	return strings.TrimPrefix(string(c), CodePrefix)
}

// Role is the viewpoint a receipt is rendered from.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// ParseRole normalizes a role string.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleProvider:
		return RoleProvider, nil
	default:
		return "", ErrInvalidRole
	}
}

// LineItem is one priced entry of a transaction.
type LineItem struct {
	Code       Code
	IncludeFor []Role
	Quantity   option.Option[decimal.Decimal]
	UnitPrice  option.Option[money.Money]
	LineTotal  option.Option[money.Money]
	Reversal   bool

	// Malformed is set by the snapshot decoder when lineTotal was present but
	// was not a money object.
	Malformed bool
}

// IncludesRole reports whether the item is visible to role.
func (li LineItem) IncludesRole(role Role) bool {
	return slices.Contains(li.IncludeFor, role)
}

// Total returns the line total, or zero in currency when absent.
func (li LineItem) Total(currency string) money.Money {
	return li.LineTotal.OrElse(money.Zero(currency))
}

// TransactionStatus is supplied by the transaction process collaborator and
// only selects total row wording.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusAccepted  TransactionStatus = "accepted"
	StatusReceived  TransactionStatus = "received"
	StatusCompleted TransactionStatus = "completed"
	StatusCanceled  TransactionStatus = "canceled"
	StatusDeclined  TransactionStatus = "declined"
)

// Transaction is the snapshot consumed by the breakdown.
type Transaction struct {
	ID          string
	LineItems   []LineItem
	PayinTotal  option.Option[money.Money]
	PayoutTotal option.Option[money.Money]
	Status      TransactionStatus
	Booking     option.Option[Booking]
}

// Booking is the time range attached to a transaction.
type Booking struct {
	Start        time.Time
	End          time.Time
	DisplayStart *time.Time
	DisplayEnd   *time.Time
}

// DisplayRange returns the display dates when set, falling back to start/end.
func (b Booking) DisplayRange() (time.Time, time.Time) {
	start, end := b.Start, b.End
	if b.DisplayStart != nil {
		start = *b.DisplayStart
	}
	if b.DisplayEnd != nil {
		end = *b.DisplayEnd
	}
	return start, end
}
