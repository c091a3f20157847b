// Package commission enforces the sign invariants of marketplace commission
// line items. A violation means the pricing upstream is wrong; callers must
// surface it and never coerce the amount.
package commission

import (
	"fmt"

	"github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
)

type Reason string

const (
	ReasonNotMoney      Reason = "not_money"
	ReasonPositive      Reason = "provider_commission_positive"
	ReasonNegative      Reason = "customer_commission_negative"
	ReasonUnexpectedRow Reason = "unexpected_code"

	ReasonRefundNegative Reason = "provider_commission_refund_negative"
	ReasonRefundPositive Reason = "customer_commission_refund_positive"
)

// InvalidCommissionError carries the offending line item.
type InvalidCommissionError struct {
	Item   domain.LineItem
	Reason Reason
}

func (e *InvalidCommissionError) Error() string {
	total, ok := e.Item.LineTotal.Get()
	if !ok {
		return fmt.Sprintf("invalid commission %s: %s", e.Item.Code, e.Reason)
	}
	return fmt.Sprintf("invalid commission %s: %s (line total %s)", e.Item.Code, e.Reason, total)
}

// Is matches any *InvalidCommissionError against ErrInvalidCommission.
func (e *InvalidCommissionError) Is(target error) bool {
	return target == ErrInvalidCommission
}

// Present reports whether a commission item carries a line total at all. A
// total that resolves to {} or null on the wire is treated as no commission.
func Present(item domain.LineItem) bool {
	return item.LineTotal.IsSome() || item.Malformed
}

// ValidateProviderCommission requires a money line total that is zero or
// negative: it is deducted from the provider payout.
func ValidateProviderCommission(item domain.LineItem) error {
	total, err := lineTotal(item, domain.CodeProviderCommission)
	if err != nil {
		return err
	}
	if total.IsPositive() {
		return &InvalidCommissionError{Item: item, Reason: ReasonPositive}
	}
	return nil
}

// ValidateCustomerCommission requires a money line total that is zero or
// positive: it is added to what the customer pays.
func ValidateCustomerCommission(item domain.LineItem) error {
	total, err := lineTotal(item, domain.CodeCustomerCommission)
	if err != nil {
		return err
	}
	if total.IsNegative() {
		return &InvalidCommissionError{Item: item, Reason: ReasonNegative}
	}
	return nil
}

// ValidateProviderCommissionRefund requires the reversal of a provider
// commission to be zero or positive.
func ValidateProviderCommissionRefund(item domain.LineItem) error {
	total, err := lineTotal(item, domain.CodeProviderCommission)
	if err != nil {
		return err
	}
	if total.IsNegative() {
		return &InvalidCommissionError{Item: item, Reason: ReasonRefundNegative}
	}
	return nil
}

// ValidateCustomerCommissionRefund requires the reversal of a customer
// commission to be zero or negative.
func ValidateCustomerCommissionRefund(item domain.LineItem) error {
	total, err := lineTotal(item, domain.CodeCustomerCommission)
	if err != nil {
		return err
	}
	if total.IsPositive() {
		return &InvalidCommissionError{Item: item, Reason: ReasonRefundPositive}
	}
	return nil
}

// Validate dispatches on the item code and reversal flag.
func Validate(item domain.LineItem) error {
	switch {
	case item.Code == domain.CodeProviderCommission && item.Reversal:
		return ValidateProviderCommissionRefund(item)
	case item.Code == domain.CodeProviderCommission:
		return ValidateProviderCommission(item)
	case item.Code == domain.CodeCustomerCommission && item.Reversal:
		return ValidateCustomerCommissionRefund(item)
	case item.Code == domain.CodeCustomerCommission:
		return ValidateCustomerCommission(item)
	default:
		return &InvalidCommissionError{Item: item, Reason: ReasonUnexpectedRow}
	}
}

func lineTotal(item domain.LineItem, want domain.Code) (money.Money, error) {
	if item.Code != want {
		return money.Money{}, &InvalidCommissionError{Item: item, Reason: ReasonUnexpectedRow}
	}
	if item.Malformed {
		return money.Money{}, &InvalidCommissionError{Item: item, Reason: ReasonNotMoney}
	}
	total, ok := item.LineTotal.Get()
	if !ok || money.ValidateCurrency(total.Currency) != nil {
		return money.Money{}, &InvalidCommissionError{Item: item, Reason: ReasonNotMoney}
	}
	return total, nil
}
