// Package lineitem contains pure selectors and aggregation over transaction
// line items. Nothing here allocates shared state or performs I/O; absence of a
// match is an empty result, never an error.
package lineitem

import (
	"github.com/smallbiznis/storefront/internal/lineitem/domain"
)

// ByCodeAndReversal returns items with exactly code and reversal.
func ByCodeAndReversal(items []domain.LineItem, code domain.Code, reversal bool) []domain.LineItem {
	return filter(items, func(item domain.LineItem) bool {
		return item.Code == code && item.Reversal == reversal
	})
}

// FirstByCodeAndReversal returns the first item with code and reversal.
func FirstByCodeAndReversal(items []domain.LineItem, code domain.Code, reversal bool) (domain.LineItem, bool) {
	for _, item := range items {
		if item.Code == code && item.Reversal == reversal {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// ByRole returns items whose includeFor contains role.
func ByRole(items []domain.LineItem, role domain.Role) []domain.LineItem {
	return filter(items, func(item domain.LineItem) bool {
		return item.IncludesRole(role)
	})
}

// IsCommissionCode reports whether code is the customer or provider commission.
func IsCommissionCode(code domain.Code) bool {
	return code == domain.CodeCustomerCommission || code == domain.CodeProviderCommission
}

// NonCommissionReversals returns reversal items that are not commissions.
// Commission refunds have dedicated rows.
func NonCommissionReversals(items []domain.LineItem) []domain.LineItem {
	return filter(items, func(item domain.LineItem) bool {
		return item.Reversal && !IsCommissionCode(item.Code)
	})
}

// NonCommissionNonReversal returns forward items that are not commissions.
func NonCommissionNonReversal(items []domain.LineItem) []domain.LineItem {
	return filter(items, func(item domain.LineItem) bool {
		return !item.Reversal && !IsCommissionCode(item.Code)
	})
}

// UnknownItems returns forward items whose code is absent from knownCodes.
func UnknownItems(items []domain.LineItem, knownCodes map[domain.Code]struct{}) []domain.LineItem {
	return filter(items, func(item domain.LineItem) bool {
		if item.Reversal {
			return false
		}
		_, known := knownCodes[item.Code]
		return !known
	})
}

// FirstMalformed returns the first item whose lineTotal could not be decoded.
func FirstMalformed(items []domain.LineItem) (domain.LineItem, bool) {
	for _, item := range items {
		if item.Malformed {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// UnitType returns the code of the first forward item that is a unit type.
func UnitType(items []domain.LineItem) (domain.Code, bool) {
	for _, item := range items {
		if !item.Reversal && item.Code.IsUnitType() {
			return item.Code, true
		}
	}
	return "", false
}

func filter(items []domain.LineItem, keep func(domain.LineItem) bool) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
