package lineitem

import (
	"fmt"

	"github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
)

// Sum adds every item's line total. An empty set yields zero in
// fallbackCurrency; otherwise the first priced item's currency is used and the
// rest are trusted to match. Items without a line total contribute nothing.
func Sum(items []domain.LineItem, fallbackCurrency string) money.Money {
	currency := money.NormalizeCurrency(fallbackCurrency)
	var amount int64
	first := true
	for _, item := range items {
		total, ok := item.LineTotal.Get()
		if !ok {
			continue
		}
		if first {
			currency = total.Currency
			first = false
		}
		amount += total.Amount
	}
	return money.Money{Amount: amount, Currency: currency}
}

// SumStrict is Sum with a currency check across all priced items.
func SumStrict(items []domain.LineItem, fallbackCurrency string) (money.Money, error) {
	sum := money.Zero(fallbackCurrency)
	first := true
	for _, item := range items {
		total, ok := item.LineTotal.Get()
		if !ok {
			continue
		}
		if first {
			sum = money.Money{Currency: total.Currency}
			first = false
		}
		next, err := sum.Add(total)
		if err != nil {
			return money.Money{}, fmt.Errorf("sum %s: %w", item.Code, err)
		}
		sum = next
	}
	return sum, nil
}
