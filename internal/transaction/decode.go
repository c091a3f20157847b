// Package transaction decodes commerce API transaction snapshots into the
// line item domain.
//
// The API sends `{}` for values that are not set. Those, like null and missing
// keys, decode to an absent option.
package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/smallbiznis/storefront/internal/option"
)

type envelope struct {
	Data *resource `json:"data"`
	resource
}

type resource struct {
	ID         identifier      `json:"id"`
	Attributes attributes      `json:"attributes"`
	Booking    json.RawMessage `json:"booking"`
}

type attributes struct {
	LineItems      []json.RawMessage `json:"lineItems"`
	PayinTotal     json.RawMessage   `json:"payinTotal"`
	PayoutTotal    json.RawMessage   `json:"payoutTotal"`
	Status         string            `json:"status"`
	LastTransition string            `json:"lastTransition"`
}

type lineItemWire struct {
	Code       string          `json:"code"`
	IncludeFor []string        `json:"includeFor"`
	Quantity   json.RawMessage `json:"quantity"`
	UnitPrice  json.RawMessage `json:"unitPrice"`
	LineTotal  json.RawMessage `json:"lineTotal"`
	Reversal   bool            `json:"reversal"`
}

type moneyWire struct {
	Amount   *json.Number `json:"amount"`
	Currency string       `json:"currency"`
}

type bookingWire struct {
	Attributes struct {
		Start        *time.Time `json:"start"`
		End          *time.Time `json:"end"`
		DisplayStart *time.Time `json:"displayStart"`
		DisplayEnd   *time.Time `json:"displayEnd"`
	} `json:"attributes"`
}

// identifier accepts both "id" and {"uuid": "id"}.
type identifier string

func (id *identifier) UnmarshalJSON(data []byte) error {
	if option.IsEmpty(data) {
		*id = ""
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*id = identifier(raw)
		return nil
	}
	var wrapped struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*id = identifier(wrapped.UUID)
	return nil
}

// Decode parses a transaction snapshot. Both the bare resource and the
// {"data": resource} response shape are accepted.
func Decode(data []byte) (domain.Transaction, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	res := env.resource
	if env.Data != nil {
		res = *env.Data
	}

	tx := domain.Transaction{
		ID:     strings.TrimSpace(string(res.ID)),
		Status: status(res.Attributes.Status, res.Attributes.LastTransition),
	}

	var err error
	if tx.PayinTotal, err = decodeMoney(res.Attributes.PayinTotal); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: payinTotal: %v", domain.ErrInvalidSnapshot, err)
	}
	if tx.PayoutTotal, err = decodeMoney(res.Attributes.PayoutTotal); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: payoutTotal: %v", domain.ErrInvalidSnapshot, err)
	}
	if tx.Booking, err = decodeBooking(res.Booking); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: booking: %v", domain.ErrInvalidSnapshot, err)
	}

	tx.LineItems = make([]domain.LineItem, 0, len(res.Attributes.LineItems))
	for i, raw := range res.Attributes.LineItems {
		if option.IsEmpty(raw) {
			continue
		}
		item, err := decodeLineItem(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("lineItems[%d]: %w", i, err)
		}
		tx.LineItems = append(tx.LineItems, item)
	}
	return tx, nil
}

func decodeLineItem(raw json.RawMessage) (domain.LineItem, error) {
	var wire lineItemWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.LineItem{}, fmt.Errorf("%w: %v", domain.ErrInvalidLineItem, err)
	}

	code := strings.TrimSpace(wire.Code)
	if !strings.HasPrefix(code, domain.CodePrefix) || code == domain.CodePrefix {
		return domain.LineItem{}, fmt.Errorf("%w: code %q", domain.ErrInvalidLineItem, code)
	}
	if len(wire.IncludeFor) == 0 {
		return domain.LineItem{}, fmt.Errorf("%w: %s: includeFor is empty", domain.ErrInvalidLineItem, code)
	}

	item := domain.LineItem{
		Code:       domain.Code(code),
		IncludeFor: make([]domain.Role, 0, len(wire.IncludeFor)),
		Reversal:   wire.Reversal,
	}
	for _, raw := range wire.IncludeFor {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return domain.LineItem{}, fmt.Errorf("%w: %s: includeFor %q", domain.ErrInvalidLineItem, code, raw)
		}
		item.IncludeFor = append(item.IncludeFor, role)
	}

	if !option.IsEmpty(wire.Quantity) {
		var qty decimal.Decimal
		if err := json.Unmarshal(wire.Quantity, &qty); err != nil {
			return domain.LineItem{}, fmt.Errorf("%w: %s: quantity: %v", domain.ErrInvalidLineItem, code, err)
		}
		item.Quantity = option.Some(qty)
	}

	unitPrice, err := decodeMoney(wire.UnitPrice)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("%w: %s: unitPrice: %v", domain.ErrInvalidLineItem, code, err)
	}
	item.UnitPrice = unitPrice

	// A broken lineTotal is kept as a flag so the commission checks can report
	// it on the row instead of failing the whole snapshot.
	lineTotal, err := decodeMoney(wire.LineTotal)
	if err != nil {
		item.Malformed = true
	} else {
		item.LineTotal = lineTotal
	}
	return item, nil
}

func decodeMoney(raw json.RawMessage) (option.Option[money.Money], error) {
	if option.IsEmpty(raw) {
		return option.None[money.Money](), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var wire moneyWire
	if err := dec.Decode(&wire); err != nil {
		return option.None[money.Money](), err
	}
	if wire.Amount == nil {
		return option.None[money.Money](), fmt.Errorf("amount is missing")
	}
	amount, err := wire.Amount.Int64()
	if err != nil {
		return option.None[money.Money](), fmt.Errorf("amount %s is not an integer", wire.Amount.String())
	}
	currency := money.NormalizeCurrency(wire.Currency)
	if err := money.ValidateCurrency(currency); err != nil {
		return option.None[money.Money](), err
	}
	return option.Some(money.New(amount, currency)), nil
}

func decodeBooking(raw json.RawMessage) (option.Option[domain.Booking], error) {
	if option.IsEmpty(raw) {
		return option.None[domain.Booking](), nil
	}
	var wire bookingWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return option.None[domain.Booking](), err
	}
	attrs := wire.Attributes
	if attrs.Start == nil || attrs.End == nil {
		return option.None[domain.Booking](), nil
	}
	if attrs.End.Before(*attrs.Start) {
		return option.None[domain.Booking](), fmt.Errorf("end %s is before start %s", attrs.End.Format(time.RFC3339), attrs.Start.Format(time.RFC3339))
	}
	return option.Some(domain.Booking{
		Start:        *attrs.Start,
		End:          *attrs.End,
		DisplayStart: attrs.DisplayStart,
		DisplayEnd:   attrs.DisplayEnd,
	}), nil
}
