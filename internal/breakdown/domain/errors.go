package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
)

var (
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidCurrency    = errors.New("invalid_currency")
	ErrInvalidTransaction = errors.New("invalid_transaction")
	ErrBreakdownRejected  = errors.New("breakdown_rejected")
	ErrInvalidRefund      = errors.New("invalid_refund")
)

// RowError explains why a row was omitted from the receipt.
type RowError struct {
	Kind RowKind
	Code lineitemdomain.Code
	Err  error
}

func (e *RowError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("breakdown row %s (%s): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("breakdown row %s: %v", e.Kind, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func (e *RowError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    RowKind             `json:"kind"`
		Code    lineitemdomain.Code `json:"code,omitempty"`
		Message string              `json:"message"`
	}{Kind: e.Kind, Code: e.Code, Message: e.Err.Error()})
}

// Err joins all row errors, or returns nil.
func (b Breakdown) Err() error {
	if len(b.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(b.Errors))
	for _, rowErr := range b.Errors {
		errs = append(errs, rowErr)
	}
	return errors.Join(errs...)
}
