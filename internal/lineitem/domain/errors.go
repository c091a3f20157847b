package domain

import "errors"

var (
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidLineItem = errors.New("invalid_line_item")
	ErrInvalidSnapshot = errors.New("invalid_snapshot")

	// ErrMalformedLineTotal marks an item whose lineTotal was present but not
	// a money value. Amounts derived from it would understate the receipt.
	ErrMalformedLineTotal = errors.New("malformed_line_total")
)
