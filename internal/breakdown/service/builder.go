package service

import (
	"errors"
	"strings"

	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/lineitem"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
)

const defaultMarketplaceName = "Marketplace"

// Builder turns a transaction snapshot into ordered receipt rows.
//
// Build is PURE:
// - No side effects
// - No I/O
// - Fully deterministic for identical input
type Builder struct {
	catalog    Catalog
	knownCodes map[lineitemdomain.Code]struct{}
}

type BuilderOption func(*Builder)

// WithCatalog replaces the label copy.
func WithCatalog(catalog Catalog) BuilderOption {
	return func(b *Builder) {
		if len(catalog) > 0 {
			b.catalog = catalog
		}
	}
}

// WithKnownCodes adds codes that should never be listed as unknown items.
func WithKnownCodes(codes ...lineitemdomain.Code) BuilderOption {
	return func(b *Builder) {
		for _, code := range codes {
			b.knownCodes[code] = struct{}{}
		}
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	known := make(map[lineitemdomain.Code]struct{}, len(lineitemdomain.KnownCodes))
	for code := range lineitemdomain.KnownCodes {
		known[code] = struct{}{}
	}
	b := &Builder{catalog: DefaultCatalog(), knownCodes: known}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildContext is the per-call state shared by row computations.
type buildContext struct {
	tx              lineitemdomain.Transaction
	role            lineitemdomain.Role
	items           []lineitemdomain.LineItem
	unitType        lineitemdomain.Code
	hasUnitType     bool
	currency        string
	marketplaceName string
	format          breakdowndomain.Formatter
	view            perspective
}

type rowFunc func(b *Builder, c *buildContext) (breakdowndomain.Row, bool, error)

type step struct {
	kind breakdowndomain.RowKind
	fn   rowFunc
}

// steps is the fixed receipt order. Commission steps emit the kind of the
// viewer's perspective.
var steps = []step{
	{breakdowndomain.RowBookingPeriod, (*Builder).bookingPeriod},
	{breakdowndomain.RowBasePrice, (*Builder).basePrice},
	{breakdowndomain.RowShippingFee, (*Builder).shippingFee},
	{breakdowndomain.RowPickupFee, (*Builder).pickupFee},
	{breakdowndomain.RowUnknownItems, (*Builder).unknownItems},
	{breakdowndomain.RowSubtotal, (*Builder).subtotal},
	{breakdowndomain.RowRefund, (*Builder).refund},
	{"", (*Builder).commission},
	{"", (*Builder).commissionRefund},
	{breakdowndomain.RowTotal, (*Builder).total},
}

// Build computes the receipt. Invalid rows are omitted and reported in
// Breakdown.Errors; the returned error is only for unusable input.
func (b *Builder) Build(in breakdowndomain.Input) (breakdowndomain.Breakdown, error) {
	view, ok := perspectives[in.Role]
	if !ok {
		return breakdowndomain.Breakdown{}, breakdowndomain.ErrInvalidRole
	}
	currency := money.NormalizeCurrency(in.Currency)
	if err := money.ValidateCurrency(currency); err != nil {
		return breakdowndomain.Breakdown{}, breakdowndomain.ErrInvalidCurrency
	}
	format := in.Formatter
	if format == nil {
		format = money.NewFormatter("en", nil)
	}
	name := strings.TrimSpace(in.MarketplaceName)
	if name == "" {
		name = defaultMarketplaceName
	}

	items := lineitem.ByRole(in.Transaction.LineItems, in.Role)
	unitType, hasUnitType := lineitem.UnitType(items)

	c := &buildContext{
		tx:              in.Transaction,
		role:            in.Role,
		items:           items,
		unitType:        unitType,
		hasUnitType:     hasUnitType,
		currency:        currency,
		marketplaceName: name,
		format:          format,
		view:            view,
	}

	out := breakdowndomain.Breakdown{
		TransactionID: in.Transaction.ID,
		Role:          in.Role,
		UnitType:      unitType,
		Rows:          make([]breakdowndomain.Row, 0, len(steps)),
	}
	for _, s := range steps {
		// A step may still emit its row while reporting parts it left out.
		row, emit, err := s.fn(b, c)
		if err != nil {
			out.Errors = append(out.Errors, asRowErrors(s.kind, err)...)
		}
		if !emit {
			continue
		}
		if row.ID == "" {
			row.ID = rowID(row.Kind)
		}
		out.Rows = append(out.Rows, row)
		if row.Kind.IsCommission() {
			out.CommissionNote = true
		}
	}
	if out.CommissionNote {
		out.NoteText = b.catalog.Format(keyCommissionFeeNote, map[string]string{"marketplaceName": name})
	}
	return out, nil
}

func asRowErrors(kind breakdowndomain.RowKind, err error) []*breakdowndomain.RowError {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*breakdowndomain.RowError
		for _, inner := range joined.Unwrap() {
			out = append(out, asRowErrors(kind, inner)...)
		}
		return out
	}
	var rowErr *breakdowndomain.RowError
	if errors.As(err, &rowErr) {
		return []*breakdowndomain.RowError{rowErr}
	}
	return []*breakdowndomain.RowError{{Kind: kind, Err: err}}
}

func rowID(kind breakdowndomain.RowKind) string {
	return strings.ReplaceAll(string(kind), "_", "-")
}
