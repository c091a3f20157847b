package domain

import (
	"context"

	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
)

// BuildRequest asks for a receipt. Empty optional fields fall back to the
// marketplace configuration.
type BuildRequest struct {
	Transaction     lineitemdomain.Transaction
	Role            string
	MarketplaceName string
	Currency        string
	Locale          string
}

type Service interface {
	Build(ctx context.Context, req BuildRequest) (Breakdown, error)
}
