package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/commission"
	"github.com/smallbiznis/storefront/internal/config"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Metrics *metrics.Metrics                `optional:"true"`
	Config  *config.MarketplaceConfigHolder `optional:"true"`
	Catalog Catalog                         `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	config  *config.MarketplaceConfigHolder
	catalog Catalog
}

func NewService(p ServiceParam) breakdowndomain.Service {
	return &Service{
		log:     p.Log.Named("breakdown.service"),
		metrics: p.Metrics,
		config:  p.Config,
		catalog: p.Catalog,
	}
}

// Build renders the receipt for req.Role. With strictCommission enabled any
// omitted row rejects the whole breakdown; otherwise the partial receipt is
// returned with its row errors attached.
func (s *Service) Build(ctx context.Context, req breakdowndomain.BuildRequest) (breakdowndomain.Breakdown, error) {
	role, err := lineitemdomain.ParseRole(req.Role)
	if err != nil {
		return breakdowndomain.Breakdown{}, breakdowndomain.ErrInvalidRole
	}

	cfg := s.marketplaceConfig()
	currency := firstNonEmpty(req.Currency, cfg.Currency)
	locale := firstNonEmpty(req.Locale, cfg.Locale)
	name := firstNonEmpty(req.MarketplaceName, cfg.Name)

	builder := NewBuilder(WithCatalog(s.catalog), WithKnownCodes(knownCodes(cfg.KnownCodes)...))
	out, err := builder.Build(breakdowndomain.Input{
		Transaction:     req.Transaction,
		Role:            role,
		MarketplaceName: name,
		Currency:        currency,
		Formatter:       money.NewFormatter(locale, cfg.Location()),
	})
	if err != nil {
		return breakdowndomain.Breakdown{}, err
	}

	log := logger.WithContext(ctx, s.log).With(
		zap.String("transaction_id", req.Transaction.ID),
		zap.String("role", string(role)),
	)
	for _, rowErr := range out.Errors {
		reason := rowErrorReason(rowErr)
		fields := []zap.Field{
			zap.String("row_kind", string(rowErr.Kind)),
			zap.String("line_item_code", string(rowErr.Code)),
			zap.String("reason", reason),
			zap.Error(rowErr.Err),
		}
		var invalid *commission.InvalidCommissionError
		if errors.As(rowErr, &invalid) {
			if total, ok := invalid.Item.LineTotal.Get(); ok {
				fields = append(fields, zap.Stringer("line_total", total))
			}
		}
		log.Warn("breakdown row omitted", fields...)
		s.metrics.RecordRowError(ctx, string(role), string(rowErr.Kind), reason)
	}

	tracing.AnnotateBreakdown(ctx, string(role), string(out.UnitType), len(out.Rows), len(out.Errors))

	if cfg.StrictCommission && len(out.Errors) > 0 {
		s.metrics.RecordBreakdownRejected(ctx, string(role))
		return out, fmt.Errorf("%w: %w", breakdowndomain.ErrBreakdownRejected, out.Err())
	}

	s.metrics.RecordBreakdownBuilt(ctx, string(role), string(out.UnitType))
	log.Debug("breakdown built",
		zap.Int("rows", len(out.Rows)),
		zap.Int("row_errors", len(out.Errors)),
	)
	return out, nil
}

func (s *Service) marketplaceConfig() config.MarketplaceConfig {
	if s.config == nil {
		return config.DefaultMarketplaceConfig()
	}
	return s.config.Get()
}

func rowErrorReason(rowErr *breakdowndomain.RowError) string {
	var invalid *commission.InvalidCommissionError
	switch {
	case errors.As(rowErr, &invalid):
		return string(invalid.Reason)
	case errors.Is(rowErr, money.ErrCurrencyMismatch):
		return money.ErrCurrencyMismatch.Error()
	case errors.Is(rowErr, breakdowndomain.ErrInvalidRefund):
		return breakdowndomain.ErrInvalidRefund.Error()
	case errors.Is(rowErr, lineitemdomain.ErrMalformedLineTotal):
		return lineitemdomain.ErrMalformedLineTotal.Error()
	default:
		return "unknown"
	}
}

func knownCodes(raw []string) []lineitemdomain.Code {
	out := make([]lineitemdomain.Code, 0, len(raw))
	for _, code := range raw {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, lineitemdomain.Code(code))
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
