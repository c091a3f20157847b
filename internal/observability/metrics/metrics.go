package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	breakdownsBuilt    metric.Int64Counter
	breakdownRowErrors metric.Int64Counter
	breakdownsRejected metric.Int64Counter
	receiptsRendered   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "storefront"
	}
	meter := provider.Meter(name)

	breakdownsBuilt, err := meter.Int64Counter("storefront_breakdown_built_total")
	if err != nil {
		return nil, err
	}
	breakdownRowErrors, err := meter.Int64Counter("storefront_breakdown_row_errors_total")
	if err != nil {
		return nil, err
	}
	breakdownsRejected, err := meter.Int64Counter("storefront_breakdown_rejected_total")
	if err != nil {
		return nil, err
	}
	receiptsRendered, err := meter.Int64Counter("storefront_receipt_rendered_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		breakdownsBuilt:    breakdownsBuilt,
		breakdownRowErrors: breakdownRowErrors,
		breakdownsRejected: breakdownsRejected,
		receiptsRendered:   receiptsRendered,
	}, nil
}

// RecordBreakdownBuilt increments built breakdown counts.
func (m *Metrics) RecordBreakdownBuilt(ctx context.Context, role, unitType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("role", strings.TrimSpace(role)),
		attribute.String("unit_type", strings.TrimSpace(unitType)),
	)
	m.breakdownsBuilt.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRowError increments omitted row counts.
func (m *Metrics) RecordRowError(ctx context.Context, role, rowKind, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("role", strings.TrimSpace(role)),
		attribute.String("row_kind", strings.TrimSpace(rowKind)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.breakdownRowErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBreakdownRejected increments strict-mode rejections.
func (m *Metrics) RecordBreakdownRejected(ctx context.Context, role string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("role", strings.TrimSpace(role)))
	m.breakdownsRejected.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReceiptRendered increments rendered receipt counts.
func (m *Metrics) RecordReceiptRendered(ctx context.Context, format string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("format", strings.TrimSpace(format)))
	m.receiptsRendered.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"role":        {},
	"unit_type":   {},
	"row_kind":    {},
	"reason":      {},
	"format":      {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
