package observability

import (
	"strings"

	"github.com/smallbiznis/storefront/internal/config"
	"github.com/spf13/viper"
)

// Config holds observability configuration derived from environment variables.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	MetricsEnabled  bool
	MetricsProtocol string
	MetricsEndpoint string
}

// LoadConfig layers OTEL_* and LOG_* environment variables over the process
// config. Development environments default to console logs and full sampling.
func LoadConfig(cfg config.Config) Config {
	v := viper.New()
	v.AutomaticEnv()

	environment := strings.TrimSpace(cfg.Environment)
	v.SetDefault("DEPLOYMENT_ENV", environment)
	environment = strings.TrimSpace(v.GetString("DEPLOYMENT_ENV"))
	dev := isDevEnv(environment)

	v.SetDefault("SERVICE_VERSION", cfg.AppVersion)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	if dev {
		v.SetDefault("LOG_FORMAT", "console")
	}
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTEL_SAMPLING_RATIO", 0.1)
	if dev {
		v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)
	}

	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "storefront"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"))
	otlpProtocol := lower(v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL"))
	if tracesProtocol := lower(v.GetString("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL")); tracesProtocol != "" {
		otlpProtocol = tracesProtocol
	}

	metricsEndpoint := strings.TrimSpace(cfg.Metrics.Endpoint)
	if metricsEndpoint == "" {
		metricsEndpoint = otlpEndpoint
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          environment,
		Version:              strings.TrimSpace(v.GetString("SERVICE_VERSION")),
		LogLevel:             lower(v.GetString("LOG_LEVEL")),
		LogFormat:            lower(v.GetString("LOG_FORMAT")),
		OtelEnabled:          v.GetBool("OTEL_ENABLED"),
		OtelExporterEndpoint: otlpEndpoint,
		OtelExporterProtocol: otlpProtocol,
		OtelSamplingRatio:    clampRatio(v.GetFloat64("OTEL_SAMPLING_RATIO")),
		MetricsEnabled:       cfg.Metrics.Enabled,
		MetricsProtocol:      lower(cfg.Metrics.Exporter),
		MetricsEndpoint:      metricsEndpoint,
	}
}

func (c Config) Debug() bool {
	if lower(c.LogLevel) == "debug" {
		return true
	}
	return isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch lower(env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func clampRatio(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

func lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
