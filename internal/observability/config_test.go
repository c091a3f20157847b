package observability

import (
	"testing"

	"github.com/smallbiznis/storefront/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "")

	cfg := LoadConfig(config.Config{
		AppName:      "storefront",
		AppVersion:   "1.2.3",
		Environment:  "production",
		OTLPEndpoint: "collector:4317",
		Metrics:      config.MetricsConfig{Enabled: true, Exporter: "grpc"},
	})

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.True(t, cfg.Debug())
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "collector:4317", cfg.MetricsEndpoint)
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	t.Setenv("DEPLOYMENT_ENV", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := LoadConfig(config.Config{Environment: "development"})

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.False(t, cfg.OtelEnabled)
}

func TestLoadConfig_ClampsSamplingRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLING_RATIO", "4")

	cfg := LoadConfig(config.Config{Environment: "production"})
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
}

func TestDebugDependsOnEnvironment(t *testing.T) {
	assert.True(t, Config{Environment: "development", LogLevel: "info"}.Debug())
	assert.False(t, Config{Environment: "production", LogLevel: "info"}.Debug())
}

func TestConfig_DerivedComponentConfigs(t *testing.T) {
	cfg := Config{
		ServiceName:          "storefront",
		Environment:          "production",
		LogLevel:             "debug",
		OtelEnabled:          true,
		OtelExporterEndpoint: "collector:4317",
		OtelSamplingRatio:    0.25,
		MetricsEnabled:       true,
		MetricsEndpoint:      "collector:4318",
		MetricsProtocol:      "http",
	}

	log := cfg.loggerConfig()
	assert.True(t, log.Debug)
	assert.Equal(t, "debug", log.Level)

	tr := cfg.tracingConfig()
	assert.True(t, tr.Enabled)
	assert.Equal(t, "collector:4317", tr.ExporterEndpoint)
	assert.Equal(t, 0.25, tr.SamplingRatio)

	m := cfg.metricsConfig()
	assert.Equal(t, "collector:4318", m.ExporterEndpoint)
	assert.Equal(t, "http", m.ExporterProtocol)
}
