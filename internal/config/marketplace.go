package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// MarketplaceConfig is the receipt presentation config shared by every
// breakdown request.
type MarketplaceConfig struct {
	Name             string   `mapstructure:"name"`
	Currency         string   `mapstructure:"currency"`
	Locale           string   `mapstructure:"locale"`
	Timezone         string   `mapstructure:"timezone"`
	StrictCommission bool     `mapstructure:"strictCommission"`
	KnownCodes       []string `mapstructure:"knownCodes"`
}

func DefaultMarketplaceConfig() MarketplaceConfig {
	return MarketplaceConfig{
		Name:     "Marketplace",
		Currency: "USD",
		Locale:   "en",
		Timezone: "UTC",
	}
}

// Location resolves Timezone, falling back to UTC.
func (c MarketplaceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return time.UTC
	}
	return loc
}

type MarketplaceConfigHolder struct {
	current atomic.Value // holds MarketplaceConfig
}

// NewMarketplaceConfigHolder loads marketplace.yml and keeps it hot-reloaded.
func NewMarketplaceConfigHolder() (*MarketplaceConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("marketplace")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/storefront/config") // Volume-mounted config
	v.AddConfigPath("/etc/storefront")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	return newMarketplaceConfigHolder(v, true)
}

// NewStaticMarketplaceConfigHolder wraps a fixed config. Used by tests and
// embedders that manage config themselves.
func NewStaticMarketplaceConfigHolder(cfg MarketplaceConfig) *MarketplaceConfigHolder {
	holder := &MarketplaceConfigHolder{}
	holder.current.Store(normalizeMarketplaceConfig(cfg))
	return holder
}

func newMarketplaceConfigHolder(v *viper.Viper, watch bool) (*MarketplaceConfigHolder, error) {
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultMarketplaceConfig()
	v.SetDefault("marketplace.name", defaults.Name)
	v.SetDefault("marketplace.currency", defaults.Currency)
	v.SetDefault("marketplace.locale", defaults.Locale)
	v.SetDefault("marketplace.timezone", defaults.Timezone)
	v.SetDefault("marketplace.strictCommission", defaults.StrictCommission)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	cfg, err := unmarshalMarketplaceConfig(v)
	if err != nil {
		return nil, err
	}

	holder := &MarketplaceConfigHolder{}
	holder.current.Store(cfg)

	if watch && fileLoaded {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			updated, err := unmarshalMarketplaceConfig(v)
			if err != nil {
				log.Printf("[marketplace-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[marketplace-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func unmarshalMarketplaceConfig(v *viper.Viper) (MarketplaceConfig, error) {
	var cfg MarketplaceConfig
	if err := v.UnmarshalKey("marketplace", &cfg); err != nil {
		return MarketplaceConfig{}, err
	}
	cfg = normalizeMarketplaceConfig(cfg)
	if err := validateMarketplaceConfig(cfg); err != nil {
		return MarketplaceConfig{}, err
	}
	return cfg, nil
}

func (h *MarketplaceConfigHolder) Get() MarketplaceConfig {
	return h.current.Load().(MarketplaceConfig)
}

func normalizeMarketplaceConfig(cfg MarketplaceConfig) MarketplaceConfig {
	defaults := DefaultMarketplaceConfig()
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	cfg.Currency = money.NormalizeCurrency(cfg.Currency)
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	cfg.Locale = strings.TrimSpace(cfg.Locale)
	if cfg.Locale == "" {
		cfg.Locale = defaults.Locale
	}
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	if cfg.Timezone == "" {
		cfg.Timezone = defaults.Timezone
	}
	return cfg
}

func validateMarketplaceConfig(cfg MarketplaceConfig) error {
	if err := money.ValidateCurrency(cfg.Currency); err != nil {
		return fmt.Errorf("marketplace.currency %q: %w", cfg.Currency, err)
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("marketplace.locale %q: %w", cfg.Locale, err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("marketplace.timezone %q: %w", cfg.Timezone, err)
	}
	for _, code := range cfg.KnownCodes {
		if !strings.HasPrefix(code, "line-item/") {
			return fmt.Errorf("marketplace.knownCodes %q must start with line-item/", code)
		}
	}
	return nil
}
