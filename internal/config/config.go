package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/version"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the execution layer. It is built once at startup and passed
// to every component that needs it.
type Config struct {
	Version   string          `yaml:"version" json:"version" jsonschema:"title=Version,description=Library version the file was written for"`
	LogLevel  string          `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error" validate:"omitempty,oneof=debug info warn error"`
	Grammar   GrammarConfig   `yaml:"grammar" json:"grammar" jsonschema:"title=Grammar,description=Markers of the quantity spec grammar"`
	Sizing    SizingConfig    `yaml:"sizing" json:"sizing" jsonschema:"title=Sizing"`
	Waiter    WaiterConfig    `yaml:"waiter" json:"waiter" jsonschema:"title=Waiter"`
	Arbitrage ArbitrageConfig `yaml:"arbitrage" json:"arbitrage" jsonschema:"title=Arbitrage"`
	Binance   BinanceConfig   `yaml:"binance" json:"binance" jsonschema:"title=Binance"`
}

// GrammarConfig holds the prefixes and suffixes that select a quantity type.
type GrammarConfig struct {
	FlatPrefix             string `yaml:"flat_prefix" json:"flat_prefix" validate:"required"`
	EntryPrefix            string `yaml:"entry_prefix" json:"entry_prefix" validate:"required"`
	PercentSuffix          string `yaml:"percent_suffix" json:"percent_suffix" validate:"required"`
	AvailablePercentSuffix string `yaml:"available_percent_suffix" json:"available_percent_suffix" validate:"required"`
	PositionPercentSuffix  string `yaml:"position_percent_suffix" json:"position_percent_suffix" validate:"required"`
	TotalPercentSuffix     string `yaml:"total_percent_suffix" json:"total_percent_suffix" validate:"required"`
	BaseSuffix             string `yaml:"base_suffix" json:"base_suffix" validate:"required"`
}

type SizingConfig struct {
	// DecimalPrecision is the number of decimals order sizes are rounded down to.
	DecimalPrecision int32      `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"minimum=0,maximum=18" validate:"gte=0,lte=18"`
	Broker           fee.Broker `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
}

type WaiterConfig struct {
	PollInterval    time.Duration                  `yaml:"poll_interval" json:"poll_interval" validate:"gt=0"`
	StopLossTimeout time.Duration                  `yaml:"stop_loss_timeout" json:"stop_loss_timeout" validate:"gt=0"`
	OrdersTimeout   optional.Option[time.Duration] `yaml:"orders_timeout" json:"orders_timeout"`
}

type ArbitrageConfig struct {
	SimilarityMargin decimal.Decimal `yaml:"similarity_margin" json:"similarity_margin"`
	TriggerRatio     decimal.Decimal `yaml:"trigger_ratio" json:"trigger_ratio"`
}

// BinanceConfig contains configuration for the live Binance adapter.
type BinanceConfig struct {
	ApiKey     string `yaml:"api_key" json:"api_key" jsonschema:"title=API Key,description=Binance API key"`
	SecretKey  string `yaml:"secret_key" json:"secret_key" jsonschema:"title=Secret Key,description=Binance API secret key"`
	BaseURL    string `yaml:"base_url" json:"base_url" validate:"omitempty,url"`
	QuoteAsset string `yaml:"quote_asset" json:"quote_asset" validate:"required"`
	Testnet    bool   `yaml:"testnet" json:"testnet"`
}

// DefaultGrammar returns the standard marker table.
func DefaultGrammar() GrammarConfig {
	return GrammarConfig{
		FlatPrefix:             "@",
		EntryPrefix:            "e",
		PercentSuffix:          "%",
		AvailablePercentSuffix: "a%",
		PositionPercentSuffix:  "p%",
		TotalPercentSuffix:     "t%",
		BaseSuffix:             "b",
	}
}

// Default returns a configuration with every default applied.
func Default() Config {
	return Config{
		Version:  version.Version,
		LogLevel: "info",
		Grammar:  DefaultGrammar(),
		Sizing: SizingConfig{
			DecimalPrecision: 8,
			Broker:           fee.BrokerZero,
		},
		Waiter: WaiterConfig{
			PollInterval:    time.Second,
			StopLossTimeout: 60 * time.Second,
			OrdersTimeout:   optional.None[time.Duration](),
		},
		Arbitrage: ArbitrageConfig{
			SimilarityMargin: decimal.RequireFromString("0.003"),
			TriggerRatio:     decimal.RequireFromString("0.005"),
		},
		Binance: BinanceConfig{
			QuoteAsset: "USDT",
		},
	}
}

// UnmarshalYAML overlays the document on top of the defaults. Omitted fields keep their default.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawWaiter struct {
		PollInterval    *time.Duration `yaml:"poll_interval"`
		StopLossTimeout *time.Duration `yaml:"stop_loss_timeout"`
		OrdersTimeout   *time.Duration `yaml:"orders_timeout"`
	}

	type rawArbitrage struct {
		SimilarityMargin *string `yaml:"similarity_margin"`
		TriggerRatio     *string `yaml:"trigger_ratio"`
	}

	type rawSizing struct {
		DecimalPrecision *int32     `yaml:"decimal_precision"`
		Broker           fee.Broker `yaml:"broker"`
	}

	type rawConfig struct {
		Version   string        `yaml:"version"`
		LogLevel  string        `yaml:"log_level"`
		Grammar   GrammarConfig `yaml:"grammar"`
		Sizing    rawSizing     `yaml:"sizing"`
		Waiter    rawWaiter     `yaml:"waiter"`
		Arbitrage rawArbitrage  `yaml:"arbitrage"`
		Binance   BinanceConfig `yaml:"binance"`
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*c = Default()

	if raw.Version != "" {
		c.Version = raw.Version
	}

	if raw.LogLevel != "" {
		c.LogLevel = raw.LogLevel
	}

	c.Grammar = mergeGrammar(c.Grammar, raw.Grammar)

	if raw.Sizing.DecimalPrecision != nil {
		c.Sizing.DecimalPrecision = *raw.Sizing.DecimalPrecision
	}

	if raw.Sizing.Broker != "" {
		c.Sizing.Broker = raw.Sizing.Broker
	}

	if raw.Waiter.PollInterval != nil {
		c.Waiter.PollInterval = *raw.Waiter.PollInterval
	}

	if raw.Waiter.StopLossTimeout != nil {
		c.Waiter.StopLossTimeout = *raw.Waiter.StopLossTimeout
	}

	if raw.Waiter.OrdersTimeout != nil {
		c.Waiter.OrdersTimeout = optional.Some(*raw.Waiter.OrdersTimeout)
	}

	if raw.Arbitrage.SimilarityMargin != nil {
		margin, err := decimal.NewFromString(*raw.Arbitrage.SimilarityMargin)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid arbitrage similarity margin", err)
		}

		c.Arbitrage.SimilarityMargin = margin
	}

	if raw.Arbitrage.TriggerRatio != nil {
		ratio, err := decimal.NewFromString(*raw.Arbitrage.TriggerRatio)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid arbitrage trigger ratio", err)
		}

		c.Arbitrage.TriggerRatio = ratio
	}

	c.Binance.ApiKey = raw.Binance.ApiKey
	c.Binance.SecretKey = raw.Binance.SecretKey
	c.Binance.BaseURL = raw.Binance.BaseURL
	c.Binance.Testnet = raw.Binance.Testnet

	if raw.Binance.QuoteAsset != "" {
		c.Binance.QuoteAsset = raw.Binance.QuoteAsset
	}

	return nil
}

// MarshalYAML writes the configuration in the shape UnmarshalYAML reads.
func (c Config) MarshalYAML() (any, error) {
	type sizing struct {
		DecimalPrecision int32      `yaml:"decimal_precision"`
		Broker           fee.Broker `yaml:"broker"`
	}

	type waiter struct {
		PollInterval    string `yaml:"poll_interval"`
		StopLossTimeout string `yaml:"stop_loss_timeout"`
		OrdersTimeout   string `yaml:"orders_timeout,omitempty"`
	}

	type arbitrage struct {
		SimilarityMargin string `yaml:"similarity_margin"`
		TriggerRatio     string `yaml:"trigger_ratio"`
	}

	type document struct {
		Version   string        `yaml:"version"`
		LogLevel  string        `yaml:"log_level"`
		Grammar   GrammarConfig `yaml:"grammar"`
		Sizing    sizing        `yaml:"sizing"`
		Waiter    waiter        `yaml:"waiter"`
		Arbitrage arbitrage     `yaml:"arbitrage"`
		Binance   BinanceConfig `yaml:"binance"`
	}

	out := document{
		Version:  c.Version,
		LogLevel: c.LogLevel,
		Grammar:  c.Grammar,
		Sizing: sizing{
			DecimalPrecision: c.Sizing.DecimalPrecision,
			Broker:           c.Sizing.Broker,
		},
		Waiter: waiter{
			PollInterval:    c.Waiter.PollInterval.String(),
			StopLossTimeout: c.Waiter.StopLossTimeout.String(),
		},
		Arbitrage: arbitrage{
			SimilarityMargin: c.Arbitrage.SimilarityMargin.String(),
			TriggerRatio:     c.Arbitrage.TriggerRatio.String(),
		},
		Binance: c.Binance,
	}

	if c.Waiter.OrdersTimeout.IsSome() {
		out.Waiter.OrdersTimeout = c.Waiter.OrdersTimeout.Unwrap().String()
	}

	return out, nil
}

func mergeGrammar(base, override GrammarConfig) GrammarConfig {
	pick := func(def, value string) string {
		if value == "" {
			return def
		}

		return value
	}

	return GrammarConfig{
		FlatPrefix:             pick(base.FlatPrefix, override.FlatPrefix),
		EntryPrefix:            pick(base.EntryPrefix, override.EntryPrefix),
		PercentSuffix:          pick(base.PercentSuffix, override.PercentSuffix),
		AvailablePercentSuffix: pick(base.AvailablePercentSuffix, override.AvailablePercentSuffix),
		PositionPercentSuffix:  pick(base.PositionPercentSuffix, override.PositionPercentSuffix),
		TotalPercentSuffix:     pick(base.TotalPercentSuffix, override.TotalPercentSuffix),
		BaseSuffix:             pick(base.BaseSuffix, override.BaseSuffix),
	}
}

// Validate validates the configuration and checks that it was written for a compatible version.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if !c.Arbitrage.SimilarityMargin.IsPositive() || c.Arbitrage.SimilarityMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "arbitrage similarity margin must be in (0, 1), got %s", c.Arbitrage.SimilarityMargin)
	}

	if !c.Arbitrage.TriggerRatio.IsPositive() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "arbitrage trigger ratio must be positive, got %s", c.Arbitrage.TriggerRatio)
	}

	if err := c.Grammar.validateDistinct(); err != nil {
		return err
	}

	return version.CheckConfigCompatibility(version.Version, c.Version)
}

// validateDistinct rejects grammars where two markers would be ambiguous.
func (g GrammarConfig) validateDistinct() error {
	seen := map[string]string{}

	markers := []struct {
		name  string
		value string
	}{
		{"flat_prefix", g.FlatPrefix},
		{"entry_prefix", g.EntryPrefix},
		{"percent_suffix", g.PercentSuffix},
		{"available_percent_suffix", g.AvailablePercentSuffix},
		{"position_percent_suffix", g.PositionPercentSuffix},
		{"total_percent_suffix", g.TotalPercentSuffix},
		{"base_suffix", g.BaseSuffix},
	}

	for _, marker := range markers {
		if other, ok := seen[marker.value]; ok {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "grammar markers %s and %s are both %q", other, marker.name, marker.value)
		}

		seen[marker.value] = marker.name
	}

	return nil
}

// ZapLevel returns the configured log level.
func (c *Config) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}

// Parse parses and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	config := Default()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse configuration", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read configuration %s", path)
	}

	return Parse(data)
}
