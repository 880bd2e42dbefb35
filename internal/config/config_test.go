package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaults() {
	config, err := Parse(nil)
	suite.Require().NoError(err)

	suite.Equal(DefaultGrammar(), config.Grammar)
	suite.Equal(int32(8), config.Sizing.DecimalPrecision)
	suite.Equal(fee.BrokerZero, config.Sizing.Broker)
	suite.Equal(time.Second, config.Waiter.PollInterval)
	suite.Equal(60*time.Second, config.Waiter.StopLossTimeout)
	suite.True(config.Waiter.OrdersTimeout.IsNone())
	suite.True(decimal.RequireFromString("0.003").Equal(config.Arbitrage.SimilarityMargin))
	suite.Equal("USDT", config.Binance.QuoteAsset)
	suite.Equal(zapcore.InfoLevel, config.ZapLevel())
}

func (suite *ConfigTestSuite) TestOverlay() {
	document := `
version: v0.4.0
log_level: debug
grammar:
  flat_prefix: "="
sizing:
  decimal_precision: 4
  broker: binance
waiter:
  poll_interval: 250ms
  orders_timeout: 30s
arbitrage:
  similarity_margin: "0.01"
binance:
  quote_asset: BUSD
  testnet: true
`
	config, err := Parse([]byte(document))
	suite.Require().NoError(err)

	suite.Equal("=", config.Grammar.FlatPrefix)
	suite.Equal("e", config.Grammar.EntryPrefix)
	suite.Equal(int32(4), config.Sizing.DecimalPrecision)
	suite.Equal(fee.BrokerBinance, config.Sizing.Broker)
	suite.Equal(250*time.Millisecond, config.Waiter.PollInterval)
	suite.Equal(60*time.Second, config.Waiter.StopLossTimeout)
	suite.Equal(30*time.Second, config.Waiter.OrdersTimeout.Unwrap())
	suite.True(decimal.RequireFromString("0.01").Equal(config.Arbitrage.SimilarityMargin))
	suite.True(decimal.RequireFromString("0.005").Equal(config.Arbitrage.TriggerRatio))
	suite.Equal("BUSD", config.Binance.QuoteAsset)
	suite.True(config.Binance.Testnet)
	suite.Equal(zapcore.DebugLevel, config.ZapLevel())
}

func (suite *ConfigTestSuite) TestInvalid() {
	tests := []struct {
		name     string
		document string
	}{
		{"unknown log level", "log_level: loud"},
		{"negative precision", "sizing:\n  decimal_precision: -1"},
		{"zero poll interval", "waiter:\n  poll_interval: 0s"},
		{"margin out of range", "arbitrage:\n  similarity_margin: \"1.5\""},
		{"unparsable margin", "arbitrage:\n  similarity_margin: abc"},
		{"ambiguous grammar", "grammar:\n  entry_prefix: \"@\""},
		{"incompatible version", "version: v1.0.0"},
		{"not yaml", "waiter: [1, 2"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := Parse([]byte(tc.document))
			suite.Error(err)
		})
	}
}

func (suite *ConfigTestSuite) TestIncompatibleVersionCode() {
	_, err := Parse([]byte("version: v2.0.0"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func (suite *ConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("sizing:\n  broker: interactive_broker\n"), 0o600))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(fee.BrokerInteractiveBroker, config.Sizing.Broker)

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestBinanceCredentials() {
	config := Default()
	suite.Error(config.Binance.ValidateCredentials())

	config.Binance.ApiKey = "key"
	config.Binance.SecretKey = "secret"
	suite.NoError(config.Binance.ValidateCredentials())
}

func (suite *ConfigTestSuite) TestMarshalReadsBack() {
	config := Default()
	config.Waiter.OrdersTimeout = optional.Some(90 * time.Second)
	config.Arbitrage.TriggerRatio = decimal.RequireFromString("0.01")

	data, err := yaml.Marshal(config)
	suite.Require().NoError(err)
	suite.Contains(string(data), "orders_timeout: 1m30s")

	parsed, err := Parse(data)
	suite.Require().NoError(err)
	suite.Equal(90*time.Second, parsed.Waiter.OrdersTimeout.Unwrap())
	suite.True(config.Arbitrage.TriggerRatio.Equal(parsed.Arbitrage.TriggerRatio))
	suite.Equal(config.Grammar, parsed.Grammar)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := Default()
	schema, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Contains(schema, "argo-execution-config")
	suite.Contains(schema, "poll_interval")
	suite.Contains(schema, "interactive_broker")
}
