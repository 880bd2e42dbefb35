package config

import (
	"github.com/rxtech-lab/argo-execution/pkg/errors"
)

// ValidateCredentials checks that the keys needed by the live adapter are present.
func (c BinanceConfig) ValidateCredentials() error {
	if c.ApiKey == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "binance api key is required in live mode")
	}

	if c.SecretKey == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "binance secret key is required in live mode")
	}

	return nil
}
