package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a snapshot of the open position for one symbol.
// Quantity is signed: positive for long, negative for short.
type Position struct {
	Symbol          string          `json:"symbol" yaml:"symbol"`
	Quantity        decimal.Decimal `json:"quantity" yaml:"quantity"`
	LongEntryPrice  decimal.Decimal `json:"long_entry_price" yaml:"long_entry_price"`
	ShortEntryPrice decimal.Decimal `json:"short_entry_price" yaml:"short_entry_price"`
	OpenTimestamp   time.Time       `json:"open_timestamp" yaml:"open_timestamp"`
}

// Type returns LONG or SHORT depending on the sign of the quantity. A flat position is LONG.
func (p Position) Type() PositionType {
	if p.Quantity.IsNegative() {
		return PositionTypeShort
	}

	return PositionTypeLong
}

// IsOpen reports whether any quantity is held.
func (p Position) IsOpen() bool {
	return !p.Quantity.IsZero()
}

// AverageEntryPrice returns the average entry price of the given side of the position.
func (p Position) AverageEntryPrice(side PositionType) decimal.Decimal {
	if side == PositionTypeShort {
		return p.ShortEntryPrice
	}

	return p.LongEntryPrice
}
