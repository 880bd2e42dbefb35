package types

import (
	"github.com/shopspring/decimal"
)

// QuantityType is the unit convention a strategy used when writing an amount or price spec.
type QuantityType string

const (
	// QuantityTypeDelta is a bare magnitude, e.g. "120".
	QuantityTypeDelta QuantityType = "DELTA"
	// QuantityTypeDeltaBase is a magnitude explicitly expressed in base asset units, e.g. "0.5b".
	QuantityTypeDeltaBase QuantityType = "DELTA_BASE"
	// QuantityTypePercent is a percentage of the total balance (amounts) or of the live price (offsets).
	QuantityTypePercent QuantityType = "PERCENT"
	// QuantityTypePositionPercent is a percentage of the current open position.
	QuantityTypePositionPercent QuantityType = "POSITION_PERCENT"
	// QuantityTypeAvailablePercent is a percentage of the available balance.
	QuantityTypeAvailablePercent QuantityType = "AVAILABLE_PERCENT"
	// QuantityTypeEntry is a price delta from the average entry price, e.g. "e10".
	QuantityTypeEntry QuantityType = "ENTRY"
	// QuantityTypeEntryPercent is a percentage move from the average entry price, e.g. "e10%".
	QuantityTypeEntryPercent QuantityType = "ENTRY_PERCENT"
	// QuantityTypeFlat is an absolute value, e.g. "@100".
	QuantityTypeFlat QuantityType = "FLAT"
	// QuantityTypeUnknown is never produced by the parser. Every resolver rejects it.
	QuantityTypeUnknown QuantityType = "UNKNOWN"
)

// AllQuantityTypes lists every quantity type in declaration order.
var AllQuantityTypes = []QuantityType{
	QuantityTypeDelta,
	QuantityTypeDeltaBase,
	QuantityTypePercent,
	QuantityTypePositionPercent,
	QuantityTypeAvailablePercent,
	QuantityTypeEntry,
	QuantityTypeEntryPercent,
	QuantityTypeFlat,
	QuantityTypeUnknown,
}

var hundred = decimal.NewFromInt(100)

// IsPercent reports whether the magnitude of this type is a percentage.
func (q QuantityType) IsPercent() bool {
	switch q {
	case QuantityTypePercent, QuantityTypePositionPercent, QuantityTypeAvailablePercent, QuantityTypeEntryPercent:
		return true
	case QuantityTypeDelta, QuantityTypeDeltaBase, QuantityTypeEntry, QuantityTypeFlat, QuantityTypeUnknown:
		return false
	default:
		return false
	}
}

// Quantity is a parsed spec: a unit convention and its magnitude.
type Quantity struct {
	Type  QuantityType    `json:"type" yaml:"type"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// Ratio returns Value/100. Only meaningful for percentage types.
func (q Quantity) Ratio() decimal.Decimal {
	return q.Value.Div(hundred)
}

// Factor returns 1 + Value/100, the multiplier a percentage offset applies to a price.
func (q Quantity) Factor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(q.Ratio())
}

func (q Quantity) String() string {
	return string(q.Type) + "(" + q.Value.String() + ")"
}
