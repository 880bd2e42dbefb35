package fee

import "github.com/shopspring/decimal"

var binanceSpotRate = decimal.RequireFromString("0.001")

// BinanceCommissionFee charges the spot taker rate on the notional value.
type BinanceCommissionFee struct{}

func NewBinanceCommissionFee() CommissionFee {
	return &BinanceCommissionFee{}
}

func (c *BinanceCommissionFee) Calculate(quantity decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price).Mul(binanceSpotRate).Abs()
}
