package fee

import "github.com/shopspring/decimal"

var (
	interactiveBrokerRate   = decimal.RequireFromString("0.005")
	interactiveBrokerMinFee = decimal.NewFromInt(1)
)

// InteractiveBrokerCommissionFee charges 0.005 per unit with a minimum of 1.
type InteractiveBrokerCommissionFee struct{}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{}
}

func (c *InteractiveBrokerCommissionFee) Calculate(quantity decimal.Decimal, _ decimal.Decimal) decimal.Decimal {
	fee := interactiveBrokerRate.Mul(quantity)
	if fee.LessThan(interactiveBrokerMinFee) {
		return interactiveBrokerMinFee
	}

	return fee
}
