package fee

import "github.com/shopspring/decimal"

// CommissionFee computes the commission charged for an order.
type CommissionFee interface {
	// Calculate returns the fee, in quote currency, for trading quantity base units at price.
	Calculate(quantity decimal.Decimal, price decimal.Decimal) decimal.Decimal
}

type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerBinance           Broker = "binance"
	BrokerZero              Broker = "zero_commission"
)

var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerBinance,
	BrokerZero,
}

// GetCommissionFeeHandler returns the fee model of a broker. Unknown brokers are commission free.
func GetCommissionFeeHandler(broker Broker) CommissionFee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerBinance:
		return NewBinanceCommissionFee()
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
