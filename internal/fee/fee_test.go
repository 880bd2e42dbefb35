package fee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CommissionFeeTestSuite struct {
	suite.Suite
}

func TestCommissionFeeSuite(t *testing.T) {
	suite.Run(t, new(CommissionFeeTestSuite))
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func (suite *CommissionFeeTestSuite) TestZeroCommissionFee() {
	fee := NewZeroCommissionFee()
	suite.NotNil(fee)

	for _, quantity := range []string{"0", "10", "10000", "-100"} {
		suite.True(fee.Calculate(d(quantity), d("100")).IsZero(), quantity)
	}
}

func (suite *CommissionFeeTestSuite) TestInteractiveBrokerCommissionFee() {
	fee := NewInteractiveBrokerCommissionFee()

	tests := []struct {
		name     string
		quantity string
		expected string
	}{
		{"zero quantity pays the minimum", "0", "1"},
		{"small quantity pays the minimum", "10", "1"},
		{"quantity at threshold", "200", "1"},
		{"large quantity", "1000", "5"},
		{"very large quantity", "10000", "50"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			result := fee.Calculate(d(tc.quantity), d("100"))
			suite.True(d(tc.expected).Equal(result), "got %s", result)
		})
	}
}

func (suite *CommissionFeeTestSuite) TestBinanceCommissionFee() {
	fee := NewBinanceCommissionFee()

	result := fee.Calculate(d("2"), d("30000"))
	suite.True(d("60").Equal(result), "got %s", result)
}

func (suite *CommissionFeeTestSuite) TestGetCommissionFeeHandler() {
	suite.IsType(&InteractiveBrokerCommissionFee{}, GetCommissionFeeHandler(BrokerInteractiveBroker))
	suite.IsType(&BinanceCommissionFee{}, GetCommissionFeeHandler(BrokerBinance))
	suite.IsType(&ZeroCommissionFee{}, GetCommissionFeeHandler(BrokerZero))
	suite.IsType(&ZeroCommissionFee{}, GetCommissionFeeHandler(Broker("unknown")))
	suite.Len(AllBrokers, 3)
}

func (suite *CommissionFeeTestSuite) TestMaxQuantity() {
	tests := []struct {
		name    string
		balance string
		price   string
		fee     CommissionFee
		check   func(result decimal.Decimal)
	}{
		{
			name:    "zero commission keeps the whole balance",
			balance: "1000",
			price:   "10",
			fee:     NewZeroCommissionFee(),
			check: func(result decimal.Decimal) {
				suite.True(d("1000").Equal(result))
			},
		},
		{
			name:    "non positive balance",
			balance: "0",
			price:   "10",
			fee:     NewZeroCommissionFee(),
			check: func(result decimal.Decimal) {
				suite.True(result.IsZero())
			},
		},
		{
			name:    "unknown price skips the fee reservation",
			balance: "5",
			price:   "0",
			fee:     NewBinanceCommissionFee(),
			check: func(result decimal.Decimal) {
				suite.True(d("5").Equal(result))
			},
		},
		{
			name:    "binance fee is reserved",
			balance: "1",
			price:   "30000",
			fee:     NewBinanceCommissionFee(),
			check: func(result decimal.Decimal) {
				suite.True(result.LessThan(d("1")))
				suite.True(result.GreaterThan(d("0.998")), "got %s", result)
			},
		},
		{
			name:    "interactive broker minimum fee is reserved",
			balance: "10",
			price:   "100",
			fee:     NewInteractiveBrokerCommissionFee(),
			check: func(result decimal.Decimal) {
				// 1 USD minimum fee at price 100 costs 0.01 units
				suite.True(result.LessThan(d("9.9901")), "got %s", result)
				suite.True(result.GreaterThan(d("9.98")), "got %s", result)
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			tc.check(MaxQuantity(d(tc.balance), d(tc.price), tc.fee))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestRoundToDecimalPrecision() {
	suite.True(d("1.23").Equal(RoundToDecimalPrecision(d("1.23999"), 2)))
	suite.True(d("1").Equal(RoundToDecimalPrecision(d("1.9"), 0)))
	suite.True(d("0.0001").Equal(RoundToDecimalPrecision(d("0.00019"), 4)))
}
