package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuantityTestSuite struct {
	suite.Suite
}

func TestQuantitySuite(t *testing.T) {
	suite.Run(t, new(QuantityTestSuite))
}

func (suite *QuantityTestSuite) TestRatioAndFactor() {
	q := Quantity{Type: QuantityTypePercent, Value: decimal.NewFromInt(5)}
	suite.True(decimal.RequireFromString("0.05").Equal(q.Ratio()))
	suite.True(decimal.RequireFromString("1.05").Equal(q.Factor()))

	negative := Quantity{Type: QuantityTypePercent, Value: decimal.NewFromInt(-5)}
	suite.True(decimal.RequireFromString("0.95").Equal(negative.Factor()))
}

func (suite *QuantityTestSuite) TestIsPercent() {
	percentTypes := map[QuantityType]bool{
		QuantityTypePercent:          true,
		QuantityTypePositionPercent:  true,
		QuantityTypeAvailablePercent: true,
		QuantityTypeEntryPercent:     true,
	}

	for _, quantityType := range AllQuantityTypes {
		suite.Equal(percentTypes[quantityType], quantityType.IsPercent(), quantityType)
	}
}

func (suite *QuantityTestSuite) TestString() {
	q := Quantity{Type: QuantityTypeFlat, Value: decimal.NewFromInt(100)}
	suite.Equal("FLAT(100)", q.String())
}

func (suite *QuantityTestSuite) TestPosition() {
	short := Position{
		Symbol:          "BTCUSDT",
		Quantity:        decimal.NewFromInt(-3),
		LongEntryPrice:  decimal.Zero,
		ShortEntryPrice: decimal.NewFromInt(120),
	}
	suite.Equal(PositionTypeShort, short.Type())
	suite.True(short.IsOpen())
	suite.True(decimal.NewFromInt(120).Equal(short.AverageEntryPrice(PositionTypeShort)))

	flat := Position{Symbol: "BTCUSDT", Quantity: decimal.Zero}
	suite.Equal(PositionTypeLong, flat.Type())
	suite.False(flat.IsOpen())
}

func (suite *QuantityTestSuite) TestExecutionMode() {
	suite.True(ExecutionModeBacktest.IsBacktesting())
	suite.False(ExecutionModeLive.IsBacktesting())
}
