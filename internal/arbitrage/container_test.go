package arbitrage

import (
	"testing"

	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContainerTestSuite struct {
	suite.Suite
	margin decimal.Decimal
}

func TestContainerSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}

func (suite *ContainerTestSuite) SetupTest() {
	suite.margin = decimal.RequireFromString("0.003")
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func (suite *ContainerTestSuite) TestIsSimilarLong() {
	container := NewContainer(price("100"), price("110"), types.PositionTypeLong, suite.margin)

	tests := []struct {
		name     string
		tick     string
		state    types.PositionType
		expected bool
	}{
		{"anchor price", "100", types.PositionTypeLong, true},
		{"inside corridor", "105", types.PositionTypeLong, true},
		{"just above lower band", "99.71", types.PositionTypeLong, true},
		{"on lower band", "99.7", types.PositionTypeLong, false},
		{"below lower band", "99", types.PositionTypeLong, false},
		{"just below upper band", "110.32", types.PositionTypeLong, true},
		{"on upper band", "110.33", types.PositionTypeLong, false},
		{"opposite direction at anchor", "100", types.PositionTypeShort, false},
		{"opposite direction inside corridor", "105", types.PositionTypeShort, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, container.IsSimilar(price(tc.tick), tc.state))
		})
	}
}

func (suite *ContainerTestSuite) TestIsSimilarShort() {
	container := NewContainer(price("110"), price("100"), types.PositionTypeShort, suite.margin)

	suite.True(container.IsSimilar(price("110"), types.PositionTypeShort))
	suite.True(container.IsSimilar(price("105"), types.PositionTypeShort))
	suite.True(container.IsSimilar(price("99.8"), types.PositionTypeShort))
	suite.False(container.IsSimilar(price("99.7"), types.PositionTypeShort))
	suite.True(container.IsSimilar(price("110.3"), types.PositionTypeShort))
	suite.False(container.IsSimilar(price("110.33"), types.PositionTypeShort))
	suite.False(container.IsSimilar(price("105"), types.PositionTypeLong))
}

func (suite *ContainerTestSuite) TestIsExpired() {
	long := NewContainer(price("100"), price("110"), types.PositionTypeLong, suite.margin)
	suite.False(long.IsExpired(price("110")))
	suite.False(long.IsExpired(price("109.67")))
	suite.True(long.IsExpired(price("109.6")))

	short := NewContainer(price("110"), price("100"), types.PositionTypeShort, suite.margin)
	suite.False(short.IsExpired(price("100")))
	suite.False(short.IsExpired(price("100.3")))
	suite.True(short.IsExpired(price("100.31")))
}

func (suite *ContainerTestSuite) TestOrderTracking() {
	container := NewContainer(price("100"), price("110"), types.PositionTypeLong, suite.margin)
	container.InitialOrderID = "initial"
	container.SetSecondaryOrders("limit", "stop")

	suite.True(container.ShouldBeDiscardedAfterOrderCancel("initial"))
	suite.False(container.ShouldBeDiscardedAfterOrderCancel("limit"))
	suite.False(container.ShouldBeDiscardedAfterOrderCancel("stop"))
	suite.False(container.ShouldBeDiscardedAfterOrderCancel(""))

	suite.True(container.IsWatchingThisOrder("initial"))
	suite.True(container.IsWatchingThisOrder("limit"))
	suite.True(container.IsWatchingThisOrder("stop"))
	suite.False(container.IsWatchingThisOrder("other"))
	suite.False(container.IsWatchingThisOrder(""))
}

func (suite *ContainerTestSuite) TestEmptySlotsDoNotMatch() {
	container := NewContainer(price("100"), price("110"), types.PositionTypeLong, suite.margin)

	suite.False(container.IsWatchingThisOrder(""))
	suite.False(container.ShouldBeDiscardedAfterOrderCancel(""))
}

func (suite *ContainerTestSuite) TestMarkInitialLegFilled() {
	container := NewContainer(price("100"), price("110"), types.PositionTypeLong, suite.margin)
	suite.False(container.InitialLegFilled())

	container.MarkInitialLegFilled()
	suite.True(container.InitialLegFilled())

	container.MarkInitialLegFilled()
	suite.True(container.InitialLegFilled())
}
