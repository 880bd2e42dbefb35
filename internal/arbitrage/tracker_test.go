package arbitrage

import (
	"testing"

	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/stretchr/testify/suite"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker *Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (suite *TrackerTestSuite) SetupTest() {
	suite.tracker = NewTracker(config.Default().Arbitrage, logger.NewNopLogger())
}

func (suite *TrackerTestSuite) TestOpensWhenGapExceedsRatio() {
	suite.Equal(DecisionNone, suite.tracker.OnPriceUpdate(price("100"), price("100.4")))
	suite.True(suite.tracker.Current().IsNone())

	suite.Equal(DecisionOpened, suite.tracker.OnPriceUpdate(price("100"), price("101")))

	container := suite.tracker.Current().Unwrap()
	suite.Equal(types.PositionTypeLong, container.State)
	suite.True(price("100").Equal(container.AnchorPrice))
	suite.True(price("101").Equal(container.TargetPrice))
}

func (suite *TrackerTestSuite) TestOpensShortWhenOwnPriceIsHigher() {
	suite.Equal(DecisionOpened, suite.tracker.OnPriceUpdate(price("102"), price("100")))
	suite.Equal(types.PositionTypeShort, suite.tracker.Current().Unwrap().State)
}

func (suite *TrackerTestSuite) TestKeepsSimilarTicksAndExpires() {
	suite.tracker.OnPriceUpdate(price("100"), price("101"))

	suite.Equal(DecisionKept, suite.tracker.OnPriceUpdate(price("100.5"), price("101")))
	// a short opportunity does not replace the open long window
	suite.Equal(DecisionIgnored, suite.tracker.OnPriceUpdate(price("103"), price("101")))

	suite.Equal(DecisionExpired, suite.tracker.OnPriceUpdate(price("100"), price("100.6")))
	suite.True(suite.tracker.Current().IsNone())
}

func (suite *TrackerTestSuite) TestInvalidPrices() {
	suite.Equal(DecisionNone, suite.tracker.OnPriceUpdate(price("0"), price("101")))
	suite.Equal(DecisionNone, suite.tracker.OnPriceUpdate(price("100"), price("0")))
}

func (suite *TrackerTestSuite) TestCancelOnlyDiscardsOnInitialLeg() {
	suite.False(suite.tracker.OnOrderCancelled("initial"))

	suite.tracker.OnPriceUpdate(price("100"), price("101"))
	container := suite.tracker.Current().Unwrap()
	container.InitialOrderID = "initial"
	container.SetSecondaryOrders("limit", "stop")

	suite.False(suite.tracker.OnOrderCancelled("limit"))
	suite.True(suite.tracker.Current().IsSome())

	suite.True(suite.tracker.OnOrderCancelled("initial"))
	suite.True(suite.tracker.Current().IsNone())
}

func (suite *TrackerTestSuite) TestFillRouting() {
	suite.True(suite.tracker.OnOrderFilled("initial").IsNone())

	suite.tracker.OnPriceUpdate(price("100"), price("101"))
	container := suite.tracker.Current().Unwrap()
	container.InitialOrderID = "initial"

	suite.True(suite.tracker.OnOrderFilled("unrelated").IsNone())

	filled := suite.tracker.OnOrderFilled("initial")
	suite.True(filled.IsSome())
	suite.True(container.InitialLegFilled())
	suite.True(suite.tracker.Current().IsSome())

	container.SetSecondaryOrders("limit", "stop")
	completed := suite.tracker.OnOrderFilled("limit")
	suite.Same(container, completed.Unwrap())
	suite.True(suite.tracker.Current().IsNone())
}
