package sizing_test

import (
	"context"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/sizing"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/mocks"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HoldingsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	portfolio *mocks.MockPortfolio
	prices    *mocks.MockPriceSource
	ctx       context.Context
}

func TestHoldingsSuite(t *testing.T) {
	suite.Run(t, new(HoldingsTestSuite))
}

func (suite *HoldingsTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.portfolio = mocks.NewMockPortfolio(suite.ctrl)
	suite.prices = mocks.NewMockPriceSource(suite.ctrl)
	suite.ctx = context.Background()
}

func (suite *HoldingsTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *HoldingsTestSuite) adapter(commissionFee fee.CommissionFee, precision int32) *sizing.BalanceHoldingsAdapter {
	return sizing.NewBalanceHoldingsAdapter(suite.portfolio, suite.prices, commissionFee, precision)
}

func (suite *HoldingsTestSuite) TestReduceOnlyCapsAtPosition() {
	suite.portfolio.EXPECT().OpenPositionSize(gomock.Any(), symbol).Return(d("-1.5"), nil)

	size, err := suite.adapter(nil, 8).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol:     symbol,
		Side:       types.PurchaseTypeBuy,
		Size:       d("3"),
		ReduceOnly: true,
	})
	suite.Require().NoError(err)
	suite.True(d("1.5").Equal(size))
}

func (suite *HoldingsTestSuite) TestCapsAtAvailableBalance() {
	suite.portfolio.EXPECT().AvailableBalance(gomock.Any(), symbol, types.PurchaseTypeBuy, false).Return(d("2"), nil)
	suite.prices.EXPECT().LivePrice(gomock.Any(), symbol).Return(d("100"), nil)

	size, err := suite.adapter(fee.NewZeroCommissionFee(), 8).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol: symbol,
		Side:   types.PurchaseTypeBuy,
		Size:   d("5"),
	})
	suite.Require().NoError(err)
	suite.True(d("2").Equal(size))
}

func (suite *HoldingsTestSuite) TestSmallerSizeIsKept() {
	suite.portfolio.EXPECT().AvailableBalance(gomock.Any(), symbol, types.PurchaseTypeBuy, false).Return(d("1000"), nil)
	suite.prices.EXPECT().LivePrice(gomock.Any(), symbol).Return(d("1"), nil)

	size, err := suite.adapter(fee.NewZeroCommissionFee(), 8).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol: symbol,
		Side:   types.PurchaseTypeBuy,
		Size:   d("200"),
	})
	suite.Require().NoError(err)
	suite.True(d("200").Equal(size))
}

func (suite *HoldingsTestSuite) TestStopOrdersUseTotalBalanceAndTargetPrice() {
	suite.portfolio.EXPECT().TotalBalance(gomock.Any(), symbol, types.PurchaseTypeSell).Return(d("1"), nil)

	size, err := suite.adapter(fee.NewBinanceCommissionFee(), 4).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol:      symbol,
		Side:        types.PurchaseTypeSell,
		Size:        d("1"),
		IsStopOrder: true,
		TargetPrice: optional.Some(d("30000")),
	})
	suite.Require().NoError(err)
	// 0.1% fee reserved, then rounded down to 4 decimals
	suite.True(d("0.999").Equal(size), "got %s", size)
}

func (suite *HoldingsTestSuite) TestRoundsDownToPrecision() {
	suite.portfolio.EXPECT().TotalBalance(gomock.Any(), symbol, types.PurchaseTypeBuy).Return(d("10"), nil)
	suite.prices.EXPECT().LivePrice(gomock.Any(), symbol).Return(d("3"), nil)

	size, err := suite.adapter(fee.NewZeroCommissionFee(), 2).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol:          symbol,
		Side:            types.PurchaseTypeBuy,
		Size:            d("1.23456"),
		UseTotalHolding: true,
	})
	suite.Require().NoError(err)
	suite.True(d("1.23").Equal(size))
}

func (suite *HoldingsTestSuite) TestNothingToTrade() {
	suite.portfolio.EXPECT().AvailableBalance(gomock.Any(), symbol, types.PurchaseTypeBuy, false).Return(d("0"), nil)
	suite.prices.EXPECT().LivePrice(gomock.Any(), symbol).Return(d("100"), nil)

	_, err := suite.adapter(nil, 8).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol: symbol,
		Side:   types.PurchaseTypeBuy,
		Size:   d("1"),
	})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidArgument))
}

func (suite *HoldingsTestSuite) TestPriceFailure() {
	suite.portfolio.EXPECT().AvailableBalance(gomock.Any(), symbol, types.PurchaseTypeBuy, false).Return(d("1"), nil)
	suite.prices.EXPECT().LivePrice(gomock.Any(), symbol).Return(d("0"), errors.New(errors.ErrCodeQueryFailed, "down"))

	_, err := suite.adapter(nil, 8).Adapt(suite.ctx, sizing.HoldingsRequest{
		Symbol: symbol,
		Side:   types.PurchaseTypeBuy,
		Size:   d("1"),
	})
	suite.True(errors.HasCode(err, errors.ErrCodePriceUnavailable))
}
