package waiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/internal/waiter"
	"github.com/rxtech-lab/argo-execution/mocks"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WaiterTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	reader     *mocks.MockOrderStateReader
	openOrders *mocks.MockOpenOrdersSource
	mode       *mocks.MockModeProvider
	waiter     *waiter.Waiter
	ctx        context.Context
}

func TestWaiterSuite(t *testing.T) {
	suite.Run(t, new(WaiterTestSuite))
}

func (suite *WaiterTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.reader = mocks.NewMockOrderStateReader(suite.ctrl)
	suite.openOrders = mocks.NewMockOpenOrdersSource(suite.ctrl)
	suite.mode = mocks.NewMockModeProvider(suite.ctrl)
	suite.ctx = context.Background()

	suite.waiter = waiter.NewWaiter(suite.reader, suite.openOrders, suite.mode, config.WaiterConfig{
		PollInterval:    5 * time.Millisecond,
		StopLossTimeout: 50 * time.Millisecond,
		OrdersTimeout:   optional.None[time.Duration](),
	}, logger.NewNopLogger())
}

func (suite *WaiterTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func newOrder(id string) *types.Order {
	order := types.NewOrder("BTCUSDT", types.PurchaseTypeBuy, types.OrderTypeLimit, decimal.NewFromInt(1), decimal.NewFromInt(100))
	order.ID = id

	return order
}

func (suite *WaiterTestSuite) TestBacktestingFailsWithoutWaiting() {
	suite.mode.EXPECT().IsBacktesting().Return(true)

	start := time.Now()
	err := suite.waiter.WaitForOrdersClose(suite.ctx, []*types.Order{newOrder("a")}, optional.Some(time.Hour))

	suite.True(errors.HasCode(err, errors.ErrCodeWaitCancelled))
	suite.ErrorIs(err, context.Canceled)
	suite.Less(time.Since(start), 50*time.Millisecond)
}

func (suite *WaiterTestSuite) TestReturnsOnceOrdersAndChainsAreSettled() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	entry := newOrder("entry")
	stop := newOrder("stop")
	entry.AddChainedOrder(stop)

	gomock.InOrder(
		suite.reader.EXPECT().IsClosed(gomock.Any(), entry).Return(false, nil),
		suite.reader.EXPECT().IsClosed(gomock.Any(), entry).Return(true, nil),
		suite.reader.EXPECT().IsTrackedAsOpen(gomock.Any(), stop).Return(false, nil),
		suite.reader.EXPECT().IsClosed(gomock.Any(), stop).Return(false, nil),
		suite.reader.EXPECT().IsClosed(gomock.Any(), entry).Return(true, nil),
		suite.reader.EXPECT().IsTrackedAsOpen(gomock.Any(), stop).Return(true, nil),
	)

	err := suite.waiter.WaitForOrdersClose(suite.ctx, []*types.Order{entry}, optional.Some(time.Second))
	suite.NoError(err)
}

func (suite *WaiterTestSuite) TestClosedChainedOrderCounts() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	entry := newOrder("entry")
	stop := newOrder("stop")
	entry.AddChainedOrder(stop)

	suite.reader.EXPECT().IsClosed(gomock.Any(), entry).Return(true, nil)
	suite.reader.EXPECT().IsTrackedAsOpen(gomock.Any(), stop).Return(false, nil)
	suite.reader.EXPECT().IsClosed(gomock.Any(), stop).Return(true, nil)

	suite.NoError(suite.waiter.WaitForOrderClose(suite.ctx, entry, optional.None[time.Duration]()))
}

func (suite *WaiterTestSuite) TestTransientErrorsAreRetried() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	order := newOrder("a")

	gomock.InOrder(
		suite.reader.EXPECT().IsClosed(gomock.Any(), order).Return(false, errors.New(errors.ErrCodeOrderStateTransient, "filled while reading")),
		suite.reader.EXPECT().IsClosed(gomock.Any(), order).Return(true, nil),
	)

	suite.NoError(suite.waiter.WaitForOrdersClose(suite.ctx, []*types.Order{order}, optional.Some(time.Second)))
}

func (suite *WaiterTestSuite) TestOtherErrorsAreReturned() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	order := newOrder("a")
	suite.reader.EXPECT().IsClosed(gomock.Any(), order).Return(false, errors.New(errors.ErrCodeQueryFailed, "boom"))

	err := suite.waiter.WaitForOrdersClose(suite.ctx, []*types.Order{order}, optional.Some(time.Second))
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *WaiterTestSuite) TestTimeout() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	order := newOrder("a")
	suite.reader.EXPECT().IsClosed(gomock.Any(), order).Return(false, nil).AnyTimes()

	err := suite.waiter.WaitForOrdersClose(suite.ctx, []*types.Order{order}, optional.Some(20*time.Millisecond))
	suite.True(errors.HasCode(err, errors.ErrCodeWaitTimeout))
	suite.ErrorIs(err, context.DeadlineExceeded)
}

func (suite *WaiterTestSuite) TestCancellation() {
	suite.mode.EXPECT().IsBacktesting().Return(false)

	order := newOrder("a")
	suite.reader.EXPECT().IsClosed(gomock.Any(), order).Return(false, nil).AnyTimes()

	ctx, cancel := context.WithCancel(suite.ctx)
	time.AfterFunc(15*time.Millisecond, cancel)

	err := suite.waiter.WaitForOrdersClose(ctx, []*types.Order{order}, optional.None[time.Duration]())
	suite.True(errors.HasCode(err, errors.ErrCodeWaitCancelled))
}

func (suite *WaiterTestSuite) TestStopLossFoundByTagOrGroup() {
	suite.mode.EXPECT().IsBacktesting().Return(false).Times(2)

	stop := newOrder("stop")
	stop.Tag = "entry-1-sl"
	stop.Group = "entry-1"

	gomock.InOrder(
		suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return([]*types.Order{}, nil),
		suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return([]*types.Order{newOrder("other"), stop}, nil),
		suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return([]*types.Order{stop}, nil),
	)

	found, err := suite.waiter.WaitForStopLossOpen(suite.ctx, "entry-1-sl", optional.None[time.Duration]())
	suite.Require().NoError(err)
	suite.Same(stop, found.Unwrap())

	found, err = suite.waiter.WaitForStopLossOpen(suite.ctx, "entry-1", optional.None[time.Duration]())
	suite.Require().NoError(err)
	suite.Same(stop, found.Unwrap())
}

func (suite *WaiterTestSuite) TestStopLossTimeoutReturnsNone() {
	suite.mode.EXPECT().IsBacktesting().Return(false)
	suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return([]*types.Order{newOrder("other")}, nil).AnyTimes()

	found, err := suite.waiter.WaitForStopLossOpen(suite.ctx, "missing", optional.Some(20*time.Millisecond))
	suite.NoError(err)
	suite.True(found.IsNone())
}

func (suite *WaiterTestSuite) TestStopLossScansOnceWhileBacktesting() {
	suite.mode.EXPECT().IsBacktesting().Return(true)
	suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return([]*types.Order{}, nil).Times(1)

	found, err := suite.waiter.WaitForStopLossOpen(suite.ctx, "missing", optional.Some(time.Hour))
	suite.NoError(err)
	suite.True(found.IsNone())
}

func (suite *WaiterTestSuite) TestStopLossCancelled() {
	suite.mode.EXPECT().IsBacktesting().Return(false)
	suite.openOrders.EXPECT().OpenOrders(gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.waiter.WaitForStopLossOpen(ctx, "missing", optional.Some(time.Second))
	suite.True(errors.HasCode(err, errors.ErrCodeWaitCancelled))
}

func (suite *WaiterTestSuite) TestStopLossEmptyTag() {
	_, err := suite.waiter.WaitForStopLossOpen(suite.ctx, "", optional.None[time.Duration]())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidArgument))
}
