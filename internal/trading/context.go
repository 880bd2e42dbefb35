// Package trading bundles sizing, order chaining and waiting behind the operations a
// strategy calls.
package trading

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/arbitrage"
	"github.com/rxtech-lab/argo-execution/internal/chain"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/quantity"
	"github.com/rxtech-lab/argo-execution/internal/sizing"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/internal/waiter"
	"github.com/shopspring/decimal"
)

// Venue is an account with an order book: the simulated account in backtests, an exchange
// adapter in live mode.
type Venue interface {
	sizing.Portfolio
	sizing.PriceSource
	chain.OrderCreator
	waiter.OrderStateReader
	waiter.OpenOrdersSource
	types.ModeProvider
	OnFill(hook types.OrderHook)
}

// OrderUpdateStreamer is a venue that pushes order updates. Without one, chained orders of a
// live venue are created when a status read sees their trigger fill.
type OrderUpdateStreamer interface {
	StreamOrderUpdates(ctx context.Context) error
}

// Context is what a strategy trades through.
type Context struct {
	config   *config.Config
	venue    Venue
	resolver *sizing.Resolver
	chain    *chain.Builder
	waiter   *waiter.Waiter
	logger   *logger.Logger
}

// NewContext builds a context from cfg. commissionFee may be nil, in which case the
// configured broker's schedule is used. The chain builder is registered as a fill hook of
// venue so dependents are created when their trigger fills.
func NewContext(cfg *config.Config, venue Venue, commissionFee fee.CommissionFee, log *logger.Logger) *Context {
	if commissionFee == nil {
		commissionFee = fee.GetCommissionFeeHandler(cfg.Sizing.Broker)
	}

	holdings := sizing.NewBalanceHoldingsAdapter(venue, venue, commissionFee, cfg.Sizing.DecimalPrecision)
	builder := chain.NewBuilder(venue, log)

	venue.OnFill(builder.OnOrderFilled)

	return &Context{
		config:   cfg,
		venue:    venue,
		resolver: sizing.NewResolver(quantity.NewParser(cfg.Grammar), venue, venue, holdings, log),
		chain:    builder,
		waiter:   waiter.NewWaiter(venue, venue, venue, cfg.Waiter, log),
		logger:   log.Named("trading"),
	}
}

// GetAmount resolves an order amount spec.
func (c *Context) GetAmount(ctx context.Context, request sizing.AmountRequest) (decimal.Decimal, error) {
	return c.resolver.GetAmount(ctx, request)
}

// GetTargetPosition resolves the order that reaches a position target.
func (c *Context) GetTargetPosition(ctx context.Context, request sizing.TargetPositionRequest) (sizing.TargetPosition, error) {
	return c.resolver.GetTargetPosition(ctx, request)
}

// GetOffset resolves a price offset spec into an absolute price.
func (c *Context) GetOffset(ctx context.Context, symbol string, spec string, side types.PurchaseType) (decimal.Decimal, error) {
	return c.resolver.GetOffset(ctx, symbol, spec, side)
}

func (c *Context) ChainOrder(ctx context.Context, base []*types.Order, chained []*types.Order, propagateFees bool) ([]*types.Order, error) {
	return c.chain.ChainOrder(ctx, base, chained, propagateFees)
}

// CreateOrder sends an order to the venue.
func (c *Context) CreateOrder(ctx context.Context, order *types.Order) error {
	return c.venue.CreateOrder(ctx, order)
}

func (c *Context) WaitForOrdersClose(ctx context.Context, orders []*types.Order, timeout optional.Option[time.Duration]) error {
	return c.waiter.WaitForOrdersClose(ctx, orders, timeout)
}

func (c *Context) WaitForStopLossOpen(ctx context.Context, tagOrGroup string, timeout optional.Option[time.Duration]) (optional.Option[*types.Order], error) {
	return c.waiter.WaitForStopLossOpen(ctx, tagOrGroup, timeout)
}

// NewArbitrageTracker returns a tracker using the configured margins.
func (c *Context) NewArbitrageTracker() *arbitrage.Tracker {
	return arbitrage.NewTracker(c.config.Arbitrage, c.logger)
}

// StreamOrderUpdates follows the venue's order updates until ctx is done. It returns at once
// for venues that have no stream; the simulated account fills synchronously.
func (c *Context) StreamOrderUpdates(ctx context.Context) error {
	streamer, ok := c.venue.(OrderUpdateStreamer)
	if !ok {
		return nil
	}

	return streamer.StreamOrderUpdates(ctx)
}

// OnFill registers an additional fill hook on the venue.
func (c *Context) OnFill(hook types.OrderHook) {
	c.venue.OnFill(hook)
}

// IsBacktesting reports whether the venue is simulated.
func (c *Context) IsBacktesting() bool {
	return c.venue.IsBacktesting()
}
