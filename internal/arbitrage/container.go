package arbitrage

import (
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Container tracks one open cross-exchange price window.
//
// LONG means buy here at the anchor and sell once the price reaches the other exchange's
// average (the target). SHORT is the reverse.
type Container struct {
	AnchorPrice decimal.Decimal
	TargetPrice decimal.Decimal
	State       types.PositionType

	InitialOrderID        string
	SecondaryLimitOrderID string
	SecondaryStopOrderID  string

	initialLegFilled bool
	margin           decimal.Decimal
}

// NewContainer opens a window. margin is the relative tolerance around the corridor,
// e.g. 0.003 for 0.3%.
func NewContainer(anchorPrice, targetPrice decimal.Decimal, state types.PositionType, margin decimal.Decimal) *Container {
	return &Container{
		AnchorPrice: anchorPrice,
		TargetPrice: targetPrice,
		State:       state,
		margin:      margin,
	}
}

// IsSimilar reports whether a tick with this price and direction belongs to this window.
func (c *Container) IsSimilar(tickPrice decimal.Decimal, tickState types.PositionType) bool {
	if tickState != c.State {
		return false
	}

	if tickPrice.Equal(c.AnchorPrice) {
		return true
	}

	lower := one.Sub(c.margin)
	upper := one.Add(c.margin)

	if c.State == types.PositionTypeLong {
		return c.AnchorPrice.Mul(lower).LessThan(tickPrice) && tickPrice.LessThan(c.TargetPrice.Mul(upper))
	}

	return c.TargetPrice.Mul(lower).LessThan(tickPrice) && tickPrice.LessThan(c.AnchorPrice.Mul(upper))
}

// IsExpired reports whether the other exchange's price moved back past the target, so the
// window closed even if nothing filled.
func (c *Container) IsExpired(otherExchangeAveragePrice decimal.Decimal) bool {
	if c.State == types.PositionTypeLong {
		return otherExchangeAveragePrice.LessThan(c.TargetPrice.Mul(one.Sub(c.margin)))
	}

	return otherExchangeAveragePrice.GreaterThan(c.TargetPrice.Mul(one.Add(c.margin)))
}

// ShouldBeDiscardedAfterOrderCancel is true only for the initial leg. A cancelled secondary
// leg leaves the window open.
func (c *Container) ShouldBeDiscardedAfterOrderCancel(orderID string) bool {
	return orderID != "" && orderID == c.InitialOrderID
}

// IsWatchingThisOrder reports whether orderID is one of the tracked legs.
func (c *Container) IsWatchingThisOrder(orderID string) bool {
	if orderID == "" {
		return false
	}

	return orderID == c.InitialOrderID || orderID == c.SecondaryLimitOrderID || orderID == c.SecondaryStopOrderID
}

// MarkInitialLegFilled records the initial leg fill. It never resets.
func (c *Container) MarkInitialLegFilled() {
	c.initialLegFilled = true
}

func (c *Container) InitialLegFilled() bool {
	return c.initialLegFilled
}

// SetSecondaryOrders records the hedge legs placed after the initial leg filled.
func (c *Container) SetSecondaryOrders(limitOrderID, stopOrderID string) {
	c.SecondaryLimitOrderID = limitOrderID
	c.SecondaryStopOrderID = stopOrderID
}
