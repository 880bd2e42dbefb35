package arbitrage

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Decision is what a price update did to the tracked window.
type Decision string

const (
	DecisionNone    Decision = "none"
	DecisionOpened  Decision = "opened"
	DecisionKept    Decision = "kept"
	DecisionIgnored Decision = "ignored"
	DecisionExpired Decision = "expired"
)

// Tracker owns at most one Container. It is driven by one strategy and is not safe for
// concurrent use.
type Tracker struct {
	container    optional.Option[*Container]
	margin       decimal.Decimal
	triggerRatio decimal.Decimal
	logger       *logger.Logger
}

func NewTracker(cfg config.ArbitrageConfig, log *logger.Logger) *Tracker {
	return &Tracker{
		container:    optional.None[*Container](),
		margin:       cfg.SimilarityMargin,
		triggerRatio: cfg.TriggerRatio,
		logger:       log.Named("arbitrage"),
	}
}

// Current returns the open window, if any.
func (t *Tracker) Current() optional.Option[*Container] {
	return t.container
}

// OnPriceUpdate compares this exchange's price with the other exchange's average and opens,
// keeps or tears down the window.
func (t *Tracker) OnPriceUpdate(ownPrice, otherAveragePrice decimal.Decimal) Decision {
	if !ownPrice.IsPositive() || !otherAveragePrice.IsPositive() {
		return DecisionNone
	}

	state := types.PositionTypeLong
	if ownPrice.GreaterThan(otherAveragePrice) {
		state = types.PositionTypeShort
	}

	if t.container.IsSome() {
		container := t.container.Unwrap()

		if container.IsExpired(otherAveragePrice) {
			t.logger.Info("Arbitrage window expired",
				zap.String("state", string(container.State)),
				zap.Stringer("target", container.TargetPrice),
				zap.Stringer("other_average", otherAveragePrice),
			)
			t.container = optional.None[*Container]()

			return DecisionExpired
		}

		if container.IsSimilar(ownPrice, state) {
			return DecisionKept
		}

		return DecisionIgnored
	}

	gap := ownPrice.Sub(otherAveragePrice).Abs().Div(otherAveragePrice)
	if gap.LessThanOrEqual(t.triggerRatio) {
		return DecisionNone
	}

	container := NewContainer(ownPrice, otherAveragePrice, state, t.margin)
	t.container = optional.Some(container)

	t.logger.Info("Arbitrage window opened",
		zap.String("state", string(state)),
		zap.Stringer("anchor", ownPrice),
		zap.Stringer("target", otherAveragePrice),
		zap.Stringer("gap", gap),
	)

	return DecisionOpened
}

// OnOrderCancelled tears the window down when its initial leg is cancelled. It returns true
// when the window was discarded.
func (t *Tracker) OnOrderCancelled(orderID string) bool {
	if t.container.IsNone() {
		return false
	}

	container := t.container.Unwrap()
	if !container.ShouldBeDiscardedAfterOrderCancel(orderID) {
		return false
	}

	t.logger.Info("Arbitrage initial order cancelled, discarding window", zap.String("order", orderID))
	t.container = optional.None[*Container]()

	return true
}

// OnOrderFilled routes a fill to the window watching the order. An initial leg fill marks the
// container; a secondary leg fill completes the arbitrage and closes the window.
func (t *Tracker) OnOrderFilled(orderID string) optional.Option[*Container] {
	if t.container.IsNone() {
		return optional.None[*Container]()
	}

	container := t.container.Unwrap()
	if !container.IsWatchingThisOrder(orderID) {
		return optional.None[*Container]()
	}

	if orderID == container.InitialOrderID {
		container.MarkInitialLegFilled()

		return optional.Some(container)
	}

	t.logger.Info("Arbitrage completed", zap.String("order", orderID), zap.String("state", string(container.State)))
	t.container = optional.None[*Container]()

	return optional.Some(container)
}
