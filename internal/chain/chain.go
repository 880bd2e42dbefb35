package chain

import (
	"context"

	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"go.uber.org/zap"
)

// OrderCreator sends an order to the exchange. On success the order carries its exchange id
// and is no longer pending creation.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *types.Order) error
}

// Builder links dependent orders to the order that triggers them.
type Builder struct {
	creator OrderCreator
	logger  *logger.Logger
}

func NewBuilder(creator OrderCreator, log *logger.Logger) *Builder {
	return &Builder{
		creator: creator,
		logger:  log.Named("chain"),
	}
}

// ChainOrder chains every order of chained to the single order of base and returns chained
// in input order. An empty base batch is a no-op. Dependents are created right away when
// the base is already filled, otherwise they wait for OnOrderFilled.
//
// Chaining the same pair twice registers and creates the dependents twice.
func (b *Builder) ChainOrder(ctx context.Context, base []*types.Order, chained []*types.Order, propagateFees bool) ([]*types.Order, error) {
	if len(base) == 0 {
		return []*types.Order{}, nil
	}

	if len(base) > 1 {
		return nil, errors.InvalidArgumentf("can only chain orders to a single base order, got %d", len(base))
	}

	trigger := base[0]
	if trigger == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "base order cannot be nil")
	}

	for _, dependent := range chained {
		if dependent == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "chained order cannot be nil")
		}

		dependent.SetAsChainedOrder(trigger, propagateFees)
		trigger.AddChainedOrder(dependent)

		if trigger.IsFilled() && dependent.ShouldBeCreated() {
			if err := b.create(ctx, trigger, dependent); err != nil {
				return nil, err
			}
		}
	}

	return chained, nil
}

// Chain is ChainOrder for a single base order without fee propagation.
func (b *Builder) Chain(ctx context.Context, base *types.Order, chained ...*types.Order) ([]*types.Order, error) {
	return b.ChainOrder(ctx, []*types.Order{base}, chained, false)
}

// OnOrderFilled creates the dependents of order that are still pending creation.
// It must be called once order has filled.
func (b *Builder) OnOrderFilled(ctx context.Context, order *types.Order) error {
	if !order.IsFilled() {
		return errors.Newf(errors.ErrCodeChainingFailed, "order %s is %s, not filled", order.ID, order.Status())
	}

	for _, dependent := range order.ChainedOrders() {
		if !dependent.ShouldBeCreated() {
			continue
		}

		if err := b.create(ctx, order, dependent); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) create(ctx context.Context, trigger *types.Order, dependent *types.Order) error {
	if dependent.MergesTriggerFees() {
		dependent.MergeTriggerFee(trigger.CostBasisFee())
	}

	if err := b.creator.CreateOrder(ctx, dependent); err != nil {
		return errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to create order chained to %s", trigger.ID)
	}

	b.logger.Debug("Created chained order",
		zap.String("trigger", trigger.ID),
		zap.String("order", dependent.ID),
		zap.String("symbol", dependent.Symbol),
		zap.String("side", string(dependent.Side)),
		zap.String("type", string(dependent.Type)),
	)

	return nil
}
