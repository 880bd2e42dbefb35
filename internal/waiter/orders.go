package waiter

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"go.uber.org/zap"
)

// WaitForOrdersClose blocks until every order is closed and every order chained to them is
// either open on the exchange or closed. Without a timeout the configured default applies;
// without either the wait is only bounded by ctx.
func (w *Waiter) WaitForOrdersClose(ctx context.Context, orders []*types.Order, timeout optional.Option[time.Duration]) error {
	if w.mode.IsBacktesting() {
		return errors.NewWaitCancelled("cannot wait for orders to close while backtesting")
	}

	if timeout.IsNone() {
		timeout = w.ordersTimeout
	}

	deadlineC, stop := deadline(timeout)
	defer stop()

	err := w.poll(ctx, deadlineC, func() (bool, error) {
		done, err := w.ordersClosed(ctx, orders)
		if errors.HasCode(err, errors.ErrCodeOrderStateTransient) {
			w.logger.Warn("Order state changed while checking, retrying", zap.Error(err))

			return false, nil
		}

		return done, err
	})
	if errors.IsWaitInterrupted(err) {
		w.logger.Debug("Stopped waiting for orders", zap.Int("orders", len(orders)), zap.Error(err))
	}

	return err
}

// WaitForOrderClose is WaitForOrdersClose for a single order.
func (w *Waiter) WaitForOrderClose(ctx context.Context, order *types.Order, timeout optional.Option[time.Duration]) error {
	return w.WaitForOrdersClose(ctx, []*types.Order{order}, timeout)
}

func (w *Waiter) ordersClosed(ctx context.Context, orders []*types.Order) (bool, error) {
	for _, order := range orders {
		closed, err := w.reader.IsClosed(ctx, order)
		if err != nil {
			return false, err
		}

		if !closed {
			return false, nil
		}

		for _, chained := range order.ChainedOrders() {
			ready, err := w.chainedOrderReady(ctx, chained)
			if err != nil {
				return false, err
			}

			if !ready {
				return false, nil
			}
		}
	}

	return true, nil
}

func (w *Waiter) chainedOrderReady(ctx context.Context, order *types.Order) (bool, error) {
	open, err := w.reader.IsTrackedAsOpen(ctx, order)
	if err != nil || open {
		return open, err
	}

	return w.reader.IsClosed(ctx, order)
}
