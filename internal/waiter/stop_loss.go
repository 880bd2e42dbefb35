package waiter

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"go.uber.org/zap"
)

// WaitForStopLossOpen waits for an open order tagged or grouped as tagOrGroup and returns it.
// When none shows up before the timeout the absence is logged and None is returned.
// In backtesting mode the open orders are scanned once.
func (w *Waiter) WaitForStopLossOpen(ctx context.Context, tagOrGroup string, timeout optional.Option[time.Duration]) (optional.Option[*types.Order], error) {
	if tagOrGroup == "" {
		return optional.None[*types.Order](), errors.New(errors.ErrCodeInvalidArgument, "stop loss tag or group cannot be empty")
	}

	var found *types.Order

	scan := func() (bool, error) {
		orders, err := w.openOrders.OpenOrders(ctx)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeOrderStateTransient) {
				w.logger.Warn("Open orders changed while reading, retrying", zap.Error(err))

				return false, nil
			}

			return false, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to list open orders", err)
		}

		for _, order := range orders {
			if order.Tag == tagOrGroup || order.Group == tagOrGroup {
				found = order

				return true, nil
			}
		}

		return false, nil
	}

	if w.mode.IsBacktesting() {
		if _, err := scan(); err != nil {
			return optional.None[*types.Order](), err
		}

		return optionalOrder(found), nil
	}

	waitFor := w.stopLossTimeout
	if timeout.IsSome() {
		waitFor = timeout.Unwrap()
	}

	deadlineC, stop := deadline(optional.Some(waitFor))
	defer stop()

	err := w.poll(ctx, deadlineC, scan)
	if errors.HasCode(err, errors.ErrCodeWaitTimeout) && ctx.Err() == nil {
		w.logger.Error("Stop loss order is not open",
			zap.String("tag_or_group", tagOrGroup),
			zap.Duration("timeout", waitFor),
		)

		return optional.None[*types.Order](), nil
	}

	if err != nil {
		return optional.None[*types.Order](), err
	}

	return optionalOrder(found), nil
}

func optionalOrder(order *types.Order) optional.Option[*types.Order] {
	if order == nil {
		return optional.None[*types.Order]()
	}

	return optional.Some(order)
}
