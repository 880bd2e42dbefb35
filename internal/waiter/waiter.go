package waiter

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
)

// OrderStateReader reads the exchange-side state of an order. Implementations return an
// ErrCodeOrderStateTransient error when the order changed state while it was being read.
type OrderStateReader interface {
	IsClosed(ctx context.Context, order *types.Order) (bool, error)
	IsTrackedAsOpen(ctx context.Context, order *types.Order) (bool, error)
}

// OpenOrdersSource lists the orders currently open on the exchange.
type OpenOrdersSource interface {
	OpenOrders(ctx context.Context) ([]*types.Order, error)
}

// Waiter polls order state until a condition holds. It never blocks in backtesting mode:
// simulated time does not move while the process sleeps.
type Waiter struct {
	reader          OrderStateReader
	openOrders      OpenOrdersSource
	mode            types.ModeProvider
	pollInterval    time.Duration
	stopLossTimeout time.Duration
	ordersTimeout   optional.Option[time.Duration]
	logger          *logger.Logger
}

func NewWaiter(reader OrderStateReader, openOrders OpenOrdersSource, mode types.ModeProvider, cfg config.WaiterConfig, log *logger.Logger) *Waiter {
	return &Waiter{
		reader:          reader,
		openOrders:      openOrders,
		mode:            mode,
		pollInterval:    cfg.PollInterval,
		stopLossTimeout: cfg.StopLossTimeout,
		ordersTimeout:   cfg.OrdersTimeout,
		logger:          log.Named("waiter"),
	}
}

// poll calls check until it reports done, then returns nil. It sleeps pollInterval between
// calls and gives up when ctx is done or the deadline channel fires.
func (w *Waiter) poll(ctx context.Context, deadline <-chan time.Time, check func() (bool, error)) error {
	for {
		done, err := check()
		if err != nil {
			return err
		}

		if done {
			return nil
		}

		timer := time.NewTimer(w.pollInterval)

		select {
		case <-ctx.Done():
			timer.Stop()

			return contextError(ctx)
		case <-deadline:
			timer.Stop()

			return errors.NewWaitTimeout("wait deadline elapsed")
		case <-timer.C:
		}
	}
}

// deadline returns a channel that fires after timeout, or a nil channel when there is none.
func deadline(timeout optional.Option[time.Duration]) (<-chan time.Time, func()) {
	if timeout.IsNone() {
		return nil, func() {}
	}

	timer := time.NewTimer(timeout.Unwrap())

	return timer.C, func() { timer.Stop() }
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewWaitTimeout("context deadline exceeded while waiting")
	}

	return errors.NewWaitCancelled("wait cancelled")
}
