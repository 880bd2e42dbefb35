package exchange

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"go.uber.org/zap"
)

// Binance drops a listen key that is not kept alive for an hour.
const userStreamKeepalive = 30 * time.Minute

const executionTypeTrade = "TRADE"

// StreamOrderUpdates follows the user data stream of the account until ctx is done. Execution
// reports update the orders created through this adapter and fills run the fill hooks, so
// chained orders are created without a status read. Fills of orders created elsewhere run the
// hooks with an order built from the report.
func (b *Binance) StreamOrderUpdates(ctx context.Context) error {
	listenKey, err := b.client.NewStartUserStreamService().Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to start Binance user data stream", err)
	}
	defer b.closeUserStream(listenKey)

	streamErr := make(chan error, 1)

	doneC, stopC, err := b.client.ServeUserData(listenKey,
		func(event *binance.WsUserDataEvent) {
			b.handleUserData(ctx, event)
		},
		func(err error) {
			select {
			case streamErr <- err:
			default:
			}
		},
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to connect to Binance user data stream", err)
	}

	b.logger.Info("Following Binance user data stream")

	keepalive := time.NewTicker(userStreamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			close(stopC)
			<-doneC

			return nil
		case err := <-streamErr:
			close(stopC)
			<-doneC

			return errors.Wrap(errors.ErrCodeAccountUnavailable, "Binance user data stream failed", err)
		case <-doneC:
			return errors.New(errors.ErrCodeAccountUnavailable, "Binance user data stream closed")
		case <-keepalive.C:
			if err := b.client.NewKeepaliveUserStreamService().ListenKey(listenKey).Do(ctx); err != nil {
				b.logger.Warn("Failed to keep user data stream alive", zap.Error(err))
			}
		}
	}
}

func (b *Binance) closeUserStream(listenKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := b.client.NewCloseUserStreamService().ListenKey(listenKey).Do(ctx); err != nil {
		b.logger.Warn("Failed to close user data stream", zap.Error(err))
	}
}

func (b *Binance) handleUserData(ctx context.Context, event *binance.WsUserDataEvent) {
	if event == nil || event.Event != binance.UserDataEventTypeExecutionReport {
		return
	}

	if err := b.applyOrderUpdate(ctx, event.OrderUpdate); err != nil {
		b.logger.Warn("Failed to apply order update",
			zap.Int64("order", event.OrderUpdate.Id),
			zap.String("symbol", event.OrderUpdate.Symbol),
			zap.Error(err),
		)
	}
}

func (b *Binance) applyOrderUpdate(ctx context.Context, update binance.WsOrderUpdate) error {
	status, err := toOrderStatus(binance.OrderStatusType(update.Status))
	if err != nil {
		// a later report settles it
		return nil
	}

	order, ok, settled := b.tracked(update.Id)
	if !ok {
		if settled || status != types.OrderStatusFilled {
			return nil
		}

		order, err = fromOrderUpdate(update)
		if err != nil {
			return err
		}
	}

	// fills already in the order response are counted there
	if update.ExecutionType == executionTypeTrade && update.TransactionTime > order.CreatedAt.UnixMilli() {
		base, _ := b.baseAsset(update.Symbol)
		commission := b.commissionInQuote(base, update.FeeAsset, update.FeeCost, update.LatestPrice)

		b.mu.Lock()
		order.Fee = order.Fee.Add(commission)
		b.mu.Unlock()
	}

	if status.IsClosed() {
		b.untrack(update.Id)
	}

	b.logger.Debug("Order update",
		zap.String("order", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("status", string(status)),
	)

	return b.updateStatus(ctx, order, status)
}

// fromOrderUpdate builds a pending order from an execution report. updateStatus then moves
// it to the reported status.
func fromOrderUpdate(update binance.WsOrderUpdate) (*types.Order, error) {
	side, err := fromBinanceSide(binance.SideType(update.Side))
	if err != nil {
		return nil, err
	}

	orderType, price, err := fromBinanceType(binance.OrderType(update.Type), update.Price, update.StopPrice)
	if err != nil {
		return nil, err
	}

	quantity, err := parseDecimal(update.Volume)
	if err != nil {
		return nil, err
	}

	order := types.NewOrder(update.Symbol, side, orderType, quantity, price)
	order.ID = strconv.FormatInt(update.Id, 10)
	order.Tag, order.Group = parseClientOrderID(update.ClientOrderId)

	return order, nil
}
