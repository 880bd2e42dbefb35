package account

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	quantityPrecision = "18, 8"
	cashPrecision     = "38, 16"
)

// CreateOrder implements chain.OrderCreator. Market orders fill at the last price right away.
// Limit and stop orders rest in the book until a price crosses them, which may already be
// the current one.
func (a *Account) CreateOrder(ctx context.Context, order *types.Order) error {
	if !order.ShouldBeCreated() {
		return errors.Newf(errors.ErrCodeInvalidOrder, "order %s was already sent (%s)", order.ID, order.Status())
	}

	if err := order.Validate(); err != nil {
		return err
	}

	price, err := a.LivePrice(ctx, order.Symbol)
	if err != nil {
		return err
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	order.CreatedAt = a.clock()

	if order.Type == types.OrderTypeMarket {
		return a.placeMarketOrder(ctx, order, price)
	}

	order.SetStatus(types.OrderStatusOpen)

	if err := a.track(ctx, order); err != nil {
		return err
	}

	a.logger.Debug("Order placed",
		zap.String("order", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("type", string(order.Type)),
		zap.Stringer("price", order.Price),
	)

	return a.matchOpenOrders(ctx, order.Symbol, price)
}

func (a *Account) placeMarketOrder(ctx context.Context, order *types.Order, price decimal.Decimal) error {
	if order.Side == types.PurchaseTypeBuy {
		cash, err := a.Cash(ctx)
		if err != nil {
			return err
		}

		cost := order.Quantity.Mul(price).Add(a.commissionFee.Calculate(order.Quantity, price))
		if cost.GreaterThan(cash) {
			order.SetStatus(types.OrderStatusRejected)

			if err := a.track(ctx, order); err != nil {
				return err
			}

			return errors.Newf(errors.ErrCodeOrderFailed, "insufficient cash for order %s: need %s, have %s", order.ID, cost, cash)
		}
	}

	order.SetStatus(types.OrderStatusOpen)

	if err := a.track(ctx, order); err != nil {
		return err
	}

	return a.fill(ctx, order, price)
}

// CancelOrder cancels an open order.
func (a *Account) CancelOrder(ctx context.Context, orderID string) error {
	order, ok := a.lookup(orderID)
	if !ok {
		return errors.Newf(errors.ErrCodeOrderNotFound, "order %s not found", orderID)
	}

	if !order.IsOpen() {
		return errors.Newf(errors.ErrCodeInvalidOrder, "order %s is %s and cannot be cancelled", orderID, order.Status())
	}

	if err := a.updateStatus(ctx, a.db, orderID, types.OrderStatusCancelled); err != nil {
		return err
	}

	order.SetStatus(types.OrderStatusCancelled)

	a.logger.Debug("Order cancelled", zap.String("order", orderID))

	return nil
}

// Order returns a tracked order by id.
func (a *Account) Order(orderID string) (*types.Order, bool) {
	return a.lookup(orderID)
}

// OpenOrders implements waiter.OpenOrdersSource in placement order.
func (a *Account) OpenOrders(_ context.Context) ([]*types.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	open := []*types.Order{}

	for _, order := range a.book {
		if order.IsOpen() {
			open = append(open, order)
		}
	}

	return open, nil
}

// IsClosed implements waiter.OrderStateReader. Orders the account never saw report their
// own status.
func (a *Account) IsClosed(_ context.Context, order *types.Order) (bool, error) {
	tracked, ok := a.lookup(order.ID)
	if !ok {
		return order.IsClosed(), nil
	}

	return tracked.IsClosed(), nil
}

// IsTrackedAsOpen implements waiter.OrderStateReader.
func (a *Account) IsTrackedAsOpen(_ context.Context, order *types.Order) (bool, error) {
	tracked, ok := a.lookup(order.ID)
	if !ok {
		return false, nil
	}

	return tracked.IsOpen(), nil
}

func (a *Account) lookup(orderID string) (*types.Order, bool) {
	if orderID == "" {
		return nil, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	order, ok := a.orders[orderID]

	return order, ok
}

func (a *Account) track(ctx context.Context, order *types.Order) error {
	_, err := a.sq.Insert("orders").
		Columns("order_id", "symbol", "side", "order_type", "quantity", "price", "status", "tag", "order_group", "created_at").
		Values(
			order.ID,
			order.Symbol,
			string(order.Side),
			string(order.Type),
			asDecimal(order.Quantity, quantityPrecision),
			asDecimal(order.Price, quantityPrecision),
			string(order.Status()),
			order.Tag,
			order.Group,
			order.CreatedAt,
		).
		RunWith(a.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to insert order %s", order.ID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.orders[order.ID] = order
	a.book = append(a.book, order)

	return nil
}

func (a *Account) updateStatus(ctx context.Context, runner squirrel.BaseRunner, orderID string, status types.OrderStatus) error {
	_, err := a.sq.Update("orders").
		Set("status", string(status)).
		Where(squirrel.Eq{"order_id": orderID}).
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to update order %s", orderID)
	}

	return nil
}

// crosses reports whether price triggers the resting order and at which price it fills.
// Limits fill at their limit, stops at the crossing price.
func crosses(order *types.Order, price decimal.Decimal) (decimal.Decimal, bool) {
	switch order.Type {
	case types.OrderTypeLimit:
		if order.Side == types.PurchaseTypeBuy && price.LessThanOrEqual(order.Price) ||
			order.Side == types.PurchaseTypeSell && price.GreaterThanOrEqual(order.Price) {
			return order.Price, true
		}
	case types.OrderTypeStopLoss:
		if order.Side == types.PurchaseTypeSell && price.LessThanOrEqual(order.Price) ||
			order.Side == types.PurchaseTypeBuy && price.GreaterThanOrEqual(order.Price) {
			return price, true
		}
	case types.OrderTypeMarket:
		return price, true
	}

	return decimal.Zero, false
}

func (a *Account) matchOpenOrders(ctx context.Context, symbol string, price decimal.Decimal) error {
	type match struct {
		order *types.Order
		price decimal.Decimal
	}

	a.mu.Lock()

	var matches []match

	for _, order := range a.book {
		if order.Symbol != symbol || !order.IsOpen() {
			continue
		}

		if fillPrice, ok := crosses(order, price); ok {
			matches = append(matches, match{order: order, price: fillPrice})
		}
	}

	a.mu.Unlock()

	for _, m := range matches {
		// a hook of an earlier fill may have cancelled it
		if !m.order.IsOpen() {
			continue
		}

		if err := a.fill(ctx, m.order, m.price); err != nil {
			return err
		}
	}

	return nil
}

// fill records the trade, marks the order filled and runs the fill hooks.
func (a *Account) fill(ctx context.Context, order *types.Order, price decimal.Decimal) error {
	commission := a.commissionFee.Calculate(order.Quantity, price)
	notional := order.Quantity.Mul(price)

	cashDelta := notional.Sub(commission)
	if order.Side == types.PurchaseTypeBuy {
		cashDelta = notional.Add(commission).Neg()
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to begin transaction", err)
	}
	defer rollback(tx)

	_, err = a.sq.Insert("trades").
		Columns("order_id", "symbol", "side", "quantity", "price", "fee", "cash_delta", "executed_at").
		Values(
			order.ID,
			order.Symbol,
			string(order.Side),
			asDecimal(order.Quantity, quantityPrecision),
			asDecimal(price, quantityPrecision),
			asDecimal(commission, quantityPrecision),
			asDecimal(cashDelta, cashPrecision),
			a.clock(),
		).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to insert trade for order %s", order.ID)
	}

	if err := a.updateStatus(ctx, tx, order.ID, types.OrderStatusFilled); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to commit fill", err)
	}

	order.Fee = commission
	order.SetStatus(types.OrderStatusFilled)

	a.logFill(order, price)

	for _, hook := range a.hooks() {
		if err := hook(ctx, order); err != nil {
			return errors.Wrapf(errors.ErrCodeOrderFailed, err, "fill hook failed for order %s", order.ID)
		}
	}

	return nil
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
