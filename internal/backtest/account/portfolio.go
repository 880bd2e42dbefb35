package account

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
)

const signedQuantity = "CASE WHEN side = 'BUY' THEN quantity ELSE -quantity END"

// notional widens both factors: DuckDB types the product of two DECIMAL(18, 8) as DECIMAL(18, 16).
const notional = "CAST(quantity AS DECIMAL(38, 8)) * CAST(price AS DECIMAL(38, 8))"

// OpenPositionSize implements sizing.Portfolio. Long is positive, short negative.
func (a *Account) OpenPositionSize(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM("+signedQuantity+"), 0) AS VARCHAR)").
		From("trades").
		Where(squirrel.Eq{"symbol": symbol}))
}

// AverageEntryPrice implements sizing.Portfolio. The LONG entry averages the buy fills of
// symbol and the SHORT entry the sell fills. Zero when the side never traded.
func (a *Account) AverageEntryPrice(ctx context.Context, symbol string, side types.PositionType) (decimal.Decimal, error) {
	fillSide := types.PurchaseTypeBuy
	if side == types.PositionTypeShort {
		fillSide = types.PurchaseTypeSell
	}

	filter := squirrel.Eq{"symbol": symbol, "side": string(fillSide)}

	spent, err := a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM("+notional+"), 0) AS VARCHAR)").
		From("trades").
		Where(filter))
	if err != nil {
		return decimal.Zero, err
	}

	quantity, err := a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM(quantity), 0) AS VARCHAR)").
		From("trades").
		Where(filter))
	if err != nil {
		return decimal.Zero, err
	}

	if quantity.IsZero() {
		return decimal.Zero, nil
	}

	return spent.Div(quantity), nil
}

// AvailableBalance implements sizing.Portfolio.
//
// BUY converts the free cash into base units at the live price. SELL is what is held and
// not already offered by open sell orders. With reduceOnly, only the side that closes the
// open position has a balance.
func (a *Account) AvailableBalance(ctx context.Context, symbol string, side types.PurchaseType, reduceOnly bool) (decimal.Decimal, error) {
	position, err := a.OpenPositionSize(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if reduceOnly {
		closing := side == types.PurchaseTypeSell && position.IsPositive() ||
			side == types.PurchaseTypeBuy && position.IsNegative()
		if !closing {
			return decimal.Zero, nil
		}

		locked, err := a.lockedQuantity(ctx, symbol, side)
		if err != nil {
			return decimal.Zero, err
		}

		return nonNegative(position.Abs().Sub(locked)), nil
	}

	if side == types.PurchaseTypeSell {
		locked, err := a.lockedQuantity(ctx, symbol, side)
		if err != nil {
			return decimal.Zero, err
		}

		return nonNegative(position.Sub(locked)), nil
	}

	cash, err := a.Cash(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	locked, err := a.lockedCash(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return a.inBaseUnits(ctx, symbol, nonNegative(cash.Sub(locked)))
}

// TotalBalance implements sizing.Portfolio. Funds locked in open orders are included.
func (a *Account) TotalBalance(ctx context.Context, symbol string, side types.PurchaseType) (decimal.Decimal, error) {
	if side == types.PurchaseTypeSell {
		position, err := a.OpenPositionSize(ctx, symbol)
		if err != nil {
			return decimal.Zero, err
		}

		return nonNegative(position), nil
	}

	cash, err := a.Cash(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return a.inBaseUnits(ctx, symbol, nonNegative(cash))
}

// TotalAccountBalance implements sizing.Portfolio: cash plus every position valued at its
// last price, in base units of symbol.
func (a *Account) TotalAccountBalance(ctx context.Context, symbol string) (decimal.Decimal, error) {
	equity, err := a.Equity(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return a.inBaseUnits(ctx, symbol, equity)
}

// Cash returns the quote currency balance: deposits plus the cash moved by every fill.
func (a *Account) Cash(ctx context.Context) (decimal.Decimal, error) {
	moved, err := a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM(cash_delta), 0) AS VARCHAR)").
		From("trades"))
	if err != nil {
		return decimal.Zero, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.deposits.Add(moved), nil
}

// Equity returns cash plus the value of all positions at their last known price.
func (a *Account) Equity(ctx context.Context) (decimal.Decimal, error) {
	cash, err := a.Cash(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	statement, args, err := a.sq.
		Select("symbol", "CAST(SUM("+signedQuantity+") AS VARCHAR)").
		From("trades").
		GroupBy("symbol").
		ToSql()
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build positions query", err)
	}

	rows, err := a.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query positions", err)
	}
	defer rows.Close()

	equity := cash

	for rows.Next() {
		var (
			symbol string
			raw    string
		)

		if err := rows.Scan(&symbol, &raw); err != nil {
			return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan position", err)
		}

		quantity, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, errors.Wrapf(errors.ErrCodeQueryFailed, err, "unexpected quantity %q", raw)
		}

		if quantity.IsZero() {
			continue
		}

		price, err := a.LivePrice(ctx, symbol)
		if err != nil {
			return decimal.Zero, err
		}

		equity = equity.Add(quantity.Mul(price))
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read positions", err)
	}

	return equity, nil
}

// Position returns the open position of symbol with both entry prices.
func (a *Account) Position(ctx context.Context, symbol string) (types.Position, error) {
	quantity, err := a.OpenPositionSize(ctx, symbol)
	if err != nil {
		return types.Position{}, err
	}

	longEntry, err := a.AverageEntryPrice(ctx, symbol, types.PositionTypeLong)
	if err != nil {
		return types.Position{}, err
	}

	shortEntry, err := a.AverageEntryPrice(ctx, symbol, types.PositionTypeShort)
	if err != nil {
		return types.Position{}, err
	}

	return types.Position{
		Symbol:          symbol,
		Quantity:        quantity,
		LongEntryPrice:  longEntry,
		ShortEntryPrice: shortEntry,
	}, nil
}

// lockedQuantity is the quantity of symbol offered by open orders on side.
func (a *Account) lockedQuantity(ctx context.Context, symbol string, side types.PurchaseType) (decimal.Decimal, error) {
	return a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM(quantity), 0) AS VARCHAR)").
		From("orders").
		Where(squirrel.Eq{"symbol": symbol, "side": string(side), "status": string(types.OrderStatusOpen)}))
}

// lockedCash is the quote currency reserved by open buy orders of every symbol.
func (a *Account) lockedCash(ctx context.Context) (decimal.Decimal, error) {
	return a.queryDecimal(ctx, a.sq.
		Select("CAST(COALESCE(SUM("+notional+"), 0) AS VARCHAR)").
		From("orders").
		Where(squirrel.Eq{"side": string(types.PurchaseTypeBuy), "status": string(types.OrderStatusOpen)}))
}

func (a *Account) inBaseUnits(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	price, err := a.LivePrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Div(price), nil
}

func nonNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}

	return value
}
