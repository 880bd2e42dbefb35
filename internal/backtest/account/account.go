package account

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Account is a simulated single-quote-currency account with its own order book, backed by
// an in-memory DuckDB database. Orders and fills are rows; positions, entry prices and cash
// are computed from the fills.
type Account struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	logger *logger.Logger

	commissionFee    fee.CommissionFee
	decimalPrecision int32

	mu        sync.Mutex
	deposits  decimal.Decimal
	prices    map[string]decimal.Decimal
	orders    map[string]*types.Order
	book      []*types.Order
	now       time.Time
	fillHooks []types.OrderHook
}

// NewAccount opens the in-memory database and creates the tables.
func NewAccount(commissionFee fee.CommissionFee, decimalPrecision int32, log *logger.Logger) (*Account, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to open database", err)
	}

	if commissionFee == nil {
		commissionFee = fee.NewZeroCommissionFee()
	}

	account := &Account{
		db:               db,
		sq:               squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger:           log.Named("backtest-account"),
		commissionFee:    commissionFee,
		decimalPrecision: decimalPrecision,
		deposits:         decimal.Zero,
		prices:           map[string]decimal.Decimal{},
		orders:           map[string]*types.Order{},
		now:              time.Unix(0, 0).UTC(),
	}

	if err := account.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return account, nil
}

func (a *Account) initialize() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			symbol TEXT,
			side TEXT,
			order_type TEXT,
			quantity DECIMAL(18, 8),
			price DECIMAL(18, 8),
			status TEXT,
			tag TEXT,
			order_group TEXT,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create orders table", err)
	}

	// cash_delta is the quote currency the fill moved, fee included. Snapshot fills move none.
	_, err = a.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			order_id TEXT,
			symbol TEXT,
			side TEXT,
			quantity DECIMAL(18, 8),
			price DECIMAL(18, 8),
			fee DECIMAL(18, 8),
			cash_delta DECIMAL(38, 16),
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create trades table", err)
	}

	return nil
}

// Close releases the database.
func (a *Account) Close() error {
	return a.db.Close()
}

// IsBacktesting implements types.ModeProvider.
func (a *Account) IsBacktesting() bool {
	return true
}

// OnFill registers a hook called after every fill, outside of the account lock. Hooks may
// create orders, e.g. the dependents of the filled order.
func (a *Account) OnFill(hook types.OrderHook) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.fillHooks = append(a.fillHooks, hook)
}

// Deposit adds quote currency to the account.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.deposits = a.deposits.Add(amount)
}

// SetTime moves the simulated clock. Orders and fills are stamped with it.
func (a *Account) SetTime(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.now = now
}

// SetPrice records the latest price of symbol and fills the resting orders it crosses.
func (a *Account) SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return errors.InvalidArgumentf("price of %s must be positive, got %s", symbol, price)
	}

	a.mu.Lock()
	a.prices[symbol] = price
	a.mu.Unlock()

	return a.matchOpenOrders(ctx, symbol, price)
}

// LivePrice implements sizing.PriceSource.
func (a *Account) LivePrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	price, ok := a.prices[symbol]
	if !ok {
		return decimal.Zero, errors.Newf(errors.ErrCodePriceUnavailable, "no price for %s", symbol)
	}

	return price, nil
}

func (a *Account) clock() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.now
}

func (a *Account) hooks() []types.OrderHook {
	a.mu.Lock()
	defer a.mu.Unlock()

	hooks := make([]types.OrderHook, len(a.fillHooks))
	copy(hooks, a.fillHooks)

	return hooks
}

// queryDecimal runs a single-value query whose column is cast to VARCHAR.
func (a *Account) queryDecimal(ctx context.Context, query squirrel.SelectBuilder) (decimal.Decimal, error) {
	statement, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var raw sql.NullString
	if err := a.db.QueryRowContext(ctx, statement, args...).Scan(&raw); err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeQueryFailed, "failed to run query", err)
	}

	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}

	value, err := decimal.NewFromString(raw.String)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeQueryFailed, err, "unexpected numeric value %q", raw.String)
	}

	return value, nil
}

// asDecimal binds value as text so DuckDB keeps the exact digits.
func asDecimal(value decimal.Decimal, precision string) squirrel.Sqlizer {
	return squirrel.Expr("CAST(? AS DECIMAL("+precision+"))", value.String())
}

func (a *Account) logFill(order *types.Order, price decimal.Decimal) {
	a.logger.Debug("Order filled",
		zap.String("order", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Stringer("quantity", order.Quantity),
		zap.Stringer("price", price),
		zap.Stringer("fee", order.Fee),
	)
}
