package account

import (
	"context"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Snapshot is an account state written by hand, used to seed the simulated account.
//
//	cash: 1000
//	prices:
//	  BTCUSDT: 100
//	positions:
//	  - symbol: BTCUSDT
//	    quantity: 10
//	    entry_price: 90
//	open_orders:
//	  - symbol: BTCUSDT
//	    side: SELL
//	    type: STOP_LOSS
//	    quantity: 10
//	    price: 80
//	    tag: stop
type Snapshot struct {
	Cash       decimal.Decimal            `yaml:"cash"`
	Prices     map[string]decimal.Decimal `yaml:"prices"`
	Positions  []SnapshotPosition         `yaml:"positions" validate:"dive"`
	OpenOrders []SnapshotOrder            `yaml:"open_orders" validate:"dive"`
}

// SnapshotPosition is an open position. A negative quantity is a short.
type SnapshotPosition struct {
	Symbol     string          `yaml:"symbol" validate:"required"`
	Quantity   decimal.Decimal `yaml:"quantity"`
	EntryPrice decimal.Decimal `yaml:"entry_price"`
}

type SnapshotOrder struct {
	ID       string          `yaml:"id"`
	Symbol   string          `yaml:"symbol" validate:"required"`
	Side     string          `yaml:"side" validate:"required,oneof=BUY SELL"`
	Type     string          `yaml:"type" validate:"required,oneof=MARKET LIMIT STOP_LOSS"`
	Quantity decimal.Decimal `yaml:"quantity"`
	Price    decimal.Decimal `yaml:"price"`
	Tag      string          `yaml:"tag"`
	Group    string          `yaml:"group"`
}

// ParseSnapshot parses and validates a YAML snapshot.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse snapshot", err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// LoadSnapshot reads and parses the snapshot file at path.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read snapshot %s", path)
	}

	return ParseSnapshot(data)
}

func (s *Snapshot) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid snapshot", err)
	}

	if s.Cash.IsNegative() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "cash cannot be negative, got %s", s.Cash)
	}

	for symbol, price := range s.Prices {
		if !price.IsPositive() {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "price of %s must be positive, got %s", symbol, price)
		}
	}

	for _, position := range s.Positions {
		if _, ok := s.Prices[position.Symbol]; !ok {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "position %s has no price", position.Symbol)
		}

		if !position.Quantity.IsZero() && !position.EntryPrice.IsPositive() {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "position %s needs a positive entry price", position.Symbol)
		}
	}

	for _, order := range s.OpenOrders {
		if order.Type == string(types.OrderTypeMarket) {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "open order on %s cannot be a market order", order.Symbol)
		}

		if _, ok := s.Prices[order.Symbol]; !ok {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "open order on %s has no price", order.Symbol)
		}
	}

	return nil
}

// Apply deposits the snapshot cash, sets the prices, books the positions as fills that move
// no cash and places the open orders. Orders the current prices already cross fill right away.
func (a *Account) Apply(ctx context.Context, snapshot *Snapshot) error {
	a.Deposit(snapshot.Cash)

	a.mu.Lock()
	for symbol, price := range snapshot.Prices {
		a.prices[symbol] = price
	}
	a.mu.Unlock()

	for _, position := range snapshot.Positions {
		if position.Quantity.IsZero() {
			continue
		}

		if err := a.seedPosition(ctx, position); err != nil {
			return err
		}
	}

	for _, open := range snapshot.OpenOrders {
		order := types.NewOrder(open.Symbol, types.PurchaseType(open.Side), types.OrderType(open.Type), open.Quantity, open.Price)
		order.ID = open.ID
		order.Tag = open.Tag
		order.Group = open.Group

		if err := a.CreateOrder(ctx, order); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to place snapshot order on %s", open.Symbol)
		}
	}

	return nil
}

func (a *Account) seedPosition(ctx context.Context, position SnapshotPosition) error {
	side := types.PurchaseTypeBuy
	if position.Quantity.IsNegative() {
		side = types.PurchaseTypeSell
	}

	_, err := a.sq.Insert("trades").
		Columns("order_id", "symbol", "side", "quantity", "price", "fee", "cash_delta", "executed_at").
		Values(
			"snapshot-"+position.Symbol,
			position.Symbol,
			string(side),
			asDecimal(position.Quantity.Abs(), quantityPrecision),
			asDecimal(position.EntryPrice, quantityPrecision),
			asDecimal(decimal.Zero, quantityPrecision),
			asDecimal(decimal.Zero, cashPrecision),
			a.clock(),
		).
		RunWith(a.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to seed position %s", position.Symbol)
	}

	return nil
}
