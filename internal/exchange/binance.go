// Package exchange adapts the Binance spot API to the account, price and order interfaces
// used by the sizing, chaining and waiting layers in live mode.
package exchange

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// entryTradesLimit is how many recent fills the average entry price is computed from.
const entryTradesLimit = 500

var clientOrderIDPattern = regexp.MustCompile(`^[.A-Za-z0-9:/_-]{1,36}$`)

// Binance is a spot account. Symbols are base+quote pairs such as BTCUSDT, and positions are
// the base asset balance, so it never holds a short position.
type Binance struct {
	client           Client
	quoteAsset       string
	decimalPrecision int32
	logger           *logger.Logger

	mu        sync.Mutex
	fillHooks []types.OrderHook
	// orders created here and not yet seen closed, by Binance order id
	orders  map[int64]*types.Order
	settled map[int64]struct{}
}

// NewBinance connects to Binance, or to the testnet when cfg.Testnet is set. cfg.BaseURL
// takes precedence over both.
func NewBinance(cfg config.BinanceConfig, decimalPrecision int32, log *logger.Logger) (*Binance, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	if cfg.Testnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(cfg.ApiKey, cfg.SecretKey)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}

	return newBinanceWithClient(&realClient{client: client}, cfg.QuoteAsset, decimalPrecision, log), nil
}

func newBinanceWithClient(client Client, quoteAsset string, decimalPrecision int32, log *logger.Logger) *Binance {
	return &Binance{
		client:           client,
		quoteAsset:       quoteAsset,
		decimalPrecision: decimalPrecision,
		logger:           log.Named("binance"),
		orders:           map[int64]*types.Order{},
		settled:          map[int64]struct{}{},
	}
}

// IsBacktesting implements types.ModeProvider.
func (b *Binance) IsBacktesting() bool {
	return false
}

// OnFill registers a hook called the first time a status read, an order response or the
// user data stream shows an order filled.
func (b *Binance) OnFill(hook types.OrderHook) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fillHooks = append(b.fillHooks, hook)
}

// LivePrice implements sizing.PriceSource with the latest traded price.
func (b *Binance) LivePrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to get price of %s from Binance", symbol)
	}

	for _, price := range prices {
		if price.Symbol == symbol {
			return parseDecimal(price.Price)
		}
	}

	return decimal.Zero, errors.Newf(errors.ErrCodePriceUnavailable, "Binance returned no price for %s", symbol)
}

// CommissionFee returns the taker commission of symbol.
func (b *Binance) CommissionFee(ctx context.Context, symbol string) (fee.CommissionFee, error) {
	details, err := b.client.NewTradeFeeService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to get trade fee of %s from Binance", symbol)
	}

	for _, detail := range details {
		if detail.Symbol != symbol {
			continue
		}

		rate, err := parseDecimal(detail.TakerCommission)
		if err != nil {
			return nil, err
		}

		return &TakerCommissionFee{Rate: rate}, nil
	}

	return nil, errors.Newf(errors.ErrCodeAccountUnavailable, "Binance returned no trade fee for %s", symbol)
}

// TakerCommissionFee charges a fixed share of the notional.
type TakerCommissionFee struct {
	Rate decimal.Decimal
}

func (f *TakerCommissionFee) Calculate(quantity decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price).Mul(f.Rate)
}

// CreateOrder implements chain.OrderCreator. The order receives the Binance order id and the
// status of the response.
func (b *Binance) CreateOrder(ctx context.Context, order *types.Order) error {
	if !order.ShouldBeCreated() {
		return errors.Newf(errors.ErrCodeInvalidOrder, "order %s was already sent (%s)", order.ID, order.Status())
	}

	if err := order.Validate(); err != nil {
		return err
	}

	side, err := toBinanceSide(order.Side)
	if err != nil {
		return err
	}

	quantity := fee.RoundToDecimalPrecision(order.Quantity, b.decimalPrecision)
	if !quantity.IsPositive() {
		return errors.Newf(errors.ErrCodeInvalidOrder, "order quantity %s is too small after rounding to %d decimal places", order.Quantity, b.decimalPrecision)
	}

	service := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Quantity(quantity.String())

	switch order.Type {
	case types.OrderTypeMarket:
		service = service.Type(binance.OrderTypeMarket)
	case types.OrderTypeLimit:
		service = service.Type(binance.OrderTypeLimit).
			Price(order.Price.String()).
			TimeInForce(binance.TimeInForceTypeGTC)
	case types.OrderTypeStopLoss:
		service = service.Type(binance.OrderTypeStopLoss).
			StopPrice(order.Price.String())
	default:
		return errors.Newf(errors.ErrCodeInvalidOrder, "unsupported order type: %s", order.Type)
	}

	if id := clientOrderID(order); id != "" {
		service = service.NewClientOrderID(id)
	}

	response, err := service.Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOrderFailed, "failed to place order on Binance", err)
	}

	order.ID = strconv.FormatInt(response.OrderID, 10)
	order.CreatedAt = time.UnixMilli(response.TransactTime)
	order.Fee = b.fillsFee(order.Symbol, response.Fills)

	status, err := toOrderStatus(response.Status)
	if err != nil {
		// the order exists, the next status read settles it
		order.SetStatus(types.OrderStatusOpen)
		b.track(response.OrderID, order)

		return nil
	}

	if status.IsClosed() {
		b.untrack(response.OrderID)
	} else {
		b.track(response.OrderID, order)
	}

	b.logger.Debug("Order placed",
		zap.String("order", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("type", string(order.Type)),
		zap.String("status", string(status)),
	)

	return b.updateStatus(ctx, order, status)
}

// OpenOrders implements waiter.OpenOrdersSource.
func (b *Binance) OpenOrders(ctx context.Context) ([]*types.Order, error) {
	binanceOrders, err := b.client.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get open orders from Binance", err)
	}

	orders := make([]*types.Order, 0, len(binanceOrders))

	for _, binanceOrder := range binanceOrders {
		order, err := fromBinanceOrder(binanceOrder)
		if err != nil {
			b.logger.Warn("Skipping open order", zap.Int64("order", binanceOrder.OrderID), zap.Error(err))

			continue
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// IsClosed implements waiter.OrderStateReader. It refreshes the order status and runs the
// fill hooks when it sees the order fill.
func (b *Binance) IsClosed(ctx context.Context, order *types.Order) (bool, error) {
	if order.ShouldBeCreated() {
		return false, nil
	}

	orderID, err := strconv.ParseInt(order.ID, 10, 64)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeInvalidOrder, err, "invalid Binance order id %q", order.ID)
	}

	binanceOrder, err := b.client.NewGetOrderService().Symbol(order.Symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to get order %s from Binance", order.ID)
	}

	status, err := toOrderStatus(binanceOrder.Status)
	if err != nil {
		return false, err
	}

	if status.IsClosed() {
		b.untrack(orderID)
	}

	if err := b.updateStatus(ctx, order, status); err != nil {
		return false, err
	}

	return status.IsClosed(), nil
}

// IsTrackedAsOpen implements waiter.OrderStateReader.
func (b *Binance) IsTrackedAsOpen(ctx context.Context, order *types.Order) (bool, error) {
	if order.ShouldBeCreated() {
		return false, nil
	}

	binanceOrders, err := b.client.NewListOpenOrdersService().Symbol(order.Symbol).Do(ctx)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to get open orders of %s from Binance", order.Symbol)
	}

	for _, binanceOrder := range binanceOrders {
		if strconv.FormatInt(binanceOrder.OrderID, 10) == order.ID {
			return true, nil
		}
	}

	return false, nil
}

// updateStatus sets the status and runs the fill hooks once per order, whichever of the
// polling reads and the stream sees the fill first.
func (b *Binance) updateStatus(ctx context.Context, order *types.Order, status types.OrderStatus) error {
	b.mu.Lock()
	wasFilled := order.IsFilled()
	order.SetStatus(status)

	if status != types.OrderStatusFilled || wasFilled {
		b.mu.Unlock()

		return nil
	}

	hooks := make([]types.OrderHook, len(b.fillHooks))
	copy(hooks, b.fillHooks)
	b.mu.Unlock()

	for _, hook := range hooks {
		if err := hook(ctx, order); err != nil {
			return errors.Wrapf(errors.ErrCodeOrderFailed, err, "fill hook failed for order %s", order.ID)
		}
	}

	return nil
}

// fillsFee sums the commission of fills in quote currency. Commission paid in the base asset
// is converted at the fill price; other assets are ignored.
func (b *Binance) fillsFee(symbol string, fills []*binance.Fill) decimal.Decimal {
	base, _ := b.baseAsset(symbol)
	total := decimal.Zero

	for _, fill := range fills {
		total = total.Add(b.commissionInQuote(base, fill.CommissionAsset, fill.Commission, fill.Price))
	}

	return total
}

func (b *Binance) commissionInQuote(base string, asset string, rawCommission string, rawPrice string) decimal.Decimal {
	commission, err := decimal.NewFromString(rawCommission)
	if err != nil {
		return decimal.Zero
	}

	switch asset {
	case b.quoteAsset:
		return commission
	case base:
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return decimal.Zero
		}

		return commission.Mul(price)
	default:
		return decimal.Zero
	}
}

func (b *Binance) track(orderID int64, order *types.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders[orderID] = order
}

func (b *Binance) untrack(orderID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.orders, orderID)
	b.settled[orderID] = struct{}{}
}

// tracked returns the open order created here with orderID. settled is set for orders created
// here that were already seen closed.
func (b *Binance) tracked(orderID int64) (order *types.Order, ok bool, settled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok = b.orders[orderID]
	_, settled = b.settled[orderID]

	return order, ok, settled
}

// clientOrderID carries tag and group through Binance as "tag/group.xxxxxxxx".
// Empty when there is nothing to carry or the result is not a valid client id.
func clientOrderID(order *types.Order) string {
	if order.Tag == "" && order.Group == "" {
		return ""
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	id := order.Tag + "/" + order.Group + "." + suffix
	if !clientOrderIDPattern.MatchString(id) {
		return ""
	}

	return id
}

func parseClientOrderID(id string) (tag string, group string) {
	dot := strings.LastIndex(id, ".")
	if dot < 0 {
		return "", ""
	}

	tag, group, ok := strings.Cut(id[:dot], "/")
	if !ok {
		return "", ""
	}

	return tag, group
}

func toBinanceSide(side types.PurchaseType) (binance.SideType, error) {
	switch side {
	case types.PurchaseTypeBuy:
		return binance.SideTypeBuy, nil
	case types.PurchaseTypeSell:
		return binance.SideTypeSell, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOrder, "unsupported order side: %s", side)
	}
}

// toOrderStatus maps a Binance status. PENDING_CANCEL is a transient read: the order is
// neither open nor cancelled yet.
func toOrderStatus(status binance.OrderStatusType) (types.OrderStatus, error) {
	switch status {
	case binance.OrderStatusTypeNew, binance.OrderStatusTypePartiallyFilled:
		return types.OrderStatusOpen, nil
	case binance.OrderStatusTypeFilled:
		return types.OrderStatusFilled, nil
	case binance.OrderStatusTypeCanceled, binance.OrderStatusTypeExpired:
		return types.OrderStatusCancelled, nil
	case binance.OrderStatusTypeRejected:
		return types.OrderStatusRejected, nil
	case binance.OrderStatusTypePendingCancel:
		return "", errors.Newf(errors.ErrCodeOrderStateTransient, "order is pending cancel")
	default:
		return "", errors.Newf(errors.ErrCodeOrderStateTransient, "unknown Binance order status %s", status)
	}
}

func fromBinanceOrder(binanceOrder *binance.Order) (*types.Order, error) {
	side, err := fromBinanceSide(binanceOrder.Side)
	if err != nil {
		return nil, err
	}

	quantity, err := parseDecimal(binanceOrder.OrigQuantity)
	if err != nil {
		return nil, err
	}

	orderType, price, err := fromBinanceType(binanceOrder.Type, binanceOrder.Price, binanceOrder.StopPrice)
	if err != nil {
		return nil, err
	}

	status, err := toOrderStatus(binanceOrder.Status)
	if err != nil {
		return nil, err
	}

	order := types.NewOrder(binanceOrder.Symbol, side, orderType, quantity, price)
	order.ID = strconv.FormatInt(binanceOrder.OrderID, 10)
	order.Tag, order.Group = parseClientOrderID(binanceOrder.ClientOrderID)
	order.CreatedAt = time.UnixMilli(binanceOrder.Time)
	order.SetStatus(status)

	return order, nil
}

// fromBinanceType maps the order type. Stop orders carry their trigger in the stop price.
func fromBinanceType(orderType binance.OrderType, rawPrice string, rawStopPrice string) (types.OrderType, decimal.Decimal, error) {
	mapped := types.OrderTypeLimit
	priceField := rawPrice

	switch orderType {
	case binance.OrderTypeMarket:
		mapped = types.OrderTypeMarket
	case binance.OrderTypeStopLoss, binance.OrderTypeStopLossLimit:
		mapped = types.OrderTypeStopLoss
		priceField = rawStopPrice
	}

	price, err := parseDecimal(priceField)
	if err != nil {
		return "", decimal.Zero, err
	}

	return mapped, price, nil
}

func fromBinanceSide(side binance.SideType) (types.PurchaseType, error) {
	switch side {
	case binance.SideTypeBuy:
		return types.PurchaseTypeBuy, nil
	case binance.SideTypeSell:
		return types.PurchaseTypeSell, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOrder, "unknown side: %s", side)
	}
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "unexpected number %q from Binance", raw)
	}

	return value, nil
}
