package types

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
)

type PurchaseType string

type OrderType string

type OrderStatus string

type PositionType string

const (
	// OrderStatusPendingCreation is the status of an order that has been built but not sent yet,
	// typically a chained order waiting for its trigger to fill.
	OrderStatusPendingCreation OrderStatus = "PENDING_CREATION"
	OrderStatusOpen            OrderStatus = "OPEN"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

const (
	PositionTypeLong  PositionType = "LONG"
	PositionTypeShort PositionType = "SHORT"
)

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderTypeMarket   OrderType = "MARKET"
	OrderTypeLimit    OrderType = "LIMIT"
	OrderTypeStopLoss OrderType = "STOP_LOSS"
)

// IsClosed reports whether the status is terminal.
func (s OrderStatus) IsClosed() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled || s == OrderStatusRejected
}

// Opposite returns the other side.
func (p PurchaseType) Opposite() PurchaseType {
	if p == PurchaseTypeBuy {
		return PurchaseTypeSell
	}

	return PurchaseTypeBuy
}

// PositionTypeForSide maps an order side to the position side it opens: BUY opens LONG, SELL opens SHORT.
func PositionTypeForSide(side PurchaseType) PositionType {
	if side == PurchaseTypeSell {
		return PositionTypeShort
	}

	return PositionTypeLong
}

// OrderHook is called with an order after an exchange event, e.g. a fill.
type OrderHook func(ctx context.Context, order *Order) error

// Order is a strategy order. Orders are always handled by pointer: status and the chain list
// are guarded by the order's own lock because exchange callbacks may update them.
type Order struct {
	ID       string          `yaml:"id" json:"id"`
	Symbol   string          `yaml:"symbol" json:"symbol" validate:"required"`
	Side     PurchaseType    `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Type     OrderType       `yaml:"type" json:"type" validate:"required,oneof=MARKET LIMIT STOP_LOSS"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity" validate:"gt=0"`
	// Price is the limit or stop price. Zero for market orders.
	Price decimal.Decimal `yaml:"price" json:"price" validate:"gte=0"`
	// Tag and Group identify orders that belong to the same strategy intent,
	// e.g. the stop loss of an entry.
	Tag       string          `yaml:"tag" json:"tag"`
	Group     string          `yaml:"group" json:"group"`
	Fee       decimal.Decimal `yaml:"fee" json:"fee"`
	CreatedAt time.Time       `yaml:"created_at" json:"created_at"`

	mu               sync.RWMutex
	status           OrderStatus
	chainedOrders    []*Order
	triggeredBy      *Order
	mergeTriggerFees bool
	triggerFee       decimal.Decimal
}

// NewOrder creates an order that has not been sent to the exchange yet.
func NewOrder(symbol string, side PurchaseType, orderType OrderType, quantity, price decimal.Decimal) *Order {
	return &Order{
		Symbol:   symbol,
		Side:     side,
		Type:     orderType,
		Quantity: quantity,
		Price:    price,
		Fee:      decimal.Zero,
		status:   OrderStatusPendingCreation,
	}
}

// Status returns the current order status.
func (o *Order) Status() OrderStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.status == "" {
		return OrderStatusPendingCreation
	}

	return o.status
}

// SetStatus updates the order status.
func (o *Order) SetStatus(status OrderStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.status = status
}

func (o *Order) IsFilled() bool {
	return o.Status() == OrderStatusFilled
}

func (o *Order) IsClosed() bool {
	return o.Status().IsClosed()
}

func (o *Order) IsOpen() bool {
	return o.Status() == OrderStatusOpen
}

// ShouldBeCreated reports whether the order still has to be sent to the exchange.
func (o *Order) ShouldBeCreated() bool {
	return o.Status() == OrderStatusPendingCreation
}

// SetAsChainedOrder records trigger as the order that has to fill before this one is created.
// The reference is non-owning: the trigger owns this order through its chain list.
func (o *Order) SetAsChainedOrder(trigger *Order, mergeTriggerFees bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.triggeredBy = trigger
	o.mergeTriggerFees = mergeTriggerFees
}

// TriggeredBy returns the triggering order, if this order is chained.
func (o *Order) TriggeredBy() optional.Option[*Order] {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.triggeredBy == nil {
		return optional.None[*Order]()
	}

	return optional.Some(o.triggeredBy)
}

// MergesTriggerFees reports whether the trigger's fees are part of this order's cost basis.
func (o *Order) MergesTriggerFees() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.mergeTriggerFees
}

// AddChainedOrder registers a dependent order. Registering the same order twice keeps both entries.
func (o *Order) AddChainedOrder(chained *Order) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.chainedOrders = append(o.chainedOrders, chained)
}

// ChainedOrders returns a copy of the dependent orders list.
func (o *Order) ChainedOrders() []*Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	chained := make([]*Order, len(o.chainedOrders))
	copy(chained, o.chainedOrders)

	return chained
}

// MergeTriggerFee adds the trigger's fee to this order's cost basis.
func (o *Order) MergeTriggerFee(fee decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.triggerFee = o.triggerFee.Add(fee)
}

// CostBasisFee is the order's own fee plus any merged trigger fee.
func (o *Order) CostBasisFee() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.Fee.Add(o.triggerFee)
}

// Validate validates the Order struct.
func (o *Order) Validate() error {
	if err := orderValidator.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	if o.Type != OrderTypeMarket && !o.Price.IsPositive() {
		return errors.Newf(errors.ErrCodeInvalidOrder, "%s order requires a positive price", o.Type)
	}

	return nil
}

var orderValidator = newDecimalValidator()

// newDecimalValidator returns a validator that compares decimal.Decimal fields as numbers.
func newDecimalValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := value.Float64()

			return f
		}

		return nil
	}, decimal.Decimal{})

	return validate
}
