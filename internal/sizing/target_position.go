package sizing

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TargetPositionRequest describes a position target such as "50%" of the current position.
type TargetPositionRequest struct {
	Symbol          string
	Target          string
	ReduceOnly      bool
	IsStopOrder     bool
	UseTotalHolding bool
	TargetPrice     optional.Option[decimal.Decimal]
	PortfolioMode   PortfolioMode
}

// TargetPosition is the result of resolving a position target. It is either NoOrderNeeded
// or an OrderSize.
type TargetPosition interface {
	isTargetPosition()
}

// NoOrderNeeded is returned when the current position already equals the target.
type NoOrderNeeded struct{}

// OrderSize is the order that moves the position to the target. Size is always positive.
type OrderSize struct {
	Size decimal.Decimal
	Side types.PurchaseType
}

func (NoOrderNeeded) isTargetPosition() {}

func (OrderSize) isTargetPosition() {}

// GetTargetPosition resolves the order needed to reach a position target.
func (r *Resolver) GetTargetPosition(ctx context.Context, request TargetPositionRequest) (TargetPosition, error) {
	parsed, err := r.parser.ParseTarget(request.Target)
	if err != nil {
		return nil, err
	}

	if request.PortfolioMode == PortfolioUnknownOnCreation {
		return r.unknownPortfolioTarget(parsed)
	}

	current, err := r.openPosition(ctx, request.Symbol)
	if err != nil {
		return nil, err
	}

	var orderSize decimal.Decimal

	switch parsed.Type {
	case types.QuantityTypePositionPercent:
		orderSize = current.Mul(parsed.Ratio()).Sub(current)
	case types.QuantityTypePercent:
		total, err := r.portfolio.TotalAccountBalance(ctx, request.Symbol)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read total account balance of %s", request.Symbol)
		}

		orderSize = total.Mul(parsed.Ratio()).Sub(current)
	case types.QuantityTypeAvailablePercent:
		// a delta, not a target: the available balance is always bought
		available, err := r.balance(ctx, request.Symbol, types.PurchaseTypeBuy, request.ReduceOnly, false)
		if err != nil {
			return nil, err
		}

		orderSize = available.Mul(parsed.Ratio())
	case types.QuantityTypeDelta, types.QuantityTypeDeltaBase, types.QuantityTypeFlat:
		if current.Equal(parsed.Value) {
			return NoOrderNeeded{}, nil
		}

		orderSize = parsed.Value.Sub(current)
	case types.QuantityTypeEntry, types.QuantityTypeEntryPercent, types.QuantityTypeUnknown:
		return nil, errors.InvalidArgumentf("%s cannot be used as a position target: %q", parsed.Type, request.Target)
	default:
		return nil, errors.InvalidArgumentf("unsupported quantity type %s in %q", parsed.Type, request.Target)
	}

	side, err := sideOf(orderSize, request.Target)
	if err != nil {
		return nil, err
	}

	size, err := r.adapt(ctx, HoldingsRequest{
		Symbol:          request.Symbol,
		Side:            side,
		Size:            orderSize.Abs(),
		ReduceOnly:      request.ReduceOnly,
		IsStopOrder:     request.IsStopOrder,
		UseTotalHolding: request.UseTotalHolding,
		TargetPrice:     request.TargetPrice,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Resolved target position",
		zap.String("symbol", request.Symbol),
		zap.String("target", request.Target),
		zap.Stringer("current", current),
		zap.Stringer("size", size),
		zap.String("side", string(side)),
	)

	return OrderSize{Size: size, Side: side}, nil
}

// unknownPortfolioTarget returns the raw magnitude as the order size. The side follows
// its sign.
func (r *Resolver) unknownPortfolioTarget(parsed types.Quantity) (TargetPosition, error) {
	if parsed.Type == types.QuantityTypeEntry || parsed.Type == types.QuantityTypeEntryPercent || parsed.Type == types.QuantityTypeUnknown {
		return nil, errors.InvalidArgumentf("%s cannot be used as a position target", parsed.Type)
	}

	side, err := sideOf(parsed.Value, parsed.String())
	if err != nil {
		return nil, err
	}

	return OrderSize{Size: parsed.Value.Abs(), Side: side}, nil
}

func sideOf(orderSize decimal.Decimal, target string) (types.PurchaseType, error) {
	switch orderSize.Sign() {
	case 1:
		return types.PurchaseTypeBuy, nil
	case -1:
		return types.PurchaseTypeSell, nil
	default:
		return "", errors.Newf(errors.ErrCodeZeroOrderSize, "position target %q resolved to a zero order size", target)
	}
}
