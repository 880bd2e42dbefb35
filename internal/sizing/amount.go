package sizing

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AmountRequest describes a simple order amount such as "0.5", "60%" or "20a%".
type AmountRequest struct {
	Symbol          string
	Spec            string
	Side            types.PurchaseType
	ReduceOnly      bool
	IsStopOrder     bool
	UseTotalHolding bool
	TargetPrice     optional.Option[decimal.Decimal]
	PortfolioMode   PortfolioMode
}

// GetAmount resolves an order amount in base units.
func (r *Resolver) GetAmount(ctx context.Context, request AmountRequest) (decimal.Decimal, error) {
	parsed, err := r.parser.ParseAmount(request.Spec)
	if err != nil {
		return decimal.Zero, err
	}

	if request.PortfolioMode == PortfolioUnknownOnCreation {
		return parsed.Value, nil
	}

	amount, err := r.resolveAmount(ctx, request, parsed)
	if err != nil {
		return decimal.Zero, err
	}

	if !amount.IsPositive() {
		return decimal.Zero, errors.InvalidArgumentf("amount %q resolved to %s, expected a positive size", request.Spec, amount)
	}

	adapted, err := r.adapt(ctx, HoldingsRequest{
		Symbol:          request.Symbol,
		Side:            request.Side,
		Size:            amount,
		ReduceOnly:      request.ReduceOnly,
		IsStopOrder:     request.IsStopOrder,
		UseTotalHolding: request.UseTotalHolding,
		TargetPrice:     request.TargetPrice,
	})
	if err != nil {
		return decimal.Zero, err
	}

	r.logger.Debug("Resolved amount",
		zap.String("symbol", request.Symbol),
		zap.String("spec", request.Spec),
		zap.Stringer("quantity", parsed),
		zap.Stringer("amount", adapted),
	)

	return adapted, nil
}

func (r *Resolver) resolveAmount(ctx context.Context, request AmountRequest, parsed types.Quantity) (decimal.Decimal, error) {
	switch parsed.Type {
	case types.QuantityTypeDelta, types.QuantityTypeDeltaBase, types.QuantityTypeFlat:
		return parsed.Value, nil
	case types.QuantityTypePercent:
		balance, err := r.balance(ctx, request.Symbol, request.Side, request.ReduceOnly, request.UseTotalHolding)
		if err != nil {
			return decimal.Zero, err
		}

		return balance.Mul(parsed.Ratio()), nil
	case types.QuantityTypeAvailablePercent:
		balance, err := r.balance(ctx, request.Symbol, request.Side, request.ReduceOnly, false)
		if err != nil {
			return decimal.Zero, err
		}

		return balance.Mul(parsed.Ratio()), nil
	case types.QuantityTypePositionPercent:
		position, err := r.openPosition(ctx, request.Symbol)
		if err != nil {
			return decimal.Zero, err
		}

		return position.Abs().Mul(parsed.Ratio()), nil
	case types.QuantityTypeEntry, types.QuantityTypeEntryPercent, types.QuantityTypeUnknown:
		return decimal.Zero, errors.InvalidArgumentf("%s cannot be used as an order amount: %q", parsed.Type, request.Spec)
	default:
		return decimal.Zero, errors.InvalidArgumentf("unsupported quantity type %s in %q", parsed.Type, request.Spec)
	}
}

func (r *Resolver) balance(ctx context.Context, symbol string, side types.PurchaseType, reduceOnly bool, total bool) (decimal.Decimal, error) {
	var (
		balance decimal.Decimal
		err     error
	)

	if total {
		balance, err = r.portfolio.TotalBalance(ctx, symbol, side)
	} else {
		balance, err = r.portfolio.AvailableBalance(ctx, symbol, side, reduceOnly)
	}

	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read %s balance of %s", side, symbol)
	}

	return balance, nil
}

func (r *Resolver) openPosition(ctx context.Context, symbol string) (decimal.Decimal, error) {
	position, err := r.portfolio.OpenPositionSize(ctx, symbol)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read open position of %s", symbol)
	}

	return position, nil
}
