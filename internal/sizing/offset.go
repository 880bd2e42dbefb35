package sizing

import (
	"context"

	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetOffset resolves a price offset into an absolute price. BUY offsets are measured from
// the long entry price, SELL offsets from the short entry price.
func (r *Resolver) GetOffset(ctx context.Context, symbol string, spec string, side types.PurchaseType) (decimal.Decimal, error) {
	parsed, err := r.parser.ParseOffset(spec)
	if err != nil {
		return decimal.Zero, err
	}

	var price decimal.Decimal

	switch parsed.Type {
	case types.QuantityTypeDelta:
		live, err := r.livePrice(ctx, symbol)
		if err != nil {
			return decimal.Zero, err
		}

		// negative deltas are allowed, e.g. a buy below the current price
		price = live.Add(parsed.Value)
	case types.QuantityTypePercent:
		live, err := r.livePrice(ctx, symbol)
		if err != nil {
			return decimal.Zero, err
		}

		price = live.Mul(parsed.Factor())
	case types.QuantityTypeEntryPercent:
		entry, err := r.entryPrice(ctx, symbol, side)
		if err != nil {
			return decimal.Zero, err
		}

		price = entry.Mul(parsed.Factor())
	case types.QuantityTypeEntry:
		entry, err := r.entryPrice(ctx, symbol, side)
		if err != nil {
			return decimal.Zero, err
		}

		price = entry.Add(parsed.Value)
	case types.QuantityTypeFlat:
		if !parsed.Value.IsPositive() {
			return decimal.Zero, errors.InvalidArgumentf("flat offset must be positive: %q", spec)
		}

		price = parsed.Value
	case types.QuantityTypeDeltaBase, types.QuantityTypePositionPercent, types.QuantityTypeAvailablePercent, types.QuantityTypeUnknown:
		return decimal.Zero, errors.InvalidArgumentf("%s cannot be used as a price offset: %q", parsed.Type, spec)
	default:
		return decimal.Zero, errors.InvalidArgumentf("unsupported quantity type %s in %q", parsed.Type, spec)
	}

	r.logger.Debug("Resolved offset",
		zap.String("symbol", symbol),
		zap.String("spec", spec),
		zap.String("side", string(side)),
		zap.Stringer("price", price),
	)

	return price, nil
}

func (r *Resolver) livePrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := r.prices.LivePrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to read live price of %s", symbol)
	}

	return price, nil
}

func (r *Resolver) entryPrice(ctx context.Context, symbol string, side types.PurchaseType) (decimal.Decimal, error) {
	price, err := r.portfolio.AverageEntryPrice(ctx, symbol, types.PositionTypeForSide(side))
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read %s entry price of %s", side, symbol)
	}

	return price, nil
}
