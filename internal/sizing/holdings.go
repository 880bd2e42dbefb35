package sizing

import (
	"context"

	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
)

// BalanceHoldingsAdapter clamps order sizes to the account balance, keeping enough aside
// to pay the commission, and rounds them down to the traded precision.
type BalanceHoldingsAdapter struct {
	portfolio        Portfolio
	prices           PriceSource
	commissionFee    fee.CommissionFee
	decimalPrecision int32
}

func NewBalanceHoldingsAdapter(portfolio Portfolio, prices PriceSource, commissionFee fee.CommissionFee, decimalPrecision int32) *BalanceHoldingsAdapter {
	if commissionFee == nil {
		commissionFee = fee.NewZeroCommissionFee()
	}

	return &BalanceHoldingsAdapter{
		portfolio:        portfolio,
		prices:           prices,
		commissionFee:    commissionFee,
		decimalPrecision: decimalPrecision,
	}
}

// Adapt implements HoldingsAdapter.
func (a *BalanceHoldingsAdapter) Adapt(ctx context.Context, request HoldingsRequest) (decimal.Decimal, error) {
	limit, err := a.limit(ctx, request)
	if err != nil {
		return decimal.Zero, err
	}

	size := decimal.Min(request.Size, limit)
	size = fee.RoundToDecimalPrecision(size, a.decimalPrecision)

	if !size.IsPositive() {
		return decimal.Zero, errors.InvalidArgumentf("not enough holdings to %s %s of %s", request.Side, request.Size, request.Symbol)
	}

	return size, nil
}

func (a *BalanceHoldingsAdapter) limit(ctx context.Context, request HoldingsRequest) (decimal.Decimal, error) {
	if request.ReduceOnly {
		position, err := a.portfolio.OpenPositionSize(ctx, request.Symbol)
		if err != nil {
			return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read open position of %s", request.Symbol)
		}

		return position.Abs(), nil
	}

	var (
		balance decimal.Decimal
		err     error
	)

	// stop orders are placed ahead of time and may use funds that are locked right now
	if request.UseTotalHolding || request.IsStopOrder {
		balance, err = a.portfolio.TotalBalance(ctx, request.Symbol, request.Side)
	} else {
		balance, err = a.portfolio.AvailableBalance(ctx, request.Symbol, request.Side, false)
	}

	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to read %s balance of %s", request.Side, request.Symbol)
	}

	price, err := a.price(ctx, request)
	if err != nil {
		return decimal.Zero, err
	}

	return fee.MaxQuantity(balance, price, a.commissionFee), nil
}

func (a *BalanceHoldingsAdapter) price(ctx context.Context, request HoldingsRequest) (decimal.Decimal, error) {
	if request.TargetPrice.IsSome() {
		return request.TargetPrice.Unwrap(), nil
	}

	price, err := a.prices.LivePrice(ctx, request.Symbol)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to read live price of %s", request.Symbol)
	}

	return price, nil
}

var _ HoldingsAdapter = (*BalanceHoldingsAdapter)(nil)
