package exchange

import (
	"context"
	"strings"

	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
)

type assetBalance struct {
	free   decimal.Decimal
	locked decimal.Decimal
}

func (a assetBalance) total() decimal.Decimal {
	return a.free.Add(a.locked)
}

// OpenPositionSize implements sizing.Portfolio: the base asset balance, free and locked.
func (b *Binance) OpenPositionSize(ctx context.Context, symbol string) (decimal.Decimal, error) {
	base, _, err := b.pair(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	return base.total(), nil
}

// AverageEntryPrice implements sizing.Portfolio from the recent fills of symbol: buys for
// LONG, sells for SHORT.
func (b *Binance) AverageEntryPrice(ctx context.Context, symbol string, side types.PositionType) (decimal.Decimal, error) {
	trades, err := b.client.NewListTradesService().Symbol(symbol).Limit(entryTradesLimit).Do(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeAccountUnavailable, err, "failed to get trades of %s from Binance", symbol)
	}

	buys := side != types.PositionTypeShort
	notional := decimal.Zero
	quantity := decimal.Zero

	for _, trade := range trades {
		if trade.IsBuyer != buys {
			continue
		}

		price, err := parseDecimal(trade.Price)
		if err != nil {
			return decimal.Zero, err
		}

		qty, err := parseDecimal(trade.Quantity)
		if err != nil {
			return decimal.Zero, err
		}

		notional = notional.Add(price.Mul(qty))
		quantity = quantity.Add(qty)
	}

	if quantity.IsZero() {
		return decimal.Zero, nil
	}

	return notional.Div(quantity), nil
}

// AvailableBalance implements sizing.Portfolio. BUY is the free quote balance in base units,
// SELL the free base balance. Reduce-only buys have nothing to close on spot.
func (b *Binance) AvailableBalance(ctx context.Context, symbol string, side types.PurchaseType, reduceOnly bool) (decimal.Decimal, error) {
	if reduceOnly && side == types.PurchaseTypeBuy {
		return decimal.Zero, nil
	}

	base, quote, err := b.pair(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if side == types.PurchaseTypeSell {
		return base.free, nil
	}

	return b.inBaseUnits(ctx, symbol, quote.free)
}

// TotalBalance implements sizing.Portfolio, locked funds included.
func (b *Binance) TotalBalance(ctx context.Context, symbol string, side types.PurchaseType) (decimal.Decimal, error) {
	base, quote, err := b.pair(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if side == types.PurchaseTypeSell {
		return base.total(), nil
	}

	return b.inBaseUnits(ctx, symbol, quote.total())
}

// TotalAccountBalance implements sizing.Portfolio with the quote and base balances of the
// pair. Other assets of the account are not valued.
func (b *Binance) TotalAccountBalance(ctx context.Context, symbol string) (decimal.Decimal, error) {
	base, quote, err := b.pair(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	quoteInBase, err := b.inBaseUnits(ctx, symbol, quote.total())
	if err != nil {
		return decimal.Zero, err
	}

	return base.total().Add(quoteInBase), nil
}

func (b *Binance) baseAsset(symbol string) (string, error) {
	base, ok := strings.CutSuffix(symbol, b.quoteAsset)
	if !ok || base == "" {
		return "", errors.InvalidArgumentf("symbol %s is not quoted in %s", symbol, b.quoteAsset)
	}

	return base, nil
}

// pair returns the base and quote balances of symbol. Assets missing from the account are zero.
func (b *Binance) pair(ctx context.Context, symbol string) (assetBalance, assetBalance, error) {
	baseAsset, err := b.baseAsset(symbol)
	if err != nil {
		return assetBalance{}, assetBalance{}, err
	}

	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return assetBalance{}, assetBalance{}, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get account info from Binance", err)
	}

	var base, quote assetBalance

	for _, balance := range account.Balances {
		if balance.Asset != baseAsset && balance.Asset != b.quoteAsset {
			continue
		}

		free, err := parseDecimal(balance.Free)
		if err != nil {
			return assetBalance{}, assetBalance{}, err
		}

		locked, err := parseDecimal(balance.Locked)
		if err != nil {
			return assetBalance{}, assetBalance{}, err
		}

		if balance.Asset == baseAsset {
			base = assetBalance{free: free, locked: locked}
		} else {
			quote = assetBalance{free: free, locked: locked}
		}
	}

	return base, quote, nil
}

func (b *Binance) inBaseUnits(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	price, err := b.LivePrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if !price.IsPositive() {
		return decimal.Zero, errors.Newf(errors.ErrCodePriceUnavailable, "price of %s is not positive", symbol)
	}

	return amount.Div(price), nil
}
