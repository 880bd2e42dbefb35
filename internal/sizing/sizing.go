package sizing

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/quantity"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/shopspring/decimal"
)

// Portfolio reads the account state of one symbol. Every size and balance is in base units.
type Portfolio interface {
	// OpenPositionSize returns the signed open position: positive for long, negative for short.
	OpenPositionSize(ctx context.Context, symbol string) (decimal.Decimal, error)
	// AverageEntryPrice returns the average entry price of the given side of the open position.
	AverageEntryPrice(ctx context.Context, symbol string, side types.PositionType) (decimal.Decimal, error)
	// AvailableBalance returns what can still be traded on side. With reduceOnly it is the
	// quantity that can be closed instead.
	AvailableBalance(ctx context.Context, symbol string, side types.PurchaseType, reduceOnly bool) (decimal.Decimal, error)
	// TotalBalance returns the balance for side including funds locked in open orders.
	TotalBalance(ctx context.Context, symbol string, side types.PurchaseType) (decimal.Decimal, error)
	// TotalAccountBalance returns the whole account value expressed in base units of symbol.
	TotalAccountBalance(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// PriceSource returns the live price of a symbol.
type PriceSource interface {
	LivePrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// HoldingsRequest is the input of a holdings adaptation.
type HoldingsRequest struct {
	Symbol          string
	Side            types.PurchaseType
	Size            decimal.Decimal
	ReduceOnly      bool
	IsStopOrder     bool
	UseTotalHolding bool
	TargetPrice     optional.Option[decimal.Decimal]
}

// HoldingsAdapter clamps a resolved order size to what the account can actually trade.
type HoldingsAdapter interface {
	Adapt(ctx context.Context, request HoldingsRequest) (decimal.Decimal, error)
}

// PortfolioMode tells the resolver whether the account snapshot can be trusted.
type PortfolioMode int

const (
	// PortfolioKnown resolves sizes against the account and clamps them to the holdings.
	PortfolioKnown PortfolioMode = iota
	// PortfolioUnknownOnCreation skips holdings validation and returns the raw parsed
	// magnitude. Meant for order-creation paths that run before the account is loaded.
	PortfolioUnknownOnCreation
)

// Resolver resolves amount, position target and offset specs into order parameters.
type Resolver struct {
	parser    *quantity.Parser
	portfolio Portfolio
	prices    PriceSource
	holdings  HoldingsAdapter
	logger    *logger.Logger
}

// NewResolver creates a resolver. holdings may be nil, in which case sizes are not clamped.
func NewResolver(parser *quantity.Parser, portfolio Portfolio, prices PriceSource, holdings HoldingsAdapter, log *logger.Logger) *Resolver {
	return &Resolver{
		parser:    parser,
		portfolio: portfolio,
		prices:    prices,
		holdings:  holdings,
		logger:    log.Named("sizing"),
	}
}

func (r *Resolver) adapt(ctx context.Context, request HoldingsRequest) (decimal.Decimal, error) {
	if r.holdings == nil {
		return request.Size, nil
	}

	return r.holdings.Adapt(ctx, request)
}
