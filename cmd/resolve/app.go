package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-execution/internal/backtest/account"
	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/exchange"
	"github.com/rxtech-lab/argo-execution/internal/fee"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/internal/sizing"
	"github.com/rxtech-lab/argo-execution/internal/trading"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/internal/version"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "resolve",
		Usage:   "Resolve order amounts, position targets and price offsets against an account",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file. Defaults are used when omitted",
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "Path to the YAML account snapshot loaded into the simulated account",
			},
			&cli.BoolFlag{
				Name:  "live",
				Usage: "Read the account from Binance instead of a snapshot",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to the .env file holding BINANCE_API_KEY and BINANCE_SECRET_KEY",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:     "symbol",
				Usage:    "Trading pair, e.g. BTCUSDT",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "amount",
				Usage:     "Resolve an order amount, e.g. 0.5, 60% or 20a%",
				ArgsUsage: "<spec>",
				Flags: []cli.Flag{
					sideFlag(),
					&cli.BoolFlag{Name: "reduce-only", Usage: "Only close the open position"},
					&cli.BoolFlag{Name: "total", Usage: "Size from the total holding, locked funds included"},
					&cli.BoolFlag{Name: "stop", Usage: "The order is a stop order"},
					&cli.StringFlag{Name: "price", Usage: "Price the order is sized at instead of the live price"},
				},
				Action: amountAction,
			},
			{
				Name:      "target",
				Usage:     "Resolve the order reaching a position target, e.g. 50% or 2",
				ArgsUsage: "<target>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reduce-only", Usage: "Only close the open position"},
					&cli.BoolFlag{Name: "total", Usage: "Size from the total holding, locked funds included"},
					&cli.BoolFlag{Name: "stop", Usage: "The order is a stop order"},
					&cli.StringFlag{Name: "price", Usage: "Price the order is sized at instead of the live price"},
				},
				Action: targetAction,
			},
			{
				Name:      "offset",
				Usage:     "Resolve a price offset, e.g. -5%, e2% or @100",
				ArgsUsage: "<spec>",
				Flags:     []cli.Flag{sideFlag()},
				Action:    offsetAction,
			},
			{
				Name:   "watch",
				Usage:  "Print the fills of the live account as they happen, until interrupted",
				Action: watchAction,
			},
		},
	}
}

func sideFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "side",
		Usage: "Order side, BUY or SELL",
		Value: string(types.PurchaseTypeBuy),
	}
}

func amountAction(ctx context.Context, cmd *cli.Command) error {
	spec, err := specArg(cmd)
	if err != nil {
		return err
	}

	side, err := sideArg(cmd)
	if err != nil {
		return err
	}

	targetPrice, err := priceArg(cmd)
	if err != nil {
		return err
	}

	return withContext(ctx, cmd, func(tc *trading.Context) error {
		amount, err := tc.GetAmount(ctx, sizing.AmountRequest{
			Symbol:          cmd.String("symbol"),
			Spec:            spec,
			Side:            side,
			ReduceOnly:      cmd.Bool("reduce-only"),
			IsStopOrder:     cmd.Bool("stop"),
			UseTotalHolding: cmd.Bool("total"),
			TargetPrice:     targetPrice,
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.Root().Writer, "%s %s %s\n", side, amount, cmd.String("symbol"))

		return err
	})
}

func targetAction(ctx context.Context, cmd *cli.Command) error {
	target, err := specArg(cmd)
	if err != nil {
		return err
	}

	targetPrice, err := priceArg(cmd)
	if err != nil {
		return err
	}

	return withContext(ctx, cmd, func(tc *trading.Context) error {
		result, err := tc.GetTargetPosition(ctx, sizing.TargetPositionRequest{
			Symbol:          cmd.String("symbol"),
			Target:          target,
			ReduceOnly:      cmd.Bool("reduce-only"),
			IsStopOrder:     cmd.Bool("stop"),
			UseTotalHolding: cmd.Bool("total"),
			TargetPrice:     targetPrice,
		})
		if err != nil {
			return err
		}

		switch result := result.(type) {
		case sizing.OrderSize:
			_, err = fmt.Fprintf(cmd.Root().Writer, "%s %s %s\n", result.Side, result.Size, cmd.String("symbol"))
		default:
			_, err = fmt.Fprintln(cmd.Root().Writer, "no order needed")
		}

		return err
	})
}

func offsetAction(ctx context.Context, cmd *cli.Command) error {
	spec, err := specArg(cmd)
	if err != nil {
		return err
	}

	side, err := sideArg(cmd)
	if err != nil {
		return err
	}

	return withContext(ctx, cmd, func(tc *trading.Context) error {
		price, err := tc.GetOffset(ctx, cmd.String("symbol"), spec, side)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.Root().Writer, price)

		return err
	})
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("live") {
		return fmt.Errorf("watch needs --live")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withContext(ctx, cmd, func(tc *trading.Context) error {
		tc.OnFill(func(_ context.Context, order *types.Order) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "FILLED %s %s %s %s\n", order.ID, order.Side, order.Quantity, order.Symbol)

			return err
		})

		return tc.StreamOrderUpdates(ctx)
	})
}

func specArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one spec argument, got %d", cmd.Args().Len())
	}

	return cmd.Args().First(), nil
}

func sideArg(cmd *cli.Command) (types.PurchaseType, error) {
	side := types.PurchaseType(cmd.String("side"))
	if side != types.PurchaseTypeBuy && side != types.PurchaseTypeSell {
		return "", fmt.Errorf("side must be BUY or SELL, got %q", side)
	}

	return side, nil
}

func priceArg(cmd *cli.Command) (optional.Option[decimal.Decimal], error) {
	raw := cmd.String("price")
	if raw == "" {
		return optional.None[decimal.Decimal](), nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return optional.None[decimal.Decimal](), fmt.Errorf("invalid price %q: %w", raw, err)
	}

	return optional.Some(price), nil
}

// withContext builds the trading context over the selected venue and runs fn with it.
func withContext(ctx context.Context, cmd *cli.Command, fn func(tc *trading.Context) error) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(cfg.ZapLevel())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if cmd.Bool("live") {
		return withBinance(ctx, cmd, cfg, log, fn)
	}

	snapshotPath := cmd.String("snapshot")
	if snapshotPath == "" {
		return fmt.Errorf("either --snapshot or --live is required")
	}

	snapshot, err := account.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}

	acc, err := account.NewAccount(fee.GetCommissionFeeHandler(cfg.Sizing.Broker), cfg.Sizing.DecimalPrecision, log)
	if err != nil {
		return err
	}
	defer acc.Close()

	if err := acc.Apply(ctx, snapshot); err != nil {
		return err
	}

	return fn(trading.NewContext(cfg, acc, nil, log))
}

func withBinance(ctx context.Context, cmd *cli.Command, cfg *config.Config, log *logger.Logger, fn func(tc *trading.Context) error) error {
	if err := godotenv.Load(cmd.String("env")); err != nil {
		log.Debug("No .env file loaded", zap.String("path", cmd.String("env")), zap.Error(err))
	}

	if cfg.Binance.ApiKey == "" {
		cfg.Binance.ApiKey = os.Getenv("BINANCE_API_KEY")
	}

	if cfg.Binance.SecretKey == "" {
		cfg.Binance.SecretKey = os.Getenv("BINANCE_SECRET_KEY")
	}

	venue, err := exchange.NewBinance(cfg.Binance, cfg.Sizing.DecimalPrecision, log)
	if err != nil {
		return err
	}

	commissionFee, err := venue.CommissionFee(ctx, cmd.String("symbol"))
	if err != nil {
		log.Warn("Falling back to the configured commission", zap.Error(err))
	}

	return fn(trading.NewContext(cfg, venue, commissionFee, log))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()

		return &cfg, nil
	}

	return config.Load(path)
}
