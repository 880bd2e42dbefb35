package account

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"go.uber.org/zap"
)

// Write exports the orders and trades tables to Parquet files in dir.
func (a *Account) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to create directory %s", dir)
	}

	tradesPath := filepath.Join(dir, "trades.parquet")
	ordersPath := filepath.Join(dir, "orders.parquet")

	// COPY has no squirrel builder
	if _, err := a.db.Exec(fmt.Sprintf(`COPY trades TO '%s' (FORMAT PARQUET)`, tradesPath)); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to export trades to Parquet", err)
	}

	if _, err := a.db.Exec(fmt.Sprintf(`COPY orders TO '%s' (FORMAT PARQUET)`, ordersPath)); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to export orders to Parquet", err)
	}

	a.logger.Info("Exported account history",
		zap.String("trades", tradesPath),
		zap.String("orders", ordersPath),
	)

	return nil
}
