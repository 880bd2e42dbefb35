package types

// ExecutionMode tells whether orders run against a live exchange or a simulated clock.
type ExecutionMode string

const (
	ExecutionModeLive     ExecutionMode = "live"
	ExecutionModeBacktest ExecutionMode = "backtest"
)

// ModeProvider exposes the "running under backtesting" flag.
type ModeProvider interface {
	IsBacktesting() bool
}

// IsBacktesting implements ModeProvider.
func (m ExecutionMode) IsBacktesting() bool {
	return m == ExecutionModeBacktest
}

var _ ModeProvider = ExecutionModeLive
