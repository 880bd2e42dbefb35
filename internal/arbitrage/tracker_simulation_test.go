package arbitrage

import (
	"testing"

	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/logger"
	"github.com/rxtech-lab/argo-execution/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerOnGeneratedPrices(t *testing.T) {
	generatorConfig := mocks.DefaultConfig()
	generatorConfig.Count = 2000
	ticks := mocks.NewPriceGenerator(42).Generate(generatorConfig)

	tracker := NewTracker(config.Default().Arbitrage, logger.NewNopLogger())
	decisions := map[Decision]int{}

	for i, tick := range ticks {
		decision := tracker.OnPriceUpdate(tick.OwnPrice, tick.OtherAveragePrice)
		decisions[decision]++

		switch decision {
		case DecisionOpened, DecisionKept, DecisionIgnored:
			require.True(t, tracker.Current().IsSome(), "tick %d", i)
			assert.False(t, tracker.Current().Unwrap().IsExpired(tick.OtherAveragePrice), "tick %d", i)
		case DecisionExpired:
			require.True(t, tracker.Current().IsNone(), "tick %d", i)
		case DecisionNone:
		}
	}

	// a 0.2% spread volatility crosses the 0.5% trigger ratio now and then
	assert.Positive(t, decisions[DecisionOpened])
}
