package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceGenerator_Generate(t *testing.T) {
	config := DefaultConfig()
	config.Count = 200

	ticks := NewPriceGenerator(42).Generate(config)
	require.Len(t, ticks, 200)

	for i, tick := range ticks {
		assert.True(t, tick.OwnPrice.IsPositive(), "own price at %d", i)
		assert.True(t, tick.OtherAveragePrice.IsPositive(), "other price at %d", i)

		if i > 0 {
			assert.True(t, tick.Time.After(ticks[i-1].Time), "chronological order at %d", i)
		}
	}
}

func TestPriceGenerator_Reproducible(t *testing.T) {
	config := DefaultConfig()
	config.Count = 50

	first := NewPriceGenerator(7).Generate(config)
	second := NewPriceGenerator(7).Generate(config)

	for i := range first {
		assert.True(t, first[i].OwnPrice.Equal(second[i].OwnPrice))
		assert.True(t, first[i].OtherAveragePrice.Equal(second[i].OtherAveragePrice))
	}
}
