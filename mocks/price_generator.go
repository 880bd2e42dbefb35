package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTick is one observation of the same symbol on two exchanges.
type PriceTick struct {
	Time time.Time
	// OwnPrice is the price on the exchange the strategy trades on.
	OwnPrice decimal.Decimal
	// OtherAveragePrice is the average price across the other exchanges.
	OtherAveragePrice decimal.Decimal
}

// PriceGenerator generates cross-exchange price series for arbitrage tests.
type PriceGenerator struct {
	rng *rand.Rand
}

// NewPriceGenerator creates a new PriceGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewPriceGenerator(seed int64) *PriceGenerator {
	return &PriceGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how prices are generated.
type GeneratorConfig struct {
	StartTime time.Time
	Interval  time.Duration
	Count     int
	// InitialPrice is the starting reference price
	InitialPrice float64
	// Volatility of the reference price per tick (0.001 = 0.1%)
	Volatility float64
	// SpreadVolatility is how far the two exchanges drift apart per tick
	SpreadVolatility float64
	// SpreadReversion pulls the spread back to zero (0 = random walk, 1 = no memory)
	SpreadReversion float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:         time.Second,
		Count:            1000,
		InitialPrice:     100.0,
		Volatility:       0.001,
		SpreadVolatility: 0.002,
		SpreadReversion:  0.2,
	}
}

// Generate creates a series of ticks. The reference price follows a geometric Brownian
// motion and the spread between the exchanges is mean reverting.
func (g *PriceGenerator) Generate(config GeneratorConfig) []PriceTick {
	ticks := make([]PriceTick, config.Count)
	reference := config.InitialPrice
	spread := 0.0
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		reference *= 1 + config.Volatility*g.normal()
		if reference <= 0 {
			reference = config.InitialPrice * 0.01
		}

		spread = spread*(1-config.SpreadReversion) + config.SpreadVolatility*g.normal()

		own := reference * (1 + spread/2)
		other := reference * (1 - spread/2)

		ticks[i] = PriceTick{
			Time:              currentTime,
			OwnPrice:          decimal.NewFromFloat(own).Round(4),
			OtherAveragePrice: decimal.NewFromFloat(other).Round(4),
		}

		currentTime = currentTime.Add(config.Interval)
	}

	return ticks
}

// normal draws from N(0, 1) with the Box-Muller transform.
func (g *PriceGenerator) normal() float64 {
	u1 := g.rng.Float64()
	for u1 == 0 {
		u1 = g.rng.Float64()
	}

	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
