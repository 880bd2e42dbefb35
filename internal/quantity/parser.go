package quantity

import (
	"sort"
	"strings"

	"github.com/rxtech-lab/argo-execution/internal/config"
	"github.com/rxtech-lab/argo-execution/internal/types"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/shopspring/decimal"
)

type suffixRule struct {
	suffix       string
	quantityType types.QuantityType
}

// Parser turns spec strings such as "60%", "e10%", "@100" or "0.5b" into a Quantity.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	grammar config.GrammarConfig
	// explicit suffixes, longest first so "a%" wins over "%"
	suffixes []suffixRule
}

// NewParser builds a parser for the given marker table.
func NewParser(grammar config.GrammarConfig) *Parser {
	suffixes := []suffixRule{
		{suffix: grammar.AvailablePercentSuffix, quantityType: types.QuantityTypeAvailablePercent},
		{suffix: grammar.PositionPercentSuffix, quantityType: types.QuantityTypePositionPercent},
		{suffix: grammar.TotalPercentSuffix, quantityType: types.QuantityTypePercent},
		{suffix: grammar.BaseSuffix, quantityType: types.QuantityTypeDeltaBase},
	}

	sort.SliceStable(suffixes, func(i, j int) bool {
		return len(suffixes[i].suffix) > len(suffixes[j].suffix)
	})

	return &Parser{
		grammar:  grammar,
		suffixes: suffixes,
	}
}

// NewDefaultParser builds a parser with the default marker table.
func NewDefaultParser() *Parser {
	return NewParser(config.DefaultGrammar())
}

// ParseAmount parses an order amount. A bare percent means PERCENT.
func (p *Parser) ParseAmount(spec string) (types.Quantity, error) {
	return p.Parse(spec, types.QuantityTypePercent)
}

// ParseTarget parses a position target. A bare percent means POSITION_PERCENT.
func (p *Parser) ParseTarget(spec string) (types.Quantity, error) {
	return p.Parse(spec, types.QuantityTypePositionPercent)
}

// ParseOffset parses a price offset. A bare percent means PERCENT of the live price.
func (p *Parser) ParseOffset(spec string) (types.Quantity, error) {
	return p.Parse(spec, types.QuantityTypePercent)
}

// Parse parses spec. barePercent is the type a plain percent suffix resolves to.
func (p *Parser) Parse(spec string, barePercent types.QuantityType) (types.Quantity, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return types.Quantity{}, errors.New(errors.ErrCodeInvalidArgument, "quantity spec cannot be empty")
	}

	if rest, ok := strings.CutPrefix(trimmed, p.grammar.FlatPrefix); ok {
		value, err := parseMagnitude(spec, rest)
		if err != nil {
			return types.Quantity{}, err
		}

		if value.IsNegative() {
			return types.Quantity{}, errors.InvalidArgumentf("flat value cannot be negative: %q", spec)
		}

		return types.Quantity{Type: types.QuantityTypeFlat, Value: value}, nil
	}

	if rest, ok := strings.CutPrefix(trimmed, p.grammar.EntryPrefix); ok {
		quantityType := types.QuantityTypeEntry

		if withoutPercent, isPercent := strings.CutSuffix(rest, p.grammar.PercentSuffix); isPercent {
			quantityType = types.QuantityTypeEntryPercent
			rest = withoutPercent
		}

		value, err := parseMagnitude(spec, rest)
		if err != nil {
			return types.Quantity{}, err
		}

		return types.Quantity{Type: quantityType, Value: value}, nil
	}

	for _, rule := range p.suffixes {
		if rest, ok := strings.CutSuffix(trimmed, rule.suffix); ok {
			value, err := parseMagnitude(spec, rest)
			if err != nil {
				return types.Quantity{}, err
			}

			return types.Quantity{Type: rule.quantityType, Value: value}, nil
		}
	}

	if rest, ok := strings.CutSuffix(trimmed, p.grammar.PercentSuffix); ok {
		value, err := parseMagnitude(spec, rest)
		if err != nil {
			return types.Quantity{}, err
		}

		return types.Quantity{Type: barePercent, Value: value}, nil
	}

	value, err := parseMagnitude(spec, trimmed)
	if err != nil {
		return types.Quantity{}, err
	}

	return types.Quantity{Type: types.QuantityTypeDelta, Value: value}, nil
}

func parseMagnitude(spec, raw string) (decimal.Decimal, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "+")
	if raw == "" {
		return decimal.Zero, errors.InvalidArgumentf("missing magnitude in quantity spec %q", spec)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeInvalidArgument, err, "invalid magnitude in quantity spec %q", spec)
	}

	return value, nil
}
