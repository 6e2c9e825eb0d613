package profile

import (
	"errors"
	"fmt"

	"github.com/notjagan/pokerank/pkg/chart"
)

//go:generate enumer -type=Rule -trimprefix=Rule -transform=snake -text

// Rule selects how member profiles are combined.
type Rule int

const (
	// RuleIncremental folds member profiles one at a time with capped stacking.
	// It is the rule the rankings use.
	RuleIncremental Rule = iota
	// RuleProduct multiplies raw chart values across members.
	RuleProduct
)

var ErrUnknownRule = errors.New("unknown merge rule")

// Aggregator merges the profiles of the members of a combination.
type Aggregator struct {
	chart   *chart.Chart
	rule    Rule
	singles []*Profile
}

func NewAggregator(c *chart.Chart, rule Rule) (*Aggregator, error) {
	if !rule.IsARule() {
		return nil, fmt.Errorf("could not create aggregator with rule %d: %w", rule, ErrUnknownRule)
	}

	resolver := NewResolver(c)
	singles := make([]*Profile, c.Len())
	for _, typ := range c.Types() {
		p, err := resolver.Resolve(typ)
		if err != nil {
			return nil, fmt.Errorf("could not resolve single type profiles: %w", err)
		}
		singles[typ.ID] = p
	}

	return &Aggregator{
		chart:   c,
		rule:    rule,
		singles: singles,
	}, nil
}

func (a *Aggregator) Rule() Rule {
	return a.rule
}

func (a *Aggregator) Chart() *chart.Chart {
	return a.chart
}

// Merge builds the combined profile of combo. Profiles are freshly allocated on every call.
func (a *Aggregator) Merge(combo chart.Combination) (*Profile, error) {
	if combo.Len() == 0 || combo.Len() > chart.MaxCombinationSize {
		return nil, fmt.Errorf("could not merge %d types: %w", combo.Len(), chart.ErrInvalidCombinationSize)
	}
	for _, typ := range combo.Types() {
		if !a.chart.Contains(typ) {
			return nil, fmt.Errorf("could not merge %q: %w", typ.Name, chart.ErrInvalidType)
		}
	}

	switch a.rule {
	case RuleProduct:
		return a.mergeProduct(combo)
	default:
		return a.mergeIncremental(combo), nil
	}
}

// MergeTypes validates types as a combination before merging, so repeated types are rejected.
func (a *Aggregator) MergeTypes(types ...chart.Type) (*Profile, error) {
	combo, err := chart.NewCombination(types...)
	if err != nil {
		return nil, fmt.Errorf("invalid combination: %w", err)
	}

	return a.Merge(combo)
}

// mergeIncremental folds weaknesses and resistances into one multiplier per attacker,
// so a x2 from one member and a x0.5 from another cancel out. Entries that land on
// neutral are only dropped once every member is folded, which keeps the result
// independent of member order.
func (a *Aggregator) mergeIncremental(combo chart.Combination) *Profile {
	defensive := make(multipliers)
	immune := make(typeSet)
	coverage := make(multipliers)
	offResisted := make(multipliers)
	offImmune := make(typeSet)

	for _, member := range combo.Types() {
		single := a.singles[member.ID]
		for _, m := range single.Weaknesses {
			defensive.fold(m)
		}
		for _, m := range single.Resistances {
			defensive.fold(m)
		}
		for _, m := range single.Immunities {
			immune[m.Type.ID] = true
		}
		for _, m := range single.Coverage {
			coverage.fold(m)
		}
		for _, m := range single.OffensiveResistances {
			offResisted.fold(m)
		}
		for _, m := range single.OffensiveImmunities {
			offImmune[m.Type.ID] = true
		}
	}

	return a.assemble(combo, defensive, immune, coverage, offResisted, offImmune)
}

func (a *Aggregator) mergeProduct(combo chart.Combination) (*Profile, error) {
	defensive := make(multipliers)
	immune := make(typeSet)
	coverage := make(multipliers)
	offResisted := make(multipliers)
	offImmune := make(typeSet)

	for _, other := range a.chart.Types() {
		def, off := chart.Neutral, chart.Neutral
		for _, member := range combo.Types() {
			m, err := a.chart.Lookup(other, member)
			if err != nil {
				return nil, fmt.Errorf("could not look up %s attacking %s: %w", other.Name, member.Name, err)
			}
			def *= m

			m, err = a.chart.Lookup(member, other)
			if err != nil {
				return nil, fmt.Errorf("could not look up %s attacking %s: %w", member.Name, other.Name, err)
			}
			off *= m
		}

		if def == chart.Immune {
			immune[other.ID] = true
		} else {
			defensive[other.ID] = def
		}

		switch {
		case off == chart.Immune:
			offImmune[other.ID] = true
		case off > chart.Neutral:
			coverage[other.ID] = off
		case off < chart.Neutral:
			offResisted[other.ID] = off
		}
	}

	return a.assemble(combo, defensive, immune, coverage, offResisted, offImmune), nil
}

// assemble lays the accumulated buckets out in type id order. Immunities take priority
// over any weakness or resistance recorded for the same attacker.
func (a *Aggregator) assemble(
	combo chart.Combination,
	defensive multipliers,
	immune typeSet,
	coverage multipliers,
	offResisted multipliers,
	offImmune typeSet,
) *Profile {
	p := &Profile{Combination: combo}
	for _, typ := range a.chart.Types() {
		if immune[typ.ID] {
			p.Immunities = append(p.Immunities, Matchup{Type: typ, Multiplier: chart.Immune})
		} else {
			m, ok := defensive[typ.ID]
			if !ok {
				m = chart.Neutral
			}

			matchup := Matchup{Type: typ, Multiplier: m}
			switch classify(m) {
			case BucketWeakness:
				p.Weaknesses = append(p.Weaknesses, matchup)
			case BucketResistance:
				p.Resistances = append(p.Resistances, matchup)
			default:
				p.Neutrals = append(p.Neutrals, matchup)
			}
		}

		if m, ok := coverage[typ.ID]; ok {
			p.Coverage = append(p.Coverage, Matchup{Type: typ, Multiplier: m})
		}
		if m, ok := offResisted[typ.ID]; ok && m < chart.Neutral {
			p.OffensiveResistances = append(p.OffensiveResistances, Matchup{Type: typ, Multiplier: m})
		}
		if offImmune[typ.ID] {
			p.OffensiveImmunities = append(p.OffensiveImmunities, Matchup{Type: typ, Multiplier: chart.Immune})
		}
	}

	return p
}
