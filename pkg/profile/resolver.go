package profile

import (
	"fmt"

	"github.com/notjagan/pokerank/pkg/chart"
)

// Resolver derives single-type profiles from a chart.
type Resolver struct {
	chart *chart.Chart
}

func NewResolver(c *chart.Chart) *Resolver {
	return &Resolver{chart: c}
}

func (r *Resolver) Resolve(typ chart.Type) (*Profile, error) {
	if !r.chart.Contains(typ) {
		return nil, fmt.Errorf("could not resolve type %q: %w", typ.Name, chart.ErrInvalidType)
	}

	combo, err := chart.NewCombination(typ)
	if err != nil {
		return nil, fmt.Errorf("could not resolve type %q: %w", typ.Name, err)
	}

	p := &Profile{Combination: combo}
	for _, other := range r.chart.Types() {
		m, err := r.chart.Lookup(other, typ)
		if err != nil {
			return nil, fmt.Errorf("could not look up %s attacking %s: %w", other.Name, typ.Name, err)
		}

		matchup := Matchup{Type: other, Multiplier: m}
		switch classify(m) {
		case BucketWeakness:
			p.Weaknesses = append(p.Weaknesses, matchup)
		case BucketResistance:
			p.Resistances = append(p.Resistances, matchup)
		case BucketImmunity:
			p.Immunities = append(p.Immunities, matchup)
		case BucketNeutral:
			p.Neutrals = append(p.Neutrals, matchup)
		}

		m, err = r.chart.Lookup(typ, other)
		if err != nil {
			return nil, fmt.Errorf("could not look up %s attacking %s: %w", typ.Name, other.Name, err)
		}

		matchup = Matchup{Type: other, Multiplier: m}
		switch {
		case m >= chart.SuperEffective:
			p.Coverage = append(p.Coverage, matchup)
		case m == chart.NotVeryEffective:
			p.OffensiveResistances = append(p.OffensiveResistances, matchup)
		case m == chart.Immune:
			p.OffensiveImmunities = append(p.OffensiveImmunities, matchup)
		}
	}

	return p, nil
}

func (r *Resolver) ResolveName(name string) (*Profile, error) {
	typ, err := r.chart.TypeByName(name)
	if err != nil {
		return nil, err
	}

	return r.Resolve(typ)
}
