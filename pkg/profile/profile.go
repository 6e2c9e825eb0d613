package profile

import (
	"github.com/notjagan/pokerank/pkg/chart"
)

type Matchup struct {
	Type       chart.Type
	Multiplier chart.Multiplier
}

// Matchups is a single classification bucket, ordered by type id.
type Matchups []Matchup

func (ms Matchups) Get(typ chart.Type) (chart.Multiplier, bool) {
	for _, m := range ms {
		if m.Type == typ {
			return m.Multiplier, true
		}
	}

	return chart.Neutral, false
}

func (ms Matchups) Has(typ chart.Type) bool {
	_, ok := ms.Get(typ)
	return ok
}

func (ms Matchups) Sum() float64 {
	var sum float64
	for _, m := range ms {
		sum += float64(m.Multiplier)
	}

	return sum
}

func (ms Matchups) Types() []chart.Type {
	types := make([]chart.Type, len(ms))
	for i, m := range ms {
		types[i] = m.Type
	}

	return types
}

type Bucket int

const (
	BucketNeutral Bucket = iota
	BucketWeakness
	BucketResistance
	BucketImmunity
)

func classify(m chart.Multiplier) Bucket {
	switch {
	case m == chart.Immune:
		return BucketImmunity
	case m == chart.Neutral:
		return BucketNeutral
	case m > chart.Neutral:
		return BucketWeakness
	default:
		return BucketResistance
	}
}

// Profile is the defensive and offensive breakdown of one type or a combination of types.
// The four defensive buckets partition the type universe; the offensive buckets leave
// neutral matchups out.
type Profile struct {
	Combination chart.Combination

	Weaknesses  Matchups
	Resistances Matchups
	Immunities  Matchups
	Neutrals    Matchups

	Coverage             Matchups
	OffensiveResistances Matchups
	OffensiveImmunities  Matchups
}

// Defending returns the bucket and combined multiplier for attack hitting the profile.
func (p *Profile) Defending(attack chart.Type) (Bucket, chart.Multiplier) {
	switch {
	case p.Immunities.Has(attack):
		return BucketImmunity, chart.Immune
	case p.Weaknesses.Has(attack):
		m, _ := p.Weaknesses.Get(attack)
		return BucketWeakness, m
	case p.Resistances.Has(attack):
		m, _ := p.Resistances.Get(attack)
		return BucketResistance, m
	default:
		return BucketNeutral, chart.Neutral
	}
}

// multipliers accumulates one bucket keyed by type id before it is laid out in id order.
type multipliers map[int]chart.Multiplier

// Stack combines a running multiplier with the next member's contribution.
// Contributions above neutral stack up to chart.MaxStack; the rest multiply.
func Stack(existing, next chart.Multiplier) chart.Multiplier {
	if next > chart.Neutral {
		return min(existing*next, chart.MaxStack)
	}

	return existing * next
}

func (ms multipliers) fold(m Matchup) {
	existing, ok := ms[m.Type.ID]
	if !ok {
		ms[m.Type.ID] = m.Multiplier
		return
	}

	ms[m.Type.ID] = Stack(existing, m.Multiplier)
}

type typeSet map[int]bool
