package score

import (
	"errors"
	"fmt"
	"maps"

	"github.com/notjagan/pokerank/pkg/profile"
)

//go:generate enumer -type=Axis -trimprefix=Axis -transform=snake -text

type Axis int

const (
	AxisDefensive Axis = iota
	AxisOffensive
	// AxisTotal is defensive + offensive.
	AxisTotal
	// AxisAverage is (defensive + offensive) / 2.
	AxisAverage
)

var ErrUnknownAxis = errors.New("unknown score axis")

const (
	immunityWeight    = 3.5
	balanceWeight     = 1.25
	resistedPenalty   = 2.0
	partialWallWeight = 2.0
	fullWallWeight    = 3.5
)

// Options carries the optional per-type weighting of defensive scores.
// Keys are type names as they appear in the chart.
type Options struct {
	ApplyBonus      bool
	TypeBonus       map[string]float64
	WeaknessPenalty map[string]float64
}

func DefaultOptions() Options {
	return Options{
		ApplyBonus: false,
		TypeBonus: map[string]float64{
			"Water": 1.00, "Normal": 0.45, "Grass": 0.35, "Psychic": 0.85,
			"Fire": 1.00, "Bug": 0.35, "Electric": 0.65, "Fighting": 0.85,
			"Poison": 0.45, "Flying": 1.00, "Dark": 0.90, "Ground": 1.50,
			"Ghost": 0.95, "Dragon": 0.85, "Rock": 1.00, "Fairy": 1.00,
			"Steel": 0.90, "Ice": 1.00,
		},
		WeaknessPenalty: map[string]float64{
			"Ground": 1.00, "Fire": 1.00, "Rock": 1.00, "Water": 1.00, "Ice": 1.00, "Fairy": 1.00,
			"Flying": 1.00, "Fighting": 1.00, "Steel": 1.00, "Dark": 1.00, "Ghost": 1.00,
			"Psychic": 1.00, "Dragon": 1.00, "Electric": 1.00, "Bug": 1.00, "Grass": 1.00,
			"Poison": 1.00, "Normal": 1.00,
		},
	}
}

// Scores holds both axes computed for one profile.
type Scores struct {
	Defensive float64
	Offensive float64
}

func (s Scores) Total() float64 {
	return s.Defensive + s.Offensive
}

func (s Scores) Average() float64 {
	return (s.Defensive + s.Offensive) / 2
}

func (s Scores) Get(axis Axis) (float64, error) {
	switch axis {
	case AxisDefensive:
		return s.Defensive, nil
	case AxisOffensive:
		return s.Offensive, nil
	case AxisTotal:
		return s.Total(), nil
	case AxisAverage:
		return s.Average(), nil
	default:
		return 0, fmt.Errorf("axis %d: %w", axis, ErrUnknownAxis)
	}
}

// Engine reduces profiles to scores. It is safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	return &Engine{
		opts: Options{
			ApplyBonus:      opts.ApplyBonus,
			TypeBonus:       maps.Clone(opts.TypeBonus),
			WeaknessPenalty: maps.Clone(opts.WeaknessPenalty),
		},
	}
}

func (e *Engine) bonus(name string) float64 {
	if !e.opts.ApplyBonus {
		return 1
	}
	if b, ok := e.opts.TypeBonus[name]; ok {
		return b
	}

	return 1
}

// Defensive scores stacked weaknesses against resistances and immunities, then rewards
// profiles whose resistances outnumber their weaknesses (and penalises the reverse).
func (e *Engine) Defensive(p *profile.Profile) float64 {
	var score float64
	for _, m := range p.Weaknesses {
		score -= e.bonus(m.Type.Name) * float64(m.Multiplier)
		if e.opts.ApplyBonus {
			score -= e.opts.WeaknessPenalty[m.Type.Name] * float64(m.Multiplier)
		}
	}
	for _, m := range p.Resistances {
		score += e.bonus(m.Type.Name) * float64(m.Multiplier)
	}
	score += float64(len(p.Immunities)) * immunityWeight

	weak, resist := len(p.Weaknesses), len(p.Resistances)
	switch {
	case weak > resist:
		score -= balanceWeight * float64(weak-resist)
	case resist > weak:
		score += balanceWeight * float64(resist-weak)
	}

	return score
}

// Offensive sums coverage and penalises resisted and immune defenders. An immune defender
// costs less when another member of the combination covers it.
func (e *Engine) Offensive(p *profile.Profile) float64 {
	score := p.Coverage.Sum()
	score -= resistedPenalty * float64(len(p.OffensiveResistances))
	for _, m := range p.OffensiveImmunities {
		if p.Coverage.Has(m.Type) {
			score -= partialWallWeight
		} else {
			score -= fullWallWeight
		}
	}

	return score
}

func (e *Engine) Evaluate(p *profile.Profile) Scores {
	return Scores{
		Defensive: e.Defensive(p),
		Offensive: e.Offensive(p),
	}
}

func (e *Engine) Score(p *profile.Profile, axis Axis) (float64, error) {
	return e.Evaluate(p).Get(axis)
}
