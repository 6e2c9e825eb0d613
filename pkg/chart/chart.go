package chart

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

var (
	ErrInvalidType        = errors.New("type is not part of the chart")
	ErrUnknownType        = errors.New("unknown type in chart lookup")
	ErrInvalidMultiplier  = errors.New("multiplier must be one of 0, 0.5, 1 or 2")
	ErrDuplicateTypeName  = errors.New("type name listed more than once")
	ErrEmptyChart         = errors.New("chart has no types")
	ErrMalformedChartData = errors.New("malformed chart data")
)

// Entry is a single non-default (attack, defend) pair used to build a chart.
type Entry struct {
	Attack     string
	Defend     string
	Multiplier Multiplier
}

// Chart is the read-only attack -> defend effectiveness table over a fixed, ordered type universe.
// Type ids are the positions of the types in the universe.
type Chart struct {
	types   []Type
	byName  map[string]int
	factors [][]Multiplier
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

// New builds a chart over the named types. Pairs missing from entries are neutral;
// later entries for the same pair replace earlier ones.
func New(names []string, entries []Entry) (*Chart, error) {
	if len(names) == 0 {
		return nil, ErrEmptyChart
	}

	c := &Chart{
		types:   make([]Type, len(names)),
		byName:  make(map[string]int, len(names)),
		factors: make([][]Multiplier, len(names)),
	}
	for id, name := range names {
		key := foldName(name)
		if _, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("could not add type %q: %w", name, ErrDuplicateTypeName)
		}
		c.byName[key] = id
		c.types[id] = Type{ID: id, Name: name}

		row := make([]Multiplier, len(names))
		for i := range row {
			row[i] = Neutral
		}
		c.factors[id] = row
	}

	for _, entry := range entries {
		attack, ok := c.byName[foldName(entry.Attack)]
		if !ok {
			return nil, fmt.Errorf("attacking type %q in chart entry: %w", entry.Attack, ErrUnknownType)
		}
		defend, ok := c.byName[foldName(entry.Defend)]
		if !ok {
			return nil, fmt.Errorf("defending type %q in chart entry: %w", entry.Defend, ErrUnknownType)
		}
		if !entry.Multiplier.valid() {
			return nil, fmt.Errorf("entry %s -> %s has multiplier %g: %w",
				entry.Attack, entry.Defend, float64(entry.Multiplier), ErrInvalidMultiplier)
		}
		c.factors[attack][defend] = entry.Multiplier
	}

	return c, nil
}

// Types returns the universe in id order.
func (c *Chart) Types() []Type {
	types := make([]Type, len(c.types))
	copy(types, c.types)
	return types
}

func (c *Chart) Len() int {
	return len(c.types)
}

// Contains reports whether typ is a member of this chart's universe.
func (c *Chart) Contains(typ Type) bool {
	return typ.ID >= 0 && typ.ID < len(c.types) && c.types[typ.ID] == typ
}

func (c *Chart) TypeByID(id int) (Type, error) {
	if id < 0 || id >= len(c.types) {
		return Type{}, fmt.Errorf("no type with id %d: %w", id, ErrInvalidType)
	}

	return c.types[id], nil
}

// TypeByName resolves a type name case-insensitively.
func (c *Chart) TypeByName(name string) (Type, error) {
	id, ok := c.byName[foldName(name)]
	if !ok {
		return Type{}, fmt.Errorf("no type named %q: %w", name, ErrInvalidType)
	}

	return c.types[id], nil
}

func (c *Chart) TypesByName(names ...string) ([]Type, error) {
	types := make([]Type, len(names))
	for i, name := range names {
		typ, err := c.TypeByName(name)
		if err != nil {
			return nil, err
		}
		types[i] = typ
	}

	return types, nil
}

// Combination resolves names into a canonical combination.
func (c *Chart) Combination(names ...string) (Combination, error) {
	types, err := c.TypesByName(names...)
	if err != nil {
		return Combination{}, fmt.Errorf("could not resolve combination: %w", err)
	}

	return NewCombination(types...)
}

// Lookup returns the multiplier of attack hitting defend.
func (c *Chart) Lookup(attack, defend Type) (Multiplier, error) {
	if !c.Contains(attack) {
		return Neutral, fmt.Errorf("attacking type %q: %w", attack.Name, ErrUnknownType)
	}
	if !c.Contains(defend) {
		return Neutral, fmt.Errorf("defending type %q: %w", defend.Name, ErrUnknownType)
	}

	return c.factors[attack.ID][defend.ID], nil
}
