package chart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const MaxCombinationSize = 3

var (
	ErrDuplicateType          = errors.New("type appears more than once in combination")
	ErrInvalidCombinationSize = errors.New("combination must have between 1 and 3 types")
)

// Combination is an unordered set of distinct types, stored sorted by id.
type Combination struct {
	types []Type
}

func NewCombination(types ...Type) (Combination, error) {
	if len(types) == 0 || len(types) > MaxCombinationSize {
		return Combination{}, fmt.Errorf("got %d types: %w", len(types), ErrInvalidCombinationSize)
	}

	sorted := slices.Clone(types)
	slices.SortFunc(sorted, func(a, b Type) int {
		return a.ID - b.ID
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return Combination{}, fmt.Errorf("type %q: %w", sorted[i].Name, ErrDuplicateType)
		}
	}

	return Combination{types: sorted}, nil
}

func (combo Combination) Types() []Type {
	return slices.Clone(combo.types)
}

func (combo Combination) Len() int {
	return len(combo.types)
}

func (combo Combination) IDs() []int {
	ids := make([]int, len(combo.types))
	for i, typ := range combo.types {
		ids[i] = typ.ID
	}

	return ids
}

func (combo Combination) Names() []string {
	names := make([]string, len(combo.types))
	for i, typ := range combo.types {
		names[i] = typ.Name
	}

	return names
}

func (combo Combination) Has(typ Type) bool {
	return slices.Contains(combo.types, typ)
}

func (combo Combination) String() string {
	return strings.Join(combo.Names(), "/")
}

// Compare orders combinations lexicographically by their sorted type ids,
// a proper prefix sorting first.
func (combo Combination) Compare(other Combination) int {
	return slices.Compare(combo.IDs(), other.IDs())
}
