package chart

import "fmt"

type Type struct {
	ID   int
	Name string
}

func (typ Type) String() string {
	return typ.Name
}

// Multiplier is the damage factor applied when an attacking type hits a defending type.
// Combined profiles may carry stacked values outside the single-type set.
type Multiplier float64

const (
	Immune           Multiplier = 0
	NotVeryEffective Multiplier = 0.5
	Neutral          Multiplier = 1
	SuperEffective   Multiplier = 2

	// MaxStack caps stacked weaknesses and coverage.
	MaxStack Multiplier = 6
)

func (m Multiplier) valid() bool {
	switch m {
	case Immune, NotVeryEffective, Neutral, SuperEffective:
		return true
	default:
		return false
	}
}

func (m Multiplier) String() string {
	return fmt.Sprintf("x%g", float64(m))
}
