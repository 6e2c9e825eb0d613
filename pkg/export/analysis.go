package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/profile"
)

type Matchup struct {
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// Analysis is the flattened profile consumed by the dashboard.
type Analysis struct {
	Types                []int     `json:"types"`
	Weaknesses           []Matchup `json:"w"`
	Resistances          []Matchup `json:"r"`
	Immunities           []Matchup `json:"i"`
	Neutrals             []Matchup `json:"n"`
	Coverage             []Matchup `json:"c"`
	OffensiveResistances []Matchup `json:"or"`
	OffensiveImmunities  []Matchup `json:"oi"`
}

func matchups(ms profile.Matchups) []Matchup {
	out := make([]Matchup, len(ms))
	for i, m := range ms {
		out[i] = Matchup{Type: m.Type.Name, Score: float64(m.Multiplier)}
	}
	return out
}

func NewAnalysis(p *profile.Profile) Analysis {
	return Analysis{
		Types:                p.Combination.IDs(),
		Weaknesses:           matchups(p.Weaknesses),
		Resistances:          matchups(p.Resistances),
		Immunities:           matchups(p.Immunities),
		Neutrals:             matchups(p.Neutrals),
		Coverage:             matchups(p.Coverage),
		OffensiveResistances: matchups(p.OffensiveResistances),
		OffensiveImmunities:  matchups(p.OffensiveImmunities),
	}
}

// Dump is every analysed combination keyed by type ids.
type Dump struct {
	TypeIDs map[string]int `json:"type_ids"`
	Results []Analysis     `json:"results"`
}

func NewDump(c *chart.Chart, profiles []*profile.Profile) Dump {
	ids := make(map[string]int, c.Len())
	for _, typ := range c.Types() {
		ids[typ.Name] = typ.ID
	}

	results := make([]Analysis, len(profiles))
	for i, p := range profiles {
		results[i] = NewAnalysis(p)
	}

	return Dump{TypeIDs: ids, Results: results}
}

func WriteAnalyses(w io.Writer, c *chart.Chart, profiles []*profile.Profile) error {
	err := json.NewEncoder(w).Encode(NewDump(c, profiles))
	if err != nil {
		return fmt.Errorf("failed to encode analyses: %w", err)
	}

	return nil
}
