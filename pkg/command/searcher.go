package command

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/chart"
	"golang.org/x/text/cases"
)

type typeSearcher struct {
	chart  *chart.Chart
	prefix string
	limit  int
}

// Search returns up to limit types whose names start with the prefix, ignoring case, in id order.
func (s typeSearcher) Search() []chart.Type {
	fold := cases.Fold()
	prefix := fold.String(strings.TrimSpace(s.prefix))

	var results []chart.Type
	for _, typ := range s.chart.Types() {
		if s.limit > 0 && len(results) >= s.limit {
			break
		}
		if strings.HasPrefix(fold.String(typ.Name), prefix) {
			results = append(results, typ)
		}
	}

	return results
}

func (s typeSearcher) Choices() []*discordgo.ApplicationCommandOptionChoice {
	results := s.Search()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(results))
	for i, typ := range results {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  typ.Name,
			Value: typ.Name,
		}
	}

	return choices
}
