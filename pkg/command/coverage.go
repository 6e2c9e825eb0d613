package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/score"
)

type coverageResponder struct {
	typeCompleter
	analyzer *analysis.Analyzer
}

func (resp coverageResponder) Handle(ctx context.Context, opt *typeOptions) (*discordgo.InteractionResponseData, error) {
	res, err := resp.analyzer.Analyze(opt.names()...)
	if err != nil {
		if body, ok := userError(err); ok {
			return body, nil
		}
		return nil, fmt.Errorf("could not analyze attacking types: %w", err)
	}

	p := res.Profile
	var fields []*discordgo.MessageEmbedField
	fields = append(fields, matchupFields("Super Effective", p.Coverage, true)...)
	fields = append(fields, matchupFields("Resisted", p.OffensiveResistances, true)...)
	fields = append(fields, typeNamesField("Immune", p.OffensiveImmunities, true))

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       p.Combination.String(),
				Description: "Offensive type chart",
				Fields:      fields,
				Footer:      scoreFooter(score.AxisOffensive, res.Scores.Offensive),
			},
		},
	}, nil
}

func (builder *Builder) coverage() (Command, error) {
	resp := coverageResponder{
		typeCompleter: typeCompleter{
			chart: builder.analyzer.Chart(),
			limit: builder.config.AutocompleteLimit,
		},
		analyzer: builder.analyzer,
	}

	return command[typeOptions]{
		handler:       resp,
		autocompleter: resp,
		command: discordgo.ApplicationCommand{
			Name:        "coverage",
			Description: "View the offensive coverage of an attacking type combination.",
			Options:     typeCommandOptions(),
		},
	}, nil
}
