package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/score"
)

// typeOptions is the one-to-three type selection shared by weak and coverage.
type typeOptions struct {
	Type1 discordField[string]  `option:"type_1"`
	Type2 *discordField[string] `option:"type_2"`
	Type3 *discordField[string] `option:"type_3"`
}

func newTypeOptions(combo chart.Combination) typeOptions {
	names := combo.Names()
	opt := typeOptions{Type1: discordField[string]{Value: names[0]}}
	if len(names) > 1 {
		opt.Type2 = &discordField[string]{Value: names[1]}
	}
	if len(names) > 2 {
		opt.Type3 = &discordField[string]{Value: names[2]}
	}
	return opt
}

func (opt *typeOptions) names() []string {
	names := []string{opt.Type1.Value}
	for _, field := range []*discordField[string]{opt.Type2, opt.Type3} {
		if field != nil {
			names = append(names, field.Value)
		}
	}
	return names
}

func (opt *typeOptions) focused() (string, error) {
	for _, field := range []*discordField[string]{&opt.Type1, opt.Type2, opt.Type3} {
		if field != nil && field.Focused {
			return field.Value, nil
		}
	}
	return "", fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func typeCommandOptions() []*discordgo.ApplicationCommandOption {
	ordinals := []string{"first", "second", "third"}
	opts := make([]*discordgo.ApplicationCommandOption, len(ordinals))
	for i, ordinal := range ordinals {
		opts[i] = &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         fmt.Sprintf("type_%d", i+1),
			Description:  fmt.Sprintf("Name of the %s type", ordinal),
			Required:     i == 0,
			Autocomplete: true,
		}
	}
	return opts
}

type typeCompleter struct {
	chart *chart.Chart
	limit int
}

func (tc typeCompleter) Autocomplete(ctx context.Context, opt *typeOptions) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	prefix, err := opt.focused()
	if err != nil {
		return nil, err
	}

	s := typeSearcher{
		chart:  tc.chart,
		prefix: prefix,
		limit:  tc.limit,
	}
	return s.Choices(), nil
}

type weakResponder struct {
	typeCompleter
	analyzer *analysis.Analyzer
}

func (resp weakResponder) Handle(ctx context.Context, opt *typeOptions) (*discordgo.InteractionResponseData, error) {
	res, err := resp.analyzer.Analyze(opt.names()...)
	if err != nil {
		if body, ok := userError(err); ok {
			return body, nil
		}
		return nil, fmt.Errorf("could not analyze defending types: %w", err)
	}

	p := res.Profile
	var fields []*discordgo.MessageEmbedField
	fields = append(fields, matchupFields("Weaknesses", p.Weaknesses, false)...)
	fields = append(fields, matchupFields("Resistances", p.Resistances, false)...)
	if field := typeNamesField("Immunities", p.Immunities, false); field != nil {
		fields = append(fields, field)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       p.Combination.String(),
				Description: "Defensive type chart",
				Fields:      fields,
				Footer:      scoreFooter(score.AxisDefensive, res.Scores.Defensive),
			},
		},
	}, nil
}

func defensiveSummary(p *profile.Profile) string {
	return fmt.Sprintf("%d weaknesses ▸ %d resistances ▸ %d immunities",
		len(p.Weaknesses), len(p.Resistances), len(p.Immunities))
}

func (builder *Builder) weak() (Command, error) {
	resp := weakResponder{
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
			Name:        "weak",
			Description: "View the type chart against a defending type combination.",
			Options:     typeCommandOptions(),
		},
	}, nil
}
