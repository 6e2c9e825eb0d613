package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/export"
)

type bestOptions struct {
	Axis    string `option:"axis"`
	MaxSize *int   `option:"max_size"`
}

type bestResponder struct {
	analyzer *analysis.Analyzer
}

func (resp bestResponder) Handle(ctx context.Context, opt *bestOptions) (*discordgo.InteractionResponseData, error) {
	axis, err := parseAxis(opt.Axis)
	if err != nil {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Unknown score axis %q.", opt.Axis),
		}, nil
	}

	maxSize := resp.analyzer.MaxSize()
	if opt.MaxSize != nil {
		maxSize = *opt.MaxSize
	}

	rec, err := resp.analyzer.Best(ctx, maxSize, axis)
	if err != nil {
		if body, ok := userError(err); ok {
			return body, nil
		}
		return nil, fmt.Errorf("could not find best combination: %w", err)
	}

	res, err := resp.analyzer.AnalyzeCombination(rec.Combination)
	if err != nil {
		return nil, fmt.Errorf("could not analyze best combination: %w", err)
	}

	opts := newTypeOptions(rec.Combination)
	weakButton, err := followUp[typeOptions]{Options: opts}.button("Defensive chart", "weak")
	if err != nil {
		return nil, err
	}
	coverageButton, err := followUp[typeOptions]{Options: opts}.button("Coverage", "coverage")
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       rec.Combination.String(),
				Description: defensiveSummary(res.Profile),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Defensive", Value: export.FormatScore(rec.Defensive), Inline: true},
					{Name: "Offensive", Value: export.FormatScore(rec.Offensive), Inline: true},
					{Name: "Total", Value: export.FormatScore(rec.Total), Inline: true},
					{Name: "Average", Value: export.FormatScore(rec.Average()), Inline: true},
				},
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Best by %s score, up to %d types", axis, maxSize),
				},
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{weakButton, coverageButton},
			},
		},
	}, nil
}

func (builder *Builder) best() (Command, error) {
	minSize := 1.0
	maxSize := float64(builder.analyzer.MaxSize())

	return command[bestOptions]{
		handler: bestResponder{analyzer: builder.analyzer},
		command: discordgo.ApplicationCommand{
			Name:        "best",
			Description: "Find the best type combination for a score.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "axis",
					Description: "Score to optimise",
					Required:    true,
					Choices:     axisChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max_size",
					Description: "Largest combination to consider",
					Required:    false,
					MinValue:    &minSize,
					MaxValue:    maxSize,
				},
			},
		},
	}, nil
}
