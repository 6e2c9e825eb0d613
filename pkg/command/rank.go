package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/export"
	"github.com/notjagan/pokerank/pkg/rank"
)

type rankOptions struct {
	Axis string `option:"axis"`
	Size *int   `option:"size"`
}

type rankResponder struct {
	analyzer *analysis.Analyzer
	pageSize int
}

func (resp rankResponder) Initial() Page {
	return Page{
		Limit:  resp.pageSize,
		Offset: 0,
	}
}

func recordField(position int, rec rank.Record) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name: fmt.Sprintf("#%d ▸ %s", position, rec.Combination),
		Value: fmt.Sprintf("Defensive `%s` ▸ Offensive `%s` ▸ Total `%s`",
			export.FormatScore(rec.Defensive),
			export.FormatScore(rec.Offensive),
			export.FormatScore(rec.Total),
		),
	}
}

func (resp rankResponder) Paginate(ctx context.Context, p paginator[rankOptions]) (*discordgo.InteractionResponseData, error) {
	axis, err := parseAxis(p.Options.Axis)
	if err != nil {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Unknown score axis %q.", p.Options.Axis),
		}, nil
	}

	var records []rank.Record
	description := fmt.Sprintf("Combinations of up to %d types", resp.analyzer.MaxSize())
	if p.Options.Size != nil {
		records, err = resp.analyzer.RankSize(ctx, *p.Options.Size, axis)
		description = fmt.Sprintf("Combinations of exactly %d types", *p.Options.Size)
	} else {
		records, err = resp.analyzer.Rank(ctx, resp.analyzer.MaxSize(), axis)
	}
	if err != nil {
		if body, ok := userError(err); ok {
			return body, nil
		}
		return nil, fmt.Errorf("could not rank combinations: %w", err)
	}

	limit := max(p.Page.Limit, 1)
	offset := min(max(p.Page.Offset, 0), len(records))
	end := min(offset+limit, len(records))

	fields := make([]*discordgo.MessageEmbedField, 0, end-offset)
	for i, rec := range records[offset:end] {
		fields = append(fields, recordField(offset+i+1, rec))
	}

	buttons, err := p.buttons("rank", end < len(records))
	if err != nil {
		return nil, fmt.Errorf("failed to generate pagination buttons: %w", err)
	}
	var components []discordgo.MessageComponent
	if buttons != nil {
		components = []discordgo.MessageComponent{buttons}
	}

	pages := max((len(records)+limit-1)/limit, 1)
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("Best combinations by %s score", axis),
				Description: description,
				Fields:      fields,
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Page %d of %d", offset/limit+1, pages),
				},
			},
		},
		Components: components,
	}, nil
}

func (builder *Builder) rank() (Command, error) {
	minSize := 1.0
	maxSize := float64(builder.analyzer.MaxSize())

	resp := rankResponder{
		analyzer: builder.analyzer,
		pageSize: builder.config.PageSize,
	}

	return command[rankOptions]{
		pager: resp,
		command: discordgo.ApplicationCommand{
			Name:        "rank",
			Description: "Rank type combinations by score.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "axis",
					Description: "Score to rank by",
					Required:    true,
					Choices:     axisChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "size",
					Description: "Only rank combinations of exactly this many types",
					Required:    false,
					MinValue:    &minSize,
					MaxValue:    maxSize,
				},
			},
		},
	}, nil
}
