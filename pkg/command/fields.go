package command

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/export"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/score"
)

const noneValue = "_None_"

// tiers groups matchups by multiplier, strongest first.
func tiers(ms profile.Matchups) [][]profile.Matchup {
	sorted := slices.Clone(ms)
	slices.SortStableFunc(sorted, func(a, b profile.Matchup) int {
		return cmp.Compare(b.Multiplier, a.Multiplier)
	})

	var out [][]profile.Matchup
	for _, m := range sorted {
		if n := len(out); n > 0 && out[n-1][0].Multiplier == m.Multiplier {
			out[n-1] = append(out[n-1], m)
			continue
		}
		out = append(out, []profile.Matchup{m})
	}

	return out
}

func typeList(ms []profile.Matchup) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Type.Name
	}
	return strings.Join(names, ", ")
}

// matchupFields renders one field per multiplier tier. An empty bucket yields a single
// "_None_" field when includeEmpty is set and nothing otherwise.
func matchupFields(label string, ms profile.Matchups, includeEmpty bool) []*discordgo.MessageEmbedField {
	if len(ms) == 0 {
		if !includeEmpty {
			return nil
		}
		return []*discordgo.MessageEmbedField{{Name: label, Value: noneValue}}
	}

	var fields []*discordgo.MessageEmbedField
	for _, tier := range tiers(ms) {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%s)", label, tier[0].Multiplier),
			Value: typeList(tier),
		})
	}

	return fields
}

func typeNamesField(label string, ms profile.Matchups, includeEmpty bool) *discordgo.MessageEmbedField {
	if len(ms) == 0 {
		if !includeEmpty {
			return nil
		}
		return &discordgo.MessageEmbedField{Name: label, Value: noneValue}
	}

	return &discordgo.MessageEmbedField{Name: label, Value: typeList(ms)}
}

func scoreFooter(axis score.Axis, s float64) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%s score: %s", axisTitle(axis), export.FormatScore(s)),
	}
}

func axisTitle(axis score.Axis) string {
	name := axis.String()
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func axisChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := score.AxisStrings()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(names))
	for i, name := range names {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  axisTitle(score.AxisValues()[i]),
			Value: name,
		}
	}
	return choices
}

func parseAxis(name string) (score.Axis, error) {
	axis, err := score.AxisString(name)
	if err != nil {
		return 0, fmt.Errorf("axis %q: %w", name, errors.Join(ErrCommandFormat, score.ErrUnknownAxis))
	}
	return axis, nil
}

// userError turns lookup failures caused by user input into a plain reply.
func userError(err error) (*discordgo.InteractionResponseData, bool) {
	switch {
	case errors.Is(err, chart.ErrInvalidType):
		return &discordgo.InteractionResponseData{Content: "No type found with that name."}, true
	case errors.Is(err, chart.ErrDuplicateType):
		return &discordgo.InteractionResponseData{Content: "Each type can only be listed once."}, true
	case errors.Is(err, chart.ErrInvalidCombinationSize):
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Combinations have between 1 and %d types.", chart.MaxCombinationSize),
		}, true
	default:
		return nil, false
	}
}

func (p paginator[T]) buttons(cmdName string, hasNext bool) (*discordgo.ActionsRow, error) {
	if p.Page.Offset == 0 && !hasNext {
		return nil, nil
	}

	page := func(offset int) paginator[T] {
		return paginator[T]{
			Options: p.Options,
			Page: Page{
				Limit:  p.Page.Limit,
				Offset: max(offset, 0),
			},
		}
	}

	homeID, err := customID(page(0), cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create home button: %w", err)
	}
	prevID, err := customID(page(p.Page.Offset-p.Page.Limit), cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create previous button: %w", err)
	}
	nextID, err := customID(page(p.Page.Offset+p.Page.Limit), cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create next button: %w", err)
	}

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "⏮",
				CustomID: homeID,
				Disabled: p.Page.Offset == 0,
			},
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "⏴",
				CustomID: prevID,
				Disabled: p.Page.Offset == 0,
			},
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "⏵",
				CustomID: nextID,
				Disabled: !hasNext,
			},
		},
	}, nil
}

func (f followUp[T]) button(label, cmdName string) (discordgo.Button, error) {
	id, err := customID(f, cmdName)
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("failed to create follow-up button: %w", err)
	}

	return discordgo.Button{
		Style:    discordgo.SecondaryButton,
		Label:    label,
		CustomID: id,
	}, nil
}
