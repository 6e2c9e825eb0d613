package command

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/config"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/score"
)

func newAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.New(chart.Gen1(), profile.RuleIncremental, score.DefaultOptions(), 3, 2)
	if err != nil {
		t.Fatalf("analysis.New: %v", err)
	}
	return a
}

func stringOption(name, value string, focused bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionString,
		Value:   value,
		Focused: focused,
	}
}

func intOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func TestDecodeOptions(t *testing.T) {
	var opt typeOptions
	err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOption("type_1", "Fire", false),
		stringOption("type_2", "fly", true),
	}, &opt)
	if err != nil {
		t.Fatalf("decodeOptions: %v", err)
	}

	if opt.Type1.Value != "Fire" || opt.Type1.Focused {
		t.Errorf("Type1 = %+v, want unfocused Fire", opt.Type1)
	}
	if opt.Type2 == nil || opt.Type2.Value != "fly" || !opt.Type2.Focused {
		t.Errorf("Type2 = %+v, want focused fly", opt.Type2)
	}
	if opt.Type3 != nil {
		t.Errorf("Type3 = %+v, want nil", opt.Type3)
	}
	if prefix, err := opt.focused(); err != nil || prefix != "fly" {
		t.Errorf("focused() = %q, %v, want fly", prefix, err)
	}
	if names := opt.names(); !slices.Equal(names, []string{"Fire", "fly"}) {
		t.Errorf("names() = %v, want [Fire fly]", names)
	}

	var ropt rankOptions
	err = decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOption("axis", "defensive", false),
		intOption("size", 2),
	}, &ropt)
	if err != nil {
		t.Fatalf("decodeOptions: %v", err)
	}
	if ropt.Axis != "defensive" || ropt.Size == nil || *ropt.Size != 2 {
		t.Errorf("rankOptions = %+v, want defensive/2", ropt)
	}
}

func TestDecodeOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		options []*discordgo.ApplicationCommandInteractionDataOption
	}{
		{"unknown option", []*discordgo.ApplicationCommandInteractionDataOption{stringOption("colour", "red", false)}},
		{"wrong type", []*discordgo.ApplicationCommandInteractionDataOption{intOption("axis", 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opt rankOptions
			if err := decodeOptions(tt.options, &opt); !errors.Is(err, ErrDecodeOption) {
				t.Errorf("decodeOptions err = %v, want ErrDecodeOption", err)
			}
		})
	}

	var notStruct int
	if err := decodeOptions(nil, &notStruct); !errors.Is(err, ErrDecodeOption) {
		t.Errorf("decodeOptions(*int) err = %v, want ErrDecodeOption", err)
	}
}

func readAction[T any](t *testing.T, id string, wantCmd string, wantTag byte) *T {
	t.Helper()
	name, reader, err := ParseCustomID(id)
	if err != nil {
		t.Fatalf("ParseCustomID: %v", err)
	}
	if name != wantCmd {
		t.Errorf("command = %q, want %q", name, wantCmd)
	}

	var tag [1]byte
	if _, err := io.ReadFull(reader, tag[:]); err != nil {
		t.Fatalf("read tag: %v", err)
	}
	if tag[0] != wantTag {
		t.Errorf("tag = %q, want %q", tag[0], wantTag)
	}

	state, err := unmarshal[T](reader)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return state
}

func TestCustomID_RoundTrip(t *testing.T) {
	size := 3
	p := paginator[rankOptions]{
		Options: rankOptions{Axis: "average", Size: &size},
		Page:    Page{Limit: 10, Offset: 40},
	}

	id, err := customID(p, "rank")
	if err != nil {
		t.Fatalf("customID: %v", err)
	}
	if len(id) > maxCustomIDLength {
		t.Errorf("len(id) = %d, want <= %d", len(id), maxCustomIDLength)
	}

	got := readAction[paginator[rankOptions]](t, id, "rank", 'p')
	if got.Options.Axis != "average" || got.Options.Size == nil || *got.Options.Size != 3 {
		t.Errorf("Options = %+v, want average/3", got.Options)
	}
	if got.Page != p.Page {
		t.Errorf("Page = %+v, want %+v", got.Page, p.Page)
	}

	other, err := customID(p, "rank")
	if err != nil {
		t.Fatalf("customID: %v", err)
	}
	if other == id {
		t.Errorf("identical state produced identical custom ids")
	}
}

func TestCustomID_Errors(t *testing.T) {
	if _, _, err := ParseCustomID("not base64!"); !errors.Is(err, ErrCustomID) {
		t.Errorf("ParseCustomID(garbage) err = %v, want ErrCustomID", err)
	}
	if _, _, err := ParseCustomID(""); !errors.Is(err, ErrCustomID) {
		t.Errorf("ParseCustomID(empty) err = %v, want ErrCustomID", err)
	}

	long := make([]byte, 120)
	for i := range long {
		long[i] = 'a'
	}
	_, err := customID(followUp[rankOptions]{Options: rankOptions{Axis: string(long)}}, "rank")
	if !errors.Is(err, ErrEncodeOptions) {
		t.Errorf("customID(oversized) err = %v, want ErrEncodeOptions", err)
	}
}

func fieldPairs(fields []*discordgo.MessageEmbedField) [][2]string {
	pairs := make([][2]string, len(fields))
	for i, f := range fields {
		pairs[i] = [2]string{f.Name, f.Value}
	}
	return pairs
}

func TestWeak(t *testing.T) {
	a := newAnalyzer(t)
	resp := weakResponder{analyzer: a}

	body, err := resp.Handle(context.Background(), &typeOptions{
		Type1: discordField[string]{Value: "flying"},
		Type2: &discordField[string]{Value: "fire"},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	embed := body.Embeds[0]
	if embed.Title != "Fire/Flying" {
		t.Errorf("Title = %q, want Fire/Flying", embed.Title)
	}
	want := [][2]string{
		{"Weaknesses (x4)", "Rock"},
		{"Weaknesses (x2)", "Water, Electric, Ice"},
		{"Resistances (x0.5)", "Fire, Fighting"},
		{"Resistances (x0.25)", "Grass, Bug"},
		{"Immunities", "Ground"},
	}
	if got := fieldPairs(embed.Fields); !slices.Equal(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}
	if embed.Footer.Text != "Defensive score: -5" {
		t.Errorf("Footer = %q, want Defensive score: -5", embed.Footer.Text)
	}
}

func TestWeak_UserErrors(t *testing.T) {
	resp := weakResponder{analyzer: newAnalyzer(t)}

	tests := map[string]typeOptions{
		"No type found with that name.": {
			Type1: discordField[string]{Value: "Steel"},
		},
		"Each type can only be listed once.": {
			Type1: discordField[string]{Value: "Fire"},
			Type2: &discordField[string]{Value: "FIRE"},
		},
	}
	for want, opt := range tests {
		body, err := resp.Handle(context.Background(), &opt)
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if body.Content != want {
			t.Errorf("Content = %q, want %q", body.Content, want)
		}
	}
}

func TestCoverage(t *testing.T) {
	resp := coverageResponder{analyzer: newAnalyzer(t)}

	body, err := resp.Handle(context.Background(), &typeOptions{
		Type1: discordField[string]{Value: "Ghost"},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	want := [][2]string{
		{"Super Effective (x2)", "Ghost"},
		{"Resisted", "_None_"},
		{"Immune", "Normal, Psychic"},
	}
	if got := fieldPairs(body.Embeds[0].Fields); !slices.Equal(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}
}

func TestTypeCompleter(t *testing.T) {
	tc := typeCompleter{chart: chart.Gen1(), limit: 3}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"p", []string{"Poison", "Psychic"}},
		{"GR", []string{"Grass", "Ground"}},
		{"", []string{"Normal", "Fire", "Water"}},
		{"steel", []string{}},
	}
	for _, tt := range tests {
		choices, err := tc.Autocomplete(context.Background(), &typeOptions{
			Type1: discordField[string]{Value: tt.prefix, Focused: true},
		})
		if err != nil {
			t.Fatalf("Autocomplete(%q): %v", tt.prefix, err)
		}

		got := make([]string, len(choices))
		for i, c := range choices {
			got[i] = c.Name
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Autocomplete(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}

	_, err := tc.Autocomplete(context.Background(), &typeOptions{})
	if !errors.Is(err, ErrCommandFormat) {
		t.Errorf("Autocomplete without focus err = %v, want ErrCommandFormat", err)
	}
}

func pageButtons(t *testing.T, body *discordgo.InteractionResponseData) []discordgo.Button {
	t.Helper()
	if len(body.Components) != 1 {
		t.Fatalf("len(Components) = %d, want 1", len(body.Components))
	}
	row, ok := body.Components[0].(*discordgo.ActionsRow)
	if !ok {
		t.Fatalf("Components[0] is %T, want *discordgo.ActionsRow", body.Components[0])
	}

	buttons := make([]discordgo.Button, len(row.Components))
	for i, c := range row.Components {
		buttons[i] = c.(discordgo.Button)
	}
	return buttons
}

func TestRank_Paginate(t *testing.T) {
	resp := rankResponder{analyzer: newAnalyzer(t), pageSize: 5}
	size := 2

	body, err := resp.Paginate(context.Background(), paginator[rankOptions]{
		Options: rankOptions{Axis: "defensive", Size: &size},
		Page:    resp.Initial(),
	})
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}

	embed := body.Embeds[0]
	if len(embed.Fields) != 5 {
		t.Fatalf("len(Fields) = %d, want 5", len(embed.Fields))
	}
	if embed.Fields[0].Name != "#1 ▸ Normal/Ghost" {
		t.Errorf("Fields[0].Name = %q, want #1 ▸ Normal/Ghost", embed.Fields[0].Name)
	}
	if embed.Footer.Text != "Page 1 of 21" {
		t.Errorf("Footer = %q, want Page 1 of 21", embed.Footer.Text)
	}

	buttons := pageButtons(t, body)
	if !buttons[0].Disabled || !buttons[1].Disabled || buttons[2].Disabled {
		t.Errorf("first page buttons disabled = %v/%v/%v, want true/true/false",
			buttons[0].Disabled, buttons[1].Disabled, buttons[2].Disabled)
	}

	next := readAction[paginator[rankOptions]](t, buttons[2].CustomID, "rank", 'p')
	if next.Page.Offset != 5 || next.Page.Limit != 5 {
		t.Errorf("next Page = %+v, want offset 5 limit 5", next.Page)
	}
	if next.Options.Axis != "defensive" || *next.Options.Size != 2 {
		t.Errorf("next Options = %+v, want defensive/2", next.Options)
	}

	body, err = resp.Paginate(context.Background(), paginator[rankOptions]{
		Options: rankOptions{Axis: "defensive", Size: &size},
		Page:    Page{Limit: 5, Offset: 100},
	})
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if got := body.Embeds[0].Fields[0].Name; !strings.HasPrefix(got, "#101 ▸ ") {
		t.Errorf("Fields[0].Name = %q, want position 101", got)
	}
	buttons = pageButtons(t, body)
	if buttons[0].Disabled || buttons[1].Disabled || !buttons[2].Disabled {
		t.Errorf("last page buttons disabled = %v/%v/%v, want false/false/true",
			buttons[0].Disabled, buttons[1].Disabled, buttons[2].Disabled)
	}
	prev := readAction[paginator[rankOptions]](t, buttons[1].CustomID, "rank", 'p')
	if prev.Page.Offset != 95 {
		t.Errorf("prev offset = %d, want 95", prev.Page.Offset)
	}
}

func TestRank_UserErrors(t *testing.T) {
	resp := rankResponder{analyzer: newAnalyzer(t), pageSize: 5}
	size := 4

	body, err := resp.Paginate(context.Background(), paginator[rankOptions]{
		Options: rankOptions{Axis: "sideways"},
		Page:    resp.Initial(),
	})
	if err != nil || body.Content != `Unknown score axis "sideways".` {
		t.Errorf("Paginate(sideways) = %q, %v", body.Content, err)
	}

	body, err = resp.Paginate(context.Background(), paginator[rankOptions]{
		Options: rankOptions{Axis: "total", Size: &size},
		Page:    resp.Initial(),
	})
	if err != nil || body.Content != "Combinations have between 1 and 3 types." {
		t.Errorf("Paginate(size 4) = %q, %v", body.Content, err)
	}
}

func TestBest(t *testing.T) {
	resp := bestResponder{analyzer: newAnalyzer(t)}
	maxSize := 2

	body, err := resp.Handle(context.Background(), &bestOptions{Axis: "total", MaxSize: &maxSize})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	embed := body.Embeds[0]
	if embed.Title != "Psychic/Ghost" {
		t.Errorf("Title = %q, want Psychic/Ghost", embed.Title)
	}
	if embed.Fields[2].Name != "Total" || embed.Fields[2].Value != "11" {
		t.Errorf("Fields[2] = %s %s, want Total 11", embed.Fields[2].Name, embed.Fields[2].Value)
	}

	row := body.Components[0].(discordgo.ActionsRow)
	weak := row.Components[0].(discordgo.Button)
	f := readAction[followUp[typeOptions]](t, weak.CustomID, "weak", 'f')
	if names := f.Options.names(); !slices.Equal(names, []string{"Psychic", "Ghost"}) {
		t.Errorf("follow-up names = %v, want [Psychic Ghost]", names)
	}
	coverage := row.Components[1].(discordgo.Button)
	readAction[followUp[typeOptions]](t, coverage.CustomID, "coverage", 'f')
}

func TestAll(t *testing.T) {
	cmds, err := All(newAnalyzer(t), config.Default().Discord)
	if err != nil {
		t.Fatalf("All: %v", err)
	}

	for _, name := range []string{"weak", "coverage", "rank", "best"} {
		cmd, ok := cmds[name]
		if !ok {
			t.Errorf("missing command %q", name)
			continue
		}
		if cmd.ApplicationCommand().Name != name {
			t.Errorf("ApplicationCommand().Name = %q, want %q", cmd.ApplicationCommand().Name, name)
		}
	}
	if len(cmds) != 4 {
		t.Errorf("len(All) = %d, want 4", len(cmds))
	}
}
