package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/api"
	"github.com/notjagan/pokerank/pkg/bot"
	"github.com/notjagan/pokerank/pkg/config"
	"github.com/notjagan/pokerank/pkg/export"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/rank"
	"github.com/notjagan/pokerank/pkg/score"
)

const usage = `usage: pokerank [-config file] <command> [flags]

commands:
  analyze <Type[/Type[/Type]]>  print the profile and scores of a combination
  rank                          print combinations ordered by score
  export                        write csv, listing and json exports
  serve                         serve the http api
  bot                           host the discord bot
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := flag.NewFlagSet("pokerank", flag.ExitOnError)
	flags.Usage = func() { fmt.Fprint(flags.Output(), usage) }
	configPath := flags.String("config", "", "path to a TOML config file")
	flags.Parse(os.Args[1:])

	cfg, err := config.Read(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	err = run(ctx, *cfg, flags.Args(), os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command: %w", errUsage)
	}

	a, err := analysis.FromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not load analyzer: %w", err)
	}

	switch args[0] {
	case "analyze":
		return analyze(a, args[1:], out)
	case "rank":
		return rankCommand(ctx, a, cfg, args[1:], out)
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		dir := fs.String("dir", cfg.Export.Dir, "output directory")
		if err := fs.Parse(args[1:]); err != nil {
			return errors.Join(errUsage, err)
		}
		return export.Dir(ctx, a, *dir)
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		addr := fs.String("addr", cfg.HTTP.Addr, "listen address")
		if err := fs.Parse(args[1:]); err != nil {
			return errors.Join(errUsage, err)
		}
		return api.New(a).ListenAndServe(ctx, *addr)
	case "bot":
		b, err := bot.New(cfg.Discord, a)
		if err != nil {
			return err
		}
		return b.Run(ctx)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func matchupList(ms profile.Matchups) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprintf("%s (%s)", m.Type.Name, m.Multiplier)
	}
	return strings.Join(parts, ", ")
}

func analyze(a *analysis.Analyzer, args []string, out io.Writer) error {
	var names []string
	for _, arg := range args {
		names = append(names, analysis.SplitNames(arg)...)
	}
	if len(names) == 0 {
		return fmt.Errorf("analyze needs at least one type: %w", errUsage)
	}

	res, err := a.Analyze(names...)
	if err != nil {
		return err
	}

	p := res.Profile
	fmt.Fprintf(out, "Types: %s\n", p.Combination)
	fmt.Fprintf(out, "Defensive score: %s\n", export.FormatScore(res.Scores.Defensive))
	fmt.Fprintf(out, "  Weaknesses: %s\n", matchupList(p.Weaknesses))
	fmt.Fprintf(out, "  Resistances: %s\n", matchupList(p.Resistances))
	fmt.Fprintf(out, "  Immunities: %s\n", matchupList(p.Immunities))
	fmt.Fprintf(out, "Offensive score: %s\n", export.FormatScore(res.Scores.Offensive))
	fmt.Fprintf(out, "  Coverage: %s\n", matchupList(p.Coverage))
	fmt.Fprintf(out, "  Resisted by: %s\n", matchupList(p.OffensiveResistances))
	fmt.Fprintf(out, "  Immunities: %s\n", matchupList(p.OffensiveImmunities))
	fmt.Fprintf(out, "Total score: %s\n", export.FormatScore(res.Scores.Total()))

	return nil
}

func rankCommand(ctx context.Context, a *analysis.Analyzer, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	axis := cfg.Rank.Axis
	fs.TextVar(&axis, "axis", cfg.Rank.Axis, "score axis: "+strings.Join(score.AxisStrings(), ", "))
	size := fs.Int("size", 0, "only rank combinations of exactly this many types")
	limit := fs.Int("limit", 20, "number of combinations to print, 0 for all")
	if err := fs.Parse(args); err != nil {
		return errors.Join(errUsage, err)
	}

	var records []rank.Record
	var err error
	if *size > 0 {
		records, err = a.RankSize(ctx, *size, axis)
	} else {
		records, err = a.Rank(ctx, a.MaxSize(), axis)
	}
	if err != nil {
		return err
	}
	if *limit > 0 && *limit < len(records) {
		records = records[:*limit]
	}

	return export.WriteListing(out, records, axis)
}
