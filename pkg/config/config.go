package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/score"
)

const EnvPrefix = "POKERANK_"

type ChartSource string

const (
	SourceBuiltin ChartSource = "builtin"
	SourceJSON    ChartSource = "json"
	SourceSQLite  ChartSource = "sqlite"
)

type DiscordConfig struct {
	Token             string `toml:"token" env:"TOKEN"`
	GuildID           string `toml:"guild_id" env:"GUILD_ID"`
	AutocompleteLimit int    `toml:"autocomplete_limit" env:"AUTOCOMPLETE_LIMIT"`
	PageSize          int    `toml:"page_size" env:"PAGE_SIZE"`
}

type ChartConfig struct {
	Source ChartSource `toml:"source" env:"SOURCE"`
	Path   string      `toml:"path" env:"PATH"`
	// Generation 0 selects the latest generation in the database.
	Generation int `toml:"generation" env:"GENERATION"`
}

type RankConfig struct {
	MaxSize int        `toml:"max_size" env:"MAX_SIZE"`
	Workers int        `toml:"workers" env:"WORKERS"`
	Axis    score.Axis `toml:"axis" env:"AXIS"`
}

type ScoreConfig struct {
	ApplyBonus      bool               `toml:"apply_bonus" env:"APPLY_BONUS"`
	TypeBonus       map[string]float64 `toml:"type_bonus"`
	WeaknessPenalty map[string]float64 `toml:"weakness_penalty"`
}

type MergeConfig struct {
	Rule profile.Rule `toml:"rule" env:"RULE"`
}

type HTTPConfig struct {
	Addr string `toml:"addr" env:"ADDR"`
}

type ExportConfig struct {
	Dir string `toml:"dir" env:"DIR"`
}

type Config struct {
	Discord DiscordConfig `toml:"discord" envPrefix:"DISCORD_"`
	Chart   ChartConfig   `toml:"chart" envPrefix:"CHART_"`
	Rank    RankConfig    `toml:"rank" envPrefix:"RANK_"`
	Score   ScoreConfig   `toml:"score" envPrefix:"SCORE_"`
	Merge   MergeConfig   `toml:"merge" envPrefix:"MERGE_"`
	HTTP    HTTPConfig    `toml:"http" envPrefix:"HTTP_"`
	Export  ExportConfig  `toml:"export" envPrefix:"EXPORT_"`
}

func Default() Config {
	opts := score.DefaultOptions()
	return Config{
		Discord: DiscordConfig{
			AutocompleteLimit: 25,
			PageSize:          10,
		},
		Chart: ChartConfig{
			Source: SourceBuiltin,
		},
		Rank: RankConfig{
			MaxSize: chart.MaxCombinationSize,
			Axis:    score.AxisTotal,
		},
		Score: ScoreConfig{
			ApplyBonus:      opts.ApplyBonus,
			TypeBonus:       opts.TypeBonus,
			WeaknessPenalty: opts.WeaknessPenalty,
		},
		Merge: MergeConfig{
			Rule: profile.RuleIncremental,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Export: ExportConfig{
			Dir: "out",
		},
	}
}

// ScoreOptions converts the score section into engine options.
func (cfg *Config) ScoreOptions() score.Options {
	return score.Options{
		ApplyBonus:      cfg.Score.ApplyBonus,
		TypeBonus:       cfg.Score.TypeBonus,
		WeaknessPenalty: cfg.Score.WeaknessPenalty,
	}
}

var ErrInvalidConfig = errors.New("invalid config")

func (cfg *Config) Validate() error {
	switch cfg.Chart.Source {
	case SourceBuiltin:
	case SourceJSON, SourceSQLite:
		if cfg.Chart.Path == "" {
			return fmt.Errorf("chart source %q needs a path: %w", cfg.Chart.Source, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown chart source %q: %w", cfg.Chart.Source, ErrInvalidConfig)
	}

	if cfg.Rank.MaxSize < 1 || cfg.Rank.MaxSize > chart.MaxCombinationSize {
		return fmt.Errorf("rank max size %d out of range 1..%d: %w",
			cfg.Rank.MaxSize, chart.MaxCombinationSize, ErrInvalidConfig)
	}
	if !cfg.Rank.Axis.IsAAxis() {
		return fmt.Errorf("rank axis %d: %w", cfg.Rank.Axis, ErrInvalidConfig)
	}
	if !cfg.Merge.Rule.IsARule() {
		return fmt.Errorf("merge rule %d: %w", cfg.Merge.Rule, ErrInvalidConfig)
	}
	if cfg.Discord.PageSize < 1 {
		return fmt.Errorf("discord page size must be positive: %w", ErrInvalidConfig)
	}

	return nil
}

// Read loads defaults, overlays the TOML file at path (if any) and then POKERANK_ environment variables.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			log.Printf("ignoring unknown config keys: %s", strings.Join(keys, ", "))
		}
	}

	err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
