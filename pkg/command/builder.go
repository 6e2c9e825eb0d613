package command

import (
	"fmt"

	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/config"
)

type commandFunc func(*Builder) (Command, error)

type Builder struct {
	analyzer *analysis.Analyzer
	config   config.DiscordConfig
	funcs    []commandFunc
}

func NewBuilder(a *analysis.Analyzer, cfg config.DiscordConfig) *Builder {
	return &Builder{
		analyzer: a,
		config:   cfg,
		funcs: []commandFunc{
			(*Builder).weak,
			(*Builder).coverage,
			(*Builder).rank,
			(*Builder).best,
		},
	}
}

func (builder *Builder) all() (map[string]Command, error) {
	cmds := make(map[string]Command, len(builder.funcs))
	for _, f := range builder.funcs {
		cmd, err := f(builder)
		if err != nil {
			return nil, fmt.Errorf("error while building command: %w", err)
		}
		cmds[cmd.Name()] = cmd
	}

	return cmds, nil
}

// All builds every slash command, keyed by name.
func All(a *analysis.Analyzer, cfg config.DiscordConfig) (map[string]Command, error) {
	return NewBuilder(a, cfg).all()
}
