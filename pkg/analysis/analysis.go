package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/config"
	"github.com/notjagan/pokerank/pkg/model"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/rank"
	"github.com/notjagan/pokerank/pkg/score"
	"golang.org/x/sync/singleflight"
)

// Result is the merged profile of a combination together with its scores.
type Result struct {
	Profile *profile.Profile
	Scores  score.Scores
}

type rankingKey struct {
	minSize int
	maxSize int
	axis    score.Axis
}

func (k rankingKey) String() string {
	return fmt.Sprintf("%d-%d/%s", k.minSize, k.maxSize, k.axis)
}

// Analyzer answers profile, score and ranking queries against one chart.
// Rankings are computed once per (sizes, axis) and then served from memory.
// Concurrent requests for the same ranking share a single computation.
type Analyzer struct {
	chart      *chart.Chart
	aggregator *profile.Aggregator
	engine     *score.Engine
	ranker     *rank.Ranker
	maxSize    int

	mu       sync.RWMutex
	rankings map[rankingKey][]rank.Record
	group    singleflight.Group
}

func New(c *chart.Chart, rule profile.Rule, opts score.Options, maxSize, workers int) (*Analyzer, error) {
	if maxSize < 1 || maxSize > chart.MaxCombinationSize {
		return nil, fmt.Errorf("could not create analyzer with max size %d: %w", maxSize, rank.ErrInvalidMaxSize)
	}

	aggregator, err := profile.NewAggregator(c, rule)
	if err != nil {
		return nil, fmt.Errorf("could not create aggregator: %w", err)
	}
	engine := score.New(opts)

	return &Analyzer{
		chart:      c,
		aggregator: aggregator,
		engine:     engine,
		ranker:     rank.New(aggregator, engine, workers),
		maxSize:    maxSize,
		rankings:   make(map[rankingKey][]rank.Record),
	}, nil
}

// FromConfig loads the configured chart and builds an analyzer over it.
func FromConfig(ctx context.Context, cfg config.Config) (*Analyzer, error) {
	c, err := LoadChart(ctx, cfg.Chart)
	if err != nil {
		return nil, err
	}

	return New(c, cfg.Merge.Rule, cfg.ScoreOptions(), cfg.Rank.MaxSize, cfg.Rank.Workers)
}

func LoadChart(ctx context.Context, cfg config.ChartConfig) (*chart.Chart, error) {
	switch cfg.Source {
	case config.SourceBuiltin, "":
		return chart.Gen1(), nil
	case config.SourceJSON:
		c, err := chart.ReadJSON(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("could not load json chart: %w", err)
		}
		return c, nil
	case config.SourceSQLite:
		return loadSQLiteChart(ctx, cfg.Path, cfg.Generation)
	default:
		return nil, fmt.Errorf("chart source %q: %w", cfg.Source, config.ErrInvalidConfig)
	}
}

func loadSQLiteChart(ctx context.Context, path string, generation int) (*chart.Chart, error) {
	mdl, err := model.New(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not open chart database: %w", err)
	}
	defer mdl.Close()

	err = mdl.SetLanguageByLocalizationCode(ctx, model.LocalizationCodeEnglish)
	if err != nil {
		return nil, fmt.Errorf("could not set chart language: %w", err)
	}

	var gen *model.Generation
	if generation > 0 {
		gen, err = mdl.GenerationByID(ctx, generation)
	} else {
		gen, err = mdl.LatestGeneration(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get chart generation: %w", err)
	}

	c, err := mdl.Chart(ctx, gen)
	if err != nil {
		return nil, fmt.Errorf("could not load sqlite chart: %w", err)
	}

	return c, nil
}

func (a *Analyzer) Chart() *chart.Chart {
	return a.chart
}

func (a *Analyzer) Engine() *score.Engine {
	return a.engine
}

func (a *Analyzer) MaxSize() int {
	return a.maxSize
}

// SplitNames splits a combination written as "Fire/Flying", "fire,flying" or "Fire Flying".
func SplitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == ' ' || r == '+'
	})
}

func (a *Analyzer) Combination(names ...string) (chart.Combination, error) {
	return a.chart.Combination(names...)
}

func (a *Analyzer) Analyze(names ...string) (Result, error) {
	combo, err := a.chart.Combination(names...)
	if err != nil {
		return Result{}, err
	}

	return a.AnalyzeCombination(combo)
}

func (a *Analyzer) AnalyzeCombination(combo chart.Combination) (Result, error) {
	p, err := a.aggregator.Merge(combo)
	if err != nil {
		return Result{}, fmt.Errorf("could not analyze %s: %w", combo, err)
	}

	return Result{
		Profile: p,
		Scores:  a.engine.Evaluate(p),
	}, nil
}

// ranking returns the cached ranking for key, computing it on a miss. The
// computation is shared between callers and outlives a cancelled caller, so
// each caller only stops waiting when its own ctx is done.
func (a *Analyzer) ranking(ctx context.Context, key rankingKey) ([]rank.Record, error) {
	a.mu.RLock()
	records, ok := a.rankings[key]
	a.mu.RUnlock()
	if ok {
		return records, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shared := context.WithoutCancel(ctx)
	ch := a.group.DoChan(key.String(), func() (any, error) {
		combos, err := rank.Enumerate(a.chart.Types(), key.minSize, key.maxSize)
		if err != nil {
			return nil, err
		}
		records, err := a.ranker.RankCombinations(shared, combos, key.axis)
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.rankings[key] = records
		a.mu.Unlock()

		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]rank.Record), nil
	}
}

// Rank returns every combination of 1..maxSize types ordered by axis.
// The returned slice is shared and must not be modified.
func (a *Analyzer) Rank(ctx context.Context, maxSize int, axis score.Axis) ([]rank.Record, error) {
	if maxSize < 1 || maxSize > a.maxSize {
		return nil, fmt.Errorf("max size %d exceeds configured %d: %w", maxSize, a.maxSize, rank.ErrInvalidMaxSize)
	}

	return a.ranking(ctx, rankingKey{minSize: 1, maxSize: maxSize, axis: axis})
}

// RankSize returns the combinations of exactly size types ordered by axis.
func (a *Analyzer) RankSize(ctx context.Context, size int, axis score.Axis) ([]rank.Record, error) {
	if size < 1 || size > a.maxSize {
		return nil, fmt.Errorf("size %d exceeds configured %d: %w", size, a.maxSize, rank.ErrInvalidMaxSize)
	}

	return a.ranking(ctx, rankingKey{minSize: size, maxSize: size, axis: axis})
}

func (a *Analyzer) Best(ctx context.Context, maxSize int, axis score.Axis) (rank.Record, error) {
	records, err := a.Rank(ctx, maxSize, axis)
	if err != nil {
		return rank.Record{}, err
	}
	if len(records) == 0 {
		return rank.Record{}, rank.ErrNoCombinations
	}

	return records[0], nil
}

// Profiles merges every combination of 1..maxSize types, smallest combinations first.
func (a *Analyzer) Profiles(maxSize int) ([]*profile.Profile, error) {
	if maxSize > a.maxSize {
		return nil, fmt.Errorf("max size %d exceeds configured %d: %w", maxSize, a.maxSize, rank.ErrInvalidMaxSize)
	}

	combos, err := rank.Enumerate(a.chart.Types(), 1, maxSize)
	if err != nil {
		return nil, err
	}

	profiles := make([]*profile.Profile, len(combos))
	for i, combo := range combos {
		p, err := a.aggregator.Merge(combo)
		if err != nil {
			return nil, fmt.Errorf("could not merge %s: %w", combo, err)
		}
		profiles[i] = p
	}

	return profiles, nil
}
