package rank

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/score"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidMaxSize = fmt.Errorf("max size must be between 1 and %d: %w",
		chart.MaxCombinationSize, chart.ErrInvalidCombinationSize)
	ErrNoCombinations = errors.New("no combinations to rank")
)

// Record is the immutable score of one combination.
type Record struct {
	Combination chart.Combination
	Defensive   float64
	Offensive   float64
	Total       float64
}

func (rec Record) Scores() score.Scores {
	return score.Scores{Defensive: rec.Defensive, Offensive: rec.Offensive}
}

// Average is (Defensive + Offensive) / 2. It is never used in place of Total.
func (rec Record) Average() float64 {
	return rec.Scores().Average()
}

func (rec Record) Score(axis score.Axis) (float64, error) {
	return rec.Scores().Get(axis)
}

type Ranker struct {
	aggregator *profile.Aggregator
	engine     *score.Engine
	workers    int
}

// New returns a ranker that evaluates combinations on up to workers goroutines.
// A non-positive worker count means GOMAXPROCS.
func New(aggregator *profile.Aggregator, engine *score.Engine, workers int) *Ranker {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Ranker{
		aggregator: aggregator,
		engine:     engine,
		workers:    workers,
	}
}

func (r *Ranker) Evaluate(combo chart.Combination) (Record, error) {
	p, err := r.aggregator.Merge(combo)
	if err != nil {
		return Record{}, fmt.Errorf("could not evaluate %s: %w", combo, err)
	}

	s := r.engine.Evaluate(p)
	return Record{
		Combination: combo,
		Defensive:   s.Defensive,
		Offensive:   s.Offensive,
		Total:       s.Total(),
	}, nil
}

// Enumerate lists every combination of minSize..maxSize distinct types drawn from universe.
func Enumerate(universe []chart.Type, minSize, maxSize int) ([]chart.Combination, error) {
	if minSize < 1 || maxSize > chart.MaxCombinationSize || minSize > maxSize {
		return nil, fmt.Errorf("sizes %d..%d: %w", minSize, maxSize, ErrInvalidMaxSize)
	}

	var combos []chart.Combination
	for size := minSize; size <= maxSize; size++ {
		for types := range Combinations(universe, size) {
			combo, err := chart.NewCombination(types...)
			if err != nil {
				return nil, fmt.Errorf("could not enumerate combinations: %w", err)
			}
			combos = append(combos, combo)
		}
	}

	return combos, nil
}

// Rank evaluates every combination of 1..maxSize types from universe and orders them by axis.
func (r *Ranker) Rank(ctx context.Context, universe []chart.Type, maxSize int, axis score.Axis) ([]Record, error) {
	combos, err := Enumerate(universe, 1, maxSize)
	if err != nil {
		return nil, err
	}

	return r.RankCombinations(ctx, combos, axis)
}

// RankAll ranks combinations drawn from the whole chart.
func (r *Ranker) RankAll(ctx context.Context, maxSize int, axis score.Axis) ([]Record, error) {
	return r.Rank(ctx, r.aggregator.Chart().Types(), maxSize, axis)
}

// RankSize ranks only the combinations of exactly size types.
func (r *Ranker) RankSize(ctx context.Context, size int, axis score.Axis) ([]Record, error) {
	combos, err := Enumerate(r.aggregator.Chart().Types(), size, size)
	if err != nil {
		return nil, err
	}

	return r.RankCombinations(ctx, combos, axis)
}

// Best returns the top record of RankAll.
func (r *Ranker) Best(ctx context.Context, maxSize int, axis score.Axis) (Record, error) {
	records, err := r.RankAll(ctx, maxSize, axis)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, ErrNoCombinations
	}

	return records[0], nil
}

// RankCombinations evaluates combos concurrently and sorts them descending by axis,
// breaking ties by the combinations' type ids.
func (r *Ranker) RankCombinations(ctx context.Context, combos []chart.Combination, axis score.Axis) ([]Record, error) {
	if !axis.IsAAxis() {
		return nil, fmt.Errorf("could not rank by axis %d: %w", axis, score.ErrUnknownAxis)
	}

	records := make([]Record, len(combos))
	chunk := max((len(combos)+r.workers-1)/r.workers, 1)

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(combos); start += chunk {
		end := min(start+chunk, len(combos))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				rec, err := r.Evaluate(combos[i])
				if err != nil {
					return err
				}
				records[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("could not rank combinations: %w", err)
	}

	Sort(records, axis)
	return records, nil
}

// Sort orders records descending by axis, then ascending by combination.
func Sort(records []Record, axis score.Axis) {
	slices.SortFunc(records, func(a, b Record) int {
		sa, _ := a.Score(axis)
		sb, _ := b.Score(axis)
		if c := cmp.Compare(sb, sa); c != 0 {
			return c
		}
		return a.Combination.Compare(b.Combination)
	})
}
