package analysis

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/config"
	"github.com/notjagan/pokerank/pkg/profile"
	"github.com/notjagan/pokerank/pkg/rank"
	"github.com/notjagan/pokerank/pkg/score"
)

func newGen1Analyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(chart.Gen1(), profile.RuleIncremental, score.DefaultOptions(), 3, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := newGen1Analyzer(t)

	res, err := a.Analyze("fire", "FLYING")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := res.Profile.Combination.String(); got != "Fire/Flying" {
		t.Errorf("Combination = %q, want Fire/Flying", got)
	}
	if !approx(res.Scores.Defensive, -5) || !approx(res.Scores.Offensive, 2) {
		t.Errorf("Scores = %+v, want {-5 2}", res.Scores)
	}

	if _, err := a.Analyze("Fire", "Steel"); !errors.Is(err, chart.ErrInvalidType) {
		t.Errorf("Analyze(Fire, Steel) err = %v, want ErrInvalidType", err)
	}
	if _, err := a.Analyze("Fire", "Fire"); !errors.Is(err, chart.ErrDuplicateType) {
		t.Errorf("Analyze(Fire, Fire) err = %v, want ErrDuplicateType", err)
	}
}

func TestAnalyzer_Rankings(t *testing.T) {
	ctx := context.Background()
	a := newGen1Analyzer(t)

	all, err := a.Rank(ctx, 3, score.AxisTotal)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(all) != 575 {
		t.Errorf("len(Rank(3)) = %d, want 575", len(all))
	}
	if got := all[0].Combination.String(); got != "Psychic/Ghost/Dragon" {
		t.Errorf("Rank(3)[0] = %s, want Psychic/Ghost/Dragon", got)
	}

	again, err := a.Rank(ctx, 3, score.AxisTotal)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if &again[0] != &all[0] {
		t.Errorf("second Rank call did not reuse the cached ranking")
	}

	duals, err := a.RankSize(ctx, 2, score.AxisDefensive)
	if err != nil {
		t.Fatalf("RankSize: %v", err)
	}
	if len(duals) != 105 {
		t.Errorf("len(RankSize(2)) = %d, want 105", len(duals))
	}
	top := []string{duals[0].Combination.String(), duals[1].Combination.String()}
	if !slices.Equal(top, []string{"Normal/Ghost", "Psychic/Ghost"}) {
		t.Errorf("RankSize(2) top = %v, want [Normal/Ghost Psychic/Ghost]", top)
	}

	best, err := a.Best(ctx, 2, score.AxisTotal)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best.Combination.String() != "Psychic/Ghost" || !approx(best.Total, 11) {
		t.Errorf("Best(2, total) = %s %v, want Psychic/Ghost 11", best.Combination, best.Total)
	}
}

func TestAnalyzer_MaxSizeLimits(t *testing.T) {
	ctx := context.Background()
	a, err := New(chart.Gen1(), profile.RuleIncremental, score.DefaultOptions(), 2, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := a.Rank(ctx, 3, score.AxisTotal); !errors.Is(err, rank.ErrInvalidMaxSize) {
		t.Errorf("Rank(3) err = %v, want ErrInvalidMaxSize", err)
	}
	if _, err := a.RankSize(ctx, 0, score.AxisTotal); !errors.Is(err, rank.ErrInvalidMaxSize) {
		t.Errorf("RankSize(0) err = %v, want ErrInvalidMaxSize", err)
	}
	if _, err := New(chart.Gen1(), profile.RuleIncremental, score.DefaultOptions(), 4, 0); !errors.Is(err, chart.ErrInvalidCombinationSize) {
		t.Errorf("New(max size 4) err = %v, want ErrInvalidCombinationSize", err)
	}
}

func TestAnalyzer_RankCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newGen1Analyzer(t)
	if _, err := a.Rank(ctx, 3, score.AxisTotal); !errors.Is(err, context.Canceled) {
		t.Fatalf("Rank err = %v, want context.Canceled", err)
	}

	records, err := a.Rank(context.Background(), 3, score.AxisTotal)
	if err != nil {
		t.Fatalf("Rank after cancellation: %v", err)
	}
	if len(records) != 575 {
		t.Errorf("len(Rank) = %d, want 575", len(records))
	}
}

func TestAnalyzer_CancelledCallerDoesNotFailOthers(t *testing.T) {
	a := newGen1Analyzer(t)

	for _, axis := range score.AxisValues() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := a.Rank(ctx, 3, axis)
			done <- err
		}()
		cancel()

		records, err := a.Rank(context.Background(), 3, axis)
		if err != nil {
			t.Fatalf("Rank(%s) alongside a cancelled caller: %v", axis, err)
		}
		if len(records) != 575 {
			t.Errorf("len(Rank(%s)) = %d, want 575", axis, len(records))
		}
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("cancelled Rank(%s) err = %v, want nil or context.Canceled", axis, err)
		}
	}
}

func TestAnalyzer_ConcurrentRank(t *testing.T) {
	a := newGen1Analyzer(t)

	const n = 8
	results := make([][]rank.Record, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = a.Rank(context.Background(), 2, score.AxisOffensive)
		}()
	}
	wg.Wait()

	for i := range n {
		if errs[i] != nil {
			t.Fatalf("Rank[%d]: %v", i, errs[i])
		}
		if len(results[i]) != 120 {
			t.Errorf("len(Rank[%d]) = %d, want 120", i, len(results[i]))
		}
		if &results[i][0] != &results[0][0] {
			t.Errorf("Rank[%d] computed a separate ranking", i)
		}
	}
}

func TestLoadChart(t *testing.T) {
	ctx := context.Background()

	c, err := LoadChart(ctx, config.ChartConfig{Source: config.SourceBuiltin})
	if err != nil {
		t.Fatalf("LoadChart(builtin): %v", err)
	}
	if c.Len() != 15 {
		t.Errorf("builtin Len() = %d, want 15", c.Len())
	}

	path := filepath.Join(t.TempDir(), "chart.json")
	data := `{"Fire": {"Water": 0.5}, "Water": {"Fire": 2}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	c, err = LoadChart(ctx, config.ChartConfig{Source: config.SourceJSON, Path: path})
	if err != nil {
		t.Fatalf("LoadChart(json): %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("json Len() = %d, want 2", c.Len())
	}

	if _, err := LoadChart(ctx, config.ChartConfig{Source: "yaml"}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("LoadChart(yaml) err = %v, want ErrInvalidConfig", err)
	}
}

func TestSplitNames(t *testing.T) {
	tests := map[string][]string{
		"Fire/Flying":      {"Fire", "Flying"},
		"fire,flying,bug":  {"fire", "flying", "bug"},
		"Water":            {"Water"},
		" Ice / Dragon ":   {"Ice", "Dragon"},
		"Psychic+Ghost":    {"Psychic", "Ghost"},
		"":                 {},
	}
	for in, want := range tests {
		if got := SplitNames(in); !slices.Equal(got, want) {
			t.Errorf("SplitNames(%q) = %q, want %q", in, got, want)
		}
	}
}
