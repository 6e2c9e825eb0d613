package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/score"
)

var csvNames = map[int]string{
	1: "monotype_combinations.csv",
	2: "dualtype_combinations.csv",
	3: "tripletype_combinations.csv",
}

var listingNames = []struct {
	name string
	axis score.Axis
}{
	{"bestof-def.txt", score.AxisDefensive},
	{"bestof-off.txt", score.AxisOffensive},
	{"bestof-total.txt", score.AxisAverage},
}

const AnalysesName = "pkm-score.json"

func writeFile(path string, write func(io.Writer) error) (ret error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && ret == nil {
			ret = fmt.Errorf("failed to close %q: %w", path, err)
		}
	}()

	return write(f)
}

// Dir writes the per-size CSVs, the ranked listings and the analysis dump for a into dir.
func Dir(ctx context.Context, a *analysis.Analyzer, dir string) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for size := 1; size <= a.MaxSize(); size++ {
		records, err := a.RankSize(ctx, size, score.AxisTotal)
		if err != nil {
			return fmt.Errorf("could not rank size %d combinations: %w", size, err)
		}

		name := csvNames[size]
		err = writeFile(filepath.Join(dir, name), func(w io.Writer) error {
			return WriteCSV(w, records, size)
		})
		if err != nil {
			return err
		}
		log.Printf("Exported %d combinations to %s.", len(records), name)
	}

	for _, listing := range listingNames {
		records, err := a.Rank(ctx, a.MaxSize(), listing.axis)
		if err != nil {
			return fmt.Errorf("could not rank combinations by %s: %w", listing.axis, err)
		}

		err = writeFile(filepath.Join(dir, listing.name), func(w io.Writer) error {
			return WriteListing(w, records, listing.axis)
		})
		if err != nil {
			return err
		}
		log.Printf("Exported %s rankings to %s.", listing.axis, listing.name)
	}

	profiles, err := a.Profiles(a.MaxSize())
	if err != nil {
		return fmt.Errorf("could not collect profiles: %w", err)
	}
	err = writeFile(filepath.Join(dir, AnalysesName), func(w io.Writer) error {
		return WriteAnalyses(w, a.Chart(), profiles)
	})
	if err != nil {
		return err
	}
	log.Printf("Exported %d analyses to %s.", len(profiles), AnalysesName)

	return nil
}
