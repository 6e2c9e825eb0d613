package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/notjagan/pokerank/pkg/chart"
	"github.com/notjagan/pokerank/pkg/rank"
)

var typeColumns = [chart.MaxCombinationSize]string{"First Type", "Second Type", "Third Type"}

// FormatScore rounds to two decimals and drops trailing zeros.
func FormatScore(s float64) string {
	rounded := math.Round(s*100) / 100
	if rounded == 0 {
		// drop the sign of -0
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func csvHeader(size int) []string {
	header := make([]string, 0, size+3)
	header = append(header, typeColumns[:size]...)
	return append(header, "Defensive Score", "Offensive Score", "Total Score")
}

// WriteCSV writes records as rows of size type columns followed by their scores.
// Combinations with fewer than size types leave the remaining columns empty.
func WriteCSV(w io.Writer, records []rank.Record, size int) error {
	if size < 1 || size > chart.MaxCombinationSize {
		return fmt.Errorf("could not write csv for size %d: %w", size, chart.ErrInvalidCombinationSize)
	}

	cw := csv.NewWriter(w)
	err := cw.Write(csvHeader(size))
	if err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		names := rec.Combination.Names()
		if len(names) > size {
			return fmt.Errorf("combination %s does not fit %d columns: %w",
				rec.Combination, size, chart.ErrInvalidCombinationSize)
		}

		row := make([]string, size, size+3)
		copy(row, names)
		row = append(row, FormatScore(rec.Defensive), FormatScore(rec.Offensive), FormatScore(rec.Total))
		err := cw.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", rec.Combination, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
