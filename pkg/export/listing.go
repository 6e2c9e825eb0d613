package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/notjagan/pokerank/pkg/rank"
	"github.com/notjagan/pokerank/pkg/score"
)

// WriteListing writes one "Type/Type with score: X" line per record, scored on axis.
func WriteListing(w io.Writer, records []rank.Record, axis score.Axis) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		s, err := rec.Score(axis)
		if err != nil {
			return fmt.Errorf("could not score %s: %w", rec.Combination, err)
		}

		_, err = fmt.Fprintf(bw, "%s with score: %s\n", rec.Combination, FormatScore(s))
		if err != nil {
			return fmt.Errorf("failed to write listing line: %w", err)
		}
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("failed to flush listing: %w", err)
	}

	return nil
}
