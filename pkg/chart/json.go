package chart

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ParseJSON reads a chart shaped as {"Attack": {"Defend": multiplier, ...}, ...}.
// Type ids follow the order of the top-level keys; pairs left out are neutral.
func ParseJSON(data []byte) (*Chart, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("chart is not valid json: %w", ErrMalformedChartData)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("chart must be a json object: %w", ErrMalformedChartData)
	}

	var names []string
	var entries []Entry
	var err error
	root.ForEach(func(attack, row gjson.Result) bool {
		names = append(names, attack.String())
		if !row.IsObject() {
			err = fmt.Errorf("row for %q is not an object: %w", attack.String(), ErrMalformedChartData)
			return false
		}

		row.ForEach(func(defend, value gjson.Result) bool {
			if value.Type != gjson.Number {
				err = fmt.Errorf("%s -> %s is not a number: %w", attack.String(), defend.String(), ErrMalformedChartData)
				return false
			}
			entries = append(entries, Entry{
				Attack:     attack.String(),
				Defend:     defend.String(),
				Multiplier: Multiplier(value.Float()),
			})
			return true
		})
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	c, err := New(names, entries)
	if err != nil {
		return nil, fmt.Errorf("could not build chart from json: %w", err)
	}

	return c, nil
}

func ReadJSON(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read chart file %q: %w", path, err)
	}

	return ParseJSON(data)
}
