package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notjagan/pokerank/pkg/config"
)

func TestRun_Analyze(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Default(), []string{"analyze", "fire/flying"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Types: Fire/Flying\n",
		"Defensive score: -5\n",
		"  Weaknesses: Water (x2), Electric (x2), Ice (x2), Rock (x4)\n",
		"  Immunities: Ground (x0)\n",
		"Offensive score: 2\n",
		"Total score: -3\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_Rank(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Default(),
		[]string{"rank", "-axis", "defensive", "-size", "2", "-limit", "2"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "Normal/Ghost with score: 14\nPsychic/Ghost with score: 14\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	err := run(context.Background(), config.Default(), []string{"export", "-dir", dir}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "tripletype_combinations.csv")); err != nil {
		t.Errorf("missing triple csv: %v", err)
	}
}

func TestRun_Usage(t *testing.T) {
	tests := [][]string{
		nil,
		{"dex"},
		{"analyze"},
		{"rank", "-axis", "sideways"},
	}
	for _, args := range tests {
		err := run(context.Background(), config.Default(), args, &bytes.Buffer{})
		if !errors.Is(err, errUsage) {
			t.Errorf("run(%q) err = %v, want errUsage", args, err)
		}
	}
}
