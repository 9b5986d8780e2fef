package main

import (
	"testing"

	"github.com/bcdxn/camelrace/internal/config"
)

func TestSeedFlag(t *testing.T) {
	fromEnv := config.Default()
	fromEnv.Seed = 42

	tests := []struct {
		name string
		args []string
		want int64
	}{
		{"NotGiven", nil, 42},
		{"Given", []string{"-seed", "7"}, 7},
		{"ZeroTurnsSeedOff", []string{"-seed", "0"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := opts.apply(fromEnv).Seed; got != tt.want {
				t.Errorf("expected seed %d but found %d", tt.want, got)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-headless", "-races", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.headless || opts.races != 3 {
		t.Errorf("expected a headless run of 3 races but found %+v", opts)
	}
	if _, err := parseFlags([]string{"-races", "0"}); err == nil {
		t.Errorf("expected an error for zero races")
	}
}
