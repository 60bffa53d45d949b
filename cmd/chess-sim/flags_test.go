package main

import (
	"testing"

	"github.com/lgbarn/hostage-chess/internal/config"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt64(ptr *int64, val int64) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplySimFlags(t *testing.T) {
	defer saveRestoreInt(numGames, 12)()
	defer saveRestoreInt(numWorkers, 3)()
	defer saveRestoreInt(maxPly, 80)()
	defer saveRestoreInt64(seed, 42)()
	defer saveRestoreBool(verify, true)()

	cfg := config.NewConfig()
	applySimFlags(cfg)

	want := config.SimConfig{Games: 12, Workers: 3, MaxPlies: 80, Seed: 42, VerifyRollback: true}
	if cfg.Sim != want {
		t.Errorf("Sim = %+v; want %+v", cfg.Sim, want)
	}
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreBool(showBoard, false)()
	defer saveRestoreBool(showMoves, true)()
	defer saveRestoreBool(showErrors, true)()

	cfg := config.NewConfig()
	applyOutputFlags(cfg)

	want := config.OutputConfig{JSONFormat: true, ShowBoard: false, ShowMoves: true, ShowErrors: true}
	if cfg.Output != want {
		t.Errorf("Output = %+v; want %+v", cfg.Output, want)
	}
}

func TestApplyDuplicateFlags(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()
	defer saveRestoreBool(exactDuplicates, true)()
	defer saveRestoreInt(duplicateCapacity, 500)()

	cfg := config.NewConfig()
	applyDuplicateFlags(cfg)

	if !cfg.Duplicate.Detect || !cfg.Duplicate.ExactMatch || cfg.Duplicate.MaxCapacity != 500 {
		t.Errorf("Duplicate = %+v", cfg.Duplicate)
	}
}

func TestApplyFlags_Verbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		quiet     bool
		want      int
	}{
		{"default summary", config.Summary, false, config.Summary},
		{"trace", config.Trace, false, config.Trace},
		{"quiet overrides", config.Trace, true, config.Silent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreInt(verbosity, tt.verbosity)()
			defer saveRestoreBool(quiet, tt.quiet)()

			cfg := config.NewConfig()
			applyFlags(cfg)
			if cfg.Verbosity != tt.want {
				t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, tt.want)
			}
		})
	}
}

func TestFlagDefaults_Validate(t *testing.T) {
	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		t.Errorf("default flags produce invalid config: %v", err)
	}
}
