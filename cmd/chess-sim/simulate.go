package main

import (
	"context"
	"strings"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/game"
	"github.com/lgbarn/hostage-chess/internal/hashing"
	"github.com/lgbarn/hostage-chess/internal/output"
	"github.com/lgbarn/hostage-chess/internal/worker"
)

// stats counts how a batch of games ended.
type stats struct {
	played     int
	byStatus   map[game.Status]int
	duplicates int
	failed     int
}

func newStats() *stats {
	return &stats{byStatus: make(map[game.Status]int)}
}

// run plays the configured batch and writes one report per reported game.
// It returns 1 if any game failed.
func run(ctx context.Context, cfg *config.Config, newChooser worker.ChooserFactory) int {
	var detector *hashing.ThreadSafeDuplicateDetector
	if cfg.Duplicate.Detect {
		detector = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	}

	writer := output.NewGameWriter(cfg.OutputFile, &cfg.Output)
	st := newStats()

	for _, r := range worker.Run(ctx, cfg, newChooser) {
		if r.Game == nil {
			st.failed++
			cfg.Logf(config.Summary, "game %d: %v\n", r.Index, r.Error)
			continue
		}
		st.played++
		st.byStatus[r.Status]++
		if r.Error != nil {
			st.failed++
			cfg.Logf(config.Summary, "game %d (%s): %v\n", r.Index, r.Game.ID, r.Error)
		} else {
			cfg.Logf(config.Summary, "game %d (%s): %s after %d plies\n", r.Index, r.Game.ID, r.Status, r.Game.Plies())
		}

		if detector != nil && detector.CheckAndAdd(r.Game.Signature()) {
			st.duplicates++
			continue
		}
		if err := writer.WriteGame(r.Game, r.Error); err != nil {
			cfg.Logf(config.Summary, "writing game %d: %v\n", r.Index, err)
			st.failed++
		}
	}
	if err := writer.Close(); err != nil {
		cfg.Logf(config.Summary, "writing reports: %v\n", err)
		st.failed++
	}

	reportStatistics(cfg, st, detector)
	if ctx.Err() != nil || st.failed > 0 {
		return 1
	}
	return 0
}

// reportStatistics logs the batch totals.
func reportStatistics(cfg *config.Config, st *stats, detector *hashing.ThreadSafeDuplicateDetector) {
	cfg.Logf(config.Summary, "%d games played: %d checkmate, %d no moves, %d ply limit, %d failed\n",
		st.played, st.byStatus[game.Checkmate], st.byStatus[game.NoMoves], st.byStatus[game.PlyLimit], st.failed)
	if detector != nil {
		cfg.Logf(config.Summary, "%d duplicate final positions suppressed, %d unique\n",
			st.duplicates, detector.UniqueCount())
	}
}

// parseScript splits a comma separated move list such as "e2-e4, d7-d5".
func parseScript(s string) ([][2]string, error) {
	var moves [][2]string
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		from, to, ok := strings.Cut(field, "-")
		if !ok || from == "" || to == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "move %q is not from-to", field)
		}
		moves = append(moves, [2]string{from, to})
	}
	if len(moves) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "empty move script")
	}
	return moves, nil
}

// runScript plays moves on a standard board and reports the game. Failed
// moves are logged and skipped. It returns 1 if any move failed.
func runScript(cfg *config.Config, moves [][2]string) int {
	g, err := game.New(nil, worker.GameOptions(cfg, cfg.LogFile)...)
	if err != nil {
		cfg.Logf(config.Summary, "setup: %v\n", err)
		return 1
	}

	code := 0
	var last error
	for i, m := range moves {
		res := g.Move(m[0], m[1])
		if res.Integrity != nil {
			last = res.Integrity
			code = 1
			break
		}
		if res.OK() {
			continue
		}
		code = 1
		last = errors.Wrapf(res.Err, "move %d %s-%s", i+1, m[0], m[1])
		cfg.Logf(config.Summary, "%v\n", last)
		if cfg.Output.ShowErrors && cfg.Verbosity >= config.Summary {
			output.WriteErrorChain(cfg.LogFile, res.Err)
		}
		if g.Over() {
			break
		}
	}

	writer := output.NewGameWriter(cfg.OutputFile, &cfg.Output)
	if err := writer.WriteGame(g, last); err != nil {
		cfg.Logf(config.Summary, "writing game: %v\n", err)
		return 1
	}
	if err := writer.Close(); err != nil {
		cfg.Logf(config.Summary, "writing game: %v\n", err)
		return 1
	}
	return code
}
