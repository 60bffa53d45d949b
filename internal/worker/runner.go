package worker

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/game"
)

// ChooserFactory returns the chooser for the game played with seed.
type ChooserFactory func(seed int64) game.Chooser

// syncWriter serialises writes from concurrent games onto one log stream.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// GameOptions returns the game options for the simulation settings of cfg,
// tracing to log.
func GameOptions(cfg *config.Config, log io.Writer) []game.Option {
	return []game.Option{
		game.WithMaxPlies(cfg.Sim.MaxPlies),
		game.WithRollbackVerification(cfg.Sim.VerifyRollback),
		game.WithLog(log, cfg.Verbosity),
	}
}

// GameFunc returns a ProcessFunc that plays one standard game per item
// using the simulation settings of cfg.
func GameFunc(cfg *config.Config, newChooser ChooserFactory) ProcessFunc {
	var log io.Writer
	if cfg.LogFile != nil {
		log = &syncWriter{w: cfg.LogFile}
	}
	opts := GameOptions(cfg, log)
	return func(ctx context.Context, item WorkItem) ProcessResult {
		res := ProcessResult{Index: item.Index, Seed: item.Seed}
		g, err := game.New(nil, opts...)
		if err != nil {
			res.Error = errors.Wrapf(err, "game %d setup", item.Index)
			return res
		}
		res.Game = g
		res.Status, err = g.Play(ctx, newChooser(item.Seed))
		if err != nil {
			res.Error = errors.Wrapf(err, "game %d (seed %d)", item.Index, item.Seed)
		}
		return res
	}
}

// Run plays cfg.Sim.Games games on cfg.Sim.Workers workers and returns the
// results in submission order. Game i is seeded with cfg.Sim.Seed+i.
func Run(ctx context.Context, cfg *config.Config, newChooser ChooserFactory) []ProcessResult {
	pool := NewPool(GameFunc(cfg, newChooser),
		WithWorkers(cfg.Sim.Workers),
		WithBufferSize(cfg.Sim.Workers*2),
	)
	pool.Start(ctx)

	go func() {
		for i := 0; i < cfg.Sim.Games; i++ {
			pool.Submit(WorkItem{Index: i, Seed: cfg.Sim.Seed + int64(i)})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, cfg.Sim.Games)
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}
