// chess-sim plays hostage chess games between automated players and reports
// how they ended.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/decision"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/game"
	"github.com/lgbarn/hostage-chess/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return 0
	}
	if *version {
		fmt.Printf("chess-sim version %s\n", programVersion)
		return 0
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	closeLog, err := setupLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer closeLog()
	closeOutput, err := setupOutputFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer closeOutput()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	prof, err := startProfile(*profileMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if prof != nil {
		defer prof.Stop()
	}

	if *script != "" {
		moves, err := parseScript(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		return runScript(cfg, moves)
	}

	newChooser, err := chooserFactory(*chooser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, cfg, newChooser)
}

// setupLogFile redirects the log to -l when given.
func setupLogFile(cfg *config.Config) (func(), error) {
	if *logFile == "" {
		return func() {}, nil
	}
	file, err := os.Create(*logFile)
	if err != nil {
		return nil, errors.Wrapf(err, "creating log file %s", *logFile)
	}
	cfg.LogFile = file
	return func() { file.Close() }, nil
}

// setupOutputFile redirects reports to -o when given.
func setupOutputFile(cfg *config.Config) (func(), error) {
	if *outputFile == "" {
		return func() {}, nil
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		return nil, errors.Wrapf(err, "creating output file %s", *outputFile)
	}
	cfg.SetOutput(file)
	return func() { file.Close() }, nil
}

// profileModes maps -profile values to pkg/profile modes.
var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
}

// startProfile starts the named profile in the current directory. An empty
// mode starts nothing and returns nil.
func startProfile(mode string) (interface{ Stop() }, error) {
	if mode == "" {
		return nil, nil
	}
	m, ok := profileModes[mode]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown profile mode %q", mode)
	}
	return profile.Start(m, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet), nil
}

// chooserFactory returns the chooser constructor named by name.
func chooserFactory(name string) (worker.ChooserFactory, error) {
	switch name {
	case "greedy":
		return func(seed int64) game.Chooser { return decision.NewGreedy(seed) }, nil
	case "random":
		return func(seed int64) game.Chooser { return decision.NewRandom(seed) }, nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown chooser %q", name)
}

func usage() {
	printUsage(os.Stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: chess-sim [options]\n\n")
	fmt.Fprintf(w, "Plays hostage chess games between automated players.\n")
	fmt.Fprintf(w, "Captured pieces are held as hostages by the capturing team.\n\n")
	fmt.Fprintf(w, "Options:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintf(w, "\nChoosers (-chooser):\n")
	fmt.Fprintf(w, "  greedy  Most valuable capture, then closest to the enemy king\n")
	fmt.Fprintf(w, "  random  Any legal move\n")
}
