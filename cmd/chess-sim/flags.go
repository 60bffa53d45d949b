// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/hostage-chess/internal/config"
)

var (
	// Simulation
	numGames   = flag.Int("games", 1, "Number of games to simulate")
	numWorkers = flag.Int("workers", 1, "Number of games played in parallel")
	maxPly     = flag.Int("maxply", 200, "End each game after N plies")
	seed       = flag.Int64("seed", 1, "Seed of the first game; game i uses seed+i")
	chooser    = flag.String("chooser", "greedy", "Move chooser: greedy, random")
	verify     = flag.Bool("verify", false, "Verify board integrity after every transaction")
	script     = flag.String("script", "", "Play one game from a move list instead, e.g. 'e2-e4,d7-d5'")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	showBoard  = flag.Bool("board", true, "Show the final board")
	showMoves  = flag.Bool("moves", false, "List every played move")
	showErrors = flag.Bool("errors", false, "Show the full error chain of failed games and moves")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress games whose final position was already reported")
	exactDuplicates    = flag.Bool("exact", false, "Duplicates must also have equal ply counts")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum stored final positions (0 = unlimited)")

	// Logging
	logFile   = flag.String("l", "", "Write log to file (default: stderr)")
	verbosity = flag.Int("v", config.Summary, "Verbosity: 0 silent, 1 game summaries, 2 transaction trace")
	quiet     = flag.Bool("s", false, "Silent mode (no log output)")

	// Diagnostics
	profileMode = flag.String("profile", "", "Write a profile to the current directory: cpu, mem, block, mutex, goroutine")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applySimFlags(cfg)
	applyOutputFlags(cfg)
	applyDuplicateFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = config.Silent
	}
}

// applySimFlags configures the simulation settings.
func applySimFlags(cfg *config.Config) {
	cfg.Sim.Games = *numGames
	cfg.Sim.Workers = *numWorkers
	cfg.Sim.MaxPlies = *maxPly
	cfg.Sim.Seed = *seed
	cfg.Sim.VerifyRollback = *verify
}

// applyOutputFlags configures report formatting.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowMoves = *showMoves
	cfg.Output.ShowErrors = *showErrors
}

// applyDuplicateFlags configures duplicate detection.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Detect = *suppressDuplicates
	cfg.Duplicate.ExactMatch = *exactDuplicates
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}
