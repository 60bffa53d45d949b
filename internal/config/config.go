// Package config provides configuration for chess-sim runs.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Verbosity levels.
const (
	Silent  = 0 // nothing
	Summary = 1 // one line per game
	Trace   = 2 // every transaction step
)

// Config holds all program configuration.
type Config struct {
	Sim       SimConfig
	Output    OutputConfig
	Duplicate DuplicateConfig

	Verbosity int // 0=nothing, 1=game summaries, 2=transaction trace

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Sim:        *NewSimConfig(),
		Output:     *NewOutputConfig(),
		Duplicate:  *NewDuplicateConfig(),
		Verbosity:  Summary,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the report output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	if err := c.Duplicate.Validate(); err != nil {
		return err
	}
	if c.Verbosity < Silent || c.Verbosity > Trace {
		return fmt.Errorf("verbosity %d not in [%d, %d]: %w", c.Verbosity, Silent, Trace, errors.ErrInvalidConfig)
	}
	if c.OutputFile == nil {
		return fmt.Errorf("no output stream: %w", errors.ErrInvalidConfig)
	}
	if c.LogFile == nil {
		return fmt.Errorf("no log stream: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// Logf writes to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}
