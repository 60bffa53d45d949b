package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithGames sets the number of games to play.
func (b *ConfigBuilder) WithGames(n int) *ConfigBuilder {
	b.cfg.Sim.Games = n
	return b
}

// WithWorkers sets the number of concurrent games.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Sim.Workers = n
	return b
}

// WithMaxPlies sets the per-game half-move limit.
func (b *ConfigBuilder) WithMaxPlies(n int) *ConfigBuilder {
	b.cfg.Sim.MaxPlies = n
	return b
}

// WithSeed sets the base random seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Sim.Seed = seed
	return b
}

// WithRollbackVerification enables snapshot checks after rollbacks.
func (b *ConfigBuilder) WithRollbackVerification(enabled bool) *ConfigBuilder {
	b.cfg.Sim.VerifyRollback = enabled
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithShowBoard controls whether final boards are printed.
func (b *ConfigBuilder) WithShowBoard(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowBoard = enabled
	return b
}

// WithShowMoves controls whether move lists are printed.
func (b *ConfigBuilder) WithShowMoves(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowMoves = enabled
	return b
}

// WithDuplicateDetection enables duplicate final-position detection.
func (b *ConfigBuilder) WithDuplicateDetection(enabled, exact bool) *ConfigBuilder {
	b.cfg.Duplicate.Detect = enabled
	b.cfg.Duplicate.ExactMatch = exact
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithOutputFile sets the output writer.
func (b *ConfigBuilder) WithOutputFile(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}
