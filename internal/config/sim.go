package config

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// SimConfig holds settings for the simulated games.
type SimConfig struct {
	// Games is the number of independent games to play
	Games int

	// Workers is the number of games played concurrently
	Workers int

	// MaxPlies ends a game after this many half-moves
	MaxPlies int

	// Seed drives every random tie-break; game i uses Seed+i
	Seed int64

	// VerifyRollback compares a board snapshot before and after every
	// rolled back transaction
	VerifyRollback bool
}

// NewSimConfig creates a SimConfig with default values.
func NewSimConfig() *SimConfig {
	return &SimConfig{
		Games:    1,
		Workers:  1,
		MaxPlies: 200,
		Seed:     1,
	}
}

// Validate checks that the simulation settings are usable.
func (s *SimConfig) Validate() error {
	if s.Games < 1 {
		return fmt.Errorf("games (%d) must be at least 1: %w", s.Games, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.MaxPlies < 1 {
		return fmt.Errorf("max plies (%d) must be at least 1: %w", s.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
