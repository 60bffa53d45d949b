package config

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// DuplicateConfig holds settings for duplicate final-position detection.
type DuplicateConfig struct {
	// Detect enables duplicate detection across games
	Detect bool

	// ExactMatch also requires equal ply counts
	ExactMatch bool

	// MaxCapacity bounds stored positions; 0 means unlimited
	MaxCapacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}

// Validate checks the duplicate settings.
func (d *DuplicateConfig) Validate() error {
	if d.MaxCapacity < 0 {
		return fmt.Errorf("duplicate capacity (%d) is negative: %w", d.MaxCapacity, errors.ErrInvalidConfig)
	}
	return nil
}
