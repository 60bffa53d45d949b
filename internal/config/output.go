package config

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// JSONFormat writes one JSON report per game instead of text
	JSONFormat bool

	// ShowBoard prints the final board of each game
	ShowBoard bool

	// ShowMoves lists every played move in text reports
	ShowMoves bool

	// ShowErrors prints the full error chain of rejected moves
	ShowErrors bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowBoard: true,
	}
}
