package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/game"
)

// GameWriter is the interface for writing finished games.
type GameWriter interface {
	// WriteGame writes one game. err is the error its play loop returned.
	WriteGame(g *game.Game, err error) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close flushes and releases the writer.
	Close() error
}

// NewGameWriter returns the writer selected by cfg.
func NewGameWriter(w io.Writer, cfg *config.OutputConfig) GameWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes one text summary per game as it arrives.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteGame writes the summary of g and, with ShowErrors, the error chain.
func (tw *TextWriter) WriteGame(g *game.Game, err error) error {
	if werr := WriteSummary(tw.w, g, tw.cfg); werr != nil {
		return werr
	}
	if err != nil && tw.cfg.ShowErrors {
		return WriteErrorChain(tw.w, err)
	}
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter buffers games and writes them as one JSON document on Flush or
// Close.
type JSONWriter struct {
	w     io.Writer
	cfg   *config.OutputConfig
	games []*JSONGame
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// WriteGame converts g now so later mutation of the game does not leak into
// the report.
func (jw *JSONWriter) WriteGame(g *game.Game, err error) error {
	jw.games = append(jw.games, GameToJSON(g, err, jw.cfg))
	return nil
}

// Flush writes all buffered games as a JSON document.
func (jw *JSONWriter) Flush() error {
	if len(jw.games) == 0 {
		return nil
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
