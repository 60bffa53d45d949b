package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/game"
)

// JSONGame represents a finished game in JSON format.
type JSONGame struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	Winner     string              `json:"winner,omitempty"`
	Plies      int                 `json:"plies"`
	Rejected   int                 `json:"rejected"`
	RolledBack int                 `json:"rolledBack"`
	Moves      []JSONMove          `json:"moves,omitempty"`
	Hostages   map[string][]string `json:"hostages"`
	FinalHash  string              `json:"finalHash"`
	Board      []string            `json:"board,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// JSONMove represents a played move in JSON format.
type JSONMove struct {
	Ply      int    `json:"ply"`
	Team     string `json:"team"`
	Piece    string `json:"piece"`
	Kind     string `json:"kind"`
	From     string `json:"from"`
	To       string `json:"to"`
	Captured string `json:"captured,omitempty"`
	Promoted bool   `json:"promoted,omitempty"`
	Check    bool   `json:"check,omitempty"`
	Hash     string `json:"hash"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game to JSON format. err is the error Play
// returned, if any.
func GameToJSON(g *game.Game, err error, cfg *config.OutputConfig) *JSONGame {
	b := g.Board()
	jg := &JSONGame{
		ID:         g.ID,
		Status:     g.Status().String(),
		Plies:      g.Plies(),
		Rejected:   g.Rejected(),
		RolledBack: g.RolledBack(),
		Hostages:   Hostages(b),
	}
	if winner := g.Winner(); winner != 0 {
		jg.Winner = TeamName(b, winner)
	}
	if history := g.History(); len(history) > 0 {
		jg.FinalHash = hexHash(history[len(history)-1])
	}
	if cfg.ShowMoves {
		for _, r := range g.Moves() {
			jg.Moves = append(jg.Moves, JSONMove{
				Ply:      r.Ply,
				Team:     TeamName(b, r.Team),
				Piece:    r.Piece,
				Kind:     r.Kind.String(),
				From:     r.From.Name(),
				To:       r.To.Name(),
				Captured: r.Captured,
				Promoted: r.Promoted,
				Check:    r.Check,
				Hash:     hexHash(r.Hash),
			})
		}
	}
	if cfg.ShowBoard {
		jg.Board = BoardRows(b)
	}
	if err != nil {
		jg.Error = err.Error()
	}
	return jg
}

func hexHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// OutputGamesJSON writes games as a single JSON document.
func OutputGamesJSON(w io.Writer, games []*game.Game, cfg *config.OutputConfig) error {
	out := &JSONOutput{Games: make([]*JSONGame, 0, len(games))}
	for _, g := range games {
		out.Games = append(out.Games, GameToJSON(g, nil, cfg))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
