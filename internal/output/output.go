// Package output formats finished games as text or JSON reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/game"
)

// BoardRows returns one string per board row, row 0 first. Pieces of the
// first team to move are upper case, the others lower case and empty
// squares are '.'.
func BoardRows(b *chess.Board) []string {
	rows := make([]string, 0, chess.RowSize)
	for row := 0; row < chess.RowSize; row++ {
		var sb strings.Builder
		for col := 0; col < chess.ColumnSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(symbol(b, b.PieceAt(chess.Coordinate{Row: row, Column: col})))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func symbol(b *chess.Board, p *chess.Piece) byte {
	if p == nil {
		return '.'
	}
	letter := p.Kind.Letter()
	if t := b.Team(p.Team); t != nil && t.PlayOrder > 0 {
		letter += 'a' - 'A'
	}
	return letter
}

// RenderBoard writes b as a labelled 8x8 grid.
func RenderBoard(w io.Writer, b *chess.Board) error {
	var sb strings.Builder
	for i, row := range BoardRows(b) {
		fmt.Fprintf(&sb, "%d %s\n", chess.RowSize-i, row)
	}
	sb.WriteString("  ")
	for col := 0; col < chess.ColumnSize; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('a' + col))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatRecord renders a played move, e.g. "12. WQ1 d1-d7 xBP4 =Q +".
func FormatRecord(r game.Record) string {
	s := fmt.Sprintf("%d. %s %s-%s", r.Ply, r.Piece, r.From.Name(), r.To.Name())
	if r.Captured != "" {
		s += " x" + r.Captured
	}
	if r.Promoted {
		s += " =Q"
	}
	if r.Check {
		s += " +"
	}
	return s
}

// TeamName returns the colour of team id on b, or "none".
func TeamName(b *chess.Board, id chess.TeamID) string {
	if t := b.Team(id); t != nil {
		return t.Colour
	}
	return "none"
}

// Hostages maps each team's colour to the names of the pieces it holds.
func Hostages(b *chess.Board) map[string][]string {
	out := make(map[string][]string)
	for _, t := range b.Teams() {
		names := []string{}
		for _, id := range t.Hostages() {
			if p := b.Piece(id); p != nil {
				names = append(names, p.Name)
			}
		}
		out[t.Colour] = names
	}
	return out
}

// WriteSummary writes the text report of g.
func WriteSummary(w io.Writer, g *game.Game, cfg *config.OutputConfig) error {
	b := g.Board()
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s: %s after %d plies", g.ID, g.Status(), g.Plies())
	if winner := g.Winner(); winner != chess.NoTeam {
		fmt.Fprintf(&sb, ", %s wins", TeamName(b, winner))
	}
	fmt.Fprintf(&sb, " (%d rejected, %d rolled back)\n", g.Rejected(), g.RolledBack())

	if cfg.ShowMoves {
		for _, r := range g.Moves() {
			fmt.Fprintf(&sb, "  %s\n", FormatRecord(r))
		}
	}
	hostages := Hostages(b)
	for _, t := range b.Teams() {
		if held := hostages[t.Colour]; len(held) > 0 {
			fmt.Fprintf(&sb, "  %s holds %s\n", t.Colour, strings.Join(held, " "))
		}
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if cfg.ShowBoard {
		return RenderBoard(w, b)
	}
	return nil
}

// WriteErrorChain writes err and every error it wraps, one per line.
func WriteErrorChain(w io.Writer, err error) error {
	chain := errors.Chain(err)
	if len(chain) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", chain[0])
	for _, msg := range chain[1:] {
		fmt.Fprintf(&sb, "  caused by: %s\n", msg)
	}
	_, werr := io.WriteString(w, sb.String())
	return werr
}
