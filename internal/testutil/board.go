package testutil

import (
	"testing"

	"github.com/lgbarn/hostage-chess/internal/chess"
)

// Team ids used by NewEmptyBoard.
const (
	WhiteID chess.TeamID = 1
	BlackID chess.TeamID = 2
)

// NewEmptyBoard returns a board with white (back row 7, moves first) and
// black (back row 0) registered and no pieces.
func NewEmptyBoard() (*chess.Board, *chess.Team, *chess.Team) {
	b := chess.NewBoard(chess.NewSequence())
	white := chess.NewTeam(WhiteID, 'W', "white", 0, chess.RowSize-1)
	black := chess.NewTeam(BlackID, 'B', "black", 1, 0)
	b.AddTeam(white)
	b.AddTeam(black)
	return b, white, black
}

// Place spawns a piece of kind for team on the named square.
// It calls t.Fatal if the square name is invalid or placement fails.
func Place(t testing.TB, b *chess.Board, team chess.TeamID, kind chess.Kind, square string) *chess.Piece {
	t.Helper()
	c, err := chess.ParseCoordinate(square)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	p, err := b.Spawn(team, kind, c)
	if err != nil {
		t.Fatalf("Place %v %v on %s: %v", team, kind, square, err)
	}
	return p
}

// PlaceAt is Place with a row/column coordinate.
func PlaceAt(t testing.TB, b *chess.Board, team chess.TeamID, kind chess.Kind, row, col int) *chess.Piece {
	t.Helper()
	c, err := chess.NewCoordinate(row, col)
	if err != nil {
		t.Fatalf("PlaceAt: %v", err)
	}
	return Place(t, b, team, kind, c.Name())
}

// Square returns the named square or calls t.Fatal.
func Square(t testing.TB, b *chess.Board, name string) *chess.Square {
	t.Helper()
	sq := b.SquareNamed(name)
	if sq == nil {
		t.Fatalf("no square named %q", name)
	}
	return sq
}

// SquareAt returns the square at (row, col) or calls t.Fatal.
func SquareAt(t testing.TB, b *chess.Board, row, col int) *chess.Square {
	t.Helper()
	c, err := chess.NewCoordinate(row, col)
	if err != nil {
		t.Fatalf("SquareAt: %v", err)
	}
	return b.SquareAt(c)
}

// Names returns the square names in order.
func Names(squares []*chess.Square) []string {
	out := make([]string, 0, len(squares))
	for _, sq := range squares {
		out = append(out, sq.Name)
	}
	return out
}
