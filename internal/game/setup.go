package game

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Standard team ids.
const (
	White chess.TeamID = 1
	Black chess.TeamID = 2
)

// backRank is the piece order from column a to column h.
var backRank = [chess.ColumnSize]chess.Kind{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewStandardBoard builds a board with white on row 7 moving first, black on
// row 0, and both teams in the usual 32-piece starting position.
func NewStandardBoard(ids chess.IDSource) (*chess.Board, error) {
	b := chess.NewBoard(ids)
	b.AddTeam(chess.NewTeam(White, 'W', "white", 0, chess.RowSize-1))
	b.AddTeam(chess.NewTeam(Black, 'B', "black", 1, 0))
	for _, t := range b.Teams() {
		if err := SetupTeam(b, t); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SetupTeam spawns t's pieces on its back row and pawn row. Quotas from the
// rank table are enforced by the board.
func SetupTeam(b *chess.Board, t *chess.Team) error {
	if b == nil || t == nil {
		return errors.Wrap(errors.ErrNilInput, "setup")
	}
	for col, kind := range backRank {
		if err := spawn(b, t, kind, t.BackRow, col); err != nil {
			return err
		}
	}
	for col := 0; col < chess.ColumnSize; col++ {
		if err := spawn(b, t, chess.Pawn, t.PawnRow, col); err != nil {
			return err
		}
	}
	return nil
}

func spawn(b *chess.Board, t *chess.Team, kind chess.Kind, row, col int) error {
	c, err := chess.NewCoordinate(row, col)
	if err != nil {
		return errors.Wrapf(err, "setup %s %s", t.Colour, kind)
	}
	if _, err := b.Spawn(t.ID, kind, c); err != nil {
		return errors.Wrapf(err, "setup %s", t.Colour)
	}
	return nil
}
