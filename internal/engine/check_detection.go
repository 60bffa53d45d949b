package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
)

// IsAttacked reports whether any active piece not on team bears on sq.
func IsAttacked(b *chess.Board, sq *chess.Square, team chess.TeamID) bool {
	for _, p := range b.Pieces() {
		if p.Team == team {
			continue
		}
		if ok, err := Attacks(b, p, sq); err == nil && ok {
			return true
		}
	}
	return false
}

// UpdateCheckFlags refreshes every king's status. A king on an attacked square
// is InCheck; if every square it could step to is attacked as well it is
// Checkmated. Moves are not filtered by these flags.
func UpdateCheckFlags(b *chess.Board) {
	for _, t := range b.Teams() {
		king := b.King(t.ID)
		if king == nil {
			continue
		}
		king.Status = kingStatus(b, king)
	}
}

func kingStatus(b *chess.Board, king *chess.Piece) chess.PieceStatus {
	sq := b.SquareOf(king)
	if sq == nil || !IsAttacked(b, sq, king.Team) {
		return chess.Free
	}
	escapes, err := ReachableSquares(b, king)
	if err != nil {
		return chess.InCheck
	}
	for _, e := range escapes {
		if !IsAttacked(b, e, king.Team) {
			return chess.InCheck
		}
	}
	return chess.Checkmated
}
