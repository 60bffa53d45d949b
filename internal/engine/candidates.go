package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
)

// Candidate is a move a team could attempt. Target is the enemy standing on
// To, nil for a plain occupation.
type Candidate struct {
	Piece  *chess.Piece
	To     *chess.Square
	Target *chess.Piece
}

// IsAttack reports whether the candidate captures.
func (c Candidate) IsAttack() bool {
	return c.Target != nil
}

// Candidates lists every walkable move of team's active pieces in roster
// order. Squares holding an enemy king are skipped since kings cannot be
// captured. Check is not considered.
func Candidates(b *chess.Board, team chess.TeamID) []Candidate {
	if b == nil {
		return nil
	}
	var out []Candidate
	for _, p := range b.TeamPieces(team) {
		if p.Status == chess.Checkmated {
			continue
		}
		squares, err := ReachableSquares(b, p)
		if err != nil {
			continue
		}
		for _, sq := range squares {
			c := Candidate{Piece: p, To: sq}
			if !sq.IsVacant() {
				c.Target = b.Piece(sq.Occupant())
				if c.Target == nil || c.Target.Kind == chess.King {
					continue
				}
			}
			out = append(out, c)
		}
	}
	return out
}

// Execute runs the candidate as an Attack or Occupation.
func (c Candidate) Execute(b *chess.Board, opts ...Option) Result {
	if c.To != nil && !c.To.IsVacant() {
		return NewAttack(b, c.Piece, c.To, opts...).Execute()
	}
	return NewOccupation(b, c.Piece, c.To, opts...).Execute()
}
