package chess

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Square is one board cell. Only the board's owner and the transaction layer
// change its occupant.
type Square struct {
	ID    int
	Name  string
	Coord Coordinate

	occupant     PieceID
	occupantTeam TeamID
	occupied     bool
}

func newSquare(id int, c Coordinate) *Square {
	return &Square{ID: id, Name: c.Name(), Coord: c}
}

// Occupant returns the id of the piece on the square, or NoPiece.
func (s *Square) Occupant() PieceID {
	return s.occupant
}

// OccupantTeam returns the team of the occupant, or NoTeam.
func (s *Square) OccupantTeam() TeamID {
	return s.occupantTeam
}

// IsVacant reports whether the square holds no piece.
func (s *Square) IsVacant() bool {
	return !s.occupied
}

// StatusFor describes the square from p's point of view.
func (s *Square) StatusFor(p *Piece) SquareStatus {
	switch {
	case !s.occupied:
		return Vacant
	case p != nil && s.occupant == p.ID:
		return OccupiedBySelf
	case p != nil && s.occupantTeam == p.Team:
		return Blocked
	default:
		return HasEnemy
	}
}

// Occupy places p on the square and pushes the square's coordinate onto p's
// position stack. Occupying a square p already holds is a no-op.
func (s *Square) Occupy(p *Piece) error {
	if p == nil {
		return errors.Wrap(errors.ErrNilInput, "occupy: piece")
	}
	switch s.StatusFor(p) {
	case OccupiedBySelf:
		return nil
	case Blocked:
		return errors.Wrapf(errors.ErrBlockedByFriendly, "occupy %s", s.Name)
	case HasEnemy:
		return errors.Wrapf(errors.ErrOccupiedByEnemy, "occupy %s", s.Name)
	}
	s.SetOccupant(p)
	p.positions.Push(s.Coord)
	return nil
}

// Leave vacates the square. It fails when the square is empty or held by a
// piece other than p.
func (s *Square) Leave(p *Piece) error {
	if p == nil {
		return errors.Wrap(errors.ErrNilInput, "leave: piece")
	}
	if !s.occupied {
		return errors.Wrapf(errors.ErrNotOccupied, "leave %s", s.Name)
	}
	if s.occupant != p.ID {
		return errors.Wrapf(errors.ErrWrongOccupant, "leave %s: held by #%d, not #%d", s.Name, s.occupant, p.ID)
	}
	s.Clear()
	return nil
}

// SetOccupant records p as the occupant without touching p's position
// stack. Transactions pair it with an explicit push and verify each half.
func (s *Square) SetOccupant(p *Piece) {
	if p == nil {
		s.Clear()
		return
	}
	s.occupant = p.ID
	s.occupantTeam = p.Team
	s.occupied = true
}

// Clear vacates the square unconditionally.
func (s *Square) Clear() {
	s.occupant = NoPiece
	s.occupantTeam = NoTeam
	s.occupied = false
}

// String implements fmt.Stringer.
func (s *Square) String() string {
	if s == nil {
		return "<nil square>"
	}
	if s.occupied {
		return fmt.Sprintf("%s[#%d]", s.Name, s.occupant)
	}
	return s.Name
}
