package chess

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// PositionStack is the append-only history of a piece's coordinates. The top
// is the current position; Pop exists only to undo a Push.
type PositionStack struct {
	coords []Coordinate
}

// Push appends c.
func (s *PositionStack) Push(c Coordinate) {
	s.coords = append(s.coords, c)
}

// Pop removes and returns the top coordinate.
func (s *PositionStack) Pop() (Coordinate, error) {
	if len(s.coords) == 0 {
		return Coordinate{}, errors.Wrap(errors.ErrInconsistentState, "pop on empty position stack")
	}
	top := s.coords[len(s.coords)-1]
	s.coords = s.coords[:len(s.coords)-1]
	return top, nil
}

// Top returns the current coordinate and whether the stack is non-empty.
func (s *PositionStack) Top() (Coordinate, bool) {
	if len(s.coords) == 0 {
		return Coordinate{}, false
	}
	return s.coords[len(s.coords)-1], true
}

// Len returns the number of recorded positions.
func (s *PositionStack) Len() int {
	return len(s.coords)
}

// Coordinates returns a copy of the history, oldest first.
func (s *PositionStack) Coordinates() []Coordinate {
	out := make([]Coordinate, len(s.coords))
	copy(out, s.coords)
	return out
}

// Piece is a single chess piece. Every kind shares this type; behavior is
// selected by Kind.
type Piece struct {
	ID           PieceID
	Name         string
	Kind         Kind
	PreviousKind Kind // Set when promoted, NoKind before
	Team         TeamID
	RosterNumber int
	Captor       PieceID // NoPiece while free
	Status       PieceStatus

	positions PositionStack
}

// NewPiece creates a piece with an empty position stack. Use Board.Spawn
// and Square.Occupy to put it into play.
func NewPiece(id PieceID, kind Kind, team TeamID, rosterNumber int, name string) *Piece {
	return &Piece{
		ID:           id,
		Name:         name,
		Kind:         kind,
		Team:         team,
		RosterNumber: rosterNumber,
	}
}

// Rank returns the shared metadata for the piece's current kind.
func (p *Piece) Rank() *Rank {
	return RankOf(p.Kind)
}

// Positions exposes the piece's position stack.
func (p *Piece) Positions() *PositionStack {
	return &p.positions
}

// CurrentPosition returns the top of the position stack.
func (p *Piece) CurrentPosition() (Coordinate, bool) {
	return p.positions.Top()
}

// HasMoved reports whether the piece has left its starting square.
func (p *Piece) HasMoved() bool {
	return p.positions.Len() > 1
}

// IsCaptured reports whether a captor has been recorded.
func (p *Piece) IsCaptured() bool {
	return p.Captor != NoPiece
}

// IsPromoted reports whether the piece has already been promoted.
func (p *Piece) IsPromoted() bool {
	return p.PreviousKind != NoKind
}

// String implements fmt.Stringer.
func (p *Piece) String() string {
	if p == nil {
		return "<nil piece>"
	}
	if c, ok := p.CurrentPosition(); ok {
		return fmt.Sprintf("%s#%d@%s", p.Name, p.ID, c.Name())
	}
	return fmt.Sprintf("%s#%d", p.Name, p.ID)
}
