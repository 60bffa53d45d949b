package chess

import (
	"fmt"
	"iter"
	"sort"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Board owns every square and is the lifetime root of every piece. Squares and
// teams refer to pieces by id; lookups go through the board.
type Board struct {
	squares [RowSize][ColumnSize]*Square
	byName  map[string]*Square

	arena  map[PieceID]*Piece
	active map[PieceID]struct{}
	teams  map[TeamID]*Team

	ids IDSource
}

// NewBoard creates an empty board whose square and piece ids come from ids.
func NewBoard(ids IDSource) *Board {
	if ids == nil {
		ids = NewSequence()
	}
	b := &Board{
		byName: make(map[string]*Square, RowSize*ColumnSize),
		arena:  make(map[PieceID]*Piece),
		active: make(map[PieceID]struct{}),
		teams:  make(map[TeamID]*Team),
		ids:    ids,
	}
	for row := 0; row < RowSize; row++ {
		for col := 0; col < ColumnSize; col++ {
			sq := newSquare(ids.SquareID(), Coordinate{Row: row, Column: col})
			b.squares[row][col] = sq
			b.byName[sq.Name] = sq
		}
	}
	return b
}

// IDs returns the board's id source.
func (b *Board) IDs() IDSource {
	return b.ids
}

// SquareAt returns the square at c, or nil when c is not on the board.
func (b *Board) SquareAt(c Coordinate) *Square {
	if c.Row < 0 || c.Row >= RowSize || c.Column < 0 || c.Column >= ColumnSize {
		return nil
	}
	return b.squares[c.Row][c.Column]
}

// SquareNamed returns the square with the given algebraic name, or nil.
func (b *Board) SquareNamed(name string) *Square {
	return b.byName[name]
}

// Squares yields every square, row by row from row 0.
func (b *Board) Squares() iter.Seq[*Square] {
	return func(yield func(*Square) bool) {
		for row := 0; row < RowSize; row++ {
			for col := 0; col < ColumnSize; col++ {
				if !yield(b.squares[row][col]) {
					return
				}
			}
		}
	}
}

// Ray yields squares from origin along dir's unit direction, starting one
// step away. It stops after yielding the first occupied square and before
// leaving the board. Each call returns a fresh sequence.
func (b *Board) Ray(origin Coordinate, dir Offset) iter.Seq[*Square] {
	unit := dir.Unit()
	return func(yield func(*Square) bool) {
		if unit == (Offset{}) {
			return
		}
		for k := 1; ; k++ {
			step, err := unit.Scale(k)
			if err != nil {
				return
			}
			c, err := origin.AddOffset(step)
			if err != nil {
				return
			}
			sq := b.SquareAt(c)
			if !yield(sq) || !sq.IsVacant() {
				return
			}
		}
	}
}

// AddTeam registers t on the board.
func (b *Board) AddTeam(t *Team) {
	b.teams[t.ID] = t
}

// Team returns the team with the given id, or nil.
func (b *Board) Team(id TeamID) *Team {
	return b.teams[id]
}

// Teams returns every team ordered by PlayOrder.
func (b *Board) Teams() []*Team {
	out := make([]*Team, 0, len(b.teams))
	for _, t := range b.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayOrder < out[j].PlayOrder })
	return out
}

// Opponent returns the first team other than id, or nil.
func (b *Board) Opponent(id TeamID) *Team {
	for _, t := range b.Teams() {
		if t.ID != id {
			return t
		}
	}
	return nil
}

// Spawn builds a piece of kind for team, enlists it on the team roster, adds
// it to the board and places it at c. Team quotas from the rank table are
// enforced.
func (b *Board) Spawn(team TeamID, kind Kind, c Coordinate) (*Piece, error) {
	t := b.teams[team]
	if t == nil {
		return nil, errors.Wrapf(errors.ErrNilInput, "spawn: team %d", team)
	}
	if kind <= NoKind || kind >= NumKinds {
		return nil, errors.Wrapf(errors.ErrNilInput, "spawn: kind %d", kind)
	}
	sq := b.SquareAt(c)
	if sq == nil {
		return nil, errors.Wrapf(errors.ErrOutOfBounds, "spawn at %v", c)
	}

	count := 0
	for _, id := range t.roster {
		if b.arena[id].Kind == kind {
			count++
		}
	}
	if count >= RankOf(kind).TeamQuota {
		return nil, errors.Wrapf(errors.ErrQuotaExceeded, "%s %s", t.Colour, kind)
	}

	number := len(t.roster) + 1
	p := NewPiece(PieceID(b.ids.PieceID()), kind, team, number,
		fmt.Sprintf("%c%c%d", t.Letter, kind.Letter(), count+1))
	if err := sq.Occupy(p); err != nil {
		return nil, errors.Wrapf(err, "spawn %s", p.Name)
	}
	b.arena[p.ID] = p
	b.active[p.ID] = struct{}{}
	t.Enlist(p.ID)
	return p, nil
}

// Piece returns the piece with the given id from the arena, captured or not.
func (b *Board) Piece(id PieceID) *Piece {
	return b.arena[id]
}

// PieceAt returns the piece occupying c, or nil.
func (b *Board) PieceAt(c Coordinate) *Piece {
	sq := b.SquareAt(c)
	if sq == nil || sq.IsVacant() {
		return nil
	}
	return b.arena[sq.Occupant()]
}

// SquareOf returns the square holding p's current position, or nil.
func (b *Board) SquareOf(p *Piece) *Square {
	if p == nil {
		return nil
	}
	c, ok := p.CurrentPosition()
	if !ok {
		return nil
	}
	return b.SquareAt(c)
}

// Pieces returns the active pieces ordered by id.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, len(b.active))
	for id := range b.active {
		out = append(out, b.arena[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TeamPieces returns the active pieces of team ordered by roster.
func (b *Board) TeamPieces(team TeamID) []*Piece {
	t := b.teams[team]
	if t == nil {
		return nil
	}
	out := make([]*Piece, 0, len(t.roster))
	for _, id := range t.roster {
		if b.IsActive(id) {
			out = append(out, b.arena[id])
		}
	}
	return out
}

// King returns team's king, or nil.
func (b *Board) King(team TeamID) *Piece {
	for _, p := range b.TeamPieces(team) {
		if p.Kind == King {
			return p
		}
	}
	return nil
}

// IsActive reports whether id is in play.
func (b *Board) IsActive(id PieceID) bool {
	_, ok := b.active[id]
	return ok
}

// RemoveActive takes id out of play. The piece stays in the arena.
func (b *Board) RemoveActive(id PieceID) {
	delete(b.active, id)
}

// RestoreActive puts an arena piece back into play.
func (b *Board) RestoreActive(id PieceID) {
	if _, ok := b.arena[id]; ok {
		b.active[id] = struct{}{}
	}
}

// Verify checks the board invariants: each active piece sits on exactly the
// square matching its current position, every occupied square holds an
// active piece, and roster/hostage membership agrees with captor state.
// A failure means an earlier bug and reports ErrInconsistentState.
func (b *Board) Verify() error {
	seen := make(map[PieceID]Coordinate, len(b.active))
	for sq := range b.Squares() {
		if sq.IsVacant() {
			if sq.Occupant() != NoPiece {
				return errors.Wrapf(errors.ErrInconsistentState, "%s vacant with occupant #%d", sq.Name, sq.Occupant())
			}
			continue
		}
		id := sq.Occupant()
		if !b.IsActive(id) {
			return errors.Wrapf(errors.ErrInconsistentState, "%s holds inactive piece #%d", sq.Name, id)
		}
		if prev, dup := seen[id]; dup {
			return errors.Wrapf(errors.ErrInconsistentState, "piece #%d on %s and %s", id, prev.Name(), sq.Name)
		}
		seen[id] = sq.Coord
	}

	if len(seen) != len(b.active) {
		return errors.Wrapf(errors.ErrInconsistentState, "%d occupied squares for %d active pieces", len(seen), len(b.active))
	}
	for id := range b.active {
		p := b.arena[id]
		c, ok := p.CurrentPosition()
		at, placed := seen[id]
		if !ok || !placed || at != c {
			return errors.Wrapf(errors.ErrInconsistentState, "%s position %v not on its square", p.Name, c)
		}
	}

	for _, p := range b.arena {
		t := b.teams[p.Team]
		if t == nil {
			return errors.Wrapf(errors.ErrInconsistentState, "%s has unknown team %d", p.Name, p.Team)
		}
		if !p.IsCaptured() {
			if !t.OnRoster(p.ID) {
				return errors.Wrapf(errors.ErrInconsistentState, "%s missing from %s roster", p.Name, t.Colour)
			}
			continue
		}
		if t.OnRoster(p.ID) {
			return errors.Wrapf(errors.ErrInconsistentState, "captured %s still on %s roster", p.Name, t.Colour)
		}
		captor := b.arena[p.Captor]
		if captor == nil || !b.teams[captor.Team].HoldsHostage(p.ID) {
			return errors.Wrapf(errors.ErrInconsistentState, "captured %s not held by its captor's team", p.Name)
		}
	}
	return nil
}
