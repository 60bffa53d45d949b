package chess

import "sort"

// Snapshot is a value copy of everything a transaction may mutate. Two
// snapshots compare equal with cmp.Diff or reflect.DeepEqual exactly when
// the board state is identical.
type Snapshot struct {
	Occupants map[string]PieceID
	Active    []PieceID
	Pieces    map[PieceID]PieceState
	Teams     map[TeamID]TeamState
}

// PieceState is the mutable part of a Piece.
type PieceState struct {
	Kind         Kind
	PreviousKind Kind
	Captor       PieceID
	Status       PieceStatus
	Positions    []Coordinate
}

// TeamState is the mutable part of a Team.
type TeamState struct {
	Roster   []PieceID
	Hostages []PieceID
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Occupants: make(map[string]PieceID),
		Active:    make([]PieceID, 0, len(b.active)),
		Pieces:    make(map[PieceID]PieceState, len(b.arena)),
		Teams:     make(map[TeamID]TeamState, len(b.teams)),
	}
	for sq := range b.Squares() {
		if !sq.IsVacant() {
			s.Occupants[sq.Name] = sq.Occupant()
		}
	}
	for id := range b.active {
		s.Active = append(s.Active, id)
	}
	sort.Slice(s.Active, func(i, j int) bool { return s.Active[i] < s.Active[j] })
	for id, p := range b.arena {
		s.Pieces[id] = PieceState{
			Kind:         p.Kind,
			PreviousKind: p.PreviousKind,
			Captor:       p.Captor,
			Status:       p.Status,
			Positions:    p.positions.Coordinates(),
		}
	}
	for id, t := range b.teams {
		s.Teams[id] = TeamState{Roster: t.Roster(), Hostages: t.Hostages()}
	}
	return s
}
