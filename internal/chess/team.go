package chess

// Team holds roster and hostage membership by piece id. Pieces themselves
// live in the board arena.
type Team struct {
	ID        TeamID
	Letter    byte   // 'W' or 'B'
	Colour    string // "white" or "black"
	PlayOrder int    // 0 moves first
	BackRow   int
	PawnRow   int
	Home      Half
	Forward   int // Row delta of a pawn advance: -1 or +1

	roster   []PieceID
	hostages []PieceID
}

// NewTeam creates a team whose back row is backRow. The pawn row and advance
// direction follow from which edge the back row sits on.
func NewTeam(id TeamID, letter byte, colour string, playOrder, backRow int) *Team {
	t := &Team{
		ID:        id,
		Letter:    letter,
		Colour:    colour,
		PlayOrder: playOrder,
		BackRow:   backRow,
	}
	if backRow >= RowSize/2 {
		t.Home = South
		t.Forward = -1
	} else {
		t.Home = North
		t.Forward = 1
	}
	t.PawnRow = backRow + t.Forward
	return t
}

// Roster returns a copy of the active roster.
func (t *Team) Roster() []PieceID {
	return append([]PieceID(nil), t.roster...)
}

// Hostages returns a copy of the pieces this team has captured.
func (t *Team) Hostages() []PieceID {
	return append([]PieceID(nil), t.hostages...)
}

// OnRoster reports whether id is on the roster.
func (t *Team) OnRoster(id PieceID) bool {
	return indexOf(t.roster, id) >= 0
}

// HoldsHostage reports whether id is among this team's hostages.
func (t *Team) HoldsHostage(id PieceID) bool {
	return indexOf(t.hostages, id) >= 0
}

// Enlist appends id to the roster.
func (t *Team) Enlist(id PieceID) {
	t.roster = append(t.roster, id)
}

// Discharge removes id from the roster and returns its former index, or -1.
func (t *Team) Discharge(id PieceID) int {
	i := indexOf(t.roster, id)
	if i < 0 {
		return -1
	}
	t.roster = append(t.roster[:i], t.roster[i+1:]...)
	return i
}

// Reinstate puts id back on the roster at index i, clamped to the roster length.
func (t *Team) Reinstate(id PieceID, i int) {
	if i < 0 || i > len(t.roster) {
		i = len(t.roster)
	}
	t.roster = append(t.roster, NoPiece)
	copy(t.roster[i+1:], t.roster[i:])
	t.roster[i] = id
}

// TakeHostage appends id to the hostage list.
func (t *Team) TakeHostage(id PieceID) {
	t.hostages = append(t.hostages, id)
}

// ReleaseHostage removes id from the hostage list. It reports whether id was
// present.
func (t *Team) ReleaseHostage(id PieceID) bool {
	i := indexOf(t.hostages, id)
	if i < 0 {
		return false
	}
	t.hostages = append(t.hostages[:i], t.hostages[i+1:]...)
	return true
}

// EnemyBackRow is the row a promotable piece of this team must reach.
func (t *Team) EnemyBackRow() int {
	if t.Forward < 0 {
		return 0
	}
	return RowSize - 1
}

func indexOf(ids []PieceID, id PieceID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
