// Package chess provides the board model: coordinates, squares, pieces,
// ranks and teams.
package chess

// Constants for board dimensions.
const (
	RowSize    = 8
	ColumnSize = 8

	// MaxStep bounds each component of an Offset (knight range).
	MaxStep = 2

	ColBase = 'a'
)

// PieceID identifies a piece within its board's arena.
type PieceID int

// NoPiece is the zero PieceID; id sources never hand it out.
const NoPiece PieceID = 0

// TeamID identifies a team on a board.
type TeamID int

// NoTeam is the zero TeamID.
const NoTeam TeamID = 0

// Kind is the rank tag of a piece.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter maps 'P', 'N', 'B', 'R', 'Q', 'K' (either case) to a Kind.
func KindFromLetter(c byte) Kind {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for k := Pawn; k < NumKinds; k++ {
		if k.Letter() == c {
			return k
		}
	}
	return NoKind
}

// SquareStatus describes a square relative to a given piece.
type SquareStatus int

const (
	Vacant         SquareStatus = iota
	OccupiedBySelf              // Held by the piece asking
	HasEnemy                    // Held by a piece of another team
	Blocked                     // Held by another piece of the same team
)

// String returns the string representation of a square status.
func (s SquareStatus) String() string {
	switch s {
	case Vacant:
		return "Vacant"
	case OccupiedBySelf:
		return "OccupiedBySelf"
	case HasEnemy:
		return "HasEnemy"
	case Blocked:
		return "Blocked"
	}
	return "Unknown"
}

// PieceStatus is the lifecycle state of a piece.
type PieceStatus int

const (
	Free PieceStatus = iota
	Prisoner
	InCheck    // King only
	Checkmated // King only
)

// String returns the string representation of a piece status.
func (s PieceStatus) String() string {
	switch s {
	case Free:
		return "Free"
	case Prisoner:
		return "Prisoner"
	case InCheck:
		return "InCheck"
	case Checkmated:
		return "Checkmated"
	}
	return "Unknown"
}

// Half is one side of the board along the row axis.
type Half int

const (
	North Half = iota // Rows 0..RowSize/2-1
	South             // Rows RowSize/2..RowSize-1
)

// Flank is one side of the board along the column axis.
type Flank int

const (
	QueenSide Flank = iota // Columns 0..ColumnSize/2-1
	KingSide               // Columns ColumnSize/2..ColumnSize-1
)

// Quadrant is a quarter of the board.
type Quadrant struct {
	Half  Half
	Flank Flank
}

// String returns a compass label such as "NW" or "SE".
func (q Quadrant) String() string {
	s := "N"
	if q.Half == South {
		s = "S"
	}
	if q.Flank == QueenSide {
		return s + "W"
	}
	return s + "E"
}
