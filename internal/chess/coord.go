package chess

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Coordinate is an immutable on-board (row, column) pair. Row 0 is the
// northern edge, printed as rank RowSize.
type Coordinate struct {
	Row    int
	Column int
}

var coordinateChecks = []Check[Coordinate]{
	InRange("row", 0, RowSize, func(c Coordinate) int { return c.Row }),
	InRange("column", 0, ColumnSize, func(c Coordinate) int { return c.Column }),
}

// NewCoordinate builds a Coordinate, failing with ErrOutOfBounds when either
// component is outside the board.
func NewCoordinate(row, column int) (Coordinate, error) {
	return Validate("coordinate", Coordinate{Row: row, Column: column}, coordinateChecks...)
}

// MustCoordinate is NewCoordinate for compile-time constants; it panics on
// out-of-range input.
func MustCoordinate(row, column int) Coordinate {
	c, err := NewCoordinate(row, column)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCoordinate converts an algebraic name ("e4") to a Coordinate.
func ParseCoordinate(name string) (Coordinate, error) {
	if len(name) != 2 {
		return Coordinate{}, errors.Wrapf(errors.ErrOutOfBounds, "square name %q", name)
	}
	col := int(name[0]) - ColBase
	rank := int(name[1] - '0')
	if rank < 1 || rank > RowSize {
		return Coordinate{}, errors.Wrapf(errors.ErrOutOfBounds, "square name %q", name)
	}
	c, err := NewCoordinate(RowSize-rank, col)
	if err != nil {
		return Coordinate{}, errors.Wrapf(err, "square name %q", name)
	}
	return c, nil
}

// Name returns the algebraic name of the coordinate, e.g. "a8" for (0,0).
func (c Coordinate) Name() string {
	return fmt.Sprintf("%c%d", rune(ColBase+c.Column), RowSize-c.Row)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// AddOffset returns c moved by o. It never clamps: leaving the board fails
// with ErrOutOfBounds.
func (c Coordinate) AddOffset(o Offset) (Coordinate, error) {
	return NewCoordinate(c.Row+o.DeltaRow, c.Column+o.DeltaColumn)
}

// Quadrant reports which quarter of the board c lies in.
func (c Coordinate) Quadrant() Quadrant {
	q := Quadrant{Half: North, Flank: QueenSide}
	if c.Row >= RowSize/2 {
		q.Half = South
	}
	if c.Column >= ColumnSize/2 {
		q.Flank = KingSide
	}
	return q
}

// Distance returns the squared Euclidean distance between p and q. It is
// only meaningful for ordering.
func Distance(p, q Coordinate) int {
	dr := p.Row - q.Row
	dc := p.Column - q.Column
	return dr*dr + dc*dc
}

// Offset is an immutable directional delta.
type Offset struct {
	DeltaRow    int
	DeltaColumn int
}

// Compass directions as unit offsets.
var (
	OffsetN  = Offset{DeltaRow: -1}
	OffsetS  = Offset{DeltaRow: 1}
	OffsetE  = Offset{DeltaColumn: 1}
	OffsetW  = Offset{DeltaColumn: -1}
	OffsetNE = Offset{DeltaRow: -1, DeltaColumn: 1}
	OffsetNW = Offset{DeltaRow: -1, DeltaColumn: -1}
	OffsetSE = Offset{DeltaRow: 1, DeltaColumn: 1}
	OffsetSW = Offset{DeltaRow: 1, DeltaColumn: -1}
)

var offsetChecks = []Check[Offset]{
	Rule("delta-row", errors.ErrInvalidOffset, func(o Offset) bool { return abs(o.DeltaRow) <= MaxStep }),
	Rule("delta-column", errors.ErrInvalidOffset, func(o Offset) bool { return abs(o.DeltaColumn) <= MaxStep }),
	Rule("non-zero", errors.ErrInvalidOffset, func(o Offset) bool { return o.DeltaRow != 0 || o.DeltaColumn != 0 }),
}

// NewOffset builds an Offset whose components lie within MaxStep and are not
// both zero.
func NewOffset(deltaRow, deltaColumn int) (Offset, error) {
	return Validate("offset", Offset{DeltaRow: deltaRow, DeltaColumn: deltaColumn}, offsetChecks...)
}

// Scale multiplies o by k. It fails with ErrInvalidScalar when k <= 0 or
// when either resulting delta would reach the board dimension.
func (o Offset) Scale(k int) (Offset, error) {
	if k <= 0 {
		return Offset{}, errors.Wrapf(errors.ErrInvalidScalar, "scalar %d", k)
	}
	dr, dc := o.DeltaRow*k, o.DeltaColumn*k
	if abs(dr) >= RowSize || abs(dc) >= ColumnSize {
		return Offset{}, errors.Wrapf(errors.ErrInvalidScalar, "scalar %d overflows %v", k, o)
	}
	return Offset{DeltaRow: dr, DeltaColumn: dc}, nil
}

// Negate returns the opposite offset.
func (o Offset) Negate() Offset {
	return Offset{DeltaRow: -o.DeltaRow, DeltaColumn: -o.DeltaColumn}
}

// Unit returns the sign vector of o.
func (o Offset) Unit() Offset {
	return Offset{DeltaRow: sign(o.DeltaRow), DeltaColumn: sign(o.DeltaColumn)}
}

// String implements fmt.Stringer.
func (o Offset) String() string {
	return fmt.Sprintf("[%+d,%+d]", o.DeltaRow, o.DeltaColumn)
}

// OffsetBetween returns the delta from p to q without step-range validation.
func OffsetBetween(p, q Coordinate) Offset {
	return Offset{DeltaRow: q.Row - p.Row, DeltaColumn: q.Column - p.Column}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
