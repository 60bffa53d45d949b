// Package engine decides move legality and applies moves as transactions.
package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

// walk is the movement rule of one rank.
type walk interface {
	// reachable lists every square the piece could move to from origin.
	reachable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate) []*chess.Square
	// walkable reports whether dest is one of those squares.
	walkable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool
	// covers reports whether the piece attacks dest regardless of who stands on it.
	covers(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool
}

var (
	knightOffsets = mustOffsets(
		[2]int{1, 2}, [2]int{1, -2}, [2]int{-1, 2}, [2]int{-1, -2},
		[2]int{2, 1}, [2]int{2, -1}, [2]int{-2, 1}, [2]int{-2, -1},
	)
	kingOffsets = []chess.Offset{
		chess.OffsetN, chess.OffsetNE, chess.OffsetE, chess.OffsetSE,
		chess.OffsetS, chess.OffsetSW, chess.OffsetW, chess.OffsetNW,
	}
	diagonals  = []chess.Offset{chess.OffsetNE, chess.OffsetSE, chess.OffsetSW, chess.OffsetNW}
	orthogonal = []chess.Offset{chess.OffsetN, chess.OffsetE, chess.OffsetS, chess.OffsetW}
)

// walks dispatches movement by rank.
var walks = map[chess.Kind]walk{
	chess.Pawn:   pawnWalk{},
	chess.Knight: stepWalk{offsets: knightOffsets},
	chess.Bishop: rayWalk{dirs: diagonals},
	chess.Rook:   rayWalk{dirs: orthogonal},
	chess.Queen:  rayWalk{dirs: append(append([]chess.Offset{}, diagonals...), orthogonal...)},
	chess.King:   stepWalk{offsets: kingOffsets},
}

func mustOffsets(pairs ...[2]int) []chess.Offset {
	out := make([]chess.Offset, 0, len(pairs))
	for _, p := range pairs {
		o, err := chess.NewOffset(p[0], p[1])
		if err != nil {
			panic(err)
		}
		out = append(out, o)
	}
	return out
}

// resolve looks up everything a walk needs. A piece that is not in play has
// no moves; that is reported as ok == false rather than an error.
func resolve(b *chess.Board, p *chess.Piece) (walk, *chess.Team, chess.Coordinate, bool, error) {
	if b == nil {
		return nil, nil, chess.Coordinate{}, false, errors.Wrap(errors.ErrNilInput, "board")
	}
	if p == nil {
		return nil, nil, chess.Coordinate{}, false, errors.Wrap(errors.ErrNilInput, "piece")
	}
	w, ok := walks[p.Kind]
	if !ok {
		return nil, nil, chess.Coordinate{}, false, errors.Wrapf(errors.ErrNilInput, "no walk for %v", p.Kind)
	}
	t := b.Team(p.Team)
	if t == nil {
		return nil, nil, chess.Coordinate{}, false, errors.Wrapf(errors.ErrInconsistentState, "%s has unknown team %d", p.Name, p.Team)
	}
	origin, placed := p.CurrentPosition()
	if !placed || !b.IsActive(p.ID) {
		return w, t, origin, false, nil
	}
	return w, t, origin, true, nil
}

// IsWalkable reports whether p's rank allows it to move to dest. It ignores
// whose turn it is and whether a king is left in check. Errors are returned
// only for missing input; "not walkable" is false, nil.
func IsWalkable(b *chess.Board, p *chess.Piece, dest *chess.Square) (bool, error) {
	w, t, origin, ok, err := resolve(b, p)
	if err != nil {
		return false, err
	}
	if dest == nil {
		return false, errors.Wrap(errors.ErrNilInput, "destination")
	}
	if !ok {
		return false, nil
	}
	return w.walkable(b, p, t, origin, dest), nil
}

// ReachableSquares lists every square p's rank could move it to, ordered by
// direction of generation.
func ReachableSquares(b *chess.Board, p *chess.Piece) ([]*chess.Square, error) {
	w, t, origin, ok, err := resolve(b, p)
	if err != nil || !ok {
		return nil, err
	}
	return w.reachable(b, p, t, origin), nil
}

// Attacks reports whether p bears on dest: the square would be walkable if an
// enemy stood on it.
func Attacks(b *chess.Board, p *chess.Piece, dest *chess.Square) (bool, error) {
	w, t, origin, ok, err := resolve(b, p)
	if err != nil {
		return false, err
	}
	if dest == nil {
		return false, errors.Wrap(errors.ErrNilInput, "destination")
	}
	if !ok {
		return false, nil
	}
	return w.covers(b, p, t, origin, dest), nil
}

// open reports whether p may end its move on sq: vacant or enemy-held.
func open(sq *chess.Square, p *chess.Piece) bool {
	switch sq.StatusFor(p) {
	case chess.Vacant, chess.HasEnemy:
		return true
	}
	return false
}

func contains(squares []*chess.Square, sq *chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// stepWalk moves by exactly one of a fixed set of offsets (knight, king).
type stepWalk struct {
	offsets []chess.Offset
}

func (w stepWalk) targets(b *chess.Board, origin chess.Coordinate) []*chess.Square {
	out := make([]*chess.Square, 0, len(w.offsets))
	for _, o := range w.offsets {
		c, err := origin.AddOffset(o)
		if err != nil {
			continue
		}
		out = append(out, b.SquareAt(c))
	}
	return out
}

func (w stepWalk) reachable(b *chess.Board, p *chess.Piece, _ *chess.Team, origin chess.Coordinate) []*chess.Square {
	var out []*chess.Square
	for _, sq := range w.targets(b, origin) {
		if open(sq, p) {
			out = append(out, sq)
		}
	}
	return out
}

func (w stepWalk) walkable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	return open(dest, p) && w.covers(b, p, t, origin, dest)
}

func (w stepWalk) covers(_ *chess.Board, _ *chess.Piece, _ *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	delta := chess.OffsetBetween(origin, dest.Coord)
	for _, o := range w.offsets {
		if o == delta {
			return true
		}
	}
	return false
}

// rayWalk slides along rays until blocked (bishop, rook, queen).
type rayWalk struct {
	dirs []chess.Offset
}

func (w rayWalk) reachable(b *chess.Board, p *chess.Piece, _ *chess.Team, origin chess.Coordinate) []*chess.Square {
	var out []*chess.Square
	for _, d := range w.dirs {
		for sq := range b.Ray(origin, d) {
			if open(sq, p) {
				out = append(out, sq)
			}
		}
	}
	return out
}

func (w rayWalk) walkable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	return open(dest, p) && w.covers(b, p, t, origin, dest)
}

func (w rayWalk) covers(b *chess.Board, _ *chess.Piece, _ *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	dir := chess.OffsetBetween(origin, dest.Coord).Unit()
	aligned := false
	for _, d := range w.dirs {
		if d == dir {
			aligned = true
			break
		}
	}
	if !aligned {
		return false
	}
	for sq := range b.Ray(origin, dir) {
		if sq == dest {
			return true
		}
	}
	return false
}

// pawnWalk advances straight ahead and attacks diagonally forward.
type pawnWalk struct{}

func (w pawnWalk) reachable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate) []*chess.Square {
	var out []*chess.Square
	for _, o := range []chess.Offset{
		{DeltaRow: t.Forward},
		{DeltaRow: 2 * t.Forward},
		{DeltaRow: t.Forward, DeltaColumn: -1},
		{DeltaRow: t.Forward, DeltaColumn: 1},
	} {
		c, err := origin.AddOffset(o)
		if err != nil {
			continue
		}
		if sq := b.SquareAt(c); w.walkable(b, p, t, origin, sq) {
			out = append(out, sq)
		}
	}
	return out
}

func (w pawnWalk) walkable(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	return canAdvance(b, p, t, origin, dest) || canAttack(p, t, origin, dest)
}

func (w pawnWalk) covers(_ *chess.Board, _ *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	delta := chess.OffsetBetween(origin, dest.Coord)
	return delta.DeltaRow == t.Forward && (delta.DeltaColumn == 1 || delta.DeltaColumn == -1)
}

// canAdvance: straight ahead by one square, or two from the starting square,
// with every square on the way vacant.
func canAdvance(b *chess.Board, p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	delta := chess.OffsetBetween(origin, dest.Coord)
	if delta.DeltaColumn != 0 {
		return false
	}
	steps := delta.DeltaRow * t.Forward
	limit := 1
	if !p.HasMoved() {
		limit = 2
	}
	if steps < 1 || steps > limit {
		return false
	}
	for i := 1; i <= steps; i++ {
		c, err := origin.AddOffset(chess.Offset{DeltaRow: i * t.Forward})
		if err != nil || !b.SquareAt(c).IsVacant() {
			return false
		}
	}
	return true
}

// canAttack: one square diagonally forward onto an enemy.
func canAttack(p *chess.Piece, t *chess.Team, origin chess.Coordinate, dest *chess.Square) bool {
	delta := chess.OffsetBetween(origin, dest.Coord)
	if delta.DeltaRow != t.Forward || (delta.DeltaColumn != 1 && delta.DeltaColumn != -1) {
		return false
	}
	return dest.StatusFor(p) == chess.HasEnemy
}
