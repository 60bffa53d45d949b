package hashing

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
)

const (
	numSquares = chess.RowSize * chess.ColumnSize
	numSides   = 2
)

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed uint64 = 0x9E3779B97F4A7C15

var (
	pieceKeys [chess.NumKinds][numSides][numSquares]uint64
	sideKey   uint64
)

func init() {
	state := zobristSeed
	for k := range pieceKeys {
		for s := range pieceKeys[k] {
			for sq := range pieceKeys[k][s] {
				pieceKeys[k][s][sq] = splitmix64(&state)
			}
		}
	}
	sideKey = splitmix64(&state)
}

// splitmix64 advances state and returns the next pseudo-random value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// side maps a team to 0 for the team that moves first and 1 otherwise.
func side(b *chess.Board, team chess.TeamID) int {
	if t := b.Team(team); t != nil && t.PlayOrder > 0 {
		return 1
	}
	return 0
}

// GenerateZobristHash computes the Zobrist hash of the active pieces on b
// with toMove to play. Promoted pieces hash as their current kind.
func GenerateZobristHash(b *chess.Board, toMove chess.TeamID) uint64 {
	if b == nil {
		return 0
	}
	var hash uint64
	for _, p := range b.Pieces() {
		c, ok := p.CurrentPosition()
		if !ok {
			continue
		}
		hash ^= pieceKeys[p.Kind][side(b, p.Team)][c.Row*chess.ColumnSize+c.Column]
	}
	if side(b, toMove) == 1 {
		hash ^= sideKey
	}
	return hash
}

// WeakHash is a cheap order-independent checksum of the material on b,
// used as a second opinion when Zobrist hashes collide.
func WeakHash(b *chess.Board) uint32 {
	if b == nil {
		return 0
	}
	var sum uint32
	for _, p := range b.Pieces() {
		c, ok := p.CurrentPosition()
		if !ok {
			continue
		}
		weight := uint32(p.Kind)*uint32(numSides) + uint32(side(b, p.Team)) + 1
		sum += weight * uint32(c.Row*chess.ColumnSize+c.Column+1)
	}
	return sum
}
