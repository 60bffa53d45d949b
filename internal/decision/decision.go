// Package decision chooses moves for simulated players using only the
// read-only engine queries.
package decision

import (
	"math/rand"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/engine"
)

// Greedy takes the most valuable capture available. Ties go to the move that
// lands closest to the enemy king, then to a seeded random pick.
type Greedy struct {
	rng *rand.Rand
}

// NewGreedy returns a Greedy chooser whose tie-breaks are reproducible for a
// given seed.
func NewGreedy(seed int64) *Greedy {
	return &Greedy{rng: rand.New(rand.NewSource(seed))}
}

// Choose implements game.Chooser.
func (g *Greedy) Choose(b *chess.Board, team chess.TeamID) (engine.Candidate, bool) {
	cands := engine.Candidates(b, team)
	if len(cands) == 0 {
		return engine.Candidate{}, false
	}

	var enemyKing *chess.Coordinate
	if t := b.Opponent(team); t != nil {
		if k := b.King(t.ID); k != nil {
			if c, ok := k.CurrentPosition(); ok {
				enemyKing = &c
			}
		}
	}

	var best []engine.Candidate
	bestValue, bestDist := -1, 0
	for _, c := range cands {
		value := Value(c)
		dist := 0
		if enemyKing != nil {
			dist = chess.Distance(c.To.Coord, *enemyKing)
		}
		switch {
		case value > bestValue, value == bestValue && dist < bestDist:
			best = append(best[:0], c)
			bestValue, bestDist = value, dist
		case value == bestValue && dist == bestDist:
			best = append(best, c)
		}
	}
	return best[g.rng.Intn(len(best))], true
}

// Value is the capture value a candidate gains, zero for an occupation.
func Value(c engine.Candidate) int {
	if c.Target == nil {
		return 0
	}
	return c.Target.Rank().CaptureValue
}

// Random picks uniformly among all candidates.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a seeded Random chooser.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Choose implements game.Chooser.
func (r *Random) Choose(b *chess.Board, team chess.TeamID) (engine.Candidate, bool) {
	cands := engine.Candidates(b, team)
	if len(cands) == 0 {
		return engine.Candidate{}, false
	}
	return cands[r.rng.Intn(len(cands))], true
}
