// Package hashing provides position hashing and duplicate detection for
// simulated games.
package hashing

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
)

// DuplicateDetector tracks seen final positions for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal ply counts
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity limits stored signatures; 0 means unlimited
	maxCapacity int
	stored      int
}

// GameSignature stores identifying information about a finished game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Plies is the number of half-moves played
	Plies int
	// WeakHash is a fast checksum for a second comparison
	WeakHash uint32
}

// NewSignature builds the signature of board with toMove to play after plies
// half-moves.
func NewSignature(board *chess.Board, toMove chess.TeamID, plies int) GameSignature {
	return GameSignature{
		Hash:     GenerateZobristHash(board, toMove),
		Plies:    plies,
		WeakHash: WeakHash(board),
	}
}

// NewDuplicateDetector creates a new duplicate detector. maxCapacity of 0
// means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if sig was seen before and records it otherwise.
// Returns true if the game is a duplicate. Once the detector is full new
// signatures are still checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) bool {
	if existing, ok := d.hashTable[sig.Hash]; ok {
		for _, existingSig := range existing {
			if d.signaturesMatch(sig, existingSig) {
				d.duplicateCount++
				return true
			}
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.stored++
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.stored
}

// IsFull reports whether the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.stored >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.stored = 0
}
