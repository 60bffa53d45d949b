package chess

import "sync/atomic"

// IDSource supplies fresh identifiers. Each call returns an int never
// returned before by the same source for the same category.
type IDSource interface {
	PieceID() int
	SquareID() int
	TransactionID() int
}

// Sequence is an IDSource backed by per-category counters starting at 1.
// Each board or game owns its own Sequence.
type Sequence struct {
	piece       atomic.Int64
	square      atomic.Int64
	transaction atomic.Int64
}

// NewSequence creates a fresh Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// PieceID returns the next piece id.
func (s *Sequence) PieceID() int {
	return int(s.piece.Add(1))
}

// SquareID returns the next square id.
func (s *Sequence) SquareID() int {
	return int(s.square.Add(1))
}

// TransactionID returns the next transaction id.
func (s *Sequence) TransactionID() int {
	return int(s.transaction.Add(1))
}
