package hashing

import (
	"testing"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/engine"
	"github.com/lgbarn/hostage-chess/internal/testutil"
)

// smallPosition places a few pieces for both teams.
func smallPosition(t testing.TB) *chess.Board {
	b, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b, testutil.WhiteID, chess.King, "e1")
	testutil.Place(t, b, testutil.WhiteID, chess.Pawn, "e2")
	testutil.Place(t, b, testutil.WhiteID, chess.Knight, "g1")
	testutil.Place(t, b, testutil.BlackID, chess.King, "e8")
	testutil.Place(t, b, testutil.BlackID, chess.Pawn, "d7")
	return b
}

func TestZobristHashConsistency(t *testing.T) {
	hash1 := GenerateZobristHash(smallPosition(t), testutil.WhiteID)
	hash2 := GenerateZobristHash(smallPosition(t), testutil.WhiteID)

	if hash1 != hash2 {
		t.Errorf("Identical boards produced different hashes: %x != %x", hash1, hash2)
	}
	if hash1 == 0 {
		t.Error("hash of a populated board should not be zero")
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	board1 := smallPosition(t)
	board2 := smallPosition(t)

	pawn := board2.PieceAt(chess.MustCoordinate(6, 4))
	res := engine.NewOccupation(board2, pawn, testutil.Square(t, board2, "e4")).Execute()
	if !res.OK() {
		t.Fatalf("move failed: %v", res)
	}

	if GenerateZobristHash(board1, testutil.WhiteID) == GenerateZobristHash(board2, testutil.WhiteID) {
		t.Error("Different positions produced the same hash")
	}
}

func TestZobristHashSideToMove(t *testing.T) {
	b := smallPosition(t)
	white := GenerateZobristHash(b, testutil.WhiteID)
	black := GenerateZobristHash(b, testutil.BlackID)
	if white == black {
		t.Error("side to move should change the hash")
	}
	if white^black != sideKey {
		t.Errorf("hashes differ by %x; want the side key", white^black)
	}
}

func TestZobristHashPromotion(t *testing.T) {
	b1, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b1, testutil.WhiteID, chess.Pawn, "a8")
	b2, _, _ := testutil.NewEmptyBoard()
	pawn := testutil.Place(t, b2, testutil.WhiteID, chess.Pawn, "a8")

	if !engine.NewPromotion(b2, pawn).Execute().OK() {
		t.Fatal("promotion failed")
	}
	if GenerateZobristHash(b1, testutil.WhiteID) == GenerateZobristHash(b2, testutil.WhiteID) {
		t.Error("promoted piece should hash as its new kind")
	}
}

func TestZobristHashNilBoard(t *testing.T) {
	if got := GenerateZobristHash(nil, testutil.WhiteID); got != 0 {
		t.Errorf("GenerateZobristHash(nil) = %x; want 0", got)
	}
	if got := WeakHash(nil); got != 0 {
		t.Errorf("WeakHash(nil) = %x; want 0", got)
	}
}

func TestWeakHashConsistency(t *testing.T) {
	hash1 := WeakHash(smallPosition(t))
	hash2 := WeakHash(smallPosition(t))

	if hash1 != hash2 {
		t.Errorf("Identical boards produced different weak hashes: %x != %x", hash1, hash2)
	}
}

func TestDuplicateDetector(t *testing.T) {
	tests := []struct {
		name       string
		exactMatch bool
		plies      []int
		wantDups   int
		wantUnique int
	}{
		{"same position and length", false, []int{10, 10}, 1, 1},
		{"same position, lengths ignored", false, []int{10, 12}, 1, 1},
		{"same position, lengths compared", true, []int{10, 12}, 0, 2},
		{"three copies", true, []int{4, 4, 4}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDuplicateDetector(tt.exactMatch, 0)
			b := smallPosition(t)
			for _, plies := range tt.plies {
				d.CheckAndAdd(NewSignature(b, testutil.WhiteID, plies))
			}
			testutil.AssertEqual(t, d.DuplicateCount(), tt.wantDups)
			testutil.AssertEqual(t, d.UniqueCount(), tt.wantUnique)
		})
	}
}

func TestDuplicateDetector_FirstIsNotDuplicate(t *testing.T) {
	d := NewDuplicateDetector(false, 0)
	sig := NewSignature(smallPosition(t), testutil.WhiteID, 1)

	if d.CheckAndAdd(sig) {
		t.Error("first game should not be a duplicate")
	}
	if !d.CheckAndAdd(sig) {
		t.Error("second identical game should be a duplicate")
	}
}

func TestDuplicateDetector_Capacity(t *testing.T) {
	d := NewDuplicateDetector(false, 2)
	for i := 0; i < 5; i++ {
		d.CheckAndAdd(GameSignature{Hash: uint64(i + 1), WeakHash: 1})
	}
	testutil.AssertTrue(t, d.IsFull())
	testutil.AssertEqual(t, d.UniqueCount(), 2)

	// Stored signatures are still matched when full.
	testutil.AssertTrue(t, d.CheckAndAdd(GameSignature{Hash: 1, WeakHash: 1}))
	testutil.AssertFalse(t, d.CheckAndAdd(GameSignature{Hash: 5, WeakHash: 1}))
}

func TestDuplicateDetector_Reset(t *testing.T) {
	d := NewDuplicateDetector(false, 1)
	sig := GameSignature{Hash: 7, WeakHash: 3}
	d.CheckAndAdd(sig)
	d.CheckAndAdd(sig)

	d.Reset()

	testutil.AssertEqual(t, d.DuplicateCount(), 0)
	testutil.AssertEqual(t, d.UniqueCount(), 0)
	testutil.AssertFalse(t, d.IsFull())
	testutil.AssertFalse(t, d.CheckAndAdd(sig))
}
