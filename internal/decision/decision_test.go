package decision

import (
	"testing"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/testutil"
)

func TestGreedy_PrefersValuableCapture(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	queen := testutil.Place(t, b, testutil.WhiteID, chess.Queen, "d1")
	testutil.Place(t, b, testutil.BlackID, chess.Pawn, "d4")
	rook := testutil.Place(t, b, testutil.BlackID, chess.Rook, "a4")
	testutil.Place(t, b, testutil.BlackID, chess.King, "h8")

	c, ok := NewGreedy(1).Choose(b, testutil.WhiteID)
	if !ok {
		t.Fatal("Choose found no move")
	}
	testutil.AssertEqual(t, c.Piece.ID, queen.ID)
	testutil.AssertEqual(t, c.Target.ID, rook.ID, "rook (5) beats pawn (1)")
	testutil.AssertEqual(t, Value(c), 5)
}

func TestGreedy_ApproachesKingWithoutCaptures(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b, testutil.WhiteID, chess.King, "a1")
	testutil.Place(t, b, testutil.BlackID, chess.King, "h8")

	c, ok := NewGreedy(7).Choose(b, testutil.WhiteID)
	if !ok {
		t.Fatal("Choose found no move")
	}
	testutil.AssertEqual(t, c.To.Name, "b2")
}

func TestGreedy_NeverCapturesKing(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b, testutil.WhiteID, chess.Rook, "e1")
	testutil.Place(t, b, testutil.BlackID, chess.King, "e8")

	for seed := int64(0); seed < 10; seed++ {
		c, ok := NewGreedy(seed).Choose(b, testutil.WhiteID)
		if !ok {
			t.Fatal("Choose found no move")
		}
		if c.IsAttack() {
			t.Fatalf("seed %d chose king capture %s", seed, c.To.Name)
		}
	}
}

func TestGreedy_Deterministic(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b, testutil.WhiteID, chess.Knight, "b1")
	testutil.Place(t, b, testutil.WhiteID, chess.Knight, "g1")

	first, _ := NewGreedy(99).Choose(b, testutil.WhiteID)
	second, _ := NewGreedy(99).Choose(b, testutil.WhiteID)
	testutil.AssertEqual(t, first.To.Name, second.To.Name)
	testutil.AssertEqual(t, first.Piece.Name, second.Piece.Name)
}

func TestChoosers_NoMoves(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	testutil.Place(t, b, testutil.BlackID, chess.King, "e8")

	if _, ok := NewGreedy(1).Choose(b, testutil.WhiteID); ok {
		t.Error("Greedy should report no move for an empty team")
	}
	if _, ok := NewRandom(1).Choose(b, testutil.WhiteID); ok {
		t.Error("Random should report no move for an empty team")
	}
}

func TestRandom_ChoosesCandidate(t *testing.T) {
	b, _, _ := testutil.NewEmptyBoard()
	pawn := testutil.Place(t, b, testutil.WhiteID, chess.Pawn, "a2")

	c, ok := NewRandom(3).Choose(b, testutil.WhiteID)
	if !ok {
		t.Fatal("Choose found no move")
	}
	testutil.AssertEqual(t, c.Piece.ID, pawn.ID)
	testutil.AssertTrue(t, c.To.Name == "a3" || c.To.Name == "a4", "pawn moves to %s", c.To.Name)
}
