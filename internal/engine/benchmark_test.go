package engine

import (
	"testing"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/testutil"
)

var benchPositions = map[string]func(testing.TB) *chess.Board{
	"Initial": initialPosition,
	"Endgame": func(tb testing.TB) *chess.Board {
		b, _, _ := testutil.NewEmptyBoard()
		testutil.Place(tb, b, testutil.WhiteID, chess.King, "f2")
		testutil.Place(tb, b, testutil.WhiteID, chess.Rook, "e1")
		testutil.Place(tb, b, testutil.BlackID, chess.King, "f7")
		return b
	},
	"Open": func(tb testing.TB) *chess.Board {
		b, _, _ := testutil.NewEmptyBoard()
		testutil.Place(tb, b, testutil.WhiteID, chess.King, "g1")
		testutil.Place(tb, b, testutil.WhiteID, chess.Queen, "d4")
		testutil.Place(tb, b, testutil.WhiteID, chess.Bishop, "c4")
		testutil.Place(tb, b, testutil.WhiteID, chess.Knight, "f3")
		testutil.Place(tb, b, testutil.BlackID, chess.King, "g8")
		testutil.Place(tb, b, testutil.BlackID, chess.Rook, "a8")
		testutil.Place(tb, b, testutil.BlackID, chess.Knight, "c6")
		testutil.Place(tb, b, testutil.BlackID, chess.Pawn, "e5")
		return b
	},
}

// initialPosition places both full teams on their home rows.
func initialPosition(tb testing.TB) *chess.Board {
	b, _, _ := testutil.NewEmptyBoard()
	back := []chess.Kind{chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King, chess.Bishop, chess.Knight, chess.Rook}
	for col, kind := range back {
		testutil.PlaceAt(tb, b, testutil.WhiteID, kind, 7, col)
		testutil.PlaceAt(tb, b, testutil.WhiteID, chess.Pawn, 6, col)
		testutil.PlaceAt(tb, b, testutil.BlackID, chess.Pawn, 1, col)
		testutil.PlaceAt(tb, b, testutil.BlackID, kind, 0, col)
	}
	return b
}

func BenchmarkCandidates(b *testing.B) {
	for name, build := range benchPositions {
		b.Run(name, func(b *testing.B) {
			board := build(b)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Candidates(board, testutil.WhiteID)
			}
		})
	}
}

func BenchmarkUpdateCheckFlags(b *testing.B) {
	for name, build := range benchPositions {
		b.Run(name, func(b *testing.B) {
			board := build(b)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				UpdateCheckFlags(board)
			}
		})
	}
}

// BenchmarkOccupationRollback runs a full apply and restore of one
// occupation; the board ends each iteration unchanged.
func BenchmarkOccupationRollback(b *testing.B) {
	board := initialPosition(b)
	knight := board.PieceAt(testutil.Square(b, board, "g1").Coord)
	dest := testutil.Square(b, board, "f3")
	hook := WithStepHook(failAt(StepPushPosition))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := NewOccupation(board, knight, dest, hook).Execute(); res.Outcome != OutcomeRolledBack {
			b.Fatalf("outcome = %s", res.Outcome)
		}
	}
}

func BenchmarkSnapshot(b *testing.B) {
	board := initialPosition(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.Snapshot()
	}
}
