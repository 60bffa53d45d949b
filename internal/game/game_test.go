package game

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/decision"
	"github.com/lgbarn/hostage-chess/internal/engine"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/testutil"
)

func newGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := New(nil, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func mustMove(t *testing.T, g *Game, from, to string) Result {
	t.Helper()
	res := g.Move(from, to)
	if !res.OK() {
		t.Fatalf("Move(%s, %s) = %v", from, to, res)
	}
	return res
}

func TestNew_StandardSetup(t *testing.T) {
	g := newGame(t)
	b := g.Board()

	if _, err := uuid.Parse(g.ID); err != nil {
		t.Errorf("game id %q is not a uuid: %v", g.ID, err)
	}
	testutil.AssertEqual(t, len(b.Pieces()), 32)
	testutil.AssertEqual(t, len(b.Team(White).Roster()), 16)
	testutil.AssertEqual(t, len(b.Team(Black).Roster()), 16)
	testutil.AssertEqual(t, g.Turn().ID, White)
	testutil.AssertEqual(t, g.Status(), Playing)
	testutil.AssertEqual(t, len(g.History()), 1)
	testutil.AssertNoError(t, b.Verify())

	tests := []struct {
		square string
		name   string
	}{
		{"a1", "WR1"}, {"b1", "WN1"}, {"c1", "WB1"}, {"d1", "WQ1"}, {"e1", "WK1"},
		{"h1", "WR2"}, {"a2", "WP1"}, {"h2", "WP8"},
		{"a8", "BR1"}, {"d8", "BQ1"}, {"e8", "BK1"}, {"d7", "BP4"},
	}
	for _, tt := range tests {
		p := b.PieceAt(testutil.Square(t, b, tt.square).Coord)
		if p == nil || p.Name != tt.name {
			t.Errorf("%s holds %v; want %s", tt.square, p, tt.name)
		}
	}
}

func TestSetupTeam_QuotaEnforced(t *testing.T) {
	g := newGame(t)
	err := SetupTeam(g.Board(), g.Board().Team(White))
	testutil.AssertErrorIs(t, err, errors.ErrQuotaExceeded)
	testutil.AssertErrorIs(t, SetupTeam(nil, nil), errors.ErrNilInput)
}

func TestMove_TurnOrder(t *testing.T) {
	g := newGame(t)

	res := mustMove(t, g, "e2", "e4")
	testutil.AssertEqual(t, res.Kind, engine.OccupationTx)
	testutil.AssertEqual(t, g.Turn().ID, Black)
	testutil.AssertEqual(t, g.Plies(), 1)
	testutil.AssertEqual(t, len(g.History()), 2)

	res = g.Move("d2", "d4")
	testutil.AssertErrorIs(t, res.Err, errors.ErrNotYourTurn)
	testutil.AssertEqual(t, res.Outcome, engine.OutcomeFailed)
	testutil.AssertEqual(t, g.Turn().ID, Black)

	mustMove(t, g, "d7", "d5")
	testutil.AssertEqual(t, g.Turn().ID, White)

	moves := g.Moves()
	testutil.AssertEqual(t, len(moves), 2)
	testutil.AssertEqual(t, moves[0].Piece, "WP5")
	testutil.AssertEqual(t, moves[0].From.Name(), "e2")
	testutil.AssertEqual(t, moves[0].To.Name(), "e4")
	testutil.AssertEqual(t, moves[1].Team, Black)
	testutil.AssertEqual(t, moves[1].Ply, 2)
}

func TestMove_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"empty origin", "e4", "e5", errors.ErrNotOccupied},
		{"bad square", "z9", "e4", errors.ErrOutOfBounds},
		{"bad destination", "e2", "e9", errors.ErrOutOfBounds},
		{"unreachable", "e2", "e5", errors.ErrNotReachable},
		{"friendly target", "a1", "a2", errors.ErrFriendlyTarget},
		{"opponent piece", "e7", "e5", errors.ErrNotYourTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			before := g.Board().Snapshot()

			res := g.Move(tt.from, tt.to)

			testutil.AssertErrorIs(t, res.Err, tt.want)
			testutil.AssertEqual(t, g.Rejected(), 1)
			testutil.AssertEqual(t, g.Plies(), 0)
			testutil.AssertEqual(t, g.Board().Snapshot(), before)
		})
	}
}

func TestMove_Capture(t *testing.T) {
	g := newGame(t)
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "d7", "d5")

	res := mustMove(t, g, "e4", "d5")

	b := g.Board()
	captured := b.Piece(res.Captured)
	testutil.AssertEqual(t, res.Kind, engine.AttackTx)
	testutil.AssertEqual(t, captured.Name, "BP4")
	testutil.AssertEqual(t, g.Moves()[2].Captured, "BP4")
	testutil.AssertEqual(t, b.Team(White).Hostages(), []chess.PieceID{captured.ID})
	testutil.AssertFalse(t, b.Team(Black).OnRoster(captured.ID))
	testutil.AssertEqual(t, len(b.Pieces()), 31)
	testutil.AssertNoError(t, b.Verify())
}

type placement struct {
	team chess.TeamID
	kind chess.Kind
}

// sparseBoard builds a board with both standard teams and only the given
// pieces.
func sparseBoard(t *testing.T, pieces map[string]placement) *chess.Board {
	t.Helper()
	b := chess.NewBoard(nil)
	b.AddTeam(chess.NewTeam(White, 'W', "white", 0, chess.RowSize-1))
	b.AddTeam(chess.NewTeam(Black, 'B', "black", 1, 0))
	for square, p := range pieces {
		testutil.Place(t, b, p.team, p.kind, square)
	}
	return b
}

func TestMove_Promotion(t *testing.T) {
	b := sparseBoard(t, map[string]placement{
		"a7": {White, chess.Pawn},
		"e1": {White, chess.King},
		"h6": {Black, chess.King},
	})
	g := NewFromBoard(b)
	pawn := b.PieceAt(testutil.Square(t, b, "a7").Coord)

	res := mustMove(t, g, "a7", "a8")

	if res.Promotion == nil || !res.Promotion.OK() {
		t.Fatalf("Promotion = %v", res.Promotion)
	}
	testutil.AssertEqual(t, pawn.Kind, chess.Queen)
	testutil.AssertEqual(t, pawn.PreviousKind, chess.Pawn)
	testutil.AssertTrue(t, g.Moves()[0].Promoted)
}

func TestMove_Checkmate(t *testing.T) {
	b := sparseBoard(t, map[string]placement{
		"a1": {White, chess.King},
		"g1": {White, chess.Rook},
		"a2": {White, chess.Rook},
		"h8": {Black, chess.King},
	})
	g := NewFromBoard(b)

	res := mustMove(t, g, "a2", "h2")

	testutil.AssertEqual(t, res.Status, Checkmate)
	testutil.AssertEqual(t, g.Winner(), White)
	testutil.AssertTrue(t, g.Over())
	testutil.AssertTrue(t, g.Moves()[0].Check)
	testutil.AssertEqual(t, b.King(Black).Status, chess.Checkmated)

	testutil.AssertErrorIs(t, g.Move("a1", "b1").Err, errors.ErrGameOver)
}

func TestMove_NoMoves(t *testing.T) {
	b := sparseBoard(t, map[string]placement{
		"e1": {White, chess.King},
		"a6": {White, chess.Pawn},
		"a7": {Black, chess.Pawn},
	})
	g := NewFromBoard(b)

	res := mustMove(t, g, "e1", "e2")

	testutil.AssertEqual(t, res.Status, NoMoves)
	testutil.AssertEqual(t, g.Winner(), chess.NoTeam)
}

func TestMove_PlyLimit(t *testing.T) {
	g := newGame(t, WithMaxPlies(2))
	mustMove(t, g, "g1", "f3")
	testutil.AssertEqual(t, g.Status(), Playing)
	res := mustMove(t, g, "g8", "f6")
	testutil.AssertEqual(t, res.Status, PlyLimit)
}

func TestMove_RollbackVerified(t *testing.T) {
	hook := func(e engine.Event) error {
		if e.Phase == engine.PhaseApply && e.Step == engine.StepVacateOrigin {
			return fmt.Errorf("injected")
		}
		return nil
	}
	g := newGame(t, WithStepHook(hook), WithRollbackVerification(true))
	before := g.Board().Snapshot()

	res := g.Move("e2", "e4")

	testutil.AssertEqual(t, res.Outcome, engine.OutcomeRolledBack)
	testutil.AssertNoError(t, res.Integrity)
	testutil.AssertErrorIs(t, res.Err, errors.ErrRolledBack)
	testutil.AssertEqual(t, g.RolledBack(), 1)
	testutil.AssertEqual(t, g.Turn().ID, White)
	testutil.AssertEqual(t, g.Board().Snapshot(), before)
}

func TestMove_RollbackVerificationCatchesDrift(t *testing.T) {
	var g *Game
	hook := func(e engine.Event) error {
		if e.Phase == engine.PhaseApply && e.Step == engine.StepPushPosition {
			// Corrupt state the rollback does not own, then fail.
			g.Board().King(Black).Status = chess.InCheck
			return fmt.Errorf("injected")
		}
		return nil
	}
	g = newGame(t, WithStepHook(hook), WithRollbackVerification(true))

	res := g.Move("e2", "e4")

	testutil.AssertEqual(t, res.Outcome, engine.OutcomeRolledBack)
	testutil.AssertErrorIs(t, res.Integrity, errors.ErrInconsistentState)
	testutil.AssertContains(t, res.Integrity.Error(), "rollback changed the board")
}

func TestMove_Trace(t *testing.T) {
	var log bytes.Buffer
	g := newGame(t, WithLog(&log, 2), WithGameID("trace-game-1"))

	mustMove(t, g, "e2", "e4")

	out := log.String()
	testutil.AssertContains(t, out, "game trace-ga: ")
	testutil.AssertContains(t, out, "occupying destination")
	testutil.AssertContains(t, out, "pushing position")

	var quiet bytes.Buffer
	g = newGame(t, WithLog(&quiet, 1))
	mustMove(t, g, "e2", "e4")
	testutil.AssertEqual(t, quiet.Len(), 0)
}

func TestPlay_Greedy(t *testing.T) {
	g := newGame(t, WithMaxPlies(60), WithRollbackVerification(true))

	status, err := g.Play(context.Background(), decision.NewGreedy(5))

	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, status != Playing, "status = %v", status)
	testutil.AssertTrue(t, g.Plies() <= 60, "plies = %d", g.Plies())
	testutil.AssertEqual(t, len(g.History()), g.Plies()+1)
	testutil.AssertEqual(t, g.Rejected(), 0)
	testutil.AssertNoError(t, g.Board().Verify())
}

func TestPlay_Reproducible(t *testing.T) {
	play := func() []uint64 {
		g := newGame(t, WithMaxPlies(30))
		if _, err := g.Play(context.Background(), decision.NewGreedy(11)); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		return g.History()
	}
	testutil.AssertEqual(t, play(), play())
}

func TestPlay_Cancelled(t *testing.T) {
	g := newGame(t, WithMaxPlies(100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := g.Play(ctx, decision.NewRandom(1))

	testutil.AssertErrorIs(t, err, context.Canceled)
	testutil.AssertEqual(t, status, Playing)
	testutil.AssertEqual(t, g.Plies(), 0)
}

func TestSignature(t *testing.T) {
	g1, g2 := newGame(t), newGame(t)
	mustMove(t, g1, "e2", "e4")
	mustMove(t, g2, "e2", "e4")
	testutil.AssertEqual(t, g1.Signature(), g2.Signature())

	mustMove(t, g2, "e7", "e5")
	if g1.Signature() == g2.Signature() {
		t.Error("different positions share a signature")
	}
}

func TestStatusString(t *testing.T) {
	testutil.AssertEqual(t, Checkmate.String(), "checkmate")
	testutil.AssertEqual(t, Status(42).String(), "unknown")
}
