package game

import (
	"context"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/engine"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

// maxFailures is how many consecutive failed moves Play tolerates.
const maxFailures = 8

// Result is the outcome of one move attempt.
type Result struct {
	engine.Result

	// Promotion is set when the move reached the enemy back row with a
	// promotable piece.
	Promotion *engine.Result

	// Integrity is set when rollback verification found the board changed
	// or inconsistent.
	Integrity error

	// Status is the game status after the attempt.
	Status Status
}

// Chooser picks the next move for team. ok is false when it finds none.
type Chooser interface {
	Choose(b *chess.Board, team chess.TeamID) (c engine.Candidate, ok bool)
}

// Move plays the piece on from to to, dispatching to an attack when to is
// occupied and to an occupation otherwise.
func (g *Game) Move(from, to string) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != Playing {
		return g.reject(errors.Wrapf(errors.ErrGameOver, "game is over: %s", g.status))
	}
	src, err := chess.ParseCoordinate(from)
	if err != nil {
		return g.reject(err)
	}
	dst, err := chess.ParseCoordinate(to)
	if err != nil {
		return g.reject(err)
	}
	piece := g.board.PieceAt(src)
	if piece == nil {
		return g.reject(errors.Wrapf(errors.ErrNotOccupied, "no piece on %s", from))
	}
	if team := g.current(); piece.Team != team.ID {
		return g.reject(errors.Wrapf(errors.ErrNotYourTurn, "%s to play, not %s", team.Colour, piece.Name))
	}
	return g.apply(engine.Candidate{Piece: piece, To: g.board.SquareAt(dst), Target: g.board.PieceAt(dst)})
}

// Play asks c for moves until the game ends or ctx is cancelled.
func (g *Game) Play(ctx context.Context, c Chooser) (Status, error) {
	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return g.Status(), err
		}

		g.mu.Lock()
		if g.status != Playing {
			s := g.status
			g.mu.Unlock()
			return s, nil
		}
		cand, ok := c.Choose(g.board, g.current().ID)
		if !ok {
			g.status = NoMoves
			g.mu.Unlock()
			continue
		}
		res := g.apply(cand)
		g.mu.Unlock()

		if res.Integrity != nil {
			return res.Status, res.Integrity
		}
		if res.OK() {
			failures = 0
			continue
		}
		if failures++; failures >= maxFailures {
			return res.Status, errors.Wrapf(res.Err, "%d consecutive failed moves", failures)
		}
	}
}

func (g *Game) reject(err error) Result {
	g.rejected++
	g.tracef("rejected: %v", err)
	return Result{
		Result: engine.Result{Outcome: engine.OutcomeFailed, State: engine.Failed, Err: err},
		Status: g.status,
	}
}

// apply runs c and, on success, promotes, refreshes check flags, records the
// move, passes the turn and updates the game status. Callers hold g.mu.
func (g *Game) apply(c engine.Candidate) Result {
	var before chess.Snapshot
	if g.verify {
		before = g.board.Snapshot()
	}
	var opts []engine.Option
	if h := g.stepHook(); h != nil {
		opts = append(opts, engine.WithStepHook(h))
	}

	res := Result{Result: c.Execute(g.board, opts...), Status: g.status}
	switch res.Outcome {
	case engine.OutcomeFailed:
		g.rejected++
		g.tracef("%s", res.Result)
		return res
	case engine.OutcomeRolledBack:
		g.rolled++
		g.tracef("%s", res.Result)
		if g.verify {
			if diff := cmp.Diff(before, g.board.Snapshot()); diff != "" {
				res.Integrity = errors.Wrapf(errors.ErrInconsistentState, "tx %d rollback changed the board (-before +after):\n%s", res.TxID, diff)
			}
		}
		return res
	}

	mover := g.current()
	rec := Record{
		Ply:   len(g.moves) + 1,
		Team:  mover.ID,
		Piece: c.Piece.Name,
		Kind:  res.Kind,
		From:  res.From,
		To:    res.To,
	}
	if captured := g.board.Piece(res.Captured); captured != nil {
		rec.Captured = captured.Name
	}
	if engine.CanPromote(g.board, c.Piece) {
		p := engine.NewPromotion(g.board, c.Piece, opts...).Execute()
		res.Promotion = &p
		rec.Promoted = p.OK()
		g.tracef("%s", p)
	}
	engine.UpdateCheckFlags(g.board)
	if g.verify {
		if err := g.board.Verify(); err != nil {
			res.Integrity = errors.Wrapf(err, "after tx %d", res.TxID)
		}
	}

	g.turn++
	rec.Hash = g.hash()
	if king := g.board.King(g.current().ID); king != nil && king.Status != chess.Free {
		rec.Check = true
	}
	g.moves = append(g.moves, rec)
	g.history = append(g.history, rec.Hash)
	g.tracef("%s", res.Result)

	g.updateStatus(mover)
	res.Status = g.status
	return res
}

// updateStatus ends the game when the side to move is checkmated, has no
// move, or the ply limit is reached.
func (g *Game) updateStatus(mover *chess.Team) {
	next := g.current()
	if king := g.board.King(next.ID); king != nil && king.Status == chess.Checkmated {
		g.status = Checkmate
		g.winner = mover.ID
		return
	}
	if len(engine.Candidates(g.board, next.ID)) == 0 {
		g.status = NoMoves
		return
	}
	if g.maxPlies > 0 && len(g.moves) >= g.maxPlies {
		g.status = PlyLimit
	}
}
