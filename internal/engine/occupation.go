package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

// move is the candidate a movement transaction validates.
type move struct {
	board *chess.Board
	actor *chess.Piece
	dest  *chess.Square
}

var moveInputChecks = []chess.Check[move]{
	chess.Rule("board", errors.Wrap(errors.ErrNilInput, "board"), func(m move) bool { return m.board != nil }),
	chess.Rule("actor", errors.Wrap(errors.ErrNilInput, "actor"), func(m move) bool { return m.actor != nil }),
	chess.Rule("destination", errors.Wrap(errors.ErrNilInput, "destination"), func(m move) bool { return m.dest != nil }),
}

var actorChecks = []chess.Check[move]{
	chess.Rule("actor-free", errors.ErrPieceCaptured, func(m move) bool {
		return !m.actor.IsCaptured() && m.actor.Status != chess.Prisoner
	}),
	chess.Rule("actor-not-checkmated", errors.ErrPieceCheckmated, func(m move) bool {
		return m.actor.Status != chess.Checkmated
	}),
	chess.Rule("actor-in-play", errors.ErrPieceCaptured, func(m move) bool {
		return m.board.IsActive(m.actor.ID)
	}),
	chess.Rule("actor-on-roster", errors.ErrNotOnRoster, func(m move) bool {
		t := m.board.Team(m.actor.Team)
		return t != nil && t.OnRoster(m.actor.ID)
	}),
	{
		Name: "destination-reachable",
		Fn: func(m move) error {
			ok, err := IsWalkable(m.board, m.actor, m.dest)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Wrapf(errors.ErrNotReachable, "%s to %s", m.actor.Name, m.dest.Name)
			}
			return nil
		},
	},
}

var occupationChecks = []chess.Check[move]{
	chess.Rule("destination-vacant", errors.ErrDestinationTaken, func(m move) bool { return m.dest.IsVacant() }),
}

// Occupation moves a piece onto a vacant square.
type Occupation struct {
	tx *txn
	m  move
}

// NewOccupation prepares a move of actor to dest on b.
func NewOccupation(b *chess.Board, actor *chess.Piece, dest *chess.Square, opts ...Option) *Occupation {
	return &Occupation{tx: newTxn(b, OccupationTx, opts), m: move{board: b, actor: actor, dest: dest}}
}

// ID returns the transaction id.
func (o *Occupation) ID() int {
	return o.tx.id
}

// State returns the current lifecycle state.
func (o *Occupation) State() State {
	return o.tx.state
}

// Execute validates and applies the occupation.
func (o *Occupation) Execute() Result {
	res := Result{TxID: o.tx.id, Kind: OccupationTx}
	err := o.tx.validate(func() error {
		checks := append(append(append([]chess.Check[move]{}, moveInputChecks...), actorChecks...), occupationChecks...)
		_, err := chess.Validate("occupation", o.m, checks...)
		return err
	})
	describe(&res, o.m)
	if err != nil {
		o.tx.reject(&res, err)
		return res
	}

	if step, failed := occupy(o.tx, o.m); failed != nil {
		o.tx.fail(&res, step, failed)
		return res
	}
	o.tx.succeed(&res)
	return res
}

// describe copies the move's identity into res.
func describe(res *Result, m move) {
	if m.actor != nil {
		res.Actor = m.actor.ID
		if c, ok := m.actor.CurrentPosition(); ok {
			res.From = c
		}
	}
	if m.dest != nil {
		res.To = m.dest.Coord
	}
}

// occupy runs the three occupation steps: claim the destination, vacate the
// origin, push the new position.
func occupy(t *txn, m move) (Step, *errors.StepError) {
	b, actor, dest := m.board, m.actor, m.dest
	origin := b.SquareOf(actor)
	if origin == nil {
		return StepVacateOrigin, &errors.StepError{Step: StepVacateOrigin.String(), Err: mismatch("%s has no origin square", actor.Name)}
	}

	var prior *chess.Piece
	claim := action{
		step: StepOccupyDestination,
		apply: func() error {
			if !dest.IsVacant() {
				prior = b.Piece(dest.Occupant())
			}
			dest.SetOccupant(actor)
			return nil
		},
		verify: func() error {
			if dest.Occupant() != actor.ID {
				return mismatch("%s holds #%d, want %s", dest.Name, dest.Occupant(), actor.Name)
			}
			return nil
		},
		undo: func() {
			dest.SetOccupant(prior)
		},
		restore: func() error {
			if prior == nil && !dest.IsVacant() {
				return mismatch("%s still holds #%d", dest.Name, dest.Occupant())
			}
			if prior != nil && dest.Occupant() != prior.ID {
				return mismatch("%s holds #%d, want %s", dest.Name, dest.Occupant(), prior.Name)
			}
			return nil
		},
	}
	if failed := t.run(claim); failed != nil {
		return claim.step, failed
	}

	var left *chess.Piece
	vacate := action{
		step: StepVacateOrigin,
		apply: func() error {
			left = b.Piece(origin.Occupant())
			return origin.Leave(actor)
		},
		verify: func() error {
			if !origin.IsVacant() {
				return mismatch("%s still holds #%d", origin.Name, origin.Occupant())
			}
			return nil
		},
		undo: func() {
			origin.SetOccupant(left)
		},
		restore: func() error {
			if left != nil && origin.Occupant() != left.ID {
				return mismatch("%s holds #%d, want %s", origin.Name, origin.Occupant(), left.Name)
			}
			return nil
		},
	}
	if failed := t.run(vacate); failed != nil {
		return vacate.step, failed
	}

	stack := actor.Positions()
	depth := stack.Len()
	push := action{
		step: StepPushPosition,
		apply: func() error {
			stack.Push(dest.Coord)
			return nil
		},
		verify: func() error {
			top, _ := stack.Top()
			if stack.Len() != depth+1 || top != dest.Coord {
				return mismatch("%s at %v with %d positions, want %s with %d", actor.Name, top, stack.Len(), dest.Name, depth+1)
			}
			return nil
		},
		undo: func() {
			for stack.Len() > depth {
				if _, err := stack.Pop(); err != nil {
					return
				}
			}
		},
		restore: func() error {
			if stack.Len() != depth {
				return mismatch("%s has %d positions, want %d", actor.Name, stack.Len(), depth)
			}
			return nil
		},
	}
	if failed := t.run(push); failed != nil {
		return push.step, failed
	}
	return StepNone, nil
}
