package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

var attackChecks = []chess.Check[move]{
	chess.Rule("target-present", errors.ErrNoTarget, func(m move) bool { return !m.dest.IsVacant() }),
	chess.Rule("target-enemy", errors.ErrFriendlyTarget, func(m move) bool {
		return m.dest.StatusFor(m.actor) == chess.HasEnemy
	}),
	{
		Name: "target-capturable",
		Fn: func(m move) error {
			enemy := m.board.Piece(m.dest.Occupant())
			switch {
			case enemy == nil:
				return errors.Wrapf(errors.ErrInconsistentState, "%s holds unknown piece #%d", m.dest.Name, m.dest.Occupant())
			case enemy.IsCaptured():
				return errors.Wrapf(errors.ErrAlreadyCaptured, "%s", enemy.Name)
			case enemy.Kind == chess.King:
				return errors.Wrapf(errors.ErrKingCapture, "%s", enemy.Name)
			case m.board.Team(enemy.Team) == nil:
				return errors.Wrapf(errors.ErrInconsistentState, "%s has unknown team %d", enemy.Name, enemy.Team)
			}
			return nil
		},
	},
}

// Attack moves a piece onto a square held by an enemy and takes the enemy
// hostage.
type Attack struct {
	tx *txn
	m  move
}

// NewAttack prepares actor's capture of whatever stands on dest.
func NewAttack(b *chess.Board, actor *chess.Piece, dest *chess.Square, opts ...Option) *Attack {
	return &Attack{tx: newTxn(b, AttackTx, opts), m: move{board: b, actor: actor, dest: dest}}
}

// ID returns the transaction id.
func (a *Attack) ID() int {
	return a.tx.id
}

// State returns the current lifecycle state.
func (a *Attack) State() State {
	return a.tx.state
}

// Execute validates and applies the attack. The enemy is marked captured,
// moved from its roster to the attacker's hostages, taken out of play and
// lifted off the square before the attacker occupies it.
func (a *Attack) Execute() Result {
	res := Result{TxID: a.tx.id, Kind: AttackTx}
	err := a.tx.validate(func() error {
		checks := append([]chess.Check[move]{}, moveInputChecks...)
		checks = append(checks, attackChecks...)
		checks = append(checks, actorChecks...)
		_, err := chess.Validate("attack", a.m, checks...)
		return err
	})
	describe(&res, a.m)
	if err != nil {
		a.tx.reject(&res, err)
		return res
	}

	b, actor, dest := a.m.board, a.m.actor, a.m.dest
	enemy := b.Piece(dest.Occupant())
	enemyTeam := b.Team(enemy.Team)
	actorTeam := b.Team(actor.Team)
	res.Captured = enemy.ID

	prevCaptor, prevStatus := enemy.Captor, enemy.Status
	rosterIndex := -1

	steps := []action{
		{
			step: StepSetCaptor,
			apply: func() error {
				enemy.Captor = actor.ID
				enemy.Status = chess.Prisoner
				return nil
			},
			verify: func() error {
				if enemy.Captor != actor.ID {
					return mismatch("%s captor #%d, want %s", enemy.Name, enemy.Captor, actor.Name)
				}
				return nil
			},
			undo: func() {
				enemy.Captor = prevCaptor
				enemy.Status = prevStatus
			},
			restore: func() error {
				if enemy.Captor != prevCaptor || enemy.Status != prevStatus {
					return mismatch("%s captor #%d status %v", enemy.Name, enemy.Captor, enemy.Status)
				}
				return nil
			},
		},
		{
			step: StepRemoveFromRoster,
			apply: func() error {
				if enemy.Captor != actor.ID {
					return mismatch("%s discharged without a captor", enemy.Name)
				}
				rosterIndex = enemyTeam.Discharge(enemy.ID)
				if rosterIndex < 0 {
					return errors.Wrapf(errors.ErrNotOnRoster, "%s", enemy.Name)
				}
				return nil
			},
			verify: func() error {
				if enemyTeam.OnRoster(enemy.ID) {
					return mismatch("%s still on %s roster", enemy.Name, enemyTeam.Colour)
				}
				return nil
			},
			undo: func() {
				if rosterIndex >= 0 && !enemyTeam.OnRoster(enemy.ID) {
					enemyTeam.Reinstate(enemy.ID, rosterIndex)
				}
			},
			restore: func() error {
				if rosterIndex >= 0 && !enemyTeam.OnRoster(enemy.ID) {
					return mismatch("%s missing from %s roster", enemy.Name, enemyTeam.Colour)
				}
				return nil
			},
		},
		{
			step: StepAddHostage,
			apply: func() error {
				actorTeam.TakeHostage(enemy.ID)
				return nil
			},
			verify: func() error {
				if !actorTeam.HoldsHostage(enemy.ID) {
					return mismatch("%s not among %s hostages", enemy.Name, actorTeam.Colour)
				}
				return nil
			},
			undo: func() {
				for actorTeam.ReleaseHostage(enemy.ID) {
				}
			},
			restore: func() error {
				if actorTeam.HoldsHostage(enemy.ID) {
					return mismatch("%s still among %s hostages", enemy.Name, actorTeam.Colour)
				}
				return nil
			},
		},
		{
			step: StepRemoveFromBoard,
			apply: func() error {
				b.RemoveActive(enemy.ID)
				return nil
			},
			verify: func() error {
				if b.IsActive(enemy.ID) {
					return mismatch("%s still in play", enemy.Name)
				}
				return nil
			},
			undo: func() {
				b.RestoreActive(enemy.ID)
			},
			restore: func() error {
				if !b.IsActive(enemy.ID) {
					return mismatch("%s not back in play", enemy.Name)
				}
				return nil
			},
		},
		{
			step: StepVacateDestination,
			apply: func() error {
				return dest.Leave(enemy)
			},
			verify: func() error {
				if !dest.IsVacant() {
					return mismatch("%s still holds #%d", dest.Name, dest.Occupant())
				}
				return nil
			},
			undo: func() {
				dest.SetOccupant(enemy)
			},
			restore: func() error {
				if dest.Occupant() != enemy.ID {
					return mismatch("%s holds #%d, want %s", dest.Name, dest.Occupant(), enemy.Name)
				}
				return nil
			},
		},
	}

	for _, s := range steps {
		if failed := a.tx.run(s); failed != nil {
			a.tx.fail(&res, s.step, failed)
			return res
		}
	}
	if step, failed := occupy(a.tx, a.m); failed != nil {
		a.tx.fail(&res, step, failed)
		return res
	}
	a.tx.succeed(&res)
	return res
}
