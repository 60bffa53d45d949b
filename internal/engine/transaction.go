package engine

import (
	"fmt"

	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

// State is the lifecycle of a transaction.
type State int

const (
	Pending State = iota
	Validating
	Applying
	Success
	RollingBack
	RolledBack
	Failed
)

// String returns the string representation of a state.
func (s State) String() string {
	names := []string{"Pending", "Validating", "Applying", "Success", "RollingBack", "RolledBack", "Failed"}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Outcome is the caller-facing summary of a finished transaction.
type Outcome int

const (
	// OutcomeSuccess means every step was applied.
	OutcomeSuccess Outcome = iota
	// OutcomeFailed means validation rejected the transaction; nothing changed.
	OutcomeFailed
	// OutcomeRolledBack means a step failed and applied steps were undone.
	OutcomeRolledBack
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeRolledBack:
		return "rolled back"
	}
	return "unknown"
}

// TxKind names the transaction type.
type TxKind int

const (
	OccupationTx TxKind = iota
	AttackTx
	PromotionTx
)

// String returns the string representation of a transaction kind.
func (k TxKind) String() string {
	switch k {
	case OccupationTx:
		return "occupation"
	case AttackTx:
		return "attack"
	case PromotionTx:
		return "promotion"
	}
	return "unknown"
}

// Step is one mutation of a transaction.
type Step int

const (
	StepNone Step = iota
	StepSetCaptor
	StepRemoveFromRoster
	StepAddHostage
	StepRemoveFromBoard
	StepVacateDestination
	StepOccupyDestination
	StepVacateOrigin
	StepPushPosition
	StepRecordPreviousRank
	StepSwapRank
)

var stepNames = [...]struct{ apply, restore string }{
	StepNone:               {"", ""},
	StepSetCaptor:          {"setting captor", "captor"},
	StepRemoveFromRoster:   {"removing from roster", "roster membership"},
	StepAddHostage:         {"adding hostage", "hostage list"},
	StepRemoveFromBoard:    {"removing from board", "board membership"},
	StepVacateDestination:  {"vacating destination", "destination occupant"},
	StepOccupyDestination:  {"occupying destination", "destination vacancy"},
	StepVacateOrigin:       {"vacating origin", "origin occupant"},
	StepPushPosition:       {"pushing position", "position stack"},
	StepRecordPreviousRank: {"recording previous rank", "previous rank"},
	StepSwapRank:           {"swapping rank", "rank"},
}

// String returns the forward action name, e.g. "setting captor".
func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s].apply
	}
	return "unknown step"
}

// RestoreName returns the name used when undoing the step, e.g. "captor".
func (s Step) RestoreName() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s].restore
	}
	return "unknown step"
}

// Phase tells a StepHook whether a step is being applied or undone.
type Phase int

const (
	PhaseApply Phase = iota
	PhaseRestore
)

// Event is passed to a StepHook after each step is applied or undone.
type Event struct {
	TxID  int
	Kind  TxKind
	Step  Step
	Phase Phase
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.Phase == PhaseRestore {
		return fmt.Sprintf("tx %d %s: restoring %s", e.TxID, e.Kind, e.Step.RestoreName())
	}
	return fmt.Sprintf("tx %d %s: %s", e.TxID, e.Kind, e.Step)
}

// StepHook observes each step after its mutation and before its
// verification. A non-nil return fails the step.
type StepHook func(Event) error

// Option configures a transaction.
type Option func(*txn)

// WithStepHook attaches a hook to the transaction.
func WithStepHook(h StepHook) Option {
	return func(t *txn) {
		t.hook = h
	}
}

// WithID overrides the id drawn from the board's id source.
func WithID(id int) Option {
	return func(t *txn) {
		t.id = id
	}
}

// Result is the discriminated outcome of a transaction. Err is nil exactly
// when Outcome is OutcomeSuccess.
type Result struct {
	TxID     int
	Kind     TxKind
	Outcome  Outcome
	State    State
	Step     Step // The failing step for OutcomeRolledBack
	Err      error
	Actor    chess.PieceID
	Captured chess.PieceID
	From     chess.Coordinate
	To       chess.Coordinate
}

// OK reports whether the transaction succeeded.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// String implements fmt.Stringer.
func (r Result) String() string {
	s := fmt.Sprintf("tx %d %s %s->%s: %s", r.TxID, r.Kind, r.From.Name(), r.To.Name(), r.Outcome)
	if r.Err != nil {
		s += ": " + r.Err.Error()
	}
	return s
}

// action is one verified, reversible mutation.
type action struct {
	step    Step
	apply   func() error
	verify  func() error
	undo    func()
	restore func() error // verifies undo
}

// txn drives a sequence of actions with reverse-order rollback.
type txn struct {
	id      int
	kind    TxKind
	state   State
	hook    StepHook
	applied []action
}

func newTxn(b *chess.Board, kind TxKind, opts []Option) *txn {
	t := &txn{kind: kind, state: Pending}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == 0 && b != nil {
		t.id = b.IDs().TransactionID()
	}
	return t
}

func (t *txn) event(step Step, phase Phase) Event {
	return Event{TxID: t.id, Kind: t.kind, Step: step, Phase: phase}
}

// validate moves the transaction through Validating; on error it ends Failed.
func (t *txn) validate(fn func() error) error {
	t.state = Validating
	if err := fn(); err != nil {
		t.state = Failed
		return err
	}
	t.state = Applying
	return nil
}

// run applies a, consults the hook and verifies. A failing step is recorded
// as applied so its own partial effect is undone during rollback.
func (t *txn) run(a action) *errors.StepError {
	t.applied = append(t.applied, a)
	if err := a.apply(); err != nil {
		return &errors.StepError{Step: a.step.String(), Err: err}
	}
	if t.hook != nil {
		if err := t.hook(t.event(a.step, PhaseApply)); err != nil {
			return &errors.StepError{Step: a.step.String(), Err: err}
		}
	}
	if err := a.verify(); err != nil {
		return &errors.StepError{Step: a.step.String(), Err: err}
	}
	return nil
}

// rollback undoes every recorded action in reverse order and continues past
// restore failures, returning them joined.
func (t *txn) rollback() error {
	t.state = RollingBack
	var errs []error
	for i := len(t.applied) - 1; i >= 0; i-- {
		a := t.applied[i]
		a.undo()
		var err error
		if t.hook != nil {
			err = t.hook(t.event(a.step, PhaseRestore))
		}
		if err == nil {
			err = a.restore()
		}
		if err != nil {
			errs = append(errs, &errors.StepError{Step: a.step.RestoreName(), Restore: true, Err: err})
		}
	}
	t.applied = nil
	t.state = RolledBack
	return errors.Join(errs...)
}

// fail rolls back and fills res for a failed step.
func (t *txn) fail(res *Result, step Step, failed *errors.StepError) {
	restore := t.rollback()
	res.Outcome = OutcomeRolledBack
	res.State = t.state
	res.Step = step
	res.Err = &errors.RollbackError{TxID: t.id, Failed: failed, Restore: restore}
}

// reject fills res for a validation failure.
func (t *txn) reject(res *Result, err error) {
	res.Outcome = OutcomeFailed
	res.State = t.state
	res.Err = err
}

// succeed fills res for a completed transaction.
func (t *txn) succeed(res *Result) {
	t.state = Success
	t.applied = nil
	res.Outcome = OutcomeSuccess
	res.State = t.state
}

// mismatch builds a verification error.
func mismatch(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInconsistentState, format, args...)
}
