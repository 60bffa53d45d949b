// Package errors provides sentinel errors and error types for the hostage-chess engine.
// It defines the error kinds the engine reports and structured error types that
// preserve context while allowing inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error kinds.
var (
	// ErrNilInput indicates a required argument was absent.
	ErrNilInput = errors.New("missing required input")

	// ErrOutOfBounds indicates a coordinate or offset outside the board.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidOffset indicates an offset outside the step range.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidScalar indicates an offset multiplier that is non-positive
	// or would overflow the board dimension.
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrBlockedByFriendly indicates a square held by a piece of the same team.
	ErrBlockedByFriendly = errors.New("square blocked by friendly piece")

	// ErrOccupiedByEnemy indicates a plain occupation onto an enemy-held square.
	ErrOccupiedByEnemy = errors.New("square occupied by enemy piece")

	// ErrNotOccupied indicates leaving a square that holds no piece.
	ErrNotOccupied = errors.New("square not occupied")

	// ErrWrongOccupant indicates leaving a square held by a different piece.
	ErrWrongOccupant = errors.New("square held by a different piece")

	// ErrRuleViolation is the parent of every domain-rule failure.
	ErrRuleViolation = errors.New("rule violation")

	// ErrStepFailed indicates a transaction step did not take effect.
	ErrStepFailed = errors.New("transaction step failed")

	// ErrRolledBack indicates a transaction applied mutations and undid them.
	ErrRolledBack = errors.New("transaction rolled back")

	// ErrInconsistentState indicates broken bookkeeping, typically a prior bug.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Domain-rule violations. Each one matches ErrRuleViolation as well as itself.
var (
	ErrNotReachable      = rule("destination not reachable")
	ErrDestinationTaken  = rule("destination occupied")
	ErrFriendlyTarget    = rule("target is a friendly piece")
	ErrNoTarget          = rule("no piece to attack")
	ErrAlreadyCaptured   = rule("piece already captured")
	ErrKingCapture       = rule("kings cannot be captured")
	ErrPieceCaptured     = rule("piece is a prisoner")
	ErrPieceCheckmated   = rule("piece is checkmated")
	ErrNotOnRoster       = rule("piece not on its team roster")
	ErrNotPromotable     = rule("piece cannot be promoted")
	ErrWrongPromotionRow = rule("piece not on the enemy back row")
	ErrAlreadyPromoted   = rule("piece already promoted")
	ErrNotYourTurn       = rule("not this team's turn")
	ErrQuotaExceeded     = rule("team quota exceeded for rank")
	ErrGameOver          = rule("game is over")
)

// ruleError is a domain-rule sentinel that also reports as ErrRuleViolation.
type ruleError struct {
	msg string
}

func rule(msg string) error {
	return &ruleError{msg: msg}
}

func (e *ruleError) Error() string {
	return e.msg
}

// Is lets every rule sentinel match ErrRuleViolation.
func (e *ruleError) Is(target error) bool {
	return target == ErrRuleViolation
}

// ValidationError reports a failed precondition. No state was mutated.
type ValidationError struct {
	Op    string // Operation being validated, e.g. "occupation"
	Check string // Name of the failing check
	Err   error  // The underlying error
}

// Error returns a formatted error message with operation and check context.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Check != "" {
		parts = append(parts, fmt.Sprintf("check %q", e.Check))
	}
	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "validation failed"
	}
	return context
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StepError names a single transaction step that failed, either while applying
// it ("failed setting captor") or while restoring it ("failed restoring captor").
type StepError struct {
	Step    string // Step name
	Restore bool   // True when the failure happened while undoing the step
	Err     error  // The underlying error
}

// Error returns "failed <action> <step>: <cause>".
func (e *StepError) Error() string {
	msg := "failed " + e.Step
	if e.Restore {
		msg = "failed restoring " + e.Step
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Is matches ErrStepFailed for forward failures and ErrInconsistentState for
// restore failures.
func (e *StepError) Is(target error) bool {
	if e.Restore {
		return target == ErrInconsistentState
	}
	return target == ErrStepFailed
}

// RollbackError reports that a transaction applied at least one mutation,
// hit a failing step, and reversed what it had applied.
type RollbackError struct {
	TxID    int        // Transaction identifier
	Failed  *StepError // The forward step that failed
	Restore error      // Joined restore failures, nil when the rollback was clean
}

// Error returns a formatted error message naming the failed step.
func (e *RollbackError) Error() string {
	msg := fmt.Sprintf("transaction %d rolled back", e.TxID)
	if e.Failed != nil {
		msg += ": " + e.Failed.Error()
	}
	if e.Restore != nil {
		msg += "; rollback incomplete: " + e.Restore.Error()
	}
	return msg
}

// Unwrap exposes both the failed step and any restore failures.
func (e *RollbackError) Unwrap() []error {
	errs := []error{ErrRolledBack}
	if e.Failed != nil {
		errs = append(errs, e.Failed)
	}
	if e.Restore != nil {
		errs = append(errs, e.Restore)
	}
	return errs
}

// Clean reports whether every applied mutation was restored.
func (e *RollbackError) Clean() bool {
	return e.Restore == nil
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Chain returns each message in err's Unwrap chain, outermost first.
// Multi-error nodes contribute every branch in order.
func Chain(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		out = append(out, e.Error())
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
