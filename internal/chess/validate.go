package chess

import (
	"reflect"

	"github.com/lgbarn/hostage-chess/internal/errors"
)

// Check is a named predicate over a candidate value. Fn returns nil when the
// candidate passes.
type Check[T any] struct {
	Name string
	Fn   func(T) error
}

// Validate runs checks in order and stops at the first failure, returning a
// *errors.ValidationError naming op and the failing check.
func Validate[T any](op string, candidate T, checks ...Check[T]) (T, error) {
	for _, c := range checks {
		if err := c.Fn(candidate); err != nil {
			var zero T
			return zero, &errors.ValidationError{Op: op, Check: c.Name, Err: err}
		}
	}
	return candidate, nil
}

// NotNil fails with ErrNilInput when the candidate is a nil pointer,
// interface, map, slice or func.
func NotNil[T any](name string) Check[T] {
	return Check[T]{
		Name: "not-nil",
		Fn: func(v T) error {
			if isNil(v) {
				return errors.Wrap(errors.ErrNilInput, name)
			}
			return nil
		},
	}
}

// InRange fails with ErrOutOfBounds when get(v) lies outside [lo, hi).
func InRange[T any](name string, lo, hi int, get func(T) int) Check[T] {
	return Check[T]{
		Name: name + "-bounds",
		Fn: func(v T) error {
			n := get(v)
			if n < lo || n >= hi {
				return errors.Wrapf(errors.ErrOutOfBounds, "%s %d not in [%d, %d)", name, n, lo, hi)
			}
			return nil
		},
	}
}

// Rule wraps a domain predicate: when ok(v) is false the check fails with err.
func Rule[T any](name string, err error, ok func(T) bool) Check[T] {
	return Check[T]{
		Name: name,
		Fn: func(v T) error {
			if !ok(v) {
				return err
			}
			return nil
		},
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
