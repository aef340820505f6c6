package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the workflow core can return. Handlers map
// kinds to HTTP statuses; callers branch on kinds, never on message text.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindValidation      Kind = "validation_error"
	KindDuplicate       Kind = "duplicate"
	KindNotEligible     Kind = "not_eligible"
	KindUnauthorized    Kind = "unauthorized"
	KindPartialApproval Kind = "approved_but_linked_update_failed"
	KindSideEffect      Kind = "side_effect_failed"
	KindUnavailable     Kind = "unavailable"
)

// Error is the single error type crossing the workflow core's boundary.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two workflow errors by kind, so tests and callers can use
// errors.Is(err, &Error{Kind: KindDuplicate}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func InvalidState(op, message string) *Error {
	return &Error{Kind: KindInvalidState, Op: op, Message: message}
}

func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func Duplicate(op, message string) *Error {
	return &Error{Kind: KindDuplicate, Op: op, Message: message}
}

func NotEligible(op, message string) *Error {
	return &Error{Kind: KindNotEligible, Op: op, Message: message}
}

func Unauthorized(op, message string) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: message}
}

func PartialApproval(op, message string, cause error) *Error {
	return &Error{Kind: KindPartialApproval, Op: op, Message: message, Err: cause}
}

func Unavailable(op string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Message: "store unavailable", Err: cause}
}

// Wrap attaches an op to an existing error, preserving its kind when it is
// already a workflow error and defaulting to Unavailable otherwise.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var werr *Error
	if errors.As(err, &werr) {
		return &Error{Kind: werr.Kind, Op: op, Message: werr.Message, Err: err}
	}
	return &Error{Kind: KindUnavailable, Op: op, Err: err}
}

// KindOf extracts the kind from an error chain. Unknown errors report
// KindUnavailable: anything the taxonomy does not name is a transport-class
// failure from the caller's point of view.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return KindUnavailable
}

// Retryable reports whether the caller may retry the operation verbatim.
// Only transport-class failures qualify.
func Retryable(err error) bool {
	return KindOf(err) == KindUnavailable
}
