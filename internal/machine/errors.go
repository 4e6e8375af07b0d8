package machine

import (
	"errors"
	"fmt"

	"github.com/roach88/tng/internal/program"
	"github.com/roach88/tng/internal/tape"
)

// RuntimeErrorCode categorizes execution errors.
type RuntimeErrorCode string

const (
	// ErrCodeUndefinedBehavior indicates no transition matched the
	// current (state, segment) pair.
	ErrCodeUndefinedBehavior RuntimeErrorCode = "UNDEFINED_BEHAVIOR"

	// ErrCodeReachedError indicates the machine transitioned into a
	// declared error state.
	ErrCodeReachedError RuntimeErrorCode = "REACHED_ERROR"
)

// RuntimeError represents an error detected while executing a program.
// Execution stops at the first one; nothing is retried.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// State is the machine state at the point of failure: the state with
	// no matching transition, or the error state that was entered.
	State program.State

	// Symbol is the segment under the cursor. Only meaningful for
	// ErrCodeUndefinedBehavior.
	Symbol tape.Symbol

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Code == ErrCodeUndefinedBehavior {
		return fmt.Sprintf("%s: %s (state=%d, segment=%q)", e.Code, e.Message, e.State, e.Symbol.String())
	}
	return fmt.Sprintf("%s: %s (state=%d)", e.Code, e.Message, e.State)
}

// NewUndefinedBehaviorError creates a RuntimeError for a missing
// transition.
func NewUndefinedBehaviorError(state program.State, sym tape.Symbol) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUndefinedBehavior,
		State:   state,
		Symbol:  sym,
		Message: "no transition defined for the current state and segment",
	}
}

// NewErrorStateError creates a RuntimeError for entering a declared error
// state.
func NewErrorStateError(state program.State) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeReachedError,
		State:   state,
		Message: "machine reached a declared error state",
	}
}

// IsUndefinedBehavior returns true if the error is an undefined-behavior
// error. Uses errors.As to handle wrapped errors.
func IsUndefinedBehavior(err error) bool {
	return CodeOf(err) == ErrCodeUndefinedBehavior
}

// IsReachedError returns true if the error reports a declared error state.
// Uses errors.As to handle wrapped errors.
func IsReachedError(err error) bool {
	return CodeOf(err) == ErrCodeReachedError
}

// CodeOf extracts the RuntimeErrorCode from err, or "" if err is not a
// RuntimeError.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
