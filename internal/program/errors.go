package program

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes program validity errors.
type ErrorCode string

const (
	// ErrCodeMissingFrom indicates a transition line without a from state.
	ErrCodeMissingFrom ErrorCode = "MISSING_FROM"

	// ErrCodeMissingTo indicates a transition line without a to state.
	ErrCodeMissingTo ErrorCode = "MISSING_TO"

	// ErrCodeMissingCondition indicates a transition line without a
	// condition segment.
	ErrCodeMissingCondition ErrorCode = "MISSING_CONDITION"

	// ErrCodeMissingWrite indicates a transition line without a write
	// segment.
	ErrCodeMissingWrite ErrorCode = "MISSING_WRITE"

	// ErrCodeMissingAction indicates a transition line without a movement
	// action.
	ErrCodeMissingAction ErrorCode = "MISSING_ACTION"

	// ErrCodeInvalidState indicates a state field that is not a
	// non-negative integer.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"

	// ErrCodeInvalidSegment indicates a segment field that is not "1",
	// "0", "_" or " ".
	ErrCodeInvalidSegment ErrorCode = "INVALID_SEGMENT"

	// ErrCodeInvalidAction indicates a movement field that is not one of
	// r, l, n (either case), "", "_" or " ".
	ErrCodeInvalidAction ErrorCode = "INVALID_ACTION"

	// ErrCodeMissingInitialState indicates no "+" line appeared anywhere
	// in the program text.
	ErrCodeMissingInitialState ErrorCode = "MISSING_INITIAL_STATE"
)

// Error is a program validity error. Parsing stops at the first one.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Line is the 1-based source line, or 0 when the error is not tied to
	// a single line (missing initial state).
	Line int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Code, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a program
// Error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
