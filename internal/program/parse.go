package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/tng/internal/tape"
)

// Parse consumes program text and produces a valid Program or the first
// validity error encountered.
//
// The format is line oriented:
//   - blank lines and lines starting with "#" or "/" are ignored
//   - "+n" declares the initial state (a later line replaces an earlier one)
//   - "-n" adds n to the final-state set
//   - "!n" adds n to the error-state set
//   - anything else is a transition: from,to,condition,write,action
//
// For transitions, missing fields are reported before any field content is
// validated, and fields are checked left to right. A transition with the
// same (from, condition) as an earlier one replaces it.
func Parse(text string) (*Program, error) {
	p := &Program{
		Finals:      make(map[State]struct{}),
		ErrorStates: make(map[State]struct{}),
		Transitions: make(map[TransitionKey]Transition),
	}
	haveInitial := false

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "/") {
			continue
		}

		switch line[0] {
		case '+':
			s, err := parseState(line[1:], lineNo)
			if err != nil {
				return nil, err
			}
			// Last declaration wins.
			p.Initial = s
			haveInitial = true

		case '-':
			s, err := parseState(line[1:], lineNo)
			if err != nil {
				return nil, err
			}
			p.Finals[s] = struct{}{}

		case '!':
			s, err := parseState(line[1:], lineNo)
			if err != nil {
				return nil, err
			}
			p.ErrorStates[s] = struct{}{}

		default:
			tr, err := parseTransition(line, lineNo)
			if err != nil {
				return nil, err
			}
			// Last definition for a (from, condition) key wins.
			p.Transitions[TransitionKey{State: tr.From, Symbol: tr.Condition}] = tr
		}
	}

	if !haveInitial {
		return nil, &Error{
			Code:    ErrCodeMissingInitialState,
			Message: `no initial state ("+" line) declared`,
		}
	}
	return p, nil
}

// missingFieldCodes maps a transition field index to the error reported
// when that field is absent.
var missingFieldCodes = [5]ErrorCode{
	ErrCodeMissingFrom,
	ErrCodeMissingTo,
	ErrCodeMissingCondition,
	ErrCodeMissingWrite,
	ErrCodeMissingAction,
}

var fieldNames = [5]string{"from", "to", "condition", "write", "action"}

// parseTransition parses a five-field transition line. Fields beyond the
// fifth are ignored.
func parseTransition(line string, lineNo int) (Transition, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return Transition{}, &Error{
			Code:    missingFieldCodes[len(fields)],
			Line:    lineNo,
			Message: fmt.Sprintf("transition is missing its %s field", fieldNames[len(fields)]),
		}
	}

	from, err := parseState(fields[0], lineNo)
	if err != nil {
		return Transition{}, err
	}
	to, err := parseState(fields[1], lineNo)
	if err != nil {
		return Transition{}, err
	}
	condition, err := parseSymbol(fields[2], lineNo)
	if err != nil {
		return Transition{}, err
	}
	write, err := parseSymbol(fields[3], lineNo)
	if err != nil {
		return Transition{}, err
	}
	action, err := parseMove(fields[4], lineNo)
	if err != nil {
		return Transition{}, err
	}

	return Transition{From: from, To: to, Condition: condition, Write: write, Action: action}, nil
}

func parseState(field string, lineNo int) (State, error) {
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, &Error{
			Code:    ErrCodeInvalidState,
			Line:    lineNo,
			Message: fmt.Sprintf("state %q is not a non-negative integer", field),
		}
	}
	return State(n), nil
}

func parseSymbol(field string, lineNo int) (tape.Symbol, error) {
	sym, err := tape.ParseSymbol(field)
	if err != nil {
		return sym, &Error{
			Code:    ErrCodeInvalidSegment,
			Line:    lineNo,
			Message: fmt.Sprintf(`segment %q is not "1", "0", "_" or " "`, field),
		}
	}
	return sym, nil
}

func parseMove(field string, lineNo int) (Move, error) {
	switch field {
	case "r", "R":
		return MoveRight, nil
	case "l", "L":
		return MoveLeft, nil
	case "n", "N", "", "_", " ":
		return MoveStay, nil
	default:
		return MoveStay, &Error{
			Code:    ErrCodeInvalidAction,
			Line:    lineNo,
			Message: fmt.Sprintf("action %q is not r, l or n", field),
		}
	}
}
