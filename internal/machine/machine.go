// Package machine executes parsed programs against a tape.
//
// The machine is fully synchronous and single-threaded. Execute blocks the
// calling goroutine for the whole run; the tape is exclusively owned by one
// run, while the program is read-only and reusable across sequential runs.
package machine

import (
	"github.com/roach88/tng/internal/program"
	"github.com/roach88/tng/internal/tape"
)

// Machine drives a Tape according to a Program's transition table.
type Machine struct {
	tape tape.Tape
}

// New creates a Machine that owns the given tape for the duration of its
// runs.
func New(t tape.Tape) *Machine {
	return &Machine{tape: t}
}

// Tape returns the machine's tape, e.g. to render the result of a run.
func (m *Machine) Tape() tape.Tape {
	return m.tape
}

// Execute runs prog until a halting condition is reached and returns the
// halting state.
//
// Each step reads the segment under the cursor and looks up the current
// (state, segment) pair in the transition table. A missing entry halts with
// an undefined-behavior error. Otherwise the transition's segment is
// written, the cursor moves, and the machine enters the transition's target
// state. A target in the final-state set halts successfully; a target in
// the error-state set halts with a reached-error error. Final membership is
// checked first, so a state declared both final and error halts as final.
//
// There is no step limit: a program that never reaches a final or error
// state loops forever. Guarding against that belongs to the caller.
func (m *Machine) Execute(prog *program.Program) (program.State, error) {
	state := prog.Initial

	for {
		sym := m.tape.Read()
		tr, ok := prog.Lookup(state, sym)
		if !ok {
			return 0, NewUndefinedBehaviorError(state, sym)
		}

		m.tape.Write(tr.Write)
		switch tr.Action {
		case program.MoveLeft:
			m.tape.MoveLeft()
		case program.MoveRight:
			m.tape.MoveRight()
		case program.MoveStay:
		}
		state = tr.To

		if prog.IsFinal(state) {
			return state, nil
		}
		if prog.IsError(state) {
			return 0, NewErrorStateError(state)
		}
	}
}
