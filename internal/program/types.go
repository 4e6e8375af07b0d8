// Package program models machine descriptions and parses the line-oriented
// description language into transition tables.
package program

import "github.com/roach88/tng/internal/tape"

// State identifies a control point in a machine program. States have no
// meaning beyond identity.
type State uint64

// Move is the cursor action a transition performs after writing.
type Move uint8

const (
	MoveLeft Move = iota
	MoveRight
	MoveStay
)

// String returns a human-readable name for logs and diagnostics.
func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "stay"
	}
}

// Transition is a single rule: when in state From reading Condition, write
// Write, perform Action, and become To.
type Transition struct {
	From      State
	To        State
	Condition tape.Symbol
	Write     tape.Symbol
	Action    Move
}

// TransitionKey indexes the transition table by (state, symbol read).
type TransitionKey struct {
	State  State
	Symbol tape.Symbol
}

// Program is a parsed machine description.
//
// A Program is immutable after Parse and may be reused across sequential
// runs; the machine only reads it. Finals and ErrorStates may overlap: a
// state in both sets halts as final, because the machine checks final
// membership first.
type Program struct {
	Initial     State
	Finals      map[State]struct{}
	ErrorStates map[State]struct{}
	Transitions map[TransitionKey]Transition
}

// Lookup returns the transition for (state, symbol), if one is defined.
func (p *Program) Lookup(s State, sym tape.Symbol) (Transition, bool) {
	tr, ok := p.Transitions[TransitionKey{State: s, Symbol: sym}]
	return tr, ok
}

// IsFinal reports whether s is a declared final state.
func (p *Program) IsFinal(s State) bool {
	_, ok := p.Finals[s]
	return ok
}

// IsError reports whether s is a declared error state.
func (p *Program) IsError(s State) bool {
	_, ok := p.ErrorStates[s]
	return ok
}
