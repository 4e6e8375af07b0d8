package tape

import "fmt"

// SliceTape is a Tape backed by a plain slice.
//
// Growth at the right edge is amortized O(1); growth at the left edge
// shifts the window and is O(n). Prefer DequeTape for programs that walk
// far to the left.
type SliceTape struct {
	cells []Symbol
	pos   int
}

// NewSliceTape creates a tape from a known window and a cursor position.
//
// Panics if pos is outside the window. That is a caller contract violation,
// not a recoverable runtime condition.
func NewSliceTape(cells []Symbol, pos int) *SliceTape {
	if pos < 0 || pos >= len(cells) {
		panic(fmt.Sprintf("tape: cursor %d outside initial window of %d cells", pos, len(cells)))
	}
	window := make([]Symbol, len(cells))
	copy(window, cells)
	return &SliceTape{cells: window, pos: pos}
}

// MoveRight implements Tape.
func (t *SliceTape) MoveRight() {
	t.pos++
	if t.pos == len(t.cells) {
		t.cells = append(t.cells, Blank)
	}
}

// MoveLeft implements Tape. At the left edge the cursor stays at index 0
// and a Blank is prepended, so logically the cursor moved into new space.
func (t *SliceTape) MoveLeft() {
	if t.pos == 0 {
		t.cells = append([]Symbol{Blank}, t.cells...)
		return
	}
	t.pos--
}

// Write implements Tape.
func (t *SliceTape) Write(s Symbol) {
	t.cells[t.pos] = s
}

// Read implements Tape.
func (t *SliceTape) Read() Symbol {
	return t.cells[t.pos]
}

// Cells implements Tape.
func (t *SliceTape) Cells() []Symbol {
	out := make([]Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// String renders the materialized window.
func (t *SliceTape) String() string {
	return render(t.cells)
}
