package tape

import "fmt"

// DequeTape is a Tape backed by a slice with spare capacity kept at the
// front, giving amortized O(1) growth at both edges.
type DequeTape struct {
	buf  []Symbol // physical buffer; the window is buf[head:]
	head int
	pos  int // cursor, relative to the window
}

// NewDequeTape creates a tape from a known window and a cursor position.
//
// Panics if pos is outside the window. That is a caller contract violation,
// not a recoverable runtime condition.
func NewDequeTape(cells []Symbol, pos int) *DequeTape {
	if pos < 0 || pos >= len(cells) {
		panic(fmt.Sprintf("tape: cursor %d outside initial window of %d cells", pos, len(cells)))
	}
	buf := make([]Symbol, len(cells))
	copy(buf, cells)
	return &DequeTape{buf: buf, pos: pos}
}

// MoveRight implements Tape.
func (t *DequeTape) MoveRight() {
	t.pos++
	if t.head+t.pos == len(t.buf) {
		t.buf = append(t.buf, Blank)
	}
}

// MoveLeft implements Tape. At the left edge the cursor stays at index 0
// and a Blank is prepended, so logically the cursor moved into new space.
func (t *DequeTape) MoveLeft() {
	if t.pos == 0 {
		t.pushFront()
		return
	}
	t.pos--
}

// pushFront makes room for one Blank before the window. The buffer doubles
// when no front slack remains, keeping left-edge growth amortized O(1).
func (t *DequeTape) pushFront() {
	if t.head == 0 {
		slack := len(t.buf)
		if slack < 4 {
			slack = 4
		}
		grown := make([]Symbol, slack+len(t.buf))
		copy(grown[slack:], t.buf)
		t.buf = grown
		t.head = slack
	}
	t.head--
	t.buf[t.head] = Blank
}

// Write implements Tape.
func (t *DequeTape) Write(s Symbol) {
	t.buf[t.head+t.pos] = s
}

// Read implements Tape.
func (t *DequeTape) Read() Symbol {
	return t.buf[t.head+t.pos]
}

// Cells implements Tape.
func (t *DequeTape) Cells() []Symbol {
	out := make([]Symbol, len(t.buf)-t.head)
	copy(out, t.buf[t.head:])
	return out
}

// String renders the materialized window.
func (t *DequeTape) String() string {
	return render(t.buf[t.head:])
}
