// Package tape implements the machine's unbounded tape: a three-symbol
// alphabet, a cursor, and lazily materialized edges.
package tape

import "strings"

// Tape is an unbounded working buffer with a single cursor.
//
// Moving past either materialized edge creates one Blank cell there, so
// callers never bounds-check. The machine depends only on this interface;
// SliceTape and DequeTape are interchangeable backings.
type Tape interface {
	// MoveLeft moves the cursor one cell to the left, prepending a Blank
	// if the cursor is at the left edge.
	MoveLeft()

	// MoveRight moves the cursor one cell to the right, appending a Blank
	// if the cursor passes the right edge.
	MoveRight()

	// Write overwrites the cell at the cursor.
	Write(s Symbol)

	// Read returns the cell at the cursor.
	Read() Symbol

	// Cells returns a copy of the materialized window.
	Cells() []Symbol
}

// Parse converts tape text into cells plus the starting cursor index.
//
// Each character is mapped by the symbol rule (1, 0, _ and space). The
// cursor is the index of the first non-blank character, or 0 when the text
// is empty or all blanks. An empty text materializes a single Blank cell so
// the cursor invariant holds from the start.
func Parse(text string) ([]Symbol, int, error) {
	cells := make([]Symbol, 0, len(text))
	pos := 0
	found := false

	for idx, r := range text {
		switch r {
		case '1':
			cells = append(cells, One)
		case '0':
			cells = append(cells, Zero)
		case '_', ' ':
			cells = append(cells, Blank)
		default:
			return nil, 0, &SymbolError{Token: string(r)}
		}
		if !found && r != '_' && r != ' ' {
			pos = idx
			found = true
		}
	}

	if len(cells) == 0 {
		cells = append(cells, Blank)
	}
	return cells, pos, nil
}

// ParseSlice parses tape text into a SliceTape.
func ParseSlice(text string) (*SliceTape, error) {
	cells, pos, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewSliceTape(cells, pos), nil
}

// ParseDeque parses tape text into a DequeTape.
func ParseDeque(text string) (*DequeTape, error) {
	cells, pos, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewDequeTape(cells, pos), nil
}

// Render emits the tape's materialized window as text, one character per
// cell, with no cursor marker. Rendering and re-parsing yields an identical
// window.
func Render(t Tape) string {
	return render(t.Cells())
}

func render(cells []Symbol) string {
	var b strings.Builder
	b.Grow(len(cells))
	for _, s := range cells {
		b.WriteString(s.String())
	}
	return b.String()
}
