package cli

import (
	"fmt"
	"os"

	"github.com/roach88/tng/internal/program"
	"github.com/roach88/tng/internal/tape"
)

// LoadProgram reads and parses a program file. Returns the parsed program
// and the raw text (for hashing into the run journal).
//
// A missing or unreadable file is a command error (exit 2); an invalid
// program is a validation failure (exit 1).
func LoadProgram(path string) (*program.Program, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, fmt.Sprintf("failed to read program %s", path), err)
	}

	prog, err := program.Parse(string(data))
	if err != nil {
		return nil, "", WrapExitError(ExitFailure, fmt.Sprintf("invalid program %s", path), err)
	}

	return prog, string(data), nil
}

// NewTape builds a tape of the requested backend from tape text.
func NewTape(backend, text string) (tape.Tape, error) {
	switch backend {
	case "deque":
		return tape.ParseDeque(text)
	case "slice":
		return tape.ParseSlice(text)
	default:
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid backend %q: must be one of %v", backend, ValidBackends))
	}
}

// ValidBackends defines the allowed tape backends.
var ValidBackends = []string{"deque", "slice"}
