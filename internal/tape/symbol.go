package tape

import "fmt"

// Symbol is one cell value on the tape: zero, one, or blank.
type Symbol uint8

const (
	Zero Symbol = iota
	One
	Blank
)

// SymbolError reports a token that is not part of the tape alphabet.
type SymbolError struct {
	Token string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid segment %q: must be one of \"1\", \"0\", \"_\", \" \"", e.Token)
}

// ParseSymbol parses a single textual token into a Symbol.
// Accepted tokens are "1", "0", "_" and " " (the last two both mean blank).
func ParseSymbol(token string) (Symbol, error) {
	switch token {
	case "1":
		return One, nil
	case "0":
		return Zero, nil
	case "_", " ":
		return Blank, nil
	default:
		return Blank, &SymbolError{Token: token}
	}
}

// String renders the canonical one-character form: "1", "0" or "_".
func (s Symbol) String() string {
	switch s {
	case One:
		return "1"
	case Zero:
		return "0"
	default:
		return "_"
	}
}
