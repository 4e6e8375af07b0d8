// Package harness runs conformance scenarios: a program file, an input
// tape, and expectations on how the machine halts.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tng/internal/machine"
	"github.com/roach88/tng/internal/program"
	"github.com/roach88/tng/internal/tape"
)

// Scenario defines a conformance test for a machine program.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Program is the path to the .tng program file, relative to the
	// scenario file location.
	Program string `yaml:"program"`

	// Tape is the initial tape text.
	Tape string `yaml:"tape"`

	// Expect holds the assertions on the halted machine.
	Expect Expect `yaml:"expect"`

	// dir is the directory of the scenario file, for resolving Program.
	dir string
}

// Expect specifies how a scenario's run must end. Zero-valued fields are
// not checked.
type Expect struct {
	// State is the expected halting state.
	State *uint64 `yaml:"state,omitempty"`

	// Tape is the expected final tape text.
	Tape string `yaml:"tape,omitempty"`

	// Error is the expected runtime error code
	// ("UNDEFINED_BEHAVIOR" or "REACHED_ERROR"). Empty means the run
	// must halt in a final state.
	Error string `yaml:"error,omitempty"`
}

// Result captures one scenario execution.
type Result struct {
	Scenario  *Scenario
	HaltState program.State
	FinalTape string
	RunErr    error // runtime error from the machine, nil on accept

	Passed   bool
	Failures []string
}

// Load reads a scenario from a YAML file. The scenario's program path is
// resolved relative to the file's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if sc.Program == "" {
		return nil, fmt.Errorf("scenario %s: missing program", path)
	}

	sc.dir = filepath.Dir(path)
	return &sc, nil
}

// LoadDir loads every *.yaml and *.yml scenario in dir, sorted by file
// name for deterministic ordering.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := Load(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// ProgramPath returns the resolved path of the scenario's program file.
func (sc *Scenario) ProgramPath() string {
	if filepath.IsAbs(sc.Program) || sc.dir == "" {
		return sc.Program
	}
	return filepath.Join(sc.dir, sc.Program)
}

// Run executes a scenario and evaluates its expectations.
//
// Load and parse problems are returned as errors; expectation mismatches
// are recorded in the Result. A runtime error from the machine is only a
// failure when the scenario did not expect it.
func Run(sc *Scenario) (*Result, error) {
	text, err := os.ReadFile(sc.ProgramPath())
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", sc.ProgramPath(), err)
	}

	prog, err := program.Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parse program %s: %w", sc.ProgramPath(), err)
	}

	tp, err := tape.ParseDeque(sc.Tape)
	if err != nil {
		return nil, fmt.Errorf("parse tape %q: %w", sc.Tape, err)
	}

	m := machine.New(tp)
	state, runErr := m.Execute(prog)

	result := &Result{
		Scenario:  sc,
		HaltState: state,
		FinalTape: tape.Render(m.Tape()),
		RunErr:    runErr,
	}
	result.Failures = evaluate(sc.Expect, result)
	result.Passed = len(result.Failures) == 0

	return result, nil
}

func evaluate(expect Expect, result *Result) []string {
	var failures []string

	gotCode := string(machine.CodeOf(result.RunErr))
	if expect.Error != gotCode {
		switch {
		case expect.Error == "":
			failures = append(failures, fmt.Sprintf("unexpected runtime error: %v", result.RunErr))
		case gotCode == "":
			failures = append(failures, fmt.Sprintf("expected runtime error %s, run was accepted in state %d", expect.Error, result.HaltState))
		default:
			failures = append(failures, fmt.Sprintf("expected runtime error %s, got %s", expect.Error, gotCode))
		}
	}

	if expect.State != nil && result.RunErr == nil && uint64(result.HaltState) != *expect.State {
		failures = append(failures, fmt.Sprintf("expected halting state %d, got %d", *expect.State, result.HaltState))
	}

	if expect.Tape != "" && result.FinalTape != expect.Tape {
		failures = append(failures, fmt.Sprintf("expected final tape %q, got %q", expect.Tape, result.FinalTape))
	}

	return failures
}
