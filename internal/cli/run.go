package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tng/internal/machine"
	"github.com/roach88/tng/internal/program"
	"github.com/roach88/tng/internal/store"
	"github.com/roach88/tng/internal/tape"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Backend  string
	Database string
}

// RunReport is the run command's success payload.
type RunReport struct {
	State   uint64 `json:"state"`
	Tape    string `json:"tape"`
	Outcome string `json:"outcome"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program.tng> <tape>",
		Short: "Execute a program against an initial tape",
		Long: `Execute a machine program against an initial tape.

The program is parsed and validated, the tape text is turned into a tape
with the cursor on its first non-blank segment, and the machine runs until
it halts. The final state and tape are printed.

A program that never reaches a final or error state runs forever; there is
no built-in step limit.

Example:
  tng run examples/next_integer.tng _111_
  tng run --db runs.db --backend slice examples/invert.tng _101_`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Backend, "backend", "deque", "tape backend (deque|slice)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the run to this SQLite database")

	return cmd
}

func runMachine(opts *RunOptions, programPath, tapeText string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	prog, progText, err := LoadProgram(programPath)
	if err != nil {
		return err
	}
	slog.Debug("program loaded",
		"path", programPath,
		"transitions", len(prog.Transitions),
		"initial_state", uint64(prog.Initial),
	)

	tp, err := NewTape(opts.Backend, tapeText)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("invalid tape %q", tapeText), err)
	}

	m := machine.New(tp)
	state, execErr := m.Execute(prog)
	finalTape := tape.Render(m.Tape())

	if opts.Database != "" {
		if err := journalRun(cmd.Context(), opts.Database, progText, tapeText, finalTape, state, execErr); err != nil {
			// The run itself succeeded; a journaling problem is reported
			// but does not change the run's outcome.
			slog.Error("failed to journal run", "db", opts.Database, "error", err)
		}
	}

	if execErr != nil {
		code := string(machine.CodeOf(execErr))
		_ = formatter.Error(code, execErr.Error(), map[string]string{"tape": finalTape})
		return WrapExitError(ExitFailure, "machine halted abnormally", execErr)
	}

	report := RunReport{State: uint64(state), Tape: finalTape, Outcome: string(store.OutcomeAccepted)}
	if formatter.Format == "json" {
		return formatter.JSON(report)
	}
	fmt.Fprintf(formatter.Writer, "halted in state %d\ntape: %s\n", report.State, report.Tape)
	return nil
}

// journalRun records a completed run in the journal database.
func journalRun(
	ctx context.Context,
	dbPath, progText, input, output string,
	state program.State,
	execErr error,
) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if ctx == nil {
		ctx = context.Background()
	}

	sum := sha256.Sum256([]byte(progText))
	run := store.Run{
		ID:          store.NewRunID(),
		ProgramHash: hex.EncodeToString(sum[:]),
		Input:       input,
		Output:      output,
		HaltState:   uint64(state),
		Outcome:     outcomeOf(execErr),
		ErrorCode:   string(machine.CodeOf(execErr)),
	}
	return st.WriteRun(ctx, run)
}

func outcomeOf(execErr error) store.Outcome {
	switch machine.CodeOf(execErr) {
	case machine.ErrCodeUndefinedBehavior:
		return store.OutcomeUndefined
	case machine.ErrCodeReachedError:
		return store.OutcomeErrorState
	default:
		return store.OutcomeAccepted
	}
}

// configureLogging installs the default slog handler used by all commands.
func configureLogging(verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
