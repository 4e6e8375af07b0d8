package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tng/internal/program"
)

// CheckResult is the check command's success payload.
type CheckResult struct {
	Valid       bool `json:"valid"`
	Transitions int  `json:"transitions"`
	FinalStates int  `json:"final_states"`
	ErrorStates int  `json:"error_states"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <program.tng>",
		Short: "Validate a program without executing it",
		Long: `Parse and validate a machine program without executing it.

Reports the first validity error with its code and source line, the same
check the run command performs before starting the machine.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, programPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	prog, _, err := LoadProgram(programPath)
	if err != nil {
		var progErr *program.Error
		if errors.As(err, &progErr) {
			details := map[string]any{"line": progErr.Line}
			_ = formatter.Error(string(progErr.Code), progErr.Message, details)
			return WrapExitError(ExitFailure, fmt.Sprintf("invalid program %s", programPath), progErr)
		}
		// Read failures arrive as ExitErrors from the loader.
		return err
	}

	result := CheckResult{
		Valid:       true,
		Transitions: len(prog.Transitions),
		FinalStates: len(prog.Finals),
		ErrorStates: len(prog.ErrorStates),
	}

	if formatter.Format == "json" {
		return formatter.JSON(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ program valid (%d transitions, %d final, %d error states)\n",
		result.Transitions, result.FinalStates, result.ErrorStates)
	return nil
}
