package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tng/internal/harness"
)

// ScenarioReport is one scenario's entry in the test command's payload.
type ScenarioReport struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Tape     string   `json:"tape"`
	Failures []string `json:"failures,omitempty"`
}

// TestSummary is the test command's payload.
type TestSummary struct {
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioReport `json:"scenarios"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario.yaml|dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against their machine programs.

A scenario names a program file, an initial tape, and expectations on the
halting state, final tape, and runtime error. Directories are run in file
name order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScenarios(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	scenarios, err := loadScenarios(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}

	summary := TestSummary{Total: len(scenarios)}
	for _, sc := range scenarios {
		result, err := harness.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", sc.Name), err)
		}

		report := ScenarioReport{
			Name:     sc.Name,
			Passed:   result.Passed,
			Tape:     result.FinalTape,
			Failures: result.Failures,
		}
		summary.Scenarios = append(summary.Scenarios, report)
		if result.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}

		if formatter.Format != "json" {
			if result.Passed {
				fmt.Fprintf(formatter.Writer, "✓ %s\n", sc.Name)
			} else {
				fmt.Fprintf(formatter.Writer, "✗ %s\n", sc.Name)
				for _, failure := range result.Failures {
					fmt.Fprintf(formatter.Writer, "    %s\n", failure)
				}
			}
		}
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "\n%d scenarios: %d passed, %d failed\n",
			summary.Total, summary.Passed, summary.Failed)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", summary.Failed, summary.Total))
	}
	return nil
}

// loadScenarios loads either a single scenario file or a directory of them.
func loadScenarios(path string) ([]*harness.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return harness.LoadDir(path)
	}
	sc, err := harness.Load(path)
	if err != nil {
		return nil, err
	}
	return []*harness.Scenario{sc}, nil
}
