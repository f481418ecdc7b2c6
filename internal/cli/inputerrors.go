package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/factgraph/internal/evaluator"
	"github.com/roach88/factgraph/internal/registry"
)

// NewInputErrorsCommand creates the input-errors command.
func NewInputErrorsCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "input-errors <input.yaml>",
		Short: "Aggregate every input validation failure for a record",
		Long: `Evaluate an input record and report only the aggregated input errors:
key path -> message set, merged across every fact whose schema rejected it.
This is the view a data-collection UI shows next to its fields.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInputErrors(ns, rootOpts, args[0], cmd)
		},
	}
}

func runInputErrors(ns *registry.Namespace, opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	input, err := LoadInput(inputPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "load input", err)
	}

	eval := evaluator.New(ns)
	res, err := eval.Evaluate(input, moduleNames(opts.Modules)...)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "evaluate", err)
	}

	inputErrors := evaluator.InputErrors(res)

	if formatter.Format == "json" {
		payload := make(map[string][]string, len(inputErrors))
		for path, msgs := range inputErrors {
			payload[path] = msgs
		}
		if err := formatter.Success(payload); err != nil {
			return err
		}
	} else {
		if len(inputErrors) == 0 {
			fmt.Fprintln(formatter.Writer, "no input errors")
		}
		paths := make([]string, 0, len(inputErrors))
		for path := range inputErrors {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			for _, msg := range inputErrors[path] {
				fmt.Fprintf(formatter.Writer, "%s: %s\n", path, msg)
			}
		}
	}

	if len(inputErrors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d input path(s) rejected", len(inputErrors)))
	}
	return nil
}
