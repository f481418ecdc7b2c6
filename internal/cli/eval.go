package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/factgraph/internal/evaluator"
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/registry"
	"github.com/roach88/factgraph/internal/results"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <input.yaml>",
		Short: "Evaluate an input record against the fact graph",
		Long: `Evaluate an input record against the declared facts.

Prints every fact's value; validation failures and unmet dependencies are
structured error values, not command failures. The command exits 1 when any
fact resolved to errors, 2 on command errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(ns, rootOpts, args[0], cmd)
		},
	}
}

func runEval(ns *registry.Namespace, opts *RootOptions, inputPath string, cmd *cobra.Command) error {
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

	if formatter.Format == "json" {
		encoded, err := results.Encode(res)
		if err != nil {
			return WrapExitError(ExitCommandError, "encode results", err)
		}
		if err := formatter.SuccessJSON(encoded); err != nil {
			return err
		}
	} else {
		if err := writeResultsText(formatter, res); err != nil {
			return err
		}
	}

	if errored := countErrors(res); errored > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fact(s) resolved to errors", errored))
	}
	return nil
}

// writeResultsText prints one "module.fact = value" line per slot, sorted.
func writeResultsText(formatter *OutputFormatter, res results.Results) error {
	modules := make([]string, 0, len(res))
	for module := range res {
		modules = append(modules, string(module))
	}
	sort.Strings(modules)

	for _, module := range modules {
		facts := res[fact.ModuleName(module)]
		names := make([]string, 0, len(facts))
		for name := range facts {
			names = append(names, string(name))
		}
		sort.Strings(names)

		for _, name := range names {
			encoded, err := results.EncodeSlot(facts[fact.FactName(name)])
			if err != nil {
				return WrapExitError(ExitCommandError, "encode results", err)
			}
			fmt.Fprintf(formatter.Writer, "%s.%s = %s\n", module, name, encoded)
		}
	}
	return nil
}

// countErrors counts slots holding error values, entities included.
func countErrors(res results.Results) int {
	count := 0
	for _, facts := range res {
		for _, slot := range facts {
			switch s := slot.(type) {
			case results.Single:
				if fact.IsError(s.Value) {
					count++
				}
			case results.PerEntity:
				for _, v := range s {
					if fact.IsError(v) {
						count++
					}
				}
			}
		}
	}
	return count
}
