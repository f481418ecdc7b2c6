package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/factgraph/internal/evaluator"
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/graph"
	"github.com/roach88/factgraph/internal/keypath"
	"github.com/roach88/factgraph/internal/registry"
)

// NewQueryCommand creates the query command with its uses/deps/leaves
// subcommands.
func NewQueryCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Structural queries over the fact graph",
	}
	cmd.AddCommand(newUsesCommand(ns, rootOpts))
	cmd.AddCommand(newDepsCommand(ns, rootOpts))
	cmd.AddCommand(newLeavesCommand(ns, rootOpts))
	return cmd
}

func newUsesCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uses <key-path>",
		Short: "Facts whose schemas read a key path",
		Long: `List every fact whose input schemas accept the key path, exactly or as
a prefix of a deeper accepted path. Key paths use dotted form with bracket
indices: circles[0].radius (a bare integer segment is an index).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFactQuery(rootOpts, cmd, args[0], func(path keypath.KeyPath) []*graph.Fact {
				return evaluator.New(ns).FactsUsingInput(path, moduleNames(rootOpts.Modules)...)
			})
		},
	}
}

func newLeavesCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leaves <key-path>",
		Short: "Leaf facts transitively depending on a key path",
		Long: `Walk downstream from every fact reading the key path and list the facts
nothing else depends on - the outputs a change to this input can affect.
This is the query progressive data-collection UIs build on.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFactQuery(rootOpts, cmd, args[0], func(path keypath.KeyPath) []*graph.Fact {
				return evaluator.New(ns).LeafFactsDependingOnInput(path, moduleNames(rootOpts.Modules)...)
			})
		},
	}
}

func newDepsCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "deps <module> <fact>",
		Short:         "Facts that depend on a fact",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			facts := evaluator.New(ns).FactsWithDependency(
				fact.ModuleName(args[0]),
				fact.FactName(args[1]),
				moduleNames(rootOpts.Modules)...,
			)
			return writeFactList(formatter, facts)
		},
	}
}

func runFactQuery(opts *RootOptions, cmd *cobra.Command, rawPath string, query func(keypath.KeyPath) []*graph.Fact) error {
	formatter := opts.formatter(cmd)

	path, err := keypath.Parse(rawPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "parse key path", err)
	}
	return writeFactList(formatter, query(path))
}

func writeFactList(formatter *OutputFormatter, facts []*graph.Fact) error {
	if formatter.Format == "json" {
		coords := make([]string, len(facts))
		for i, f := range facts {
			coords[i] = fmt.Sprintf("%s.%s", f.Module, f.Name)
		}
		return formatter.Success(coords)
	}

	if len(facts) == 0 {
		fmt.Fprintln(formatter.Writer, "no facts")
		return nil
	}
	for _, f := range facts {
		fmt.Fprintf(formatter.Writer, "%s.%s\n", f.Module, f.Name)
	}
	return nil
}
