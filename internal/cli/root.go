// Package cli provides a cobra command tree over a host's fact namespace.
//
// The engine ships no binary of its own; a host declares its facts in a
// namespace and mounts the tree:
//
//	func main() {
//	    ns := declareFacts()
//	    cmd := cli.NewRootCommand(ns)
//	    if err := cmd.Execute(); err != nil {
//	        os.Exit(cli.GetExitCode(err))
//	    }
//	}
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/factgraph/internal/registry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Modules []string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command over a namespace.
func NewRootCommand(ns *registry.Namespace) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "factgraph",
		Short: "Evaluate and inspect a declared fact graph",
		Long:  "Evaluates input records against the host's fact declarations and answers structural queries about the graph.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringSliceVar(&opts.Modules, "modules", nil, "restrict to the named modules")

	cmd.AddCommand(NewEvalCommand(ns, opts))
	cmd.AddCommand(NewInputErrorsCommand(ns, opts))
	cmd.AddCommand(NewFactsCommand(ns, opts))
	cmd.AddCommand(NewQueryCommand(ns, opts))
	cmd.AddCommand(NewLintCommand(ns, opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
