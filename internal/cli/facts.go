package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/graph"
	"github.com/roach88/factgraph/internal/registry"
)

// FactInfo is the JSON shape of one declaration in facts output.
type FactInfo struct {
	Module     string   `json:"module"`
	Name       string   `json:"name"`
	PerEntity  string   `json:"per_entity,omitempty"`
	AllowUnmet bool     `json:"allow_unmet_dependencies,omitempty"`
	Constant   bool     `json:"constant,omitempty"`
	Inputs     []string `json:"inputs,omitempty"`
	DependsOn  []string `json:"depends_on,omitempty"`
	Source     string   `json:"source,omitempty"`
}

// NewFactsCommand creates the facts command.
func NewFactsCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facts",
		Short: "List the declared facts",
		Long:  "List every fact declaration in registry order: module, name, entity expansion, inputs, and dependencies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacts(ns, rootOpts, cmd)
		},
	}
}

func runFacts(ns *registry.Namespace, opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	defs := registry.Filter(ns.Defs(), moduleNames(opts.Modules)...)

	infos := make([]FactInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, describe(def))
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	for _, info := range infos {
		var attrs []string
		if info.Constant {
			attrs = append(attrs, "constant")
		}
		if info.PerEntity != "" {
			attrs = append(attrs, "per_entity="+info.PerEntity)
		}
		if info.AllowUnmet {
			attrs = append(attrs, "allow_unmet_dependencies")
		}
		if len(info.Inputs) > 0 {
			attrs = append(attrs, "inputs="+strings.Join(info.Inputs, ","))
		}
		if len(info.DependsOn) > 0 {
			attrs = append(attrs, "depends_on="+strings.Join(info.DependsOn, ","))
		}
		line := fmt.Sprintf("%s.%s", info.Module, info.Name)
		if len(attrs) > 0 {
			line += "  [" + strings.Join(attrs, " ") + "]"
		}
		fmt.Fprintln(formatter.Writer, line)
		formatter.VerboseLog("  declared at %s", info.Source)
	}
	return nil
}

func describe(def *fact.FactDef) FactInfo {
	info := FactInfo{
		Module:     string(def.Module),
		Name:       string(def.Name),
		PerEntity:  string(def.PerEntity),
		AllowUnmet: def.AllowUnmetDependencies,
		Constant:   def.IsConstant,
	}
	for _, in := range def.Inputs {
		name := string(in.Name)
		if in.PerEntity {
			name += " (per_entity)"
		}
		info.Inputs = append(info.Inputs, name)
	}
	for _, ref := range def.Dependencies {
		info.DependsOn = append(info.DependsOn, fmt.Sprintf("%s.%s", ref.Module, ref.Name))
	}
	if def.Source.File != "" {
		info.Source = fmt.Sprintf("%s:%d", def.Source.File, def.Source.Line)
	}
	return info
}

// NewLintCommand creates the lint command.
func NewLintCommand(ns *registry.Namespace, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the declarations for dependency cycles",
		Long: `Run static cycle analysis over the registry. A cycle is a declaration
defect: evaluation assumes an acyclic dependency set and recurses without
bound on cycles. Exits 1 when any cycle is found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(ns, rootOpts, cmd)
		},
	}
}

func runLint(ns *registry.Namespace, opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	defs := registry.Filter(ns.Defs(), moduleNames(opts.Modules)...)

	warnings := graph.AnalyzeCycles(defs)
	if formatter.Format == "json" {
		if err := formatter.Success(warnings); err != nil {
			return err
		}
	} else {
		if len(warnings) == 0 {
			fmt.Fprintln(formatter.Writer, "no cycles")
		}
		for _, w := range warnings {
			fmt.Fprintln(formatter.Writer, w.Message)
		}
	}

	if len(warnings) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d cycle(s) found", len(warnings)))
	}
	return nil
}
