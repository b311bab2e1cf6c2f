package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/display"
	"github.com/teranos/inhabit/sym"
	"github.com/teranos/inhabit/typex"
)

// ClassifyCmd shows how a type expression is classified and resolved.
var ClassifyCmd = &cobra.Command{
	Use:   "classify <type>",
	Short: sym.Classify + " Show the structural category of a type",
	Long: `Classify a type expression and show its category, base, arguments
and how many registry handlers are bound to its base.

Examples:
  inhabit classify 'Optional[int]'
  inhabit classify 'map[string]bool' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

var (
	classifyFlags  engineFlags
	classifyFormat string
)

func init() {
	classifyFlags.register(ClassifyCmd)
	ClassifyCmd.Flags().StringVar(&classifyFormat, "format", display.FormatText, "Output format: text, json, yaml, toml")
}

type classifyReport struct {
	Type     string   `json:"type" yaml:"type" toml:"type"`
	Category string   `json:"category" yaml:"category" toml:"category"`
	Base     string   `json:"base" yaml:"base" toml:"base"`
	Args     []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Handlers int      `json:"handlers" yaml:"handlers" toml:"handlers"`
	Override bool     `json:"override" yaml:"override" toml:"override"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	engine, scope, err := classifyFlags.build(cmd)
	if err != nil {
		return err
	}
	annotation, err := typex.Parse(args[0], scope)
	if err != nil {
		return err
	}

	d := typex.Classify(annotation)
	report := classifyReport{
		Type:     d.String(),
		Category: d.Category.String(),
		Base:     typex.Format(d.Base),
	}
	for _, a := range d.Args {
		report.Args = append(report.Args, typex.Format(a))
	}
	hs, _ := engine.Registry().Resolve(d)
	report.Handlers = len(hs)
	for _, key := range d.RegistryKeys() {
		if _, ok := engine.Config().Override(key); ok {
			report.Override = true
		}
	}

	return display.Write(cmd.OutOrStdout(), classifyFormat, report, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s  %s\n", sym.ForCategory(d.Category), report.Category, report.Type)
		fmt.Fprintf(w, "  base      %s\n", report.Base)
		for i, a := range report.Args {
			fmt.Fprintf(w, "  arg %-5d %s\n", i, a)
		}
		fmt.Fprintf(w, "  handlers  %d\n", report.Handlers)
	})
}
