package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/display"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/sym"
	"github.com/teranos/inhabit/typex"
)

// ExpandCmd expands a type expression into its representative values.
var ExpandCmd = &cobra.Command{
	Use:   "expand <type>",
	Short: sym.Expand + " List the representative values of a type",
	Long: `Expand a type expression into the finite set of representative values
that inhabit it.

Type expressions use Go syntax over the inhabit vocabulary:

  inhabit expand bool
  inhabit expand 'dict[bool, Literal["a", "b"]]'
  inhabit expand 'Optional[int8]' --format json
  inhabit expand 'tuple[bool, ...]'
  inhabit expand '[2]bool'
  inhabit expand shapes.Shape --pkg ./internal/shapes --count`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var (
	expandFlags  engineFlags
	expandFormat string
	expandCount  bool
)

func init() {
	expandFlags.register(ExpandCmd)
	ExpandCmd.Flags().StringVar(&expandFormat, "format", display.FormatText, "Output format: text, json, yaml, toml")
	ExpandCmd.Flags().BoolVar(&expandCount, "count", false, "Print only the number of instances")
}

// expandReport is the structured output of the expand command.
type expandReport struct {
	Type      string   `json:"type" yaml:"type" toml:"type"`
	Count     int      `json:"count" yaml:"count" toml:"count"`
	Instances []string `json:"instances,omitempty" yaml:"instances,omitempty" toml:"instances,omitempty"`
}

func runExpand(cmd *cobra.Command, args []string) error {
	engine, scope, err := expandFlags.build(cmd)
	if err != nil {
		return err
	}
	annotation, err := typex.Parse(args[0], scope)
	if err != nil {
		return err
	}

	report := expandReport{Type: typex.Format(annotation)}
	if expandCount {
		report.Count, err = engine.Count(annotation)
		if err != nil {
			return err
		}
	} else {
		for v, err := range engine.Instances(annotation) {
			if err != nil {
				return err
			}
			report.Instances = append(report.Instances, typex.Repr(v))
		}
		report.Count = len(report.Instances)
	}
	logger.Debugw("expanded",
		logger.FieldType, report.Type,
		logger.FieldCount, report.Count)

	return display.Write(cmd.OutOrStdout(), expandFormat, report, func(w io.Writer) {
		if expandCount {
			fmt.Fprintln(w, report.Count)
			return
		}
		for _, s := range report.Instances {
			fmt.Fprintln(w, s)
		}
	})
}
