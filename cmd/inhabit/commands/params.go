package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/param"
	"github.com/teranos/inhabit/sym"
	"github.com/teranos/inhabit/typex"
)

// ParamsCmd previews the test cases a parameter list produces.
var ParamsCmd = &cobra.Command{
	Use:   "params <names> <type>...",
	Short: sym.Params + " Preview the test cases for a typed parameter list",
	Long: `Expand each type and print the cartesian product as a table of cases,
the way param.Run would generate subtests.

Examples:
  inhabit params "flag, n" bool 'Literal[1, 2]'
  inhabit params "p" shapes.Point --pkg ./internal/shapes`,
	Args: cobra.MinimumNArgs(2),
	RunE: runParams,
}

var paramsFlags engineFlags

func init() {
	paramsFlags.register(ParamsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	engine, scope, err := paramsFlags.build(cmd)
	if err != nil {
		return err
	}
	types := make([]any, 0, len(args)-1)
	for _, expr := range args[1:] {
		a, err := typex.Parse(expr, scope)
		if err != nil {
			return err
		}
		types = append(types, a)
	}

	table, err := param.Parametrize(engine, []string{args[0]}, types)
	if err != nil {
		return err
	}

	data := pterm.TableData{append([]string{"id"}, table.Names...)}
	for _, c := range table.Cases {
		row := []string{c.ID}
		for _, v := range c.Values {
			row = append(row, typex.Repr(v))
		}
		data = append(data, row)
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	fmt.Fprintf(cmd.OutOrStdout(), "%d cases\n", table.Len())
	return nil
}
