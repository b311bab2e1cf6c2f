package commands

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/catalog"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/sym"
	"github.com/teranos/inhabit/typex"
)

// CatalogCmd shows the primitive value catalog.
var CatalogCmd = &cobra.Command{
	Use:   "catalog [name]",
	Short: sym.Catalog + " Show the primitive value catalog",
	Long: `Without arguments, list the primitive types and how many representative
values each has. With a name, print that type's values.

Examples:
  inhabit catalog
  inhabit catalog float
  inhabit catalog int8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 1 {
		a, ok := typex.DefaultScope()[args[0]]
		if !ok {
			return errors.NewConfigurationError("unknown primitive %q", args[0])
		}
		t, ok := a.(reflect.Type)
		var vals []any
		if ok {
			vals, ok = catalog.Values(t)
		}
		if !ok {
			return errors.NewConfigurationError("%s is not a catalog primitive", args[0])
		}
		for _, v := range vals {
			fmt.Fprintln(w, typex.Repr(v))
		}
		return nil
	}

	data := pterm.TableData{{"name", "type", "values"}}
	for _, e := range catalog.Default() {
		data = append(data, []string{e.Name, typex.Format(e.Type), strconv.Itoa(catalog.Len(e.Type))})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
