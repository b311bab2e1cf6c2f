package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/expand"
	"github.com/teranos/inhabit/sym"
	"github.com/teranos/inhabit/version"
)

// PacksCmd lists the available handler packs.
var PacksCmd = &cobra.Command{
	Use:   "packs",
	Short: sym.Packs + " List handler packs",
	Long: `List the handler packs this binary ships with, their version and
handler API constraint, and whether the settings enable them.`,
	RunE: runPacks,
}

func runPacks(cmd *cobra.Command, args []string) error {
	s, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	enabled := make(map[string]bool, len(s.Packs))
	for _, n := range s.Packs {
		enabled[n] = true
	}

	data := pterm.TableData{{"name", "version", "requires", "enabled", "description"}}
	for _, name := range PackNames() {
		p := knownPacks[name].build()
		status := "no"
		if enabled[name] {
			// installing into a scratch registry checks the API constraint
			if err := expand.DefaultRegistry().Install(p); err != nil {
				status = "incompatible"
			} else {
				status = "yes"
			}
		}
		data = append(data, []string{p.Name, p.Version, p.Requires, status, p.Description})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	fmt.Fprintf(cmd.OutOrStdout(), "handler API %s\n", version.API)
	return nil
}
