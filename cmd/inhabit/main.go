package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/cmd/inhabit/commands"
	"github.com/teranos/inhabit/logger"
)

var rootCmd = &cobra.Command{
	Use:   "inhabit",
	Short: "inhabit - representative values for Go types",
	Long: `inhabit - expand types into the finite sets of values that inhabit them.

Available commands:
  expand   - List the representative values of a type expression
  params   - Preview the test cases for a typed parameter list
  classify - Show the structural category of a type
  catalog  - Show the primitive value catalog
  packs    - List handler packs
  config   - Show and validate settings
  version  - Show version information

Examples:
  inhabit expand 'dict[bool, Optional[int8]]'
  inhabit expand shapes.Shape --pkg ./internal/shapes --count
  inhabit params "flag, n" bool 'Literal[1, 2]'
  inhabit config show`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs := false
		if s, err := commands.LoadSettings(cmd); err == nil {
			verbosity = max(verbosity, s.Log.Verbosity)
			jsonLogs = s.Log.JSON
		}
		if err := logger.InitializeWithVerbosity(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default: inhabit.toml searched upward)")

	rootCmd.AddCommand(commands.ExpandCmd)
	rootCmd.AddCommand(commands.ParamsCmd)
	rootCmd.AddCommand(commands.ClassifyCmd)
	rootCmd.AddCommand(commands.CatalogCmd)
	rootCmd.AddCommand(commands.PacksCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
