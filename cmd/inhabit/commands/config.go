package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/display"
	"github.com/teranos/inhabit/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate inhabit settings",
	Long: `Display and validate the expansion settings.

Configuration sources (in order of precedence):
1. Command line flags (--max-elements, --max-depth, --policy)
2. Environment variables (INHABIT_* prefix, e.g. INHABIT_MAX_DEPTH)
3. Project config (inhabit.toml, searched upward from the working directory)
4. Default values

Examples:
  inhabit config show                # Show current settings
  inhabit config show --format json  # Show settings as JSON
  inhabit config where               # Show which file was loaded
  inhabit config validate            # Validate current settings`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where settings are loaded from",
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current settings",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", display.FormatTOML, "Output format: toml, json, yaml, text")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	return display.Write(cmd.OutOrStdout(), configFormat, s, func(w io.Writer) {
		fmt.Fprintf(w, "max_elements  %d\n", s.MaxElements)
		fmt.Fprintf(w, "max_depth     %d\n", s.MaxDepth)
		fmt.Fprintf(w, "limit_policy  %s\n", s.LimitPolicy)
		fmt.Fprintf(w, "packs         %v\n", s.Packs)
	})
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fmt.Fprintf(w, "--config  %s\n", path)
		return nil
	}
	if path := config.FindProjectConfig(); path != "" {
		fmt.Fprintf(w, "project   %s\n", path)
	} else {
		fmt.Fprintf(w, "project   (no %s found)\n", config.FileName)
	}
	fmt.Fprintln(w, "env       INHABIT_*")
	fmt.Fprintln(w, "defaults  built in")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	s, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	if _, err := s.Config(); err != nil {
		return err
	}
	for _, name := range s.Packs {
		if _, ok := knownPacks[name]; !ok {
			return errors.NewConfigurationError("unknown pack %q (available: %v)", name, PackNames())
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ settings are valid")
	return nil
}
