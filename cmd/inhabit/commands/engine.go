package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/expand"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/source"
	"github.com/teranos/inhabit/typex"
	"github.com/teranos/inhabit/wellknown"
)

// pack is a handler pack the CLI can install by name.
type pack struct {
	build func() registry.Pack
	scope func() typex.Scope
}

var knownPacks = map[string]pack{
	wellknown.Name: {build: wellknown.Pack, scope: wellknown.Scope},
}

// PackNames lists the packs that can be named in settings.
func PackNames() []string {
	names := make([]string, 0, len(knownPacks))
	for n := range knownPacks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadSettings reads settings from --config when given, otherwise from the
// project file and environment.
func LoadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// engineFlags are the limit flags shared by expand and params.
type engineFlags struct {
	maxElements int
	maxDepth    int
	policy      string
	pkgs        []string
	dir         string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxElements, "max-elements", 0, "Maximum instances in the top-level stream (0 = unbounded)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum nesting depth")
	cmd.Flags().StringVar(&f.policy, "policy", "", "Limit policy: error, truncate")
	cmd.Flags().StringSliceVar(&f.pkgs, "pkg", nil, "Go package patterns whose types are added to the scope")
	cmd.Flags().StringVar(&f.dir, "dir", ".", "Directory the --pkg patterns are resolved from")
}

// build returns an engine configured from settings and flags, and the scope
// type expressions are parsed in.
func (f *engineFlags) build(cmd *cobra.Command) (*expand.Engine, typex.Scope, error) {
	s, err := LoadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	var opts []config.Option
	if cmd.Flags().Changed("max-elements") {
		opts = append(opts, config.WithMaxElements(f.maxElements))
	}
	if cmd.Flags().Changed("max-depth") {
		opts = append(opts, config.WithMaxDepth(f.maxDepth))
	}
	if cmd.Flags().Changed("policy") {
		opts = append(opts, config.WithPolicy(config.Policy(f.policy)))
	}
	cfg, err := s.Config(opts...)
	if err != nil {
		return nil, nil, err
	}

	reg := expand.DefaultRegistry()
	scope := typex.DefaultScope()
	for _, name := range s.Packs {
		p, ok := knownPacks[name]
		if !ok {
			return nil, nil, errors.NewConfigurationError("unknown pack %q (available: %v)", name, PackNames())
		}
		if err := reg.Install(p.build()); err != nil {
			return nil, nil, err
		}
		scope.Merge(p.scope())
		logger.Debugw("installed pack", logger.FieldPack, name)
	}

	if len(f.pkgs) > 0 {
		loaded, err := source.Load(f.dir, f.pkgs...)
		if err != nil {
			return nil, nil, err
		}
		scope.Merge(loaded)
	}
	return expand.New(reg, cfg), scope, nil
}
