package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/inhabit/errors"
)

// FileName is the project configuration file searched for upward from the
// working directory.
const FileName = "inhabit.toml"

// Settings is the file and environment form of the configuration.
type Settings struct {
	MaxElements int         `mapstructure:"max_elements" json:"max_elements" yaml:"max_elements" toml:"max_elements"`
	MaxDepth    int         `mapstructure:"max_depth" json:"max_depth" yaml:"max_depth" toml:"max_depth"`
	LimitPolicy string      `mapstructure:"limit_policy" json:"limit_policy" yaml:"limit_policy" toml:"limit_policy"`
	Packs       []string    `mapstructure:"packs" json:"packs" yaml:"packs" toml:"packs"`
	Log         LogSettings `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	JSON      bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" json:"verbosity" yaml:"verbosity" toml:"verbosity"`
}

// SetDefaults configures default values for all settings
func SetDefaults(v *viper.Viper) {
	v.SetDefault("max_elements", DefaultMaxElements) // 0 = unbounded
	v.SetDefault("max_depth", DefaultMaxDepth)
	v.SetDefault("limit_policy", string(DefaultPolicy))
	v.SetDefault("packs", []string{"wellknown"})

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

var globalSettings *Settings

// Load reads settings from defaults, the project inhabit.toml and
// INHABIT_* environment variables. The result is cached.
func Load() (*Settings, error) {
	if globalSettings != nil {
		return globalSettings, nil
	}
	v, err := NewViper(FindProjectConfig())
	if err != nil {
		return nil, err
	}
	s, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalSettings = s
	return s, nil
}

// Reset clears the cached settings (useful for testing)
func Reset() {
	globalSettings = nil
}

// NewViper returns a viper instance with defaults, environment binding and,
// when path is not empty, the given config file merged in. A file that is
// gone keeps the defaults; a file that cannot be read or parsed is an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("INHABIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrapf(err, "failed to read config file %s", path)
			}
		}
	}
	return v, nil
}

// LoadWithViper loads settings using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromFile loads settings from a specific file path
func LoadFromFile(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	s, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return s, nil
}

// FindProjectConfig walks up from the working directory looking for
// inhabit.toml. Returns the empty string when none is found.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(dir)
}

func findConfigFrom(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks that the settings are usable
func (s *Settings) Validate() error {
	// 0 = unbounded, negative = invalid
	if s.MaxElements < 0 {
		return errors.NewConfigurationError("max_elements must be >= 0, got %d", s.MaxElements)
	}
	if s.MaxDepth < 0 {
		return errors.NewConfigurationError("max_depth must be >= 0, got %d", s.MaxDepth)
	}
	if s.LimitPolicy != "" && !Policy(s.LimitPolicy).Valid() {
		return errors.NewConfigurationError("limit_policy must be %q or %q, got %q", PolicyError, PolicyTruncate, s.LimitPolicy)
	}
	if s.Log.Verbosity < 0 {
		return errors.NewConfigurationError("log.verbosity must be >= 0, got %d", s.Log.Verbosity)
	}
	return nil
}

// Config converts settings into an engine Config. Extra options are
// applied last.
func (s *Settings) Config(opts ...Option) (Config, error) {
	base := []Option{WithMaxElements(s.MaxElements), WithMaxDepth(s.MaxDepth)}
	if s.LimitPolicy != "" {
		base = append(base, WithPolicy(Policy(s.LimitPolicy)))
	}
	return New(append(base, opts...)...)
}
