package config

import (
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

func nothing(registry.Expander, typex.Descriptor) iter.Seq2[any, error] {
	return registry.Values()
}

// =============================================================================
// Config
// =============================================================================

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 0, c.MaxElements())
	assert.Equal(t, 8, c.MaxDepth())
	assert.Equal(t, PolicyError, c.Policy())
	assert.Equal(t, 0, c.Overrides())

	assert.Equal(t, PolicyError, Config{}.Policy())
}

func TestNew(t *testing.T) {
	c, err := New(WithMaxElements(5), WithMaxDepth(5), WithPolicy(PolicyTruncate), WithOverride(typex.Int, nothing))
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxElements())
	assert.Equal(t, 5, c.MaxDepth())
	assert.Equal(t, PolicyTruncate, c.Policy())

	_, ok := c.Override(typex.Int)
	assert.True(t, ok)
	_, ok = c.Override(typex.Str)
	assert.False(t, ok)
	_, ok = c.Override([]int{})
	assert.False(t, ok)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative elements", WithMaxElements(-1)},
		{"negative depth", WithMaxDepth(-1)},
		{"unknown policy", WithPolicy("explode")},
		{"ambiguous override", WithOverride(typex.List(typex.Int), nothing)},
		{"nil override", WithOverride(typex.Int, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(WithMaxDepth(-1)) })
}

func TestWith_DoesNotMutateOriginal(t *testing.T) {
	base := MustNew(WithOverride(typex.Int, nothing))
	derived, err := base.With(WithOverride(typex.Str, nothing), WithMaxElements(3))
	require.NoError(t, err)

	assert.Equal(t, 1, base.Overrides())
	assert.Equal(t, 0, base.MaxElements())
	assert.Equal(t, 2, derived.Overrides())
	assert.Equal(t, 3, derived.MaxElements())
}

// =============================================================================
// Settings
// =============================================================================

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
max_elements = 100
limit_policy = "truncate"
packs = []

[log]
verbosity = 2
`)
	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100, s.MaxElements)
	assert.Equal(t, DefaultMaxDepth, s.MaxDepth, "unset keys keep defaults")
	assert.Equal(t, "truncate", s.LimitPolicy)
	assert.Empty(t, s.Packs)
	assert.Equal(t, 2, s.Log.Verbosity)

	c, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, 100, c.MaxElements())
	assert.Equal(t, PolicyTruncate, c.Policy())
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), `limit_policy = "explode"`)
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestLoadWithViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 0, s.MaxElements)
	assert.Equal(t, 8, s.MaxDepth)
	assert.Equal(t, "error", s.LimitPolicy)
	assert.Equal(t, []string{"wellknown"}, s.Packs)
}

func TestNewViper_Env(t *testing.T) {
	t.Setenv("INHABIT_MAX_DEPTH", "3")
	t.Setenv("INHABIT_LOG_JSON", "true")

	v, err := NewViper("")
	require.NoError(t, err)
	s, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, s.MaxDepth)
	assert.True(t, s.Log.JSON)
}

func TestNewViper_ProjectFile(t *testing.T) {
	v, err := NewViper(writeConfig(t, t.TempDir(), "max_depth = 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, v.GetInt("max_depth"))

	v, err = NewViper(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err, "a vanished file keeps the defaults")
	assert.Equal(t, DefaultMaxDepth, v.GetInt("max_depth"))

	_, err = NewViper(writeConfig(t, t.TempDir(), "max_depth = [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "packs = \"unterminated\n")
	t.Chdir(dir)
	Reset()
	t.Cleanup(Reset)

	_, err := Load()
	assert.Error(t, err)
}

func TestFindConfigFrom_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "max_depth = 4\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, want, findConfigFrom(nested))
	assert.Equal(t, "", findConfigFrom(t.TempDir()))
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"zero value", Settings{}, false},
		{"truncate", Settings{LimitPolicy: "truncate"}, false},
		{"negative elements", Settings{MaxElements: -1}, true},
		{"negative depth", Settings{MaxDepth: -2}, true},
		{"bad policy", Settings{LimitPolicy: "loud"}, true},
		{"negative verbosity", Settings{Log: LogSettings{Verbosity: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Cached(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
