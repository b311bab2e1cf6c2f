package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/typex"
)

func testPack(name, requires string) Pack {
	return Pack{
		Name:     name,
		Version:  "0.1.0",
		Requires: requires,
		Install: func(r *Registry) error {
			return r.Register(Static("pack"), typex.Str)
		},
	}
}

func TestInstall(t *testing.T) {
	r := NewWithVersion("1.2.0")
	require.NoError(t, r.Install(testPack("strings", ">= 1.0.0, < 2.0.0")))

	assert.Equal(t, []string{"strings"}, r.Packs())
	assert.Equal(t, 1, r.Len(typex.Str))

	p, ok := r.Pack("strings")
	require.True(t, ok)
	assert.Equal(t, "0.1.0", p.Version)
}

func TestInstall_Rejects(t *testing.T) {
	tests := []struct {
		name string
		api  string
		pack Pack
	}{
		{"incompatible api", "2.0.0", testPack("old", "^1.0.0")},
		{"bad constraint", "1.0.0", testPack("bad", "not a constraint")},
		{"bad api version", "dev", testPack("any", ">= 1.0.0")},
		{"no name", "1.0.0", testPack("", "")},
		{"no installer", "1.0.0", Pack{Name: "empty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewWithVersion(tt.api)
			err := r.Install(tt.pack)
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Empty(t, r.Packs())
			assert.Empty(t, r.Keys())
		})
	}
}

func TestInstall_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Install(testPack("strings", "")))
	err := r.Install(testPack("strings", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already installed")
	assert.Equal(t, 1, r.Len(typex.Str))
}

func TestInstall_FailingInstallerIsRolledBack(t *testing.T) {
	r := New()
	err := r.Install(Pack{
		Name: "broken",
		Install: func(r *Registry) error {
			return r.Register(Static(), typex.List(typex.Int))
		},
	})
	require.Error(t, err)
	assert.Empty(t, r.Packs())

	// a later fixed install with the same name succeeds
	require.NoError(t, r.Install(testPack("broken", "")))
}
