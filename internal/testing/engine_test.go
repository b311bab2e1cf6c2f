package testing

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

func TestCreateTestEngine(t *testing.T) {
	key := reflect.TypeFor[struct{ A, B bool }]()
	p := registry.Pack{
		Name:    "fixed",
		Version: "1.0.0",
		Install: func(r *registry.Registry) error {
			return r.Register(registry.Static("fixed"), key)
		},
	}
	e := CreateTestEngine(t, []registry.Pack{p}, config.WithMaxElements(1))

	assert.Equal(t, []string{"fixed"}, e.Registry().Packs())
	assert.Equal(t, 1, e.Config().MaxElements())

	vals, err := e.Expand(key)
	require.NoError(t, err)
	assert.Equal(t, []any{"fixed"}, vals)

	_, err = e.Expand(typex.Bool)
	assert.Error(t, err, "two booleans exceed the element limit")
}
