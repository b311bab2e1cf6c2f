package source

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/catalog"
	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/expand"
	inhabittest "github.com/teranos/inhabit/internal/testing"
	"github.com/teranos/inhabit/typex"
	"github.com/teranos/inhabit/wellknown"
)

func loadShapes(t *testing.T) typex.Scope {
	t.Helper()
	scope, err := Load(".", "./testdata/shapes")
	require.NoError(t, err)
	return scope
}

func TestLoad_Struct(t *testing.T) {
	scope := loadShapes(t)

	cls, ok := scope["shapes.Point"].(*typex.Class)
	require.True(t, ok)
	assert.Same(t, cls, scope["Point"])
	assert.Equal(t, "shapes.Point", cls.Name)
	require.Len(t, cls.Params, 2, "unexported fields are skipped")
	assert.Equal(t, "X", cls.Params[0].Name)
	assert.Equal(t, reflect.TypeFor[int8](), cls.Params[0].Type)

	vals, err := expand.NewDefault().Expand(cls)
	require.NoError(t, err)
	n := catalog.Len(reflect.TypeFor[int8]())
	require.Len(t, vals, n*n)

	rec, ok := vals[0].(typex.Record)
	require.True(t, ok)
	assert.Equal(t, "shapes.Point", rec.Type)
	_, ok = rec.Get("Y")
	assert.True(t, ok)
}

func TestLoad_Enum(t *testing.T) {
	scope := loadShapes(t)

	vals, err := expand.NewDefault().Expand(scope["Color"])
	require.NoError(t, err)
	assert.Equal(t, []any{"red", "green", "blue"}, vals)
	assert.Equal(t, "shapes.Color", typex.Format(scope["Color"]))
}

func TestLoad_Nested(t *testing.T) {
	scope := loadShapes(t)

	full := typex.DefaultScope()
	full.Merge(scope)
	a, err := typex.Parse("shapes.Shape", full)
	require.NoError(t, err)

	n, err := expand.NewDefault().Count(a)
	require.NoError(t, err)
	points := catalog.Len(reflect.TypeFor[int8]())
	points *= points
	// Color × bool × (Point or nil)
	assert.Equal(t, 3*2*(points+1), n)
}

func TestLoad_Recursive(t *testing.T) {
	scope := loadShapes(t)

	strict := inhabittest.CreateTestEngine(t, nil, config.WithMaxDepth(3))
	_, err := strict.Count(scope["Node"])
	assert.Error(t, err)

	lenient := inhabittest.CreateTestEngine(t, nil, config.WithMaxDepth(3), config.WithPolicy(config.PolicyTruncate))
	n, err := lenient.Count(scope["Node"])
	require.NoError(t, err)
	assert.NotZero(t, n)
}

func TestLoad_OtherKinds(t *testing.T) {
	scope := loadShapes(t)

	tags, ok := scope["Tags"].(reflect.Type)
	require.True(t, ok)
	assert.Equal(t, reflect.Map, tags.Kind())
	assert.Equal(t, typex.FormSet, typex.Classify(tags).Base)

	p, ok := scope["Namer"].(*typex.Protocol)
	require.True(t, ok)
	assert.Equal(t, []string{"Name"}, p.Methods)
}

func TestLoad_StandardLibrary(t *testing.T) {
	scope, err := Load(".", "image", "time")
	require.NoError(t, err)
	e := expand.NewDefault()

	n, err := e.Count(scope["image.Point"])
	require.NoError(t, err)
	assert.Equal(t, catalog.Len(typex.Int)*catalog.Len(typex.Int), n)

	months, err := e.Expand(scope["time.Month"])
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, int(time.January), months[0])

	assert.Equal(t, wellknown.Time, scope["time.Time"])
	assert.Equal(t, wellknown.Duration, scope["time.Duration"])
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(".", "./testdata/missing")
	assert.Error(t, err)
}
