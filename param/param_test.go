package param

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/catalog"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/expand"
	"github.com/teranos/inhabit/typex"
)

type point struct {
	X int
	Y string
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Names("a, b"))
	assert.Equal(t, []string{"a", "b"}, Names("a,b"))
	assert.Equal(t, []string{"a"}, Names("a"))
	assert.Empty(t, Names(""))
}

func TestCombine(t *testing.T) {
	got := Combine([][]any{{1, 2}, {"a", "b"}})
	assert.Equal(t, [][]any{{1, "a"}, {1, "b"}, {2, "a"}, {2, "b"}}, got)

	assert.Nil(t, Combine([][]any{{1}, {}}))
	assert.Equal(t, [][]any{{}}, Combine(nil))
}

func TestParametrize(t *testing.T) {
	e := expand.NewDefault()
	table, err := Parametrize(e, Names("flag, n"), []any{typex.Bool, typex.Literal(1, 2)})
	require.NoError(t, err)

	require.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"flag", "n"}, table.Names)
	assert.Equal(t, []any{true, 1}, table.Cases[0].Values)
	assert.Equal(t, []any{true, 2}, table.Cases[1].Values)
	assert.Equal(t, []any{false, 1}, table.Cases[2].Values)
	assert.Equal(t, "true, 1", table.Cases[0].ID)
}

func TestParametrize_SingleStringNames(t *testing.T) {
	table, err := Parametrize(expand.NewDefault(), []string{"a, b"}, []any{typex.Bool, typex.Bool})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Names)
	assert.Equal(t, 4, table.Len())
}

func TestParametrize_CountMismatch(t *testing.T) {
	calls := 0
	probe := func(bool) int { calls++; return 0 }

	_, err := Parametrize(expand.NewDefault(), Names("a, b"), []any{probe})
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Equal(t, 0, calls, "nothing is expanded on a count mismatch")
}

func TestParametrize_ExpansionErrorNamesArgument(t *testing.T) {
	_, err := Parametrize(expand.NewDefault(), Names("a, b"), []any{typex.Bool, typex.FormList})
	require.Error(t, err)
	assert.True(t, errors.IsMissingTypeArgumentsError(err))
	assert.Contains(t, err.Error(), "argument b")
}

func TestParametrize_IDs(t *testing.T) {
	e := expand.NewDefault()

	table, err := Parametrize(e, Names("a"), []any{typex.Bool}, WithIDs("yes", "no"))
	require.NoError(t, err)
	assert.Equal(t, "yes", table.Cases[0].ID)
	assert.Equal(t, "no", table.Cases[1].ID)

	_, err = Parametrize(e, Names("a"), []any{typex.Bool}, WithIDs("only"))
	assert.True(t, errors.IsConfigurationError(err))

	table, err = Parametrize(e, Names("a"), []any{typex.Bool}, WithIDFunc(func(v []any) string {
		return fmt.Sprintf("case-%v", v[0])
	}))
	require.NoError(t, err)
	assert.Equal(t, "case-true", table.Cases[0].ID)
}

func TestDefaultID(t *testing.T) {
	assert.Equal(t, `true, "a", nil`, DefaultID([]any{true, "a", nil}))
	assert.Equal(t, "", DefaultID(nil))
}

func TestCaseAccessors(t *testing.T) {
	c := Case{ID: "x", Names: []string{"a", "b", "c"}, Values: []any{1, "s", nil}}

	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "s", v)
	_, ok = c.Get("z")
	assert.False(t, ok)

	n, ok := Arg[int](c, "a")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = Arg[int](c, "b")
	assert.False(t, ok)

	p, ok := Arg[*int](c, "c")
	assert.True(t, ok)
	assert.Nil(t, p)

	assert.Equal(t, "s", MustArg[string](c, "b"))
	assert.Panics(t, func() { MustArg[string](c, "a") })
}

func TestRun(t *testing.T) {
	var seen []point
	Run(t, expand.NewDefault(), Names("p"), []any{reflect.TypeFor[point]()}, func(t *testing.T, c Case) {
		seen = append(seen, MustArg[point](c, "p"))
	})
	assert.Len(t, seen, catalog.Len(typex.Int)*catalog.Len(typex.Str))
}

func TestRun_PropertyOverAnnotations(t *testing.T) {
	Run(t, expand.NewDefault(), Names("n, s"), []any{typex.Int, typex.Optional(typex.Literal("a", "b"))},
		func(t *testing.T, c Case) {
			s, ok := Arg[string](c, "s")
			require.True(t, ok)
			assert.Contains(t, []string{"", "a", "b"}, s)
		})
}
