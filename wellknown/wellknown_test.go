package wellknown

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/inhabit/expand"
	inhabittest "github.com/teranos/inhabit/internal/testing"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

type event struct {
	ID  uuid.UUID
	At  time.Time
	TTL time.Duration
}

func engine(t *testing.T) *expand.Engine {
	t.Helper()
	return inhabittest.CreateTestEngine(t, []registry.Pack{Pack()})
}

func TestInstall(t *testing.T) {
	e := engine(t)
	assert.Equal(t, []string{Name}, e.Registry().Packs())

	tests := []struct {
		name string
		typ  reflect.Type
		want int
	}{
		{"uuid", UUID, len(UUIDs())},
		{"time", Time, len(Times())},
		{"duration", Duration, len(Durations())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := e.Count(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestValuesAreDistinct(t *testing.T) {
	for _, vals := range [][]any{UUIDs(), Times(), Durations()} {
		s := typex.NewOrderedSet()
		for _, v := range vals {
			assert.True(t, s.Add(v), typex.Repr(v))
		}
	}
}

func TestUUIDs(t *testing.T) {
	ids := UUIDs()
	assert.Equal(t, uuid.Nil, ids[0])
	assert.Equal(t, uuid.Version(5), ids[3].(uuid.UUID).Version())
}

func TestStructOfWellKnownTypes(t *testing.T) {
	n, err := engine(t).Count(reflect.TypeFor[event]())
	require.NoError(t, err)
	assert.Equal(t, len(UUIDs())*len(Times())*len(Durations()), n)
}

func TestWithoutPack(t *testing.T) {
	e := expand.NewDefault()

	// Duration is a named int64 and falls back to the int catalog
	vals, err := e.Expand(Duration)
	require.NoError(t, err)
	assert.Contains(t, vals, time.Duration(-1))

	// UUID is a byte array: a 16-tuple of uint8
	_, ok := e.Registry().Lookup(UUID)
	assert.False(t, ok)
}

func TestScope(t *testing.T) {
	scope := typex.DefaultScope()
	scope.Merge(Scope())

	a, err := typex.Parse("dict[uuid.UUID, time.Duration]", scope)
	require.NoError(t, err)

	n, err := engine(t).Count(a)
	require.NoError(t, err)
	assert.Equal(t, len(UUIDs())*len(Durations()), n)
}

func TestInstallTwiceFails(t *testing.T) {
	r := expand.DefaultRegistry()
	require.NoError(t, r.Install(Pack()))
	assert.Error(t, r.Install(Pack()))
}
