package typex

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		same bool
	}{
		{"equal ints", 1, 1, true},
		{"int vs int64", 1, int64(1), false},
		{"positive and negative zero", 0.0, math.Copysign(0, -1), false},
		{"nan equals nan", math.NaN(), math.NaN(), true},
		{"equal slices", []int{1}, []int{1}, true},
		{"maps ignore insertion order", map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}, true},
		{"nil vs zero", nil, 0, false},
		{"bytes", []byte("a"), []byte("b"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, Identity(tt.a) == Identity(tt.b))
		})
	}
}

func TestIdentity_FrozenSet(t *testing.T) {
	frozen := func(items ...any) FrozenSetValue {
		fs, err := NewFrozenSetValue(items...)
		require.NoError(t, err)
		return fs
	}

	assert.NotEqual(t, Identity(frozen(1)), Identity(frozen(2)))
	assert.NotEqual(t, Identity(frozen(1)), Identity(frozen(1, 2)))
	assert.NotEqual(t, Identity(frozen()), Identity(frozen(nil)))
	assert.Equal(t, Identity(frozen(1, 2)), Identity(frozen(2, 1)))
	assert.True(t, strings.HasPrefix(Identity(frozen(1)), "frozenset{"))
	assert.NotContains(t, Identity(frozen("a")), "PANIC")

	// nested inside a container
	assert.NotEqual(t, Identity(TupleValue{frozen("a")}), Identity(TupleValue{frozen("b")}))

	s := NewOrderedSet()
	for _, v := range []string{"a", "b", "a"} {
		s.Add(frozen(v))
	}
	assert.Equal(t, 2, s.Len())
}

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet()
	assert.True(t, s.Add(2))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(2))
	assert.True(t, s.Add([]int{1}))
	assert.False(t, s.Add([]int{1}))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []any{2, 1, []int{1}}, s.Items())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(3))
}

func TestSetValues(t *testing.T) {
	s, err := NewSetValue(1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, s, 2)

	_, err = NewSetValue([]int{1})
	assert.Error(t, err)

	fs, err := NewFrozenSetValue("b", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, fs.Len())
	assert.True(t, fs.Contains("a"))
	assert.False(t, fs.Contains([]int{1}))
	assert.Equal(t, []any{"a", "b"}, fs.Items())
}

func TestHashable(t *testing.T) {
	assert.True(t, Hashable(nil))
	assert.True(t, Hashable(1))
	assert.False(t, Hashable([]int{}))
	assert.False(t, Hashable(map[any]any{}))
	assert.False(t, Hashable(TupleValue{1}))
}
