package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
	assert.False(t, IsConfigurationError(nil))
	assert.False(t, IsMissingTypeArgumentsError(nil))
}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		msg   string
	}{
		{
			name:  "configuration",
			err:   NewConfigurationError("got %d names for %d types", 2, 3),
			check: IsConfigurationError,
			msg:   "got 2 names for 3 types",
		},
		{
			name:  "missing type arguments",
			err:   NewMissingTypeArgumentsError("list"),
			check: IsMissingTypeArgumentsError,
			msg:   "list",
		},
		{
			name:  "unsupported",
			err:   NewUnsupportedTypeError("chan int"),
			check: IsUnsupportedTypeError,
			msg:   "no handler for chan int",
		},
		{
			name:  "not constructible",
			err:   NewNotConstructibleError("int", nil),
			check: IsNotConstructibleError,
			msg:   "attempted to cast int as callable",
		},
		{
			name:  "not implemented",
			err:   NewNotImplementedError("protocol Stringer"),
			check: IsNotImplementedError,
			msg:   "protocol Stringer",
		},
		{
			name:  "limit",
			err:   NewLimitExceededError("max depth", 8),
			check: IsLimitExceededError,
			msg:   "max depth 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, tt.check(tt.err))
			assert.Contains(t, tt.err.Error(), tt.msg)
		})
	}
}

func TestTaxonomy_Disjoint(t *testing.T) {
	err := NewMissingTypeArgumentsError("set")
	assert.False(t, IsUnsupportedTypeError(err))
	assert.False(t, IsConfigurationError(err))
	assert.False(t, IsNotConstructibleError(err))
}

func TestNewMissingTypeArgumentsError_Hint(t *testing.T) {
	err := NewMissingTypeArgumentsError("frozenset")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "frozenset[int]")
}

func TestNewNotConstructibleError_Detail(t *testing.T) {
	cause := New("expected 1 argument, got 2")
	err := NewNotConstructibleError("list", cause)

	details := GetAllDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "expected 1 argument, got 2", details[0])
}

func TestWrappedTaxonomySurvivesLayers(t *testing.T) {
	err := NewUnsupportedTypeError("func()")
	err = Wrap(err, "expanding argument b")
	err = Wrap(err, "parametrize TestThing")

	assert.True(t, IsUnsupportedTypeError(err))
	assert.Contains(t, err.Error(), "parametrize TestThing")
}

func ExampleNewMissingTypeArgumentsError() {
	err := NewMissingTypeArgumentsError("list")
	fmt.Println(err)
	// Output: list: missing type arguments
}
