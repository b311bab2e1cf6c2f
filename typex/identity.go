package typex

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var identityConfig = &spew.ConfigState{
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	SpewKeys:                true,
}

// Identity is the set-semantics key of an instance: its dynamic type and a
// deep rendering with map keys sorted. Two instances with the same identity
// are the same element of an expansion.
func Identity(v any) string {
	if fs, ok := v.(FrozenSetValue); ok {
		parts := make([]string, 0, len(fs.items))
		for _, it := range fs.items {
			parts = append(parts, Identity(it))
		}
		return "frozenset{" + strings.Join(parts, ", ") + "}"
	}
	return identityConfig.Sprintf("%#v", v)
}

// OrderedSet keeps the first occurrence of each identity in insertion order.
type OrderedSet struct {
	index map[string]struct{}
	items []any
}

func NewOrderedSet() *OrderedSet {
	return &OrderedSet{index: make(map[string]struct{})}
}

// Add inserts v and reports whether it was new.
func (s *OrderedSet) Add(v any) bool {
	k := Identity(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *OrderedSet) Contains(v any) bool {
	_, ok := s.index[Identity(v)]
	return ok
}

func (s *OrderedSet) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s *OrderedSet) Items() []any {
	return append([]any(nil), s.items...)
}
