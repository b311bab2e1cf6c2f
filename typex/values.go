package typex

import (
	"reflect"
	"sort"

	"github.com/teranos/inhabit/errors"
)

// TupleValue is an instance of an untyped tuple annotation.
type TupleValue []any

// SetValue is an instance of an untyped set annotation.
type SetValue map[any]struct{}

// NewSetValue builds a set, failing on unhashable members.
func NewSetValue(items ...any) (SetValue, error) {
	s := make(SetValue, len(items))
	for _, it := range items {
		if !Hashable(it) {
			return nil, errors.Newf("unhashable set member of type %T", it)
		}
		s[it] = struct{}{}
	}
	return s, nil
}

// FrozenSetValue is an immutable set. Members are held ordered by identity
// so equal sets render identically.
type FrozenSetValue struct {
	items []any
}

// NewFrozenSetValue builds a frozen set, failing on unhashable members.
func NewFrozenSetValue(items ...any) (FrozenSetValue, error) {
	s, err := NewSetValue(items...)
	if err != nil {
		return FrozenSetValue{}, err
	}
	out := make([]any, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return Identity(out[i]) < Identity(out[j]) })
	return FrozenSetValue{items: out}, nil
}

func (s FrozenSetValue) Len() int { return len(s.items) }

func (s FrozenSetValue) Contains(v any) bool {
	if !Hashable(v) {
		return false
	}
	for _, it := range s.items {
		if it == v {
			return true
		}
	}
	return false
}

// Items returns the members ordered by identity.
func (s FrozenSetValue) Items() []any {
	return append([]any(nil), s.items...)
}

// Record is the instance of a Class loaded from Go source.
type Record struct {
	Type   string
	Fields []Field
}

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Get returns the named field value.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Hashable reports whether v can be used as a map key without panicking.
func Hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
