// Package param turns a typed parameter list into test cases.
//
// Each annotation is expanded independently and the case list is the
// cartesian product of the expansions, last position varying fastest:
//
//	param.Run(t, engine, param.Names("a, b"), []any{typex.Bool, typex.Int},
//	    func(t *testing.T, c param.Case) {
//	        a := param.MustArg[bool](c, "a")
//	        ...
//	    })
//
// A count mismatch between names and annotations is reported before any
// expansion takes place.
package param

import (
	"strings"
	"testing"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/expand"
	"github.com/teranos/inhabit/internal/util"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/typex"
)

// Case is one argument tuple.
type Case struct {
	ID     string
	Names  []string
	Values []any
}

// Get returns the value bound to name.
func (c Case) Get(name string) (any, bool) {
	for i, n := range c.Names {
		if n == name {
			return c.Values[i], true
		}
	}
	return nil, false
}

// Arg returns the value bound to name as T. ok is false when the name is
// unknown or the value is not a T. A nil value yields the zero T and true.
func Arg[T any](c Case, name string) (T, bool) {
	var zero T
	v, ok := c.Get(name)
	if !ok {
		return zero, false
	}
	if v == nil {
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

// MustArg is like Arg but panics when the value is missing or mistyped.
func MustArg[T any](c Case, name string) T {
	v, ok := Arg[T](c, name)
	if !ok {
		panic(errors.Newf("case %s: no %T argument named %q", c.ID, v, name))
	}
	return v
}

// Table is the full set of cases for one parameter list.
type Table struct {
	Names []string
	Cases []Case
}

func (t *Table) Len() int { return len(t.Cases) }

// Names splits a comma-separated name list: "a, b" gives [a b].
func Names(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type options struct {
	ids    []string
	idFunc func(values []any) string
}

// Option customizes parametrization.
type Option func(*options)

// WithIDs sets explicit case ids. Their count must match the case count.
func WithIDs(ids ...string) Option {
	return func(o *options) { o.ids = ids }
}

// WithIDFunc derives each case id from its values.
func WithIDFunc(fn func(values []any) string) Option {
	return func(o *options) {
		if fn != nil {
			o.idFunc = fn
		}
	}
}

// DefaultID joins the Go-syntax rendering of each value with ", ".
func DefaultID(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = typex.Repr(v)
	}
	return strings.Join(parts, ", ")
}

// Parametrize expands every annotation with e and returns the product of
// the expansions as cases. A single name containing commas is split.
func Parametrize(e *expand.Engine, names []string, types []any, opts ...Option) (*Table, error) {
	if len(names) == 1 && strings.Contains(names[0], ",") {
		names = Names(names[0])
	}
	if len(names) != len(types) {
		return nil, errors.NewConfigurationError("got %d argument names for %d types", len(names), len(types))
	}
	o := options{idFunc: DefaultID}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.ComponentLogger("param")
	sets := make([][]any, len(types))
	for i, typ := range types {
		vals, err := e.Expand(typ)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %s", names[i])
		}
		sets[i] = vals
	}

	combos := Combine(sets)
	if o.ids != nil && len(o.ids) != len(combos) {
		return nil, errors.NewConfigurationError("got %d ids for %d cases", len(o.ids), len(combos))
	}

	table := &Table{Names: append([]string(nil), names...), Cases: make([]Case, len(combos))}
	for i, values := range combos {
		var id string
		if o.ids != nil {
			id = o.ids[i]
		} else {
			id = o.idFunc(values)
		}
		table.Cases[i] = Case{ID: id, Names: table.Names, Values: values}
	}
	log.Debugw("parametrized",
		logger.FieldArgNames, strings.Join(names, ", "),
		logger.FieldCases, len(table.Cases))
	return table, nil
}

// Combine is the cartesian product of sets, last position varying fastest.
func Combine(sets [][]any) [][]any {
	var out [][]any
	for combo := range util.Cartesian(sets) {
		out = append(out, combo)
	}
	return out
}

// Run parametrizes and runs fn as one subtest per case. A parametrization
// error fails t before any subtest starts.
func Run(t *testing.T, e *expand.Engine, names []string, types []any, fn func(t *testing.T, c Case), opts ...Option) {
	t.Helper()
	table, err := Parametrize(e, names, types, opts...)
	if err != nil {
		t.Fatalf("parametrize %s: %v", strings.Join(names, ", "), err)
	}
	for _, c := range table.Cases {
		t.Run(c.ID, func(t *testing.T) {
			fn(t, c)
		})
	}
}
