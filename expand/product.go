package expand

import (
	"iter"
	"strings"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/internal/util"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

// Constructor builds one instance from an argument combination.
type Constructor struct {
	Name  string
	Build func(args []any) (any, error)
}

// Expanded pairs a constructor with one argument combination. It is
// immutable; Materialize may be called any number of times.
type Expanded struct {
	ctor Constructor
	args []any
}

// NewExpanded copies args.
func NewExpanded(c Constructor, args []any) Expanded {
	return Expanded{ctor: c, args: append([]any(nil), args...)}
}

func (x Expanded) Base() string { return x.ctor.Name }

// Args returns a copy of the combination.
func (x Expanded) Args() []any { return append([]any(nil), x.args...) }

// Key is equal for equal (base, args) pairs.
func (x Expanded) Key() string {
	parts := make([]string, len(x.args))
	for i, a := range x.args {
		parts[i] = typex.Identity(a)
	}
	return x.ctor.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Materialize applies the constructor to the combination.
func (x Expanded) Materialize() (any, error) {
	if x.ctor.Build == nil {
		return nil, errors.NewNotConstructibleError(x.ctor.Name, errors.New("no constructor"))
	}
	v, err := x.ctor.Build(x.Args())
	if err != nil {
		if errors.IsNotConstructibleError(err) {
			return nil, err
		}
		return nil, errors.NewNotConstructibleError(x.ctor.Name, err)
	}
	return v, nil
}

// Combinations streams the cartesian product of the instances of each
// annotation in dims, last position varying fastest. Each dimension is
// expanded once and buffered. An empty dimension empties the product; no
// dimensions give one empty combination.
func Combinations(x registry.Expander, dims []any) iter.Seq2[[]any, error] {
	return func(yield func([]any, error) bool) {
		sets := make([][]any, len(dims))
		for i, dim := range dims {
			for v, err := range x.Instances(dim) {
				if err != nil {
					yield(nil, err)
					return
				}
				sets[i] = append(sets[i], v)
			}
			if len(sets[i]) == 0 {
				return
			}
		}
		for combo := range util.Cartesian(sets) {
			if !yield(combo, nil) {
				return
			}
		}
	}
}

// Product streams c applied to every combination of dims.
func Product(x registry.Expander, dims []any, c Constructor) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for combo, err := range Combinations(x, dims) {
			if err != nil {
				yield(nil, err)
				return
			}
			v, err := Expanded{ctor: c, args: combo}.Materialize()
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// trimEllipsis drops a trailing ellipsis: tuple[int, ...] has one
// dimension.
func trimEllipsis(args []any) []any {
	if n := len(args); n > 0 && args[n-1] == typex.Ellipsis {
		return args[:n-1]
	}
	return args
}
