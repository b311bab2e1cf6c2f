package expand

import (
	"iter"
	"reflect"

	"github.com/teranos/inhabit/catalog"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

// DefaultRegistry returns a new registry with the builtin handlers.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds the handlers for primitives, special forms, sums
// and products to r.
func RegisterBuiltins(r *registry.Registry) {
	r.MustRegister(catalogHandler,
		typex.None, typex.Bool, typex.Str, typex.Bytes,
		reflect.TypeFor[int](), reflect.TypeFor[int8](), reflect.TypeFor[int16](),
		reflect.TypeFor[int32](), reflect.TypeFor[int64](),
		reflect.TypeFor[uint](), reflect.TypeFor[uint8](), reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](), reflect.TypeFor[uint64](), reflect.TypeFor[uintptr](),
		reflect.TypeFor[float32](), reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](), reflect.TypeFor[complex128](),
	)
	r.MustRegister(literalHandler, typex.FormLiteral)
	r.MustRegister(anyHandler, typex.FormAny)
	r.MustRegister(ellipsisHandler, typex.FormEllipsis)
	r.MustRegister(unionHandler, typex.FormUnion, typex.FormOptional)
	r.MustRegister(enumHandler, typex.FormEnum)
	r.MustRegister(listHandler, typex.FormList)
	r.MustRegister(setHandler, typex.FormSet)
	r.MustRegister(frozenSetHandler, typex.FormFrozenSet)
	r.MustRegister(dictHandler, typex.FormDict)
	r.MustRegister(tupleHandler, typex.FormTuple)
}

func catalogHandler(_ registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	t, _ := d.Base.(reflect.Type)
	vals, ok := catalog.Values(t)
	if !ok {
		return registry.Fail(errors.NewUnsupportedTypeError(d.String()))
	}
	return registry.Values(vals...)
}

func literalHandler(_ registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return registry.Values(d.Args...)
}

func ellipsisHandler(registry.Expander, typex.Descriptor) iter.Seq2[any, error] {
	return registry.Values()
}

// anyHandler is the union of every catalog set.
func anyHandler(x registry.Expander, _ typex.Descriptor) iter.Seq2[any, error] {
	entries := catalog.Default()
	seqs := make([]iter.Seq2[any, error], len(entries))
	for i, e := range entries {
		seqs[i] = x.Instances(e.Type)
	}
	return registry.Concat(seqs...)
}

// unionHandler concatenates member expansions. A Go pointer type is a union
// of its element and None; its members are boxed into the pointer type.
func unionHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	seqs := make([]iter.Seq2[any, error], len(d.Args))
	for i, arg := range d.Args {
		seqs[i] = x.Instances(arg)
	}
	seq := registry.Concat(seqs...)
	if d.Target == nil || d.Target.Kind() != reflect.Pointer {
		return seq
	}
	return boxed(d.Target, seq)
}

func boxed(ptr reflect.Type, seq iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			if v == nil {
				if !yield(reflect.Zero(ptr).Interface(), nil) {
					return
				}
				continue
			}
			elem, err := assign(v, ptr.Elem())
			if err != nil {
				yield(nil, errors.NewNotConstructibleError(ptr.String(), err))
				return
			}
			p := reflect.New(ptr.Elem())
			p.Elem().Set(elem)
			if !yield(p.Interface(), nil) {
				return
			}
		}
	}
}

// enumHandler yields the members as they are.
func enumHandler(_ registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return registry.Values(d.Args...)
}

func listHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return container(x, d, 1, func(args []any) (any, error) {
		if d.Target == nil {
			return []any{args[0]}, nil
		}
		s := reflect.MakeSlice(d.Target, 1, 1)
		elem, err := assign(args[0], d.Target.Elem())
		if err != nil {
			return nil, err
		}
		s.Index(0).Set(elem)
		return s.Interface(), nil
	})
}

func setHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return container(x, d, 1, func(args []any) (any, error) {
		if d.Target == nil {
			return typex.NewSetValue(args[0])
		}
		m := reflect.MakeMapWithSize(d.Target, 1)
		key, err := mapKey(args[0], d.Target.Key())
		if err != nil {
			return nil, err
		}
		m.SetMapIndex(key, reflect.Zero(d.Target.Elem()))
		return m.Interface(), nil
	})
}

func frozenSetHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return container(x, d, 1, func(args []any) (any, error) {
		return typex.NewFrozenSetValue(args[0])
	})
}

// dictHandler builds a single-entry mapping per (key, value) combination.
func dictHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	return container(x, d, 2, func(args []any) (any, error) {
		if d.Target == nil {
			if !typex.Hashable(args[0]) {
				return nil, errors.Newf("unhashable key of type %T", args[0])
			}
			return map[any]any{args[0]: args[1]}, nil
		}
		m := reflect.MakeMapWithSize(d.Target, 1)
		key, err := mapKey(args[0], d.Target.Key())
		if err != nil {
			return nil, err
		}
		val, err := assign(args[1], d.Target.Elem())
		if err != nil {
			return nil, err
		}
		m.SetMapIndex(key, val)
		return m.Interface(), nil
	})
}

func tupleHandler(x registry.Expander, d typex.Descriptor) iter.Seq2[any, error] {
	if d.Target != nil && d.Target.Kind() == reflect.Array && d.Target.Len() == 0 {
		return registry.Values(reflect.Zero(d.Target).Interface())
	}
	return container(x, d, -1, func(args []any) (any, error) {
		if d.Target == nil || d.Target.Kind() != reflect.Array {
			return typex.TupleValue(args), nil
		}
		a := reflect.New(d.Target).Elem()
		for i, arg := range args {
			v, err := assign(arg, d.Target.Elem())
			if err != nil {
				return nil, err
			}
			a.Index(i).Set(v)
		}
		return a.Interface(), nil
	})
}

// container validates the arguments of a product form and streams its
// product. arity < 0 accepts any number of dimensions.
func container(x registry.Expander, d typex.Descriptor, arity int, build func([]any) (any, error)) iter.Seq2[any, error] {
	name := typex.Format(d.Base)
	if !d.HasArgs() {
		return registry.Fail(errors.NewMissingTypeArgumentsError(name))
	}
	dims := trimEllipsis(d.Args)
	if arity >= 0 && len(dims) != arity {
		return registry.Fail(errors.NewNotConstructibleError(name,
			errors.Newf("expected combination of length %d, got %d", arity, len(dims))))
	}
	return Product(x, dims, Constructor{Name: name, Build: build})
}
