package expand

import (
	"iter"
	"reflect"

	"github.com/teranos/inhabit/catalog"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

var errorType = reflect.TypeFor[error]()

// fallback expands annotations no handler claims.
func (x *expansion) fallback(d typex.Descriptor) (iter.Seq2[any, error], error) {
	log := x.engine.logger
	switch d.Category {
	case typex.CategoryPrimitive:
		if t, ok := d.Base.(reflect.Type); ok {
			if vals, ok := catalog.Values(t); ok {
				log.Debugw("falling back to catalog",
					logger.FieldType, d.String(),
					logger.FieldCount, len(vals))
				return registry.Values(vals...), nil
			}
		}

	case typex.CategoryTypeVar:
		tv := d.Base.(*typex.TypeVar)
		switch {
		case len(tv.Constraints) > 0:
			seqs := make([]iter.Seq2[any, error], len(tv.Constraints))
			for i, c := range tv.Constraints {
				seqs[i] = x.Instances(c)
			}
			return registry.Concat(seqs...), nil
		case tv.Bound != nil:
			return x.Instances(tv.Bound), nil
		}
		return x.Instances(typex.Any), nil

	case typex.CategoryProtocol:
		return nil, errors.NewNotImplementedError("protocol " + d.String())

	case typex.CategoryCallable:
		c, dims, err := constructorFor(d)
		if err != nil {
			return nil, err
		}
		log.Debugw("falling back to constructor product",
			logger.FieldType, d.String(),
			logger.FieldStrategy, "callable",
			logger.FieldCount, len(dims))
		return Product(x, dims, c), nil
	}

	log.Debugw("no handler",
		logger.FieldType, d.String(),
		logger.FieldCategory, d.Category.String())
	return nil, errors.NewUnsupportedTypeError(d.String())
}

// constructorFor introspects a callable base: the exported fields of a
// struct, the parameters of a function, or the params of a Class.
func constructorFor(d typex.Descriptor) (Constructor, []any, error) {
	switch b := d.Base.(type) {
	case *typex.Class:
		return classConstructor(b, d.Args)
	case typex.FuncID:
		return funcConstructor(d.Func)
	case reflect.Type:
		if b.Kind() == reflect.Struct {
			return structConstructor(b)
		}
		return Constructor{}, nil, errors.NewNotConstructibleError(b.String(),
			errors.New("a function type has no implementation to call"))
	}
	return Constructor{}, nil, errors.NewNotConstructibleError(d.String(), nil)
}

func classConstructor(c *typex.Class, args []any) (Constructor, []any, error) {
	dims := args
	if len(dims) == 0 {
		dims = make([]any, len(c.Params))
		for i, p := range c.Params {
			dims[i] = p.Type
		}
	}
	if c.New == nil {
		return Constructor{}, nil, errors.NewNotConstructibleError(c.Name, errors.New("class has no constructor"))
	}
	build := func(args []any) (any, error) {
		switch c.Arity {
		case typex.ArityOne:
			return c.New(typex.TupleValue(args))
		case typex.ArityMany:
			return c.New(args...)
		}
		v, err := c.New(args...)
		if err == nil {
			return v, nil
		}
		v, err2 := c.New(typex.TupleValue(args))
		if err2 != nil {
			return nil, errors.CombineErrors(err, err2)
		}
		return v, nil
	}
	return Constructor{Name: c.Name, Build: build}, dims, nil
}

func structConstructor(t reflect.Type) (Constructor, []any, error) {
	var fields []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			fields = append(fields, f)
		}
	}
	dims := make([]any, len(fields))
	for i, f := range fields {
		dims[i] = f.Type
	}
	build := func(args []any) (any, error) {
		v := reflect.New(t).Elem()
		for i, f := range fields {
			fv, err := assign(args[i], f.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", f.Name)
			}
			v.Field(f.Index[0]).Set(fv)
		}
		return v.Interface(), nil
	}
	return Constructor{Name: t.String(), Build: build}, dims, nil
}

func funcConstructor(fn reflect.Value) (Constructor, []any, error) {
	if !fn.IsValid() {
		return Constructor{}, nil, errors.NewNotConstructibleError("func", errors.New("no function value"))
	}
	ft := fn.Type()
	name := typex.Format(fn.Interface())
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Constructor{}, nil, errors.NewNotConstructibleError(name,
			errors.Newf("constructor must return T or (T, error), got %s", ft))
	}

	params := make([]reflect.Type, ft.NumIn())
	dims := make([]any, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			params[i] = params[i].Elem()
		}
		dims[i] = params[i]
	}
	build := func(args []any) (any, error) {
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			v, err := assign(a, params[i])
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", i)
			}
			in[i] = v
		}
		out := fn.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
	return Constructor{Name: name, Build: build}, dims, nil
}

// assign converts an instance to a value settable into t.
func assign(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.Newf("cannot use nil as %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, errors.Newf("cannot use %s as %s", rv.Type(), t)
}

// mapKey is assign for map keys, which must be hashable.
func mapKey(v any, t reflect.Type) (reflect.Value, error) {
	key, err := assign(v, t)
	if err != nil {
		return reflect.Value{}, err
	}
	if !key.Comparable() {
		return reflect.Value{}, errors.Newf("unhashable key of type %T", v)
	}
	return key, nil
}
