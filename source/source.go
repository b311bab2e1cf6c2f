// Package source reads named types from Go packages and turns them into
// annotations.
//
// Structs become *typex.Class schemas whose instances are typex.Record
// values, so the expansion does not need the compiled type. A named basic
// type with constants declared in its package becomes an Enum of those
// constants. The well-known types (time.Time, time.Duration, uuid.UUID)
// map to their real Go types.
package source

import (
	"go/constant"
	"go/types"
	"reflect"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/typex"
	"github.com/teranos/inhabit/wellknown"
)

var known = map[string]reflect.Type{
	"time.Time":                   wellknown.Time,
	"time.Duration":               wellknown.Duration,
	"github.com/google/uuid.UUID": wellknown.UUID,
}

// Load loads the packages matching patterns, relative to dir, and returns
// a scope binding each exported type under both its bare and its
// package-qualified name (e.g. "Point" and "image.Point").
func Load(dir string, patterns ...string) (typex.Scope, error) {
	log := logger.ComponentLogger("source")
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %v", patterns)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %v", patterns)
	}

	c := newConverter()
	scope := typex.Scope{}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
		n := 0
		s := pkg.Types.Scope()
		for _, name := range s.Names() {
			tn, ok := s.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() {
				continue
			}
			a := c.convert(tn.Type())
			scope[name] = a
			scope[pkg.Name+"."+name] = a
			n++
		}
		log.Debugw("loaded package",
			logger.FieldPackage, pkg.PkgPath,
			logger.FieldCount, n)
	}
	return scope, nil
}

type converter struct {
	named map[*types.TypeName]any
}

func newConverter() *converter {
	return &converter{named: make(map[*types.TypeName]any)}
}

func (c *converter) convert(t types.Type) any {
	switch t := t.(type) {
	case *types.Alias:
		return c.convert(types.Unalias(t))
	case *types.Named:
		return c.namedType(t)
	case *types.Basic:
		if rt, ok := basicTypes[t.Kind()]; ok {
			return rt
		}
	case *types.Pointer:
		elem := c.convert(t.Elem())
		if rt, ok := goType(elem); ok {
			return reflect.PointerTo(rt)
		}
		return typex.Optional(elem)
	case *types.Slice:
		elem := c.convert(t.Elem())
		if rt, ok := goType(elem); ok {
			return reflect.SliceOf(rt)
		}
		return typex.List(elem)
	case *types.Array:
		elem := c.convert(t.Elem())
		if rt, ok := goType(elem); ok {
			return reflect.ArrayOf(int(t.Len()), rt)
		}
		elems := make([]any, t.Len())
		for i := range elems {
			elems[i] = elem
		}
		return typex.Tuple(elems...)
	case *types.Map:
		key, val := c.convert(t.Key()), c.convert(t.Elem())
		kt, kok := goType(key)
		vt, vok := goType(val)
		if kok && vok && kt.Comparable() {
			return reflect.MapOf(kt, vt)
		}
		if st, ok := t.Elem().Underlying().(*types.Struct); ok && st.NumFields() == 0 {
			return typex.Set(key)
		}
		return typex.Dict(key, val)
	case *types.Interface:
		if t.Empty() {
			return typex.Any
		}
		return &typex.Protocol{Name: t.String(), Methods: methodNames(t)}
	case *types.Struct:
		if t.NumFields() == 0 {
			return reflect.TypeFor[struct{}]()
		}
		cls := &typex.Class{Name: t.String(), Arity: typex.ArityMany}
		c.fill(cls, t)
		return cls
	}
	// channels, signatures and the like stay opaque
	return t.String()
}

func (c *converter) namedType(n *types.Named) any {
	obj := n.Obj()
	if a, ok := c.named[obj]; ok {
		return a
	}
	qualified := obj.Name()
	if obj.Pkg() != nil {
		qualified = obj.Pkg().Path() + "." + obj.Name()
	}
	if rt, ok := known[qualified]; ok {
		return rt
	}
	if n.TypeParams().Len() > 0 && n.TypeArgs().Len() == 0 {
		return qualified
	}

	name := obj.Name()
	if obj.Pkg() != nil {
		name = obj.Pkg().Name() + "." + obj.Name()
	}

	switch u := n.Underlying().(type) {
	case *types.Struct:
		cls := &typex.Class{Name: name, Arity: typex.ArityMany}
		// registered before the fields so self-references resolve
		c.named[obj] = cls
		c.fill(cls, u)
		return cls
	case *types.Basic:
		if members := enumMembers(n, u); len(members) > 0 {
			e := typex.Enum(name, members...)
			c.named[obj] = e
			return e
		}
	case *types.Interface:
		if !u.Empty() {
			p := &typex.Protocol{Name: name, Methods: methodNames(u)}
			c.named[obj] = p
			return p
		}
	}
	// placeholder for types like `type L []L`
	c.named[obj] = qualified
	a := c.convert(n.Underlying())
	c.named[obj] = a
	return a
}

func (c *converter) fill(cls *typex.Class, st *types.Struct) {
	var names []string
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}
		names = append(names, f.Name())
		cls.Params = append(cls.Params, typex.Param{Name: f.Name(), Type: c.convert(f.Type())})
	}
	typeName := cls.Name
	cls.New = func(args ...any) (any, error) {
		if len(args) != len(names) {
			return nil, errors.Newf("%s takes %d fields, got %d", typeName, len(names), len(args))
		}
		rec := typex.Record{Type: typeName, Fields: make([]typex.Field, len(names))}
		for i, n := range names {
			rec.Fields[i] = typex.Field{Name: n, Value: args[i]}
		}
		return rec, nil
	}
}

// enumMembers returns the package constants of type n in declaration
// order, as values of the underlying Go type.
func enumMembers(n *types.Named, u *types.Basic) []any {
	rt, ok := basicTypes[u.Kind()]
	if !ok || n.Obj().Pkg() == nil {
		return nil
	}
	scope := n.Obj().Pkg().Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		if k, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(k.Type(), n) {
			consts = append(consts, k)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	members := make([]any, 0, len(consts))
	for _, k := range consts {
		if v, ok := constValue(k.Val(), rt); ok {
			members = append(members, v)
		}
	}
	return members
}

func constValue(v constant.Value, rt reflect.Type) (any, bool) {
	var x any
	switch v.Kind() {
	case constant.Bool:
		x = constant.BoolVal(v)
	case constant.String:
		x = constant.StringVal(v)
	case constant.Int:
		if i, exact := constant.Int64Val(v); exact {
			x = i
		} else if u, exact := constant.Uint64Val(v); exact {
			x = u
		} else {
			return nil, false
		}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		x = f
	default:
		return nil, false
	}
	xv := reflect.ValueOf(x)
	if !xv.Type().ConvertibleTo(rt) {
		return nil, false
	}
	return xv.Convert(rt).Interface(), true
}

func methodNames(t *types.Interface) []string {
	names := make([]string, t.NumMethods())
	for i := range names {
		names[i] = t.Method(i).Name()
	}
	return names
}

func goType(a any) (reflect.Type, bool) {
	rt, ok := a.(reflect.Type)
	if !ok || rt == typex.None {
		return nil, false
	}
	return rt, true
}

var basicTypes = map[types.BasicKind]reflect.Type{
	types.Bool:       reflect.TypeFor[bool](),
	types.Int:        reflect.TypeFor[int](),
	types.Int8:       reflect.TypeFor[int8](),
	types.Int16:      reflect.TypeFor[int16](),
	types.Int32:      reflect.TypeFor[int32](),
	types.Int64:      reflect.TypeFor[int64](),
	types.Uint:       reflect.TypeFor[uint](),
	types.Uint8:      reflect.TypeFor[uint8](),
	types.Uint16:     reflect.TypeFor[uint16](),
	types.Uint32:     reflect.TypeFor[uint32](),
	types.Uint64:     reflect.TypeFor[uint64](),
	types.Uintptr:    reflect.TypeFor[uintptr](),
	types.Float32:    reflect.TypeFor[float32](),
	types.Float64:    reflect.TypeFor[float64](),
	types.Complex64:  reflect.TypeFor[complex64](),
	types.Complex128: reflect.TypeFor[complex128](),
	types.String:     reflect.TypeFor[string](),
}
