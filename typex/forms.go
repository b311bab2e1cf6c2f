package typex

import (
	"reflect"
)

// Form names a generic origin or special form. Forms are comparable and are
// the registry keys of every parameterized DSL term.
type Form string

const (
	FormAny       Form = "Any"
	FormEllipsis  Form = "..."
	FormLiteral   Form = "Literal"
	FormUnion     Form = "Union"
	FormOptional  Form = "Optional"
	FormEnum      Form = "Enum"
	FormList      Form = "list"
	FormSet       Form = "set"
	FormFrozenSet Form = "frozenset"
	FormDict      Form = "dict"
	FormTuple     Form = "tuple"
)

// Bare markers usable directly as annotations.
const (
	Any      = FormAny
	Ellipsis = FormEllipsis
)

// Category of the form when used as an origin.
func (f Form) Category() Category {
	switch f {
	case FormAny, FormEllipsis, FormLiteral:
		return CategorySpecial
	case FormUnion, FormOptional, FormEnum:
		return CategorySum
	case FormList, FormSet, FormFrozenSet, FormDict, FormTuple:
		return CategoryProduct
	}
	return CategoryOpaque
}

// NoneType is the type of the None value. Its only inhabitant is nil.
type NoneType struct{}

// Primitive annotations.
var (
	None    = reflect.TypeFor[NoneType]()
	Bool    = reflect.TypeFor[bool]()
	Int     = reflect.TypeFor[int]()
	Float   = reflect.TypeFor[float64]()
	Complex = reflect.TypeFor[complex128]()
	Str     = reflect.TypeFor[string]()
	Bytes   = reflect.TypeFor[[]byte]()
)

// Generic is an origin applied to arguments: list[int], Literal[1, 2],
// Union[int, str]. The origin is a Form or a *Class.
type Generic struct {
	origin any
	args   []any
	name   string
}

// Origin returns the generic origin.
func (g Generic) Origin() any { return g.origin }

// Args returns a copy of the arguments.
func (g Generic) Args() []any { return append([]any(nil), g.args...) }

// Name is set for enums.
func (g Generic) Name() string { return g.name }

// Apply parameterizes a class schema, e.g. Apply(box, Int) for Box[int].
func Apply(c *Class, args ...any) Generic {
	return Generic{origin: c, args: args}
}

// Literal builds Literal[vals...]. Nested literals are flattened and
// duplicates removed, keeping the first occurrence.
func Literal(vals ...any) Generic {
	seen := NewOrderedSet()
	var walk func([]any)
	walk = func(vs []any) {
		for _, v := range vs {
			if g, ok := v.(Generic); ok && g.origin == FormLiteral {
				walk(g.args)
				continue
			}
			seen.Add(v)
		}
	}
	walk(vals)
	return Generic{origin: FormLiteral, args: seen.Items()}
}

// Union builds Union[members...]. Nested unions are flattened and repeated
// members dropped.
func Union(members ...any) Generic {
	var out []any
	keys := make(map[string]struct{})
	var walk func([]any)
	walk = func(ms []any) {
		for _, m := range ms {
			if g, ok := m.(Generic); ok && g.origin == FormUnion {
				walk(g.args)
				continue
			}
			k := annotationKey(m)
			if _, dup := keys[k]; dup {
				continue
			}
			keys[k] = struct{}{}
			out = append(out, m)
		}
	}
	walk(members)
	return Generic{origin: FormUnion, args: out}
}

// Optional is Union[t, None].
func Optional(t any) Generic {
	return Union(t, None)
}

// Enum builds a named enumeration whose members are values.
func Enum(name string, members ...any) Generic {
	return Generic{origin: FormEnum, args: members, name: name}
}

func List(elem any) Generic { return Generic{origin: FormList, args: []any{elem}} }
func Set(elem any) Generic { return Generic{origin: FormSet, args: []any{elem}} }
func FrozenSet(elem any) Generic { return Generic{origin: FormFrozenSet, args: []any{elem}} }
func Dict(key, value any) Generic { return Generic{origin: FormDict, args: []any{key, value}} }
func Tuple(elems ...any) Generic { return Generic{origin: FormTuple, args: elems} }

// Of applies a form to arguments. Literal, Union and Optional are normalized
// the way their constructors normalize them.
func Of(f Form, args ...any) Generic {
	switch f {
	case FormLiteral:
		return Literal(args...)
	case FormUnion:
		return Union(args...)
	case FormOptional:
		if len(args) == 1 {
			return Optional(args[0])
		}
	}
	return Generic{origin: f, args: args}
}

// TypeVar is a type variable. Expansion uses its constraints when present,
// otherwise its bound, otherwise Any.
type TypeVar struct {
	Name        string
	Constraints []any
	Bound       any
}

// NewTypeVar returns a constrained type variable.
func NewTypeVar(name string, constraints ...any) *TypeVar {
	return &TypeVar{Name: name, Constraints: constraints}
}

// Protocol is a structural interface. It cannot be expanded.
type Protocol struct {
	Name    string
	Methods []string
}

// Arity says how a Class constructor takes an argument combination.
type Arity int

const (
	// ArityUnknown tries the unpacked form first, then the whole tuple.
	ArityUnknown Arity = iota
	// ArityOne passes the combination as a single Tuple.
	ArityOne
	// ArityMany passes the combination unpacked.
	ArityMany
)

// Param is one constructor parameter of a Class.
type Param struct {
	Name string
	Type any
}

// Class is an explicit constructor schema for values reflection cannot
// describe.
type Class struct {
	Name   string
	Params []Param
	Arity  Arity
	New    func(args ...any) (any, error)
}

func (c *Class) String() string { return c.Name }

// FuncID identifies a function value for registry lookups.
type FuncID struct {
	PC   uintptr
	Type reflect.Type
}
