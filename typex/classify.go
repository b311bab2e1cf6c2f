package typex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Category is the structural class of an annotation. The set is closed;
// the engine dispatches on it exhaustively.
type Category int

const (
	CategoryOpaque Category = iota
	CategorySpecial
	CategorySum
	CategoryProduct
	CategoryPrimitive
	CategoryCallable
	CategoryTypeVar
	CategoryProtocol
)

var categoryNames = [...]string{
	CategoryOpaque:    "opaque",
	CategorySpecial:   "special",
	CategorySum:       "sum",
	CategoryProduct:   "product",
	CategoryPrimitive: "primitive",
	CategoryCallable:  "callable",
	CategoryTypeVar:   "typevar",
	CategoryProtocol:  "protocol",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Descriptor is the classified form of an annotation.
type Descriptor struct {
	// Annotation is the input that was classified.
	Annotation any
	// Base is the origin and the registry key. It is comparable unless the
	// annotation was an unhashable opaque value.
	Base any
	// Args are the ordered type arguments or literal values.
	Args     []any
	Category Category
	// Target is the Go type to materialize into; nil for untyped DSL terms.
	Target reflect.Type
	// Func holds the function value of a callable annotation.
	Func reflect.Value
}

// RegistryKeys lists the registry keys of d, most specific first. A named
// Go type whose structure maps to a form, such as uuid.UUID or
// type Tags []string, is its own key ahead of the form.
func (d Descriptor) RegistryKeys() []any {
	if _, ok := d.Base.(Form); ok && d.Target != nil && d.Target.Name() != "" {
		return []any{d.Target, d.Base}
	}
	return []any{d.Base}
}

// Key is a canonical string for the descriptor. Equal descriptors have
// equal keys.
func (d Descriptor) Key() string {
	var b strings.Builder
	b.WriteString(d.Category.String())
	b.WriteByte(':')
	b.WriteString(annotationKey(d.Base))
	if len(d.Args) > 0 {
		b.WriteByte('[')
		for i, a := range d.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if d.Base == FormLiteral || d.Base == FormEnum {
				b.WriteString(Identity(a))
			} else {
				b.WriteString(annotationKey(a))
			}
		}
		b.WriteByte(']')
	}
	if d.Target != nil {
		b.WriteString("@")
		b.WriteString(typeKey(d.Target))
	}
	return b.String()
}

func (d Descriptor) Equal(o Descriptor) bool { return d.Key() == o.Key() }

func (d Descriptor) String() string { return Format(d.Annotation) }

// HasArgs reports whether the descriptor carries type arguments.
func (d Descriptor) HasArgs() bool { return len(d.Args) > 0 }

var emptyStruct = reflect.TypeFor[struct{}]()

// Classify describes an annotation. It is total: inputs it does not
// recognize become CategoryOpaque.
func Classify(annotation any) Descriptor {
	d := Descriptor{Annotation: annotation}
	switch a := annotation.(type) {
	case nil:
		d.Base, d.Category = None, CategoryPrimitive
	case NoneType:
		d.Base, d.Category = None, CategoryPrimitive
	case Form:
		d.Base, d.Category = a, a.Category()
	case Generic:
		d.Base, d.Args = a.origin, a.args
		switch o := a.origin.(type) {
		case Form:
			d.Category = o.Category()
		case *Class:
			d.Category = CategoryCallable
		}
	case reflect.Type:
		classifyType(&d, a)
	case *TypeVar:
		d.Base, d.Category = a, CategoryTypeVar
	case *Protocol:
		d.Base, d.Category = a, CategoryProtocol
	case *Class:
		d.Base, d.Category = a, CategoryCallable
	default:
		rv := reflect.ValueOf(annotation)
		if rv.Kind() == reflect.Func && !rv.IsNil() {
			d.Base = FuncID{PC: rv.Pointer(), Type: rv.Type()}
			d.Category = CategoryCallable
			d.Target = rv.Type()
			d.Func = rv
			return d
		}
		d.Base, d.Category = annotation, CategoryOpaque
	}
	return d
}

func classifyType(d *Descriptor, t reflect.Type) {
	d.Base, d.Target = t, t
	switch {
	case t == None:
		d.Category, d.Target = CategoryPrimitive, nil
		return
	case isBytes(t):
		d.Category = CategoryPrimitive
		return
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		d.Category = CategoryPrimitive
	case reflect.Slice:
		d.Base, d.Args, d.Category = FormList, []any{t.Elem()}, CategoryProduct
	case reflect.Array:
		args := make([]any, t.Len())
		for i := range args {
			args[i] = t.Elem()
		}
		d.Base, d.Args, d.Category = FormTuple, args, CategoryProduct
	case reflect.Map:
		if t.Elem() == emptyStruct {
			d.Base, d.Args = FormSet, []any{t.Key()}
		} else {
			d.Base, d.Args = FormDict, []any{t.Key(), t.Elem()}
		}
		d.Category = CategoryProduct
	case reflect.Pointer:
		d.Base, d.Args, d.Category = FormUnion, []any{t.Elem(), None}, CategorySum
	case reflect.Interface:
		if t.NumMethod() == 0 {
			d.Base, d.Category, d.Target = FormAny, CategorySpecial, nil
			return
		}
		d.Category = CategoryProtocol
	case reflect.Struct, reflect.Func:
		d.Category = CategoryCallable
	default:
		d.Category = CategoryOpaque
	}
}

func isBytes(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// Base returns the canonical registry key of an annotation.
func Base(annotation any) any {
	return Classify(annotation).Base
}

// annotationKey renders an annotation for identity comparisons. Unlike
// Format it qualifies Go types with their package path.
func annotationKey(a any) string {
	switch v := a.(type) {
	case reflect.Type:
		return typeKey(v)
	case Generic:
		var b strings.Builder
		b.WriteString(annotationKey(v.origin))
		if v.name != "" {
			b.WriteString("(" + v.name + ")")
		}
		b.WriteByte('[')
		for i, arg := range v.args {
			if i > 0 {
				b.WriteString(", ")
			}
			if v.origin == FormLiteral || v.origin == FormEnum {
				b.WriteString(Identity(arg))
			} else {
				b.WriteString(annotationKey(arg))
			}
		}
		b.WriteByte(']')
		return b.String()
	case FuncID:
		return fmt.Sprintf("func@%#x:%s", v.PC, typeKey(v.Type))
	case *TypeVar, *Protocol, *Class:
		return fmt.Sprintf("%T@%p", v, v)
	}
	return Format(a)
}

// typeKey qualifies every named type in t with its full package path, so
// []a/models.User and []b/models.User differ.
func typeKey(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Slice:
		return "[]" + typeKey(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeKey(t.Elem())
	case reflect.Map:
		return "map[" + typeKey(t.Key()) + "]" + typeKey(t.Elem())
	case reflect.Pointer:
		return "*" + typeKey(t.Elem())
	case reflect.Chan:
		return t.ChanDir().String() + " " + typeKey(t.Elem())
	case reflect.Func:
		var b strings.Builder
		b.WriteString("func(")
		for i := range t.NumIn() {
			if i > 0 {
				b.WriteString(", ")
			}
			if t.IsVariadic() && i == t.NumIn()-1 {
				b.WriteString("..." + typeKey(t.In(i).Elem()))
				continue
			}
			b.WriteString(typeKey(t.In(i)))
		}
		b.WriteString(")")
		if t.NumOut() > 0 {
			b.WriteString(" (")
			for i := range t.NumOut() {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(typeKey(t.Out(i)))
			}
			b.WriteString(")")
		}
		return b.String()
	case reflect.Struct:
		var b strings.Builder
		b.WriteString("struct{")
		for i := range t.NumField() {
			f := t.Field(i)
			if i > 0 {
				b.WriteString("; ")
			}
			if f.PkgPath != "" {
				b.WriteString(f.PkgPath + ".")
			}
			b.WriteString(f.Name + " " + typeKey(f.Type))
		}
		b.WriteString("}")
		return b.String()
	}
	return t.String()
}
