// Package typex is the annotation model of inhabit.
//
// An annotation is whatever describes a type to expand: a reflect.Type, a
// term built with the constructors in this package (List, Dict, Union,
// Literal, ...), a *Class schema, a Go function value, or nil for None.
// Classify turns any annotation into a Descriptor naming its base, its
// arguments and its structural Category. It never fails; unknown inputs are
// classified as Opaque and rejected later by the engine.
//
// Typical use:
//
//	d := typex.Classify(typex.Dict(typex.Bool, typex.Union(typex.Int, typex.Str)))
//	d.Base     // typex.FormDict
//	d.Category // typex.CategoryProduct
//
// Textual annotations are read with Parse:
//
//	a, err := typex.Parse("tuple[int, ...]", typex.DefaultScope())
package typex
