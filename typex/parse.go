package typex

import (
	"go/ast"
	"go/constant"
	"go/parser"
	"go/scanner"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/teranos/inhabit/errors"
)

// Scope resolves identifiers in type expressions. Qualified names are
// stored with their package prefix, e.g. "time.Time".
type Scope map[string]any

const ellipsisIdent = "_ellipsis_"

// DefaultScope returns a fresh scope with the builtin names of both Go and
// the annotation DSL.
func DefaultScope() Scope {
	s := Scope{
		"None":      None,
		"NoneType":  None,
		"nil":       None,
		"Any":       Any,
		"any":       Any,
		"bool":      Bool,
		"int":       Int,
		"float":     Float,
		"complex":   Complex,
		"str":       Str,
		"bytes":     Bytes,
		"Literal":   FormLiteral,
		"Union":     FormUnion,
		"Optional":  FormOptional,
		"list":      FormList,
		"List":      FormList,
		"set":       FormSet,
		"Set":       FormSet,
		"frozenset": FormFrozenSet,
		"FrozenSet": FormFrozenSet,
		"dict":      FormDict,
		"Dict":      FormDict,
		"tuple":     FormTuple,
		"Tuple":     FormTuple,
		"error":     reflect.TypeFor[error](),
	}
	for _, t := range []reflect.Type{
		reflect.TypeFor[string](), reflect.TypeFor[byte](), reflect.TypeFor[rune](),
		reflect.TypeFor[int8](), reflect.TypeFor[int16](), reflect.TypeFor[int32](), reflect.TypeFor[int64](),
		reflect.TypeFor[uint](), reflect.TypeFor[uint8](), reflect.TypeFor[uint16](), reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](), reflect.TypeFor[uintptr](),
		reflect.TypeFor[float32](), reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](), reflect.TypeFor[complex128](),
	} {
		s[t.String()] = t
	}
	s["byte"] = reflect.TypeFor[byte]()
	s["rune"] = reflect.TypeFor[rune]()
	return s
}

// With returns a copy of the scope with name bound to annotation.
func (s Scope) With(name string, annotation any) Scope {
	out := make(Scope, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = annotation
	return out
}

// Merge copies every binding of other into s.
func (s Scope) Merge(other Scope) {
	for k, v := range other {
		s[k] = v
	}
}

// Parse reads a type expression written in Go expression syntax:
// dict[bool, int | str], tuple[int, ...], Optional[[]byte], map[string]int.
func Parse(expr string, scope Scope) (any, error) {
	if scope == nil {
		scope = DefaultScope()
	}
	p := &exprParser{scope: scope, expr: expr, generics: make(map[string]generic)}
	return p.parse(expr)
}

// MustParse is like Parse but panics on error.
func MustParse(expr string, scope Scope) any {
	a, err := Parse(expr, scope)
	if err != nil {
		panic(err)
	}
	return a
}

// generic is an origin[args] application lifted out of an expression
// before the Go parser sees it. The Go parser reads every index after the
// first as a type, which literal values and unions are not.
type generic struct {
	origin string
	args   []string
}

const genericPrefix = "_generic"

type exprParser struct {
	scope    Scope
	expr     string
	generics map[string]generic
}

func (p *exprParser) parse(src string) (any, error) {
	node, err := p.node(src)
	if err != nil {
		return nil, err
	}
	return p.annotation(node)
}

func (p *exprParser) node(src string) (ast.Expr, error) {
	lifted, err := p.lift(src)
	if err != nil {
		return nil, err
	}
	node, err := parser.ParseExpr(lifted)
	if err != nil {
		return nil, p.fail("%v", err)
	}
	return node, nil
}

type scanned struct {
	off int
	tok token.Token
}

// lift replaces every outermost origin[args] in src with a placeholder
// identifier and every ... token with ellipsisIdent. A bracket opens a
// generic when it follows a name; array, slice and map brackets are kept.
// String literals are left alone.
func (p *exprParser) lift(src string) (string, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))
	var s scanner.Scanner
	var scanErr error
	s.Init(file, []byte(src), func(_ token.Position, msg string) {
		if scanErr == nil {
			scanErr = errors.New(msg)
		}
	}, 0)

	var toks []scanned
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		toks = append(toks, scanned{off: file.Offset(pos), tok: tok})
	}
	if scanErr != nil {
		return "", p.fail("%v", scanErr)
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.tok == token.ELLIPSIS:
			b.WriteString(src[last:t.off])
			b.WriteString(ellipsisIdent)
			last = t.off + len("...")
		case t.tok == token.LBRACK && i > 0 && toks[i-1].tok == token.IDENT:
			start := i - 1
			if start >= 2 && toks[start-1].tok == token.PERIOD && toks[start-2].tok == token.IDENT {
				start -= 2
			}
			args, end, err := p.split(src, toks, i)
			if err != nil {
				return "", err
			}
			name := genericPrefix + strconv.Itoa(len(p.generics)) + "_"
			p.generics[name] = generic{origin: src[toks[start].off:t.off], args: args}
			b.WriteString(src[last:toks[start].off])
			b.WriteString(name)
			last = toks[end].off + 1
			i = end
		}
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

// split returns the comma separated arguments of the bracket opened at
// toks[open] and the index of its closing bracket.
func (p *exprParser) split(src string, toks []scanned, open int) ([]string, int, error) {
	var args []string
	depth := 0
	from := toks[open].off + 1
	for j := open + 1; j < len(toks); j++ {
		switch toks[j].tok {
		case token.LBRACK, token.LPAREN, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACE:
			if depth == 0 {
				return nil, 0, p.fail("unbalanced brackets")
			}
			depth--
		case token.RBRACK:
			if depth > 0 {
				depth--
				continue
			}
			// a trailing comma leaves an empty last argument
			if arg := strings.TrimSpace(src[from:toks[j].off]); arg != "" {
				args = append(args, arg)
			}
			if len(args) == 0 {
				return nil, 0, p.fail("empty type argument list")
			}
			return args, j, nil
		case token.COMMA:
			if depth > 0 {
				continue
			}
			arg := strings.TrimSpace(src[from:toks[j].off])
			if arg == "" {
				return nil, 0, p.fail("empty type argument")
			}
			args = append(args, arg)
			from = toks[j].off + 1
		}
	}
	return nil, 0, p.fail("unclosed [")
}

func (p *exprParser) fail(format string, args ...any) error {
	err := errors.NewConfigurationError("cannot parse type %q: "+format, append([]any{p.expr}, args...)...)
	return errors.WithHint(err, "identifiers resolve through the scope; load a package to add named types")
}

func (p *exprParser) annotation(node ast.Expr) (any, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return p.annotation(n.X)
	case *ast.Ident:
		return p.ident(n.Name)
	case *ast.SelectorExpr:
		pkg, ok := n.X.(*ast.Ident)
		if !ok {
			return nil, p.fail("unsupported selector")
		}
		return p.ident(pkg.Name + "." + n.Sel.Name)
	case *ast.IndexExpr:
		return p.index(n.X, []ast.Expr{n.Index})
	case *ast.IndexListExpr:
		return p.index(n.X, n.Indices)
	case *ast.BinaryExpr:
		if n.Op != token.OR {
			return nil, p.fail("unsupported operator %s", n.Op)
		}
		left, err := p.annotation(n.X)
		if err != nil {
			return nil, err
		}
		right, err := p.annotation(n.Y)
		if err != nil {
			return nil, err
		}
		return Union(left, right), nil
	case *ast.ArrayType:
		elem, err := p.annotation(n.Elt)
		if err != nil {
			return nil, err
		}
		if n.Len == nil {
			if t, ok := elem.(reflect.Type); ok && t != None {
				return reflect.SliceOf(t), nil
			}
			return List(elem), nil
		}
		size, err := p.arrayLen(n.Len)
		if err != nil {
			return nil, err
		}
		if t, ok := elem.(reflect.Type); ok && t != None {
			return reflect.ArrayOf(size, t), nil
		}
		elems := make([]any, size)
		for i := range elems {
			elems[i] = elem
		}
		return Tuple(elems...), nil
	case *ast.MapType:
		key, err := p.annotation(n.Key)
		if err != nil {
			return nil, err
		}
		val, err := p.annotation(n.Value)
		if err != nil {
			return nil, err
		}
		kt, kok := key.(reflect.Type)
		vt, vok := val.(reflect.Type)
		if kok && vok && kt != None && vt != None && kt.Comparable() {
			return reflect.MapOf(kt, vt), nil
		}
		if vok && vt == emptyStruct {
			return Set(key), nil
		}
		return Dict(key, val), nil
	case *ast.StarExpr:
		elem, err := p.annotation(n.X)
		if err != nil {
			return nil, err
		}
		if t, ok := elem.(reflect.Type); ok && t != None {
			return reflect.PointerTo(t), nil
		}
		return Optional(elem), nil
	case *ast.InterfaceType:
		if n.Methods == nil || len(n.Methods.List) == 0 {
			return Any, nil
		}
		return nil, p.fail("only the empty interface is supported")
	case *ast.StructType:
		if n.Fields == nil || len(n.Fields.List) == 0 {
			return emptyStruct, nil
		}
		return nil, p.fail("inline struct types are not supported")
	}
	return nil, p.fail("unsupported expression %T", node)
}

func (p *exprParser) ident(name string) (any, error) {
	if name == ellipsisIdent {
		return Ellipsis, nil
	}
	if g, ok := p.generics[name]; ok {
		return p.generic(g)
	}
	a, ok := p.scope[name]
	if !ok {
		return nil, p.fail("unknown identifier %s", name)
	}
	return a, nil
}

func (p *exprParser) generic(g generic) (any, error) {
	origin, err := p.parse(g.origin)
	if err != nil {
		return nil, err
	}
	indices := make([]ast.Expr, 0, len(g.args))
	for _, arg := range g.args {
		node, err := p.node(arg)
		if err != nil {
			return nil, err
		}
		indices = append(indices, node)
	}
	return p.apply(origin, indices)
}

func (p *exprParser) index(x ast.Expr, indices []ast.Expr) (any, error) {
	origin, err := p.annotation(x)
	if err != nil {
		return nil, err
	}
	return p.apply(origin, indices)
}

func (p *exprParser) apply(origin any, indices []ast.Expr) (any, error) {
	switch o := origin.(type) {
	case Form:
		if o == FormLiteral {
			vals := make([]any, 0, len(indices))
			for _, idx := range indices {
				v, err := p.literal(idx)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			return Literal(vals...), nil
		}
		args, err := p.args(indices)
		if err != nil {
			return nil, err
		}
		switch o {
		case FormUnion:
			return Union(args...), nil
		case FormOptional:
			if len(args) != 1 {
				return nil, p.fail("Optional takes one argument, got %d", len(args))
			}
			return Optional(args[0]), nil
		case FormAny, FormEllipsis:
			return nil, p.fail("%s cannot be parameterized", o)
		}
		return Of(o, args...), nil
	case *Class:
		args, err := p.args(indices)
		if err != nil {
			return nil, err
		}
		return Apply(o, args...), nil
	}
	return nil, p.fail("%s is not generic", Format(origin))
}

func (p *exprParser) args(indices []ast.Expr) ([]any, error) {
	args := make([]any, 0, len(indices))
	for _, idx := range indices {
		a, err := p.annotation(idx)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

// literal evaluates one Literal argument: a basic literal, a signed number,
// true, false, None or a nested Literal.
func (p *exprParser) literal(node ast.Expr) (any, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return p.literal(n.X)
	case *ast.BasicLit:
		return basicValue(n)
	case *ast.UnaryExpr:
		if n.Op != token.SUB && n.Op != token.ADD {
			return nil, p.fail("unsupported literal operator %s", n.Op)
		}
		lit, ok := n.X.(*ast.BasicLit)
		if !ok {
			return nil, p.fail("unsupported literal %T", n.X)
		}
		v, err := basicValue(lit)
		if err != nil {
			return nil, err
		}
		if n.Op == token.ADD {
			return v, nil
		}
		switch x := v.(type) {
		case int:
			return -x, nil
		case float64:
			return -x, nil
		case complex128:
			return -x, nil
		}
		return nil, p.fail("cannot negate %v", v)
	case *ast.Ident:
		switch n.Name {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		case "None", "nil":
			return nil, nil
		}
		if _, ok := p.generics[n.Name]; ok {
			return p.nestedLiteral(n)
		}
		return nil, p.fail("unknown literal %s", n.Name)
	case *ast.IndexExpr, *ast.IndexListExpr:
		return p.nestedLiteral(n)
	}
	return nil, p.fail("unsupported literal %T", node)
}

func (p *exprParser) nestedLiteral(node ast.Expr) (any, error) {
	a, err := p.annotation(node)
	if err != nil {
		return nil, err
	}
	if g, ok := a.(Generic); ok && g.origin == FormLiteral {
		return g, nil
	}
	return nil, p.fail("only Literal may nest inside Literal")
}

func basicValue(lit *ast.BasicLit) (any, error) {
	switch lit.Kind {
	case token.STRING:
		return strconv.Unquote(lit.Value)
	case token.CHAR:
		v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
		r, _ := constant.Int64Val(v)
		return rune(r), nil
	case token.INT:
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "integer literal %s", lit.Value)
		}
		return int(n), nil
	case token.FLOAT:
		return strconv.ParseFloat(lit.Value, 64)
	case token.IMAG:
		v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
		re, _ := constant.Float64Val(constant.Real(v))
		im, _ := constant.Float64Val(constant.Imag(v))
		return complex(re, im), nil
	}
	return nil, errors.Newf("unsupported literal kind %s", lit.Kind)
}

func (p *exprParser) arrayLen(node ast.Expr) (int, error) {
	lit, ok := node.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, p.fail("array length must be an integer literal")
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil || n < 0 {
		return 0, p.fail("bad array length %s", lit.Value)
	}
	return n, nil
}
