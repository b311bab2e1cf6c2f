package typex

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Format renders an annotation as a canonical string such as
// dict[bool, int], Union[int, None] or tuple[int, ...].
func Format(annotation any) string {
	switch a := annotation.(type) {
	case nil, NoneType:
		return "None"
	case Form:
		return string(a)
	case Generic:
		return formatGeneric(a)
	case reflect.Type:
		if a == None {
			return "None"
		}
		return a.String()
	case *TypeVar:
		return "~" + a.Name
	case *Protocol:
		return a.Name
	case *Class:
		return a.Name
	case FuncID:
		return funcName(a.PC)
	case string:
		return a
	}
	rv := reflect.ValueOf(annotation)
	if rv.Kind() == reflect.Func && !rv.IsNil() {
		return funcName(rv.Pointer())
	}
	return fmt.Sprintf("%#v", annotation)
}

func formatGeneric(g Generic) string {
	if g.origin == FormEnum && g.name != "" {
		return g.name
	}
	var b strings.Builder
	b.WriteString(Format(g.origin))
	b.WriteByte('[')
	for i, arg := range g.args {
		if i > 0 {
			b.WriteString(", ")
		}
		if g.origin == FormLiteral || g.origin == FormEnum {
			b.WriteString(Repr(arg))
		} else {
			b.WriteString(Format(arg))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func funcName(pc uintptr) string {
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return fmt.Sprintf("func@%#x", pc)
}

// Repr renders an instance in Go syntax. It is the default rendering of
// parametrization ids.
func Repr(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return fmt.Sprintf("[]byte(%q)", x)
	case FrozenSetValue:
		parts := make([]string, 0, x.Len())
		for _, it := range x.Items() {
			parts = append(parts, Repr(it))
		}
		return "frozenset{" + strings.Join(parts, ", ") + "}"
	case Record:
		parts := make([]string, 0, len(x.Fields))
		for _, f := range x.Fields {
			parts = append(parts, f.Name+": "+Repr(f.Value))
		}
		return x.Type + "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%#v", v)
}
