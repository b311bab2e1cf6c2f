// Package catalog holds the fixed representative values of the primitive
// types. Every expansion eventually bottoms out here.
//
// The corpora are ordered and static. Values converts them to any Go type
// of a matching kind, so a named type such as
//
//	type Celsius float64
//
// expands to the float corpus as Celsius values. Sized integer and float
// kinds drop the values they cannot represent and gain their own limits.
package catalog

import (
	"math"
	"reflect"

	"github.com/teranos/inhabit/typex"
)

// Entry names one catalog set.
type Entry struct {
	Name string
	Type reflect.Type
}

// Default lists the catalog sets in the order Any expands them.
func Default() []Entry {
	return []Entry{
		{Name: "bool", Type: typex.Bool},
		{Name: "int", Type: typex.Int},
		{Name: "float", Type: typex.Float},
		{Name: "complex", Type: typex.Complex},
		{Name: "str", Type: typex.Str},
		{Name: "bytes", Type: typex.Bytes},
		{Name: "None", Type: typex.None},
	}
}

var bools = []bool{true, false}

var ints = []int64{
	0, 1, -1, 2, -2,
	math.MaxInt32, math.MinInt32,
	math.MaxInt64, math.MinInt64,
}

var floats = []float64{
	0.0, math.Copysign(0, -1),
	1.0, -1.0,
	1e-10, -1e-10,
	1e10, -1e10,
	math.Inf(1), math.Inf(-1),
	math.NaN(),
}

var complexes = []complex128{
	0, 1i, -1i,
	1 + 1i, -1 - 1i,
	1e-10i, -1e-10i,
	1e10i, -1e10i,
	1e-10 + 1e-10i, -1e-10 - 1e-10i,
	1e10 + 1e10i, -1e10 - 1e10i,
}

var strs = buildStrings()

func buildStrings() []string {
	out := []string{""}
	for _, group := range []string{
		" \t\n\r\x0b\x0c",
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~",
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"éñ☃©®😀",
		"ДдבעαΩいろは我们",
	} {
		for _, r := range group {
			out = append(out, string(r))
		}
	}
	// escape sequences and quote runs as written in source, not interpreted
	out = append(out, `\\`, `\'`, `\"`, `\n`, `\r`, `\t`, `\x00`, `\x7F`)
	out = append(out, `"""`, `'''`)
	return out
}

var byteStrings = [][]byte{
	{},
	{0x00}, {0xff},
	{0x00, 0xff}, {0xff, 0x00},
	[]byte(" "), []byte("\t"), []byte("\n"), []byte("\r"), []byte("\v"), []byte("\f"),
	[]byte("0"), []byte("1"), []byte("2"), []byte("3"), []byte("4"),
	[]byte("5"), []byte("6"), []byte("7"), []byte("8"), []byte("9"),
	[]byte("a"), []byte("A"), []byte("z"), []byte("Z"),
	{0x80}, {0xfe},
}

var byteType = reflect.TypeFor[byte]()

// Values returns the catalog converted to t. The second result is false
// when t has no catalog.
func Values(t reflect.Type) ([]any, bool) {
	if t == nil {
		return nil, false
	}
	if t == typex.None {
		return []any{nil}, true
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		out := make([]any, len(byteStrings))
		for i, b := range byteStrings {
			v := reflect.MakeSlice(t, len(b), len(b))
			if t.Elem() == byteType {
				reflect.Copy(v, reflect.ValueOf(b))
			} else {
				for j, c := range b {
					v.Index(j).Set(reflect.ValueOf(c).Convert(t.Elem()))
				}
			}
			out[i] = v.Interface()
		}
		return out, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return convert(t, bools), true
	case reflect.String:
		return convert(t, strs), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned(t), true
	case reflect.Float32:
		vals := append([]float64(nil), floats...)
		vals = append(vals, math.MaxFloat32, -math.MaxFloat32, math.SmallestNonzeroFloat32)
		return convert(t, vals), true
	case reflect.Float64:
		return convert(t, floats), true
	case reflect.Complex64, reflect.Complex128:
		return convert(t, complexes), true
	}
	return nil, false
}

// Len is the size of the catalog for t, or 0.
func Len(t reflect.Type) int {
	vals, _ := Values(t)
	return len(vals)
}

func convert[T any](t reflect.Type, vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = reflect.ValueOf(v).Convert(t).Interface()
	}
	return out
}

func signed(t reflect.Type) []any {
	bits := t.Bits()
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	if bits == 64 {
		lo, hi = math.MinInt64, math.MaxInt64
	}
	var vals []int64
	seen := make(map[int64]bool)
	for _, v := range append(append([]int64(nil), ints...), hi, lo) {
		if v < lo || v > hi || seen[v] {
			continue
		}
		seen[v] = true
		vals = append(vals, v)
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = reflect.ValueOf(v).Convert(t).Interface()
	}
	return out
}

func unsigned(t reflect.Type) []any {
	hi := uint64(math.MaxUint64) >> (64 - t.Bits())
	var vals []uint64
	seen := make(map[uint64]bool)
	for _, v := range ints {
		if v < 0 || uint64(v) > hi || seen[uint64(v)] {
			continue
		}
		seen[uint64(v)] = true
		vals = append(vals, uint64(v))
	}
	if !seen[hi] {
		vals = append(vals, hi)
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = reflect.ValueOf(v).Convert(t).Interface()
	}
	return out
}
