package registry

import (
	"iter"

	"github.com/teranos/inhabit/typex"
)

// Expander expands nested annotations on behalf of a handler. Handlers must
// recurse through it, not through a fresh engine, so limits are shared.
type Expander interface {
	Instances(annotation any) iter.Seq2[any, error]
}

// Handler produces the instances of one classified annotation. The
// sequence is consumed lazily and may be ranged more than once.
type Handler func(x Expander, d typex.Descriptor) iter.Seq2[any, error]

// Values yields the given values in order.
func Values(vs ...any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, v := range vs {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Fail yields a single error.
func Fail(err error) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		yield(nil, err)
	}
}

// Static is a handler that ignores its input and yields vs.
func Static(vs ...any) Handler {
	vs = append([]any(nil), vs...)
	return func(Expander, typex.Descriptor) iter.Seq2[any, error] {
		return Values(vs...)
	}
}

// Concat chains sequences.
func Concat(seqs ...iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, seq := range seqs {
			for v, err := range seq {
				if !yield(v, err) || err != nil {
					return
				}
			}
		}
	}
}
