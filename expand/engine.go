// Package expand turns annotations into the instances that inhabit them.
//
// An Engine combines a handler registry with a configuration. Resolution
// for one annotation runs in order:
//
//  1. classify it with typex.Classify;
//  2. use the config override for its base, if any;
//  3. otherwise run every registry handler for the base;
//  4. otherwise fall back on the category (catalog values for primitive
//     kinds, constructor products for callables, constraints for type
//     variables).
//
// Results are sets: duplicates by typex.Identity are dropped, keeping the
// first occurrence. Streams are lazy and every range starts over.
package expand

import (
	"iter"

	"go.uber.org/zap"

	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

// Engine expands annotations. It is safe for concurrent use once its
// registry is populated.
type Engine struct {
	registry *registry.Registry
	config   config.Config
	logger   *zap.SugaredLogger
}

// New creates an engine over reg with cfg. A nil registry means
// DefaultRegistry().
func New(reg *registry.Registry, cfg config.Config) *Engine {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Engine{
		registry: reg,
		config:   cfg,
		logger:   logger.ComponentLogger("expand"),
	}
}

// NewDefault creates an engine with the builtin handlers and the default
// configuration.
func NewDefault() *Engine {
	return New(DefaultRegistry(), config.Default())
}

func (e *Engine) Registry() *registry.Registry { return e.registry }
func (e *Engine) Config() config.Config        { return e.config }

// Instances streams the distinct instances of annotation. MaxElements
// applies to this stream.
func (e *Engine) Instances(annotation any) iter.Seq2[any, error] {
	limit := e.config.MaxElements()
	return func(yield func(any, error) bool) {
		x := &expansion{engine: e}
		n := 0
		for v, err := range x.expand(annotation) {
			if err != nil {
				yield(nil, errors.Wrapf(err, "expand %s", typex.Format(annotation)))
				return
			}
			if limit > 0 && n == limit {
				if e.config.Policy() == config.PolicyTruncate {
					e.logger.Debugw("element limit reached, truncating",
						logger.FieldType, typex.Format(annotation),
						logger.FieldLimit, limit)
					return
				}
				yield(nil, errors.NewLimitExceededError("max elements", limit))
				return
			}
			n++
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Expand returns every distinct instance of annotation in first-seen order.
func (e *Engine) Expand(annotation any) ([]any, error) {
	var out []any
	for v, err := range e.Instances(annotation) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Count returns the number of distinct instances of annotation.
func (e *Engine) Count(annotation any) (int, error) {
	n := 0
	for _, err := range e.Instances(annotation) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// expansion tracks the nesting depth of one resolution. It is the
// Expander handed to handlers.
type expansion struct {
	engine *Engine
	depth  int
}

// Instances expands a nested annotation one level deeper.
func (x *expansion) Instances(annotation any) iter.Seq2[any, error] {
	child := &expansion{engine: x.engine, depth: x.depth + 1}
	return child.expand(annotation)
}

func (x *expansion) expand(annotation any) iter.Seq2[any, error] {
	e := x.engine
	return func(yield func(any, error) bool) {
		if limit := e.config.MaxDepth(); limit > 0 && x.depth > limit {
			if e.config.Policy() == config.PolicyTruncate {
				e.logger.Debugw("depth limit reached, truncating",
					logger.FieldType, typex.Format(annotation),
					logger.FieldDepth, x.depth)
				return
			}
			err := errors.NewLimitExceededError("max depth", limit)
			yield(nil, errors.WithHint(err, "recursive types need limit_policy = \"truncate\" or a larger max_depth"))
			return
		}

		seq, err := x.resolve(typex.Classify(annotation))
		if err != nil {
			yield(nil, err)
			return
		}

		seen := make(map[string]struct{})
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			k := typex.Identity(v)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (x *expansion) resolve(d typex.Descriptor) (iter.Seq2[any, error], error) {
	e := x.engine
	for _, key := range d.RegistryKeys() {
		if h, ok := e.config.Override(key); ok {
			e.logger.Debugw("using override",
				logger.FieldType, d.String(),
				logger.FieldStrategy, "override")
			return h(x, d), nil
		}
		if hs, ok := e.registry.Lookup(key); ok {
			if len(hs) == 0 {
				e.logger.Debugw("handlers cleared, expanding to nothing", logger.FieldType, d.String())
			}
			seqs := make([]iter.Seq2[any, error], len(hs))
			for i, h := range hs {
				seqs[i] = h(x, d)
			}
			return registry.Concat(seqs...), nil
		}
	}
	return x.fallback(d)
}
