// Package config holds the expansion configuration.
//
// Config is the immutable value the engine reads: element and depth limits,
// the policy applied when a limit is hit, and per-type handler overrides.
// Settings is its file/environment form, loaded with viper from
// inhabit.toml and INHABIT_* variables.
package config

import (
	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

// Policy decides what happens when an expansion crosses a limit.
type Policy string

const (
	// PolicyError fails the expansion with ErrLimitExceeded.
	PolicyError Policy = "error"
	// PolicyTruncate stops the stream at MaxElements and yields nothing for
	// sub-expansions deeper than MaxDepth.
	PolicyTruncate Policy = "truncate"
)

func (p Policy) Valid() bool {
	return p == PolicyError || p == PolicyTruncate
}

// Defaults. Zero disables a limit.
const (
	DefaultMaxElements = 0
	DefaultMaxDepth    = 8
	DefaultPolicy      = PolicyError
)

// Config is read-only after construction. Copies share nothing mutable.
type Config struct {
	maxElements int
	maxDepth    int
	policy      Policy
	overrides   map[any]registry.Handler
}

// Option adjusts a Config under construction.
type Option func(*Config) error

// Default returns the default configuration.
func Default() Config {
	return Config{
		maxElements: DefaultMaxElements,
		maxDepth:    DefaultMaxDepth,
		policy:      DefaultPolicy,
	}
}

// New builds a Config from options applied over the defaults.
func New(opts ...Option) (Config, error) {
	c := Default()
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) Config {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// With returns a copy of c with more options applied.
func (c Config) With(opts ...Option) (Config, error) {
	out := c
	out.overrides = make(map[any]registry.Handler, len(c.overrides))
	for k, h := range c.overrides {
		out.overrides[k] = h
	}
	for _, opt := range opts {
		if err := opt(&out); err != nil {
			return Config{}, err
		}
	}
	return out, nil
}

func (c Config) MaxElements() int { return c.maxElements }
func (c Config) MaxDepth() int    { return c.maxDepth }
func (c Config) Policy() Policy {
	if c.policy == "" {
		return DefaultPolicy
	}
	return c.policy
}

// Override returns the handler that replaces registry lookup for base.
func (c Config) Override(base any) (registry.Handler, bool) {
	if len(c.overrides) == 0 || !typex.Hashable(base) {
		return nil, false
	}
	h, ok := c.overrides[base]
	return h, ok
}

// Overrides returns the number of overridden bases.
func (c Config) Overrides() int { return len(c.overrides) }

func WithMaxElements(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return errors.NewConfigurationError("max_elements must be >= 0, got %d", n)
		}
		c.maxElements = n
		return nil
	}
}

func WithMaxDepth(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return errors.NewConfigurationError("max_depth must be >= 0, got %d", n)
		}
		c.maxDepth = n
		return nil
	}
}

func WithPolicy(p Policy) Option {
	return func(c *Config) error {
		if !p.Valid() {
			return errors.NewConfigurationError("limit policy must be %q or %q, got %q", PolicyError, PolicyTruncate, p)
		}
		c.policy = p
		return nil
	}
}

// WithOverride replaces the registry handlers of key with h. The key is
// canonicalized like a registry key.
func WithOverride(key any, h registry.Handler) Option {
	return func(c *Config) error {
		if h == nil {
			return errors.NewConfigurationError("nil override for %s", typex.Format(key))
		}
		base, err := registry.CanonicalKey(key)
		if err != nil {
			return err
		}
		overrides := make(map[any]registry.Handler, len(c.overrides)+1)
		for k, v := range c.overrides {
			overrides[k] = v
		}
		overrides[base] = h
		c.overrides = overrides
		return nil
	}
}
