// Package registry maps annotation bases to instance handlers.
//
// Registering twice for the same base appends; every handler for a base
// runs and their instances are concatenated. A base that was registered and
// then cleared is present with no handlers and expands to nothing, which is
// different from a base that was never registered.
package registry

import (
	"sync"

	"github.com/teranos/inhabit/errors"
	"github.com/teranos/inhabit/typex"
	"github.com/teranos/inhabit/version"
)

// Registry holds handlers keyed by canonical base.
type Registry struct {
	mu       sync.RWMutex
	handlers map[any][]Handler
	order    []any
	packs    map[string]Pack
	version  string // handler API version
}

// New creates an empty registry for the current handler API.
func New() *Registry {
	return NewWithVersion(version.API)
}

// NewWithVersion creates an empty registry that checks packs against api.
func NewWithVersion(api string) *Registry {
	return &Registry{
		handlers: make(map[any][]Handler),
		packs:    make(map[string]Pack),
		version:  api,
	}
}

// Register appends h to every key. Keys are canonicalized to their base;
// a parameterized key such as list[int] is ambiguous and rejected, while a
// named Go type such as type Tags []string is kept as itself.
func (r *Registry) Register(h Handler, keys ...any) error {
	if h == nil {
		return errors.NewConfigurationError("nil handler")
	}
	if len(keys) == 0 {
		return errors.NewConfigurationError("register needs at least one key")
	}
	bases := make([]any, 0, len(keys))
	for _, k := range keys {
		base, err := CanonicalKey(k)
		if err != nil {
			return err
		}
		bases = append(bases, base)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, base := range bases {
		if _, exists := r.handlers[base]; !exists {
			r.order = append(r.order, base)
		}
		r.handlers[base] = append(r.handlers[base], h)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(h Handler, keys ...any) {
	if err := r.Register(h, keys...); err != nil {
		panic(err)
	}
}

// Lookup returns the handlers for base. ok is false when base was never
// registered; a cleared base returns an empty slice and true.
func (r *Registry) Lookup(base any) ([]Handler, bool) {
	if !typex.Hashable(base) {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	hs, ok := r.handlers[base]
	if !ok {
		return nil, false
	}
	return append([]Handler{}, hs...), true
}

// Resolve returns the handlers of the most specific registered key of d.
func (r *Registry) Resolve(d typex.Descriptor) ([]Handler, bool) {
	for _, k := range d.RegistryKeys() {
		if hs, ok := r.Lookup(k); ok {
			return hs, true
		}
	}
	return nil, false
}

// Clear removes every handler of key. Clearing an unknown key does nothing.
func (r *Registry) Clear(key any) {
	base := typex.Classify(key).RegistryKeys()[0]
	if !typex.Hashable(base) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[base]; ok {
		r.handlers[base] = []Handler{}
	}
}

// Keys returns the registered bases in first-registration order.
func (r *Registry) Keys() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]any(nil), r.order...)
}

// Len returns the number of handlers registered for key.
func (r *Registry) Len(key any) int {
	hs, _ := r.Lookup(typex.Classify(key).RegistryKeys()[0])
	return len(hs)
}

// CanonicalKey validates a registration key and returns its base. A named
// Go type is its own key even when its structure is a parameterized form.
func CanonicalKey(key any) (any, error) {
	d := typex.Classify(key)
	if keys := d.RegistryKeys(); len(keys) > 1 {
		return keys[0], nil
	}
	if d.HasArgs() {
		return nil, errors.NewConfigurationError("ambiguous registration for %s: register the bare origin %s",
			typex.Format(key), typex.Format(d.Base))
	}
	if !typex.Hashable(d.Base) {
		return nil, errors.NewConfigurationError("cannot register unhashable key of type %T", key)
	}
	return d.Base, nil
}
