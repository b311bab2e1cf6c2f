package registry

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/inhabit/errors"
)

// Pack is a named bundle of handlers installed together.
type Pack struct {
	Name        string
	Version     string
	Description string
	// Requires is a semver constraint on the handler API, e.g. ">= 1.0, < 2".
	Requires string
	Install  func(r *Registry) error
}

// Install validates the pack and runs its installer.
// Returns error if the name conflicts or the API version is incompatible.
func (r *Registry) Install(p Pack) error {
	if p.Name == "" {
		return errors.NewConfigurationError("pack has no name")
	}
	if p.Install == nil {
		return errors.NewConfigurationError("pack %s has no installer", p.Name)
	}

	r.mu.Lock()
	if _, exists := r.packs[p.Name]; exists {
		r.mu.Unlock()
		return errors.NewConfigurationError("pack already installed: %s", p.Name)
	}
	if err := r.validateVersion(p); err != nil {
		r.mu.Unlock()
		return errors.Wrapf(err, "version incompatible for %s", p.Name)
	}
	r.packs[p.Name] = p
	r.mu.Unlock()

	// installer registers handlers, which takes the lock
	if err := p.Install(r); err != nil {
		r.mu.Lock()
		delete(r.packs, p.Name)
		r.mu.Unlock()
		return errors.Wrapf(err, "install pack %s", p.Name)
	}
	return nil
}

// Packs returns the installed pack names in sorted order.
func (r *Registry) Packs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.packs))
	for name := range r.packs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pack returns an installed pack by name.
func (r *Registry) Pack(name string) (Pack, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.packs[name]
	return p, ok
}

// validateVersion checks the pack constraint against the registry API version
func (r *Registry) validateVersion(p Pack) error {
	if p.Requires == "" {
		return nil
	}

	api, err := semver.NewVersion(r.version)
	if err != nil {
		return errors.NewConfigurationError("invalid handler API version %s: %v", r.version, err)
	}

	constraint, err := semver.NewConstraint(p.Requires)
	if err != nil {
		return errors.NewConfigurationError("invalid version constraint %s: %v", p.Requires, err)
	}

	if !constraint.Check(api) {
		return errors.NewConfigurationError("pack requires handler API %s, but running %s", p.Requires, r.version)
	}
	return nil
}
