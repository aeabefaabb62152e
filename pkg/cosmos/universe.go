package cosmos

import (
	"fmt"

	"github.com/google/uuid"
)

// Universe is an isolated namespace holding one registry per entity kind.
// Registries are materialized lazily, the first time a kind is referenced,
// at which point any dataset loader registered for the (universe,
// collection) pair runs once. Loading is re-entrancy safe: entities
// created by a loader resolve against the registry being populated.
type Universe struct {
	id        string
	name      string
	registrar *Registrar

	registries map[string]*Registry // by collection name
	loaded     map[string]bool      // collections whose dataset already ran
	loadErrs   map[string]error     // failures of datasets that already ran
	unlinking  bool
}

// NewUniverse creates a universe and registers it in the registrar's
// universe registry, which enforces normalized-name uniqueness.
func (r *Registrar) NewUniverse(name string) (*Universe, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: universe name must not be empty", ErrInvalidName)
	}
	u := &Universe{
		id:         uuid.Must(uuid.NewV7()).String(),
		name:       name,
		registrar:  r,
		registries: make(map[string]*Registry),
		loaded:     make(map[string]bool),
		loadErrs:   make(map[string]error),
	}
	if err := r.universes.Link(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Name returns the universe's name.
func (u *Universe) Name() string { return u.name }

// Label identifies universes in registry error messages.
func (u *Universe) Label() string { return "universe" }

// ID returns the universe's unique id.
func (u *Universe) ID() string { return u.id }

// Unlinking reports whether the universe is tearing down its own links.
func (u *Universe) Unlinking() bool { return u.unlinking }

// Registrar returns the registrar this universe belongs to.
func (u *Universe) Registrar() *Registrar { return u.registrar }

// Collection returns the registry for the kind with the given collection
// name, materializing it on first use. A dataset loader registered for
// this universe and collection runs exactly once; its absence is not an
// error, but its failure is.
func (u *Universe) Collection(name string) (*Registry, error) {
	kind, ok := u.registrar.byCollection[name]
	if !ok {
		return nil, fmt.Errorf("%w: no kind declared with collection name %q", ErrNotFound, name)
	}
	if reg, ok := u.registries[name]; ok {
		if err := u.runDataset(name); err != nil {
			return nil, err
		}
		return reg, nil
	}
	reg := NewRegistry(kind.name, true)
	u.registries[name] = reg
	if err := u.runDataset(name); err != nil {
		return nil, err
	}
	return reg, nil
}

// runDataset runs the dataset loader for a collection once. The loaded
// mark is set before the loader runs so constructions inside the loader
// do not recurse into it. A loader failure is recorded and returned on
// every later access, so an aborted load cannot hand out a partially
// populated registry as if it were complete.
func (u *Universe) runDataset(collection string) error {
	if u.loaded[collection] {
		return u.loadErrs[collection]
	}
	fn, ok := u.registrar.dataset(u.name, collection)
	if !ok {
		u.loaded[collection] = true
		return nil
	}
	u.loaded[collection] = true
	if err := fn(u); err != nil {
		err = fmt.Errorf("dataset for %q in universe %q: %w", collection, u.name, err)
		u.loadErrs[collection] = err
		return err
	}
	return nil
}

// KindRegistry returns the registry for a kind resolved by singular name,
// materializing it like Collection.
func (u *Universe) KindRegistry(kindName string) (*Registry, error) {
	kind, ok := u.registrar.byName[kindName]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q is not declared", ErrNotFound, kindName)
	}
	return u.Collection(kind.collection)
}

// Unlink removes the universe from the registrar's universe registry. The
// universe and its entities stay usable in memory but are no longer
// resolvable by name.
func (u *Universe) Unlink() error {
	u.unlinking = true
	err := u.registrar.universes.Unlink(u)
	u.unlinking = false
	return err
}
