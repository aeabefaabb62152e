package cosmos

import (
	"fmt"
)

// DefaultUniverseName is the universe entities are created in when a
// construction Spec names none.
const DefaultUniverseName = "Universe"

// DatasetFunc populates a universe with a default dataset for one kind.
// Loaders are registered per (universe name, collection name) pair and run
// at most once, the first time the collection is materialized.
type DatasetFunc func(u *Universe) error

// Registrar records entity-kind declarations in dependency order, holds
// the registry of universes, and carries the dataset-loader table. It is
// the single entry point for declaring kinds and constructing entities,
// replacing any reliance on import-time side effects: callers declare
// their kinds explicitly, dependencies first.
type Registrar struct {
	kinds        []*Kind
	byName       map[string]*Kind
	byCollection map[string]*Kind
	universes    *Registry
	datasets     map[string]DatasetFunc
}

// NewRegistrar creates an empty registrar.
func NewRegistrar() *Registrar {
	return &Registrar{
		byName:       make(map[string]*Kind),
		byCollection: make(map[string]*Kind),
		universes:    NewRegistry("universe", true),
		datasets:     make(map[string]DatasetFunc),
	}
}

// Declare validates a kind descriptor and records it. Kinds referenced by
// link attributes must already be declared, so declaration order is
// dependency order. A failed declaration leaves the registrar unchanged
// and the kind unusable.
func (r *Registrar) Declare(spec KindSpec) (*Kind, error) {
	k, err := r.validate(spec)
	if err != nil {
		return nil, err
	}
	k.index = len(r.kinds)
	r.kinds = append(r.kinds, k)
	r.byName[k.name] = k
	r.byCollection[k.collection] = k
	return k, nil
}

// Kinds returns the declared kinds in declaration order.
func (r *Registrar) Kinds() []*Kind {
	return append([]*Kind(nil), r.kinds...)
}

// KindByName resolves a kind by its singular name.
func (r *Registrar) KindByName(name string) (*Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// KindByCollection resolves a kind by its collection name.
func (r *Registrar) KindByCollection(name string) (*Kind, bool) {
	k, ok := r.byCollection[name]
	return k, ok
}

// AddDataset registers a loader that populates the named collection the
// first time the named universe materializes it. Registering a loader for
// a pair nobody ever references is harmless.
func (r *Registrar) AddDataset(universe, collection string, fn DatasetFunc) {
	r.datasets[datasetKey(universe, collection)] = fn
}

func (r *Registrar) dataset(universe, collection string) (DatasetFunc, bool) {
	fn, ok := r.datasets[datasetKey(universe, collection)]
	return fn, ok
}

func datasetKey(universe, collection string) string {
	return Normalize(universe) + "/" + collection
}

// Universe resolves a universe by name.
func (r *Registrar) Universe(name string) (*Universe, error) {
	obj, ok := r.universes.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: universe %q does not exist", ErrNotFound, name)
	}
	return obj.(*Universe), nil
}

// UniverseNames returns the exact names of all universes, sorted.
func (r *Registrar) UniverseNames() []string {
	return r.universes.Names()
}
