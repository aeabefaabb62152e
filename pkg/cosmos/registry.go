package cosmos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Object is what a Registry stores: anything with a unique name, a kind
// label for error messages, and an unlink-in-progress flag. Entities and
// universes both satisfy it. Lookups return Object; callers type-assert
// to the concrete type.
type Object interface {
	Name() string
	Label() string
	Unlinking() bool
}

// Registry is a uniqueness-enforcing name-to-object map. Keys are
// normalized (lowercased, spaces replaced by underscores) with an
// exact-name index kept alongside. The maps are unexported, so every
// mutation goes through Link or Unlink.
//
// In unique mode (a kind's per-universe registry) inserting a name that
// normalizes to an existing entry always fails, distinguishing an exact
// duplicate from a case/space conflict. In collection mode (an entity's
// back-reference collection) re-inserting the same exact name is an
// idempotent no-op and only conflicts fail.
type Registry struct {
	id      string
	label   string
	unique  bool
	entries map[string]Object // exact name -> object
	index   map[string]string // normalized name -> exact name
}

// NewRegistry creates an empty registry. The label names the stored kind
// in error messages; unique selects unique mode over collection mode.
func NewRegistry(label string, unique bool) *Registry {
	return &Registry{
		id:      uuid.Must(uuid.NewV7()).String(),
		label:   label,
		unique:  unique,
		entries: make(map[string]Object),
		index:   make(map[string]string),
	}
}

// Normalize lowercases a name and replaces spaces with underscores, the
// form under which uniqueness is enforced.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// ID returns the registry's unique id.
func (r *Registry) ID() string { return r.id }

// Label returns the label given at construction.
func (r *Registry) Label() string { return r.label }

// Len returns the number of stored objects.
func (r *Registry) Len() int { return len(r.entries) }

// Link inserts an object under its name. Uniqueness behavior depends on
// the registry mode; see the type comment.
func (r *Registry) Link(obj Object) error {
	name := obj.Name()
	normalized := Normalize(name)
	if existing, ok := r.index[normalized]; ok {
		if existing == name {
			if !r.unique {
				r.entries[name] = obj
				return nil
			}
			return fmt.Errorf("%w: %q (%s) already exists", ErrDuplicateName, name, obj.Label())
		}
		return fmt.Errorf("%w: %q (%s) conflicts with existing object named %q; names must be unique when normalized",
			ErrDuplicateName, name, obj.Label(), existing)
	}
	r.entries[name] = obj
	r.index[normalized] = name
	return nil
}

// Unlink removes an object. It may only be called while the object is
// performing its own unlink; a missing entry is not an error, so unlink
// remains idempotent.
func (r *Registry) Unlink(obj Object) error {
	if !obj.Unlinking() {
		return ErrUnlinkProtocol
	}
	name := obj.Name()
	if _, ok := r.entries[name]; !ok {
		return nil
	}
	delete(r.entries, name)
	delete(r.index, Normalize(name))
	return nil
}

// Lookup resolves a name after normalization, so "Solar System" and
// "solar_system" find the same entry.
func (r *Registry) Lookup(name string) (Object, bool) {
	exact, ok := r.index[Normalize(name)]
	if !ok {
		return nil, false
	}
	return r.entries[exact], true
}

// Get resolves an exact name without normalization.
func (r *Registry) Get(name string) (Object, bool) {
	obj, ok := r.entries[name]
	return obj, ok
}

// Names returns the exact names of all stored objects, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// refID and unlinkObject let a Registry serve as an entity back-link.
func (r *Registry) refID() string { return r.id }

func (r *Registry) unlinkObject(e *Entity) error { return r.Unlink(e) }
