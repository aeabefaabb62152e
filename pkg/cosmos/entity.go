package cosmos

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/orrery/pkg/measure"
)

// Attrs is the keyword attribute bag passed to Create. Values may be
// string literals (entity names for link attributes, "<number> <unit>"
// for quantity attributes, plain text for string attributes), float64 or
// int for dimensionless quantities, or pre-built *Entity,
// *measure.Quantity, and *measure.RefString values.
type Attrs map[string]any

// Spec is the construction input for one entity.
type Spec struct {
	Name string

	// Universe names the target universe; empty means
	// DefaultUniverseName. In, when set, bypasses name resolution.
	Universe string
	In       *Universe

	Reference    string
	ReferenceURL string

	Attrs Attrs
}

// backlink is anything recorded on an entity for teardown: the registries
// it appears in and the entities that hold typed links to it. refID keys
// deduplication.
type backlink interface {
	refID() string
	unlinkObject(e *Entity) error
}

// Entity is a constructed material object. After construction it is
// read-only; the only sanctioned mutation is Unlink, which walks the
// recorded back-links so no registry or entity keeps a dangling
// reference.
type Entity struct {
	id   string
	kind *Kind
	name string
	prov measure.Provenance

	universe    *Universe
	links       map[string]*Entity
	quantities  map[string]*measure.Quantity
	texts       map[string]*measure.RefString
	collections map[string]*Registry

	backlinks []backlink
	unlinking bool
}

// Create constructs an entity of the named kind. Attributes are resolved
// against the kind's schema: link attributes by name lookup in the target
// kind's registry, string attributes into RefString values, and unit
// attributes into unit-checked Quantity values. The entity registers
// itself into its kind's registry in the target universe. On any failure
// the partially built entity is unlinked before the error returns, so a
// failed construction leaves no back-links behind.
func (r *Registrar) Create(kindName string, spec Spec) (*Entity, error) {
	kind, ok := r.byName[kindName]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q is not declared", ErrNotFound, kindName)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: entity name must not be empty", ErrInvalidName)
	}

	universe := spec.In
	if universe == nil {
		name := spec.Universe
		if name == "" {
			name = DefaultUniverseName
		}
		var err error
		if universe, err = r.Universe(name); err != nil {
			return nil, err
		}
	}

	prov := measure.Provenance{Reference: spec.Reference, ReferenceURL: spec.ReferenceURL}
	if len(spec.Attrs) > 0 {
		if err := prov.Validate(); err != nil {
			return nil, err
		}
	}

	e := &Entity{
		id:          uuid.Must(uuid.NewV7()).String(),
		kind:        kind,
		name:        spec.Name,
		prov:        prov,
		universe:    universe,
		links:       make(map[string]*Entity),
		quantities:  make(map[string]*measure.Quantity),
		texts:       make(map[string]*measure.RefString),
		collections: make(map[string]*Registry, len(kind.collections)),
	}
	for _, name := range kind.collections {
		e.collections[name] = NewRegistry(name, false)
	}

	// Sorted order keeps failure behavior deterministic.
	attrs := make([]string, 0, len(spec.Attrs))
	for attr := range spec.Attrs {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		if err := e.setAttr(attr, spec.Attrs[attr]); err != nil {
			e.rollback()
			return nil, err
		}
	}

	registry, err := universe.Collection(kind.collection)
	if err != nil {
		e.rollback()
		return nil, err
	}
	if err := registry.Link(e); err != nil {
		e.rollback()
		return nil, err
	}
	e.addBacklink(registry)
	return e, nil
}

// setAttr resolves one keyword attribute against the schema.
func (e *Entity) setAttr(attr string, value any) error {
	if target, ok := e.kind.links[attr]; ok {
		return e.setLink(attr, target, value)
	}
	if e.kind.strs[attr] {
		return e.setText(attr, value)
	}
	if expected, ok := e.kind.units[attr]; ok {
		return e.setQuantity(attr, expected, value)
	}
	return fmt.Errorf("%w: %q is not an attribute of kind %q", ErrUnknownAttribute, attr, e.kind.name)
}

func (e *Entity) setLink(attr string, targetKind *Kind, value any) error {
	var target *Entity
	switch v := value.(type) {
	case string:
		registry, err := e.universe.Collection(targetKind.collection)
		if err != nil {
			return err
		}
		obj, ok := registry.Lookup(v)
		if !ok {
			return fmt.Errorf("%w: %q (%s) does not exist in universe %q",
				ErrNotFound, v, targetKind.name, e.universe.Name())
		}
		target = obj.(*Entity)
	case *Entity:
		if v.kind != targetKind {
			return fmt.Errorf("%w: attribute %q of %q expects kind %q, not %q",
				ErrTypeMismatch, attr, e.name, targetKind.name, v.kind.name)
		}
		target = v
	default:
		return fmt.Errorf("%w: attribute %q of %q expects a %s name or entity",
			ErrTypeMismatch, attr, e.name, targetKind.name)
	}

	hook := e.kind.hooks[attr]
	if hook == nil {
		hook = defaultLinkHook
	}
	if err := hook(e, target); err != nil {
		return err
	}
	e.links[attr] = target
	target.addBacklink(e)
	return nil
}

// defaultLinkHook registers the new entity into the target's
// back-reference collection named after the new entity's kind's
// collection name, and records that collection for teardown.
func defaultLinkHook(e, target *Entity) error {
	coll, err := target.Collection(e.kind.collection)
	if err != nil {
		return err
	}
	if err := coll.Link(e); err != nil {
		return err
	}
	e.addBacklink(coll)
	return nil
}

func (e *Entity) setText(attr string, value any) error {
	var rs *measure.RefString
	switch v := value.(type) {
	case *measure.RefString:
		rs = v
	case string:
		var err error
		if rs, err = measure.NewRefString(v, e.prov); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: attribute %q of %q expects a string", ErrTypeMismatch, attr, e.name)
	}
	if err := rs.LinkTo(e, e.kind.displayName(attr)); err != nil {
		return fmt.Errorf("%w: attribute %q of %q: %w", ErrTypeMismatch, attr, e.name, err)
	}
	e.texts[attr] = rs
	return nil
}

func (e *Entity) setQuantity(attr string, expected measure.Unit, value any) error {
	var q *measure.Quantity
	var err error
	switch v := value.(type) {
	case *measure.Quantity:
		q = v
	case string:
		q, err = measure.ParseQuantity(v, e.prov)
	case float64:
		q, err = measure.NewQuantity(v, measure.Dimensionless, e.prov)
	case int:
		q, err = measure.NewQuantity(float64(v), measure.Dimensionless, e.prov)
	default:
		return fmt.Errorf("%w: attribute %q of %q expects a quantity", ErrTypeMismatch, attr, e.name)
	}
	if err != nil {
		return err
	}
	if err := q.LinkTo(e, e.kind.displayName(attr), expected); err != nil {
		return fmt.Errorf("%w: attribute %q of %q: %w", ErrTypeMismatch, attr, e.name, err)
	}
	e.quantities[attr] = q
	return nil
}

// addBacklink records a teardown participant, deduplicated by id.
func (e *Entity) addBacklink(b backlink) {
	for _, existing := range e.backlinks {
		if existing.refID() == b.refID() {
			return
		}
	}
	e.backlinks = append(e.backlinks, b)
}

// Name returns the entity's name.
func (e *Entity) Name() string { return e.name }

// Label returns the entity's kind name, used in registry error messages.
func (e *Entity) Label() string { return e.kind.name }

// ID returns the entity's unique id.
func (e *Entity) ID() string { return e.id }

// Kind returns the entity's kind descriptor.
func (e *Entity) Kind() *Kind { return e.kind }

// Universe returns the universe the entity was created in.
func (e *Entity) Universe() *Universe { return e.universe }

// Reference returns the provenance reference text.
func (e *Entity) Reference() string { return e.prov.Reference }

// ReferenceURL returns the provenance reference URL.
func (e *Entity) ReferenceURL() string { return e.prov.ReferenceURL }

// Provenance returns the entity's source information.
func (e *Entity) Provenance() measure.Provenance { return e.prov }

// Unlinking reports whether the entity is tearing down its own links.
func (e *Entity) Unlinking() bool { return e.unlinking }

// Get returns the value stored under an attribute: a *measure.Quantity,
// *measure.RefString, *Entity, or *Registry. When the attribute is not
// set, its fallback aliases are tried in declared order. An attribute the
// schema does not mention at all is ErrUnknownAttribute; a declared but
// unset attribute with no remaining fallback is ErrNotFound.
func (e *Entity) Get(attr string) (any, error) {
	if !e.kind.declaresAttr(attr) {
		return nil, fmt.Errorf("%w: %q is not an attribute of kind %q", ErrUnknownAttribute, attr, e.kind.name)
	}
	if v, ok := e.lookup(attr); ok {
		return v, nil
	}
	for _, alias := range e.kind.fallbacks[attr] {
		if v, ok := e.lookup(alias); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: attribute %q is not set on %q (%s)", ErrNotFound, attr, e.name, e.kind.name)
}

func (e *Entity) lookup(attr string) (any, bool) {
	if q, ok := e.quantities[attr]; ok {
		return q, true
	}
	if s, ok := e.texts[attr]; ok {
		return s, true
	}
	if l, ok := e.links[attr]; ok {
		return l, true
	}
	if c, ok := e.collections[attr]; ok {
		return c, true
	}
	return nil, false
}

// Quantity resolves an attribute through Get and asserts it to a quantity.
func (e *Entity) Quantity(attr string) (*measure.Quantity, error) {
	v, err := e.Get(attr)
	if err != nil {
		return nil, err
	}
	q, ok := v.(*measure.Quantity)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q of %q is not a quantity", ErrTypeMismatch, attr, e.name)
	}
	return q, nil
}

// Text resolves an attribute through Get and asserts it to a RefString.
func (e *Entity) Text(attr string) (*measure.RefString, error) {
	v, err := e.Get(attr)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*measure.RefString)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q of %q is not a string", ErrTypeMismatch, attr, e.name)
	}
	return s, nil
}

// Link resolves an attribute through Get and asserts it to an entity.
func (e *Entity) Link(attr string) (*Entity, error) {
	v, err := e.Get(attr)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*Entity)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q of %q is not a link", ErrTypeMismatch, attr, e.name)
	}
	return l, nil
}

// Collection resolves an attribute through Get and asserts it to one of
// the entity's back-reference collections.
func (e *Entity) Collection(attr string) (*Registry, error) {
	v, err := e.Get(attr)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*Registry)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q of %q is not a collection", ErrTypeMismatch, attr, e.name)
	}
	return c, nil
}

// Quantities returns a copy of the set quantity attributes.
func (e *Entity) Quantities() map[string]*measure.Quantity {
	out := make(map[string]*measure.Quantity, len(e.quantities))
	for k, v := range e.quantities {
		out[k] = v
	}
	return out
}

// Texts returns a copy of the set string attributes.
func (e *Entity) Texts() map[string]*measure.RefString {
	out := make(map[string]*measure.RefString, len(e.texts))
	for k, v := range e.texts {
		out[k] = v
	}
	return out
}

// Links returns a copy of the set link attributes.
func (e *Entity) Links() map[string]*Entity {
	out := make(map[string]*Entity, len(e.links))
	for k, v := range e.links {
		out[k] = v
	}
	return out
}

// Collections returns a copy of the entity's back-reference collections.
func (e *Entity) Collections() map[string]*Registry {
	out := make(map[string]*Registry, len(e.collections))
	for k, v := range e.collections {
		out[k] = v
	}
	return out
}

// Unlink removes every reference other objects hold to this entity: it is
// dropped from each registry it occupies, entities linking to it lose
// those link attributes, and its owned values are released. The entity
// itself stays readable in memory but is fully detached. Idempotent.
func (e *Entity) Unlink() error {
	e.unlinking = true
	defer func() { e.unlinking = false }()
	var firstErr error
	for _, b := range e.backlinks {
		if err := b.unlinkObject(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, q := range e.quantities {
		if err := q.UnlinkFrom(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, s := range e.texts {
		if err := s.UnlinkFrom(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.backlinks = nil
	return firstErr
}

// rollback discards the partial links of a failed construction.
func (e *Entity) rollback() {
	_ = e.Unlink()
}

// refID and unlinkObject let an Entity serve as a back-link on the
// entities it holds typed links to.
func (e *Entity) refID() string { return e.id }

func (e *Entity) unlinkObject(other *Entity) error {
	if !other.Unlinking() {
		return ErrUnlinkProtocol
	}
	for attr, target := range e.links {
		if target == other {
			delete(e.links, attr)
		}
	}
	return nil
}
