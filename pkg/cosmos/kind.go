package cosmos

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/orrery/pkg/measure"
)

// attrRe is the pattern every attribute-style identifier must match:
// lowercase words separated by single underscores.
var attrRe = regexp.MustCompile(`^[a-z]+(?:_[a-z]+)*$`)

// kindNameRe matches CamelCase kind names such as "PlanetarySystem".
var kindNameRe = regexp.MustCompile(`^[A-Z][A-Za-z]*$`)

// camelBoundaryRe finds lower-to-upper transitions for snake-casing.
var camelBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)

// LinkHook runs when a link attribute is resolved during construction,
// after the target entity is known. The default hook registers the new
// entity into the target's back-reference collection named after the new
// entity's kind's collection name.
type LinkHook func(e, target *Entity) error

// KindSpec is the declarative descriptor for an entity kind, validated
// once by Registrar.Declare. Name is CamelCase; the singular and
// collection attribute names are derived from it unless overridden.
type KindSpec struct {
	Name       string
	Singular   string // optional override
	Collection string // optional override

	// Links maps attribute names to the singular name of the target
	// kind, which must already be declared.
	Links map[string]string
	// LinkHooks optionally overrides the default hook per link attribute.
	LinkHooks map[string]LinkHook
	// Collections lists back-reference collection attribute names; each
	// entity of this kind owns one collection-mode Registry per entry.
	Collections []string
	// Units maps quantity attribute names to their expected units.
	Units map[string]measure.Unit
	// Strings lists provenance-tagged string attribute names.
	Strings []string
	// Fallbacks maps an attribute to the ordered aliases consulted when
	// it is not set.
	Fallbacks map[string][]string
	// DisplayNames overrides the display name given to a linked quantity
	// or string; the default is the attribute with underscores replaced
	// by spaces.
	DisplayNames map[string]string
}

// Kind is a validated entity-type descriptor held by a Registrar.
type Kind struct {
	name       string // singular snake-case name, e.g. "planetary_system"
	collection string // collection name, e.g. "planetary_systems"
	index      int    // declaration order

	links        map[string]*Kind
	hooks        map[string]LinkHook
	collections  []string
	units        map[string]measure.Unit
	strs         map[string]bool
	fallbacks    map[string][]string
	displayNames map[string]string

	registrar *Registrar
}

// Name returns the kind's singular snake-case name.
func (k *Kind) Name() string { return k.name }

// Collection returns the kind's collection attribute name.
func (k *Kind) Collection() string { return k.collection }

// Index returns the kind's declaration order index.
func (k *Kind) Index() int { return k.index }

// Links returns a copy of the link-attribute map, keyed by attribute with
// the target kind's singular name as value.
func (k *Kind) Links() map[string]string {
	out := make(map[string]string, len(k.links))
	for attr, target := range k.links {
		out[attr] = target.name
	}
	return out
}

// declaresAttr reports whether attr belongs to any attribute category of
// the kind, fallback aliases included.
func (k *Kind) declaresAttr(attr string) bool {
	if _, ok := k.links[attr]; ok {
		return true
	}
	if _, ok := k.units[attr]; ok {
		return true
	}
	if k.strs[attr] {
		return true
	}
	for _, c := range k.collections {
		if c == attr {
			return true
		}
	}
	_, ok := k.fallbacks[attr]
	return ok
}

// displayName returns the display name for a quantity or string attribute.
func (k *Kind) displayName(attr string) string {
	if n, ok := k.displayNames[attr]; ok {
		return n
	}
	return strings.ReplaceAll(attr, "_", " ")
}

// deriveNames converts a CamelCase kind name to its singular and
// collection attribute names: "PlanetarySystem" becomes
// "planetary_system" and "planetary_systems", and a singular already
// ending in "s" pluralizes with "es".
func deriveNames(camel string) (singular, collection string) {
	singular = strings.ToLower(camelBoundaryRe.ReplaceAllString(camel, "${1}_${2}"))
	if strings.HasSuffix(singular, "s") {
		return singular, singular + "es"
	}
	return singular, singular + "s"
}

// validate checks a KindSpec against the registrar's already-declared
// kinds and resolves it into a Kind. Every failure is ErrSchema; a kind
// that fails validation is never registered.
func (r *Registrar) validate(spec KindSpec) (*Kind, error) {
	if spec.Name == "" || !kindNameRe.MatchString(spec.Name) {
		return nil, fmt.Errorf("%w: kind name %q must be CamelCase", ErrSchema, spec.Name)
	}
	singular, collection := deriveNames(spec.Name)
	if spec.Singular != "" {
		singular = spec.Singular
	}
	if spec.Collection != "" {
		collection = spec.Collection
	}
	for _, name := range []string{singular, collection} {
		if !attrRe.MatchString(name) {
			return nil, fmt.Errorf("%w: identifier %q must be lowercase words separated by single underscores",
				ErrSchema, name)
		}
	}
	if _, ok := r.byName[singular]; ok {
		return nil, fmt.Errorf("%w: kind %q is already declared", ErrSchema, singular)
	}
	if _, ok := r.byCollection[collection]; ok {
		return nil, fmt.Errorf("%w: collection name %q is already taken", ErrSchema, collection)
	}

	k := &Kind{
		name:         singular,
		collection:   collection,
		links:        make(map[string]*Kind, len(spec.Links)),
		hooks:        make(map[string]LinkHook, len(spec.LinkHooks)),
		collections:  make([]string, 0, len(spec.Collections)),
		units:        make(map[string]measure.Unit, len(spec.Units)),
		strs:         make(map[string]bool, len(spec.Strings)),
		fallbacks:    make(map[string][]string, len(spec.Fallbacks)),
		displayNames: make(map[string]string, len(spec.DisplayNames)),
		registrar:    r,
	}

	seen := make(map[string]bool)
	claim := func(attr, category string) error {
		if !attrRe.MatchString(attr) {
			return fmt.Errorf("%w: %s attribute %q must be lowercase words separated by single underscores",
				ErrSchema, category, attr)
		}
		if seen[attr] {
			return fmt.Errorf("%w: attribute %q declared in more than one category", ErrSchema, attr)
		}
		seen[attr] = true
		return nil
	}

	for attr, targetName := range spec.Links {
		if err := claim(attr, "link"); err != nil {
			return nil, err
		}
		target, ok := r.byName[targetName]
		if !ok {
			return nil, fmt.Errorf("%w: link attribute %q references undeclared kind %q; kinds must be declared in dependency order",
				ErrSchema, attr, targetName)
		}
		k.links[attr] = target
	}
	for attr, hook := range spec.LinkHooks {
		if _, ok := k.links[attr]; !ok {
			return nil, fmt.Errorf("%w: link hook for %q has no matching link attribute", ErrSchema, attr)
		}
		if hook == nil {
			return nil, fmt.Errorf("%w: link hook for %q is nil", ErrSchema, attr)
		}
		k.hooks[attr] = hook
	}
	// A link resolved by the default hook registers the new entity into
	// the target's collection named after this kind's collection name,
	// so that collection must exist on the target kind.
	for attr, target := range k.links {
		if _, ok := k.hooks[attr]; ok {
			continue
		}
		if !containsString(target.collections, collection) {
			return nil, fmt.Errorf("%w: link attribute %q needs kind %q to declare a %q collection",
				ErrSchema, attr, target.name, collection)
		}
	}
	for _, attr := range spec.Collections {
		if err := claim(attr, "collection"); err != nil {
			return nil, err
		}
		k.collections = append(k.collections, attr)
	}
	for attr, unit := range spec.Units {
		if err := claim(attr, "unit"); err != nil {
			return nil, err
		}
		k.units[attr] = unit
	}
	for _, attr := range spec.Strings {
		if err := claim(attr, "string"); err != nil {
			return nil, err
		}
		k.strs[attr] = true
	}
	for attr, aliases := range spec.Fallbacks {
		if !attrRe.MatchString(attr) {
			return nil, fmt.Errorf("%w: fallback attribute %q must be lowercase words separated by single underscores",
				ErrSchema, attr)
		}
		if len(aliases) == 0 {
			return nil, fmt.Errorf("%w: fallback for %q must list at least one alias", ErrSchema, attr)
		}
		for _, alias := range aliases {
			if !attrRe.MatchString(alias) {
				return nil, fmt.Errorf("%w: fallback alias %q for %q must be lowercase words separated by single underscores",
					ErrSchema, alias, attr)
			}
		}
		k.fallbacks[attr] = append([]string(nil), aliases...)
	}
	for attr, name := range spec.DisplayNames {
		if !attrRe.MatchString(attr) {
			return nil, fmt.Errorf("%w: display name attribute %q must be lowercase words separated by single underscores",
				ErrSchema, attr)
		}
		if name == "" {
			return nil, fmt.Errorf("%w: display name for %q is empty", ErrSchema, attr)
		}
		k.displayNames[attr] = name
	}
	return k, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
