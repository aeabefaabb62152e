package measure

import "fmt"

// RefString is a text value carrying provenance and the same at-most-one
// ownership contract as Quantity.
type RefString struct {
	text  string
	name  string
	prov  Provenance
	owner Owner
}

// NewRefString builds a provenance-tagged string. Provenance is mandatory.
func NewRefString(text string, prov Provenance) (*RefString, error) {
	if err := prov.Validate(); err != nil {
		return nil, err
	}
	return &RefString{text: text, prov: prov}, nil
}

// Text returns the string value.
func (s *RefString) Text() string { return s.text }

// Name returns the display name assigned at link time, or empty.
func (s *RefString) Name() string { return s.name }

// Provenance returns the string's source information.
func (s *RefString) Provenance() Provenance { return s.prov }

// Reference returns the provenance reference text.
func (s *RefString) Reference() string { return s.prov.Reference }

// ReferenceURL returns the provenance reference URL.
func (s *RefString) ReferenceURL() string { return s.prov.ReferenceURL }

// Owner returns the object this string is linked to, or nil.
func (s *RefString) Owner() Owner { return s.owner }

func (s *RefString) String() string { return s.text }

// LinkTo records owner as the single owner of this string and assigns the
// display name. It fails if the string is already linked.
func (s *RefString) LinkTo(owner Owner, name string) error {
	if s.owner != nil {
		return fmt.Errorf("%w: %q is already linked to %q (%s)",
			ErrAlreadyLinked, s.name, s.owner.Name(), s.owner.Label())
	}
	s.owner = owner
	s.name = name
	return nil
}

// UnlinkFrom clears the owner link, but only while the owner is performing
// its own unlink. Calls naming a different owner are ignored.
func (s *RefString) UnlinkFrom(owner Owner) error {
	if s.owner != owner {
		return nil
	}
	if !owner.Unlinking() {
		return ErrUnlinkProtocol
	}
	s.owner = nil
	return nil
}
