// Package measure provides unit-checked numeric quantities and
// provenance-tagged strings for describing the properties of material
// objects. Every value carries a reference and/or a reference URL naming
// its source, and may be linked to at most one owning object at a time.
package measure

import "errors"

// Value construction and linking errors.
var (
	ErrNoProvenance   = errors.New("at least one of reference and reference_url must be given")
	ErrAlreadyLinked  = errors.New("value is already linked")
	ErrUnitMismatch   = errors.New("unit mismatch")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrInvalidLiteral = errors.New("malformed quantity literal")
	ErrUnlinkProtocol = errors.New("can only unlink an object through its own Unlink method")
)

// Owner is the interface a linked value keeps for the object that owns it.
// Unlinking reports whether the owner is currently tearing down its own
// links; UnlinkFrom refuses to clear the owner link otherwise.
type Owner interface {
	Name() string
	Label() string
	Unlinking() bool
}

// Provenance records where a value comes from. At least one field must be
// set wherever a Provenance is required.
type Provenance struct {
	Reference    string
	ReferenceURL string
}

// Validate checks that at least one provenance field is set.
func (p Provenance) Validate() error {
	if p.Reference == "" && p.ReferenceURL == "" {
		return ErrNoProvenance
	}
	return nil
}

// IsZero reports whether both provenance fields are empty.
func (p Provenance) IsZero() bool {
	return p.Reference == "" && p.ReferenceURL == ""
}
