package measure

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a numeric value with a canonical SI unit, provenance, and an
// optional link to a single owning object. The value is stored in SI base
// units regardless of the unit it was written in.
type Quantity struct {
	value float64
	unit  Unit
	name  string
	prov  Provenance
	owner Owner
}

// NewQuantity builds a quantity from a value already expressed in the SI
// form of the given unit. Provenance is mandatory.
func NewQuantity(value float64, unit Unit, prov Provenance) (*Quantity, error) {
	if err := prov.Validate(); err != nil {
		return nil, err
	}
	return &Quantity{value: value, unit: unit, prov: prov}, nil
}

// ParseQuantity parses a literal of the form "<number> <unit>", for example
// "1_988_500e24 kg" or "6378.137 km". Underscores between digits are
// accepted as separators, and the value is converted to SI base units. A
// literal with no unit part is dimensionless.
func ParseQuantity(literal string, prov Provenance) (*Quantity, error) {
	if err := prov.Validate(); err != nil {
		return nil, err
	}
	fields := strings.Fields(literal)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal)
	}
	value, err := strconv.ParseFloat(stripDigitSeparators(fields[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal)
	}
	unit, factor, err := ParseUnit(strings.Join(fields[1:], " "))
	if err != nil {
		return nil, err
	}
	return &Quantity{value: value * factor, unit: unit, prov: prov}, nil
}

// stripDigitSeparators removes underscores that sit between two digits,
// leaving all other underscores in place so malformed numbers still fail
// to parse.
func stripDigitSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Value returns the numeric value in SI base units.
func (q *Quantity) Value() float64 { return q.value }

// Unit returns the canonical SI unit.
func (q *Quantity) Unit() Unit { return q.unit }

// Name returns the display name assigned when the quantity was linked to
// an owner, or empty if it has none.
func (q *Quantity) Name() string { return q.name }

// Provenance returns the quantity's source information.
func (q *Quantity) Provenance() Provenance { return q.prov }

// Reference returns the provenance reference text.
func (q *Quantity) Reference() string { return q.prov.Reference }

// ReferenceURL returns the provenance reference URL.
func (q *Quantity) ReferenceURL() string { return q.prov.ReferenceURL }

// Owner returns the object this quantity is linked to, or nil.
func (q *Quantity) Owner() Owner { return q.owner }

func (q *Quantity) String() string {
	if q.unit.Dimension().IsZero() {
		return strconv.FormatFloat(q.value, 'g', -1, 64)
	}
	return fmt.Sprintf("%g %s", q.value, q.unit)
}

// LinkTo records owner as the single owner of this quantity, assigns the
// display name, and checks the unit against expected. It fails if the
// quantity is already linked or if the units differ; the mismatch error
// names both units.
func (q *Quantity) LinkTo(owner Owner, name string, expected Unit) error {
	if q.owner != nil {
		return fmt.Errorf("%w: %q is already linked to %q (%s)",
			ErrAlreadyLinked, q.name, q.owner.Name(), q.owner.Label())
	}
	if !q.unit.Equal(expected) {
		return fmt.Errorf("%w: expected %q, not %q", ErrUnitMismatch, expected, q.unit)
	}
	q.owner = owner
	q.name = name
	return nil
}

// UnlinkFrom clears the owner link, but only while the owner is performing
// its own unlink. Calls naming a different owner are ignored.
func (q *Quantity) UnlinkFrom(owner Owner) error {
	if q.owner != owner {
		return nil
	}
	if !owner.Unlinking() {
		return ErrUnlinkProtocol
	}
	q.owner = nil
	return nil
}
