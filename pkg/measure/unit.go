package measure

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension is an exponent vector over the seven SI base dimensions.
// Two units are interchangeable exactly when their dimensions are equal.
type Dimension struct {
	Mass        int
	Length      int
	Time        int
	Current     int
	Temperature int
	Amount      int
	Luminosity  int
}

// baseSymbols lists the base-unit symbol for each dimension slot, in the
// order used when rendering a canonical symbol.
var baseSymbols = []struct {
	symbol string
	get    func(Dimension) int
}{
	{"kg", func(d Dimension) int { return d.Mass }},
	{"m", func(d Dimension) int { return d.Length }},
	{"s", func(d Dimension) int { return d.Time }},
	{"A", func(d Dimension) int { return d.Current }},
	{"K", func(d Dimension) int { return d.Temperature }},
	{"mol", func(d Dimension) int { return d.Amount }},
	{"cd", func(d Dimension) int { return d.Luminosity }},
}

// IsZero reports whether the dimension is dimensionless.
func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

func (d Dimension) add(o Dimension) Dimension {
	return Dimension{
		Mass:        d.Mass + o.Mass,
		Length:      d.Length + o.Length,
		Time:        d.Time + o.Time,
		Current:     d.Current + o.Current,
		Temperature: d.Temperature + o.Temperature,
		Amount:      d.Amount + o.Amount,
		Luminosity:  d.Luminosity + o.Luminosity,
	}
}

func (d Dimension) scale(n int) Dimension {
	return Dimension{
		Mass:        d.Mass * n,
		Length:      d.Length * n,
		Time:        d.Time * n,
		Current:     d.Current * n,
		Temperature: d.Temperature * n,
		Amount:      d.Amount * n,
		Luminosity:  d.Luminosity * n,
	}
}

// String renders the dimension in canonical SI base symbols, for example
// "kg m^2 / s^2". The dimensionless dimension renders as "dimensionless".
func (d Dimension) String() string {
	var num, den []string
	for _, b := range baseSymbols {
		exp := b.get(d)
		switch {
		case exp > 1:
			num = append(num, fmt.Sprintf("%s^%d", b.symbol, exp))
		case exp == 1:
			num = append(num, b.symbol)
		case exp == -1:
			den = append(den, b.symbol)
		case exp < -1:
			den = append(den, fmt.Sprintf("%s^%d", b.symbol, -exp))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return "dimensionless"
	}
	if len(den) == 0 {
		return strings.Join(num, " ")
	}
	if len(num) == 0 {
		num = []string{"1"}
	}
	return strings.Join(num, " ") + " / " + strings.Join(den, " ")
}

// Unit is a canonical SI unit, identified purely by its dimension. Scale
// factors from prefixed or named symbols (km, bar, au) are folded into the
// value at parse time, so equal dimensions mean equal units.
type Unit struct {
	dim Dimension
}

// Predeclared canonical units.
var (
	Dimensionless = Unit{}
	Kilogram      = Unit{Dimension{Mass: 1}}
	Meter         = Unit{Dimension{Length: 1}}
	Second        = Unit{Dimension{Time: 1}}
	Ampere        = Unit{Dimension{Current: 1}}
	Kelvin        = Unit{Dimension{Temperature: 1}}
	Mole          = Unit{Dimension{Amount: 1}}
	Candela       = Unit{Dimension{Luminosity: 1}}

	MeterPerSecond = Meter.Div(Second)
	SquareMeter    = Meter.Pow(2)
	CubicMeter     = Meter.Pow(3)
	Newton         = Kilogram.Mul(Meter).Div(Second.Pow(2))
	Pascal         = Newton.Div(SquareMeter)
	Joule          = Newton.Mul(Meter)
	Watt           = Joule.Div(Second)
)

// Dimension returns the unit's dimension vector.
func (u Unit) Dimension() Dimension { return u.dim }

// Equal reports whether two units are interchangeable.
func (u Unit) Equal(v Unit) bool { return u.dim == v.dim }

// Mul returns the product unit.
func (u Unit) Mul(v Unit) Unit { return Unit{u.dim.add(v.dim)} }

// Div returns the quotient unit.
func (u Unit) Div(v Unit) Unit { return Unit{u.dim.add(v.dim.scale(-1))} }

// Pow returns the unit raised to an integer power.
func (u Unit) Pow(n int) Unit { return Unit{u.dim.scale(n)} }

// String renders the canonical SI symbol for the unit.
func (u Unit) String() string { return u.dim.String() }

// symbolDef maps a written symbol to its dimension and its scale factor
// relative to SI base units.
type symbolDef struct {
	dim    Dimension
	factor float64
}

// symbols is the direct lookup table consulted before prefix resolution,
// so "cd" is candela rather than centi-day and "min" is minutes rather
// than milli-anything.
var symbols = map[string]symbolDef{
	"kg":  {Kilogram.dim, 1},
	"g":   {Kilogram.dim, 1e-3},
	"t":   {Kilogram.dim, 1e3},
	"m":   {Meter.dim, 1},
	"s":   {Second.dim, 1},
	"A":   {Ampere.dim, 1},
	"K":   {Kelvin.dim, 1},
	"mol": {Mole.dim, 1},
	"cd":  {Candela.dim, 1},

	"min": {Second.dim, 60},
	"h":   {Second.dim, 3600},
	"d":   {Second.dim, 86400},
	"day": {Second.dim, 86400},
	"yr":  {Second.dim, 3.15576e7}, // Julian year
	"au":  {Meter.dim, 1.495978707e11},
	"pc":  {Meter.dim, 3.0856775814913673e16},

	"N":   {Newton.dim, 1},
	"Pa":  {Pascal.dim, 1},
	"bar": {Pascal.dim, 1e5},
	"J":   {Joule.dim, 1},
	"W":   {Watt.dim, 1},
}

// prefixes holds SI prefix factors applied when a symbol is not found in
// the direct table.
var prefixes = map[byte]float64{
	'T': 1e12,
	'G': 1e9,
	'M': 1e6,
	'k': 1e3,
	'c': 1e-2,
	'm': 1e-3,
	'u': 1e-6,
	'n': 1e-9,
}

func resolveSymbol(sym string) (symbolDef, bool) {
	if def, ok := symbols[sym]; ok {
		return def, true
	}
	if len(sym) > 1 {
		if pf, ok := prefixes[sym[0]]; ok {
			if def, ok := symbols[sym[1:]]; ok {
				return symbolDef{def.dim, def.factor * pf}, true
			}
		}
	}
	return symbolDef{}, false
}

// ParseUnit parses a written unit expression such as "kg", "km", "m/s",
// "g/cm^3", or "kg m^2 / s^2" and returns the canonical SI unit together
// with the factor that converts a value in the written unit to SI. Terms
// are separated by spaces or "*"; everything after "/" divides; "^" raises
// a term to an integer power. An empty expression is dimensionless.
func ParseUnit(expr string) (Unit, float64, error) {
	dim := Dimension{}
	factor := 1.0
	denominator := false

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Dimensionless, 1, nil
	}
	for _, part := range strings.FieldsFunc(expr, func(r rune) bool { return r == ' ' || r == '*' }) {
		for i, term := range strings.Split(part, "/") {
			if i > 0 {
				denominator = true
			}
			if term == "" {
				continue
			}
			sym := term
			exp := 1
			if j := strings.IndexByte(term, '^'); j >= 0 {
				n, err := strconv.Atoi(term[j+1:])
				if err != nil {
					return Unit{}, 0, fmt.Errorf("%w: bad exponent in %q", ErrUnknownUnit, term)
				}
				sym, exp = term[:j], n
			}
			def, ok := resolveSymbol(sym)
			if !ok {
				return Unit{}, 0, fmt.Errorf("%w: %q", ErrUnknownUnit, sym)
			}
			if denominator {
				exp = -exp
			}
			dim = dim.add(def.dim.scale(exp))
			factor *= math.Pow(def.factor, float64(exp))
		}
	}
	return Unit{dim}, factor, nil
}
