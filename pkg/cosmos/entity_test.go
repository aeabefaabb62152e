package cosmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/orrery/pkg/measure"
)

// setupRegistrar declares a small system/star/planet schema and opens the
// default universe.
func setupRegistrar(t *testing.T) (*Registrar, *Universe) {
	t.Helper()
	r := NewRegistrar()
	_, err := r.Declare(KindSpec{Name: "PlanetarySystem", Collections: []string{"stars", "planets"}})
	require.NoError(t, err)
	_, err = r.Declare(KindSpec{
		Name:        "Star",
		Links:       map[string]string{"planetary_system": "planetary_system"},
		Collections: []string{"planets"},
		Units: map[string]measure.Unit{
			"mass":                   measure.Kilogram,
			"volumetric_mean_radius": measure.Meter,
		},
		Strings:   []string{"spectral_type"},
		Fallbacks: map[string][]string{"radius": {"volumetric_mean_radius"}},
	})
	require.NoError(t, err)
	_, err = r.Declare(KindSpec{
		Name: "Planet",
		Links: map[string]string{
			"planetary_system": "planetary_system",
			"primary":          "star",
		},
		Units: map[string]measure.Unit{
			"mass":                   measure.Kilogram,
			"equatorial_radius":      measure.Meter,
			"volumetric_mean_radius": measure.Meter,
			"orbit_count":            measure.Dimensionless,
		},
		Fallbacks: map[string][]string{
			"radius": {"equatorial_radius", "volumetric_mean_radius"},
			"star":   {"primary"},
		},
	})
	require.NoError(t, err)
	u, err := r.NewUniverse(DefaultUniverseName)
	require.NoError(t, err)
	return r, u
}

func newSystem(t *testing.T, r *Registrar) *Entity {
	t.Helper()
	system, err := r.Create("planetary_system", Spec{Name: "Solar System"})
	require.NoError(t, err)
	return system
}

func newSun(t *testing.T, r *Registrar) *Entity {
	t.Helper()
	sun, err := r.Create("star", Spec{
		Name:      "Sun",
		Reference: "NASA Sun Fact Sheet",
		Attrs: Attrs{
			"planetary_system":       "Solar System",
			"mass":                   "1_988_500e24 kg",
			"volumetric_mean_radius": "695_700 km",
			"spectral_type":          "G2 V",
		},
	})
	require.NoError(t, err)
	return sun
}

func TestCreate(t *testing.T) {
	r, u := setupRegistrar(t)
	system := newSystem(t, r)
	sun := newSun(t, r)

	assert.Equal(t, "Sun", sun.Name())
	assert.Equal(t, "star", sun.Label())
	assert.NotEmpty(t, sun.ID())
	assert.Equal(t, u, sun.Universe())
	assert.Equal(t, "NASA Sun Fact Sheet", sun.Reference())

	mass, err := sun.Quantity("mass")
	require.NoError(t, err)
	assert.InDelta(t, 1.9885e30, mass.Value(), 1e24)
	assert.True(t, mass.Unit().Equal(measure.Kilogram))
	assert.Equal(t, "mass", mass.Name())
	assert.Equal(t, sun, mass.Owner())

	radius, err := sun.Quantity("volumetric_mean_radius")
	require.NoError(t, err)
	assert.InDelta(t, 6.957e8, radius.Value(), 1e3)

	spectral, err := sun.Text("spectral_type")
	require.NoError(t, err)
	assert.Equal(t, "G2 V", spectral.Text())

	linked, err := sun.Link("planetary_system")
	require.NoError(t, err)
	assert.Equal(t, system, linked)

	// The default link hook put the sun into the system's back-reference
	// collection, and creation put it into the universe's star registry.
	stars, err := system.Collection("stars")
	require.NoError(t, err)
	got, ok := stars.Lookup("sun")
	require.True(t, ok)
	assert.Equal(t, Object(sun), got)

	registry, err := u.Collection("stars")
	require.NoError(t, err)
	_, ok = registry.Lookup("Sun")
	assert.True(t, ok)
}

func TestCreateValueForms(t *testing.T) {
	r, _ := setupRegistrar(t)
	newSystem(t, r)
	sun := newSun(t, r)

	prov := measure.Provenance{Reference: "test data"}
	mass, err := measure.NewQuantity(5.97e24, measure.Kilogram, prov)
	require.NoError(t, err)

	earth, err := r.Create("planet", Spec{
		Name:      "Earth",
		Reference: "test data",
		Attrs: Attrs{
			"primary":     sun, // linked by entity, not by name
			"mass":        mass,
			"orbit_count": 1, // int promotes to a dimensionless quantity
		},
	})
	require.NoError(t, err)

	primary, err := earth.Link("primary")
	require.NoError(t, err)
	assert.Equal(t, sun, primary)

	got, err := earth.Quantity("mass")
	require.NoError(t, err)
	assert.Equal(t, mass, got)
	assert.Equal(t, earth, mass.Owner())

	count, err := earth.Quantity("orbit_count")
	require.NoError(t, err)
	assert.Equal(t, 1.0, count.Value())
	assert.True(t, count.Unit().Equal(measure.Dimensionless))
}

func TestCreateErrors(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		_, err := r.Create("black_hole", Spec{Name: "Gargantua"})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		_, err := r.Create("planetary_system", Spec{Name: ""})
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("attributes require provenance", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		_, err := r.Create("star", Spec{
			Name:  "Sun",
			Attrs: Attrs{"mass": "1_988_500e24 kg"},
		})
		require.ErrorIs(t, err, measure.ErrNoProvenance)
	})

	t.Run("link target does not exist", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		_, err := r.Create("star", Spec{
			Name:      "Sun",
			Reference: "test data",
			Attrs:     Attrs{"planetary_system": "Solar System"},
		})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), `"Solar System" (planetary_system) does not exist`)
	})

	t.Run("link target of wrong kind", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		system := newSystem(t, r)
		_, err := r.Create("planet", Spec{
			Name:      "Earth",
			Reference: "test data",
			Attrs:     Attrs{"primary": system},
		})
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.Contains(t, err.Error(), `expects kind "star", not "planetary_system"`)
	})

	t.Run("unit mismatch", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		newSystem(t, r)
		_, err := r.Create("star", Spec{
			Name:      "Sun",
			Reference: "test data",
			Attrs:     Attrs{"mass": "695_700 km"},
		})
		require.ErrorIs(t, err, ErrTypeMismatch)
		require.ErrorIs(t, err, measure.ErrUnitMismatch)
	})

	t.Run("pre-linked string carries attribute context", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		newSystem(t, r)
		sun := newSun(t, r)
		spectral, err := sun.Text("spectral_type")
		require.NoError(t, err)

		_, err = r.Create("star", Spec{
			Name:      "Proxima",
			Reference: "test data",
			Attrs:     Attrs{"spectral_type": spectral},
		})
		require.ErrorIs(t, err, measure.ErrAlreadyLinked)
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.Contains(t, err.Error(), `"spectral_type" of "Proxima"`)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		newSystem(t, r)
		_, err := r.Create("star", Spec{
			Name:      "Sun",
			Reference: "test data",
			Attrs:     Attrs{"wobble": "yes"},
		})
		require.ErrorIs(t, err, ErrUnknownAttribute)
	})

	t.Run("duplicate normalized name", func(t *testing.T) {
		r, _ := setupRegistrar(t)
		newSystem(t, r)
		_, err := r.Create("planetary_system", Spec{Name: "solar_system"})
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Contains(t, err.Error(), `conflicts with existing object named "Solar System"`)
	})
}

func TestCreateRollback(t *testing.T) {
	r, u := setupRegistrar(t)
	system := newSystem(t, r)

	// Attributes are processed in sorted order, so the link resolves and
	// registers back-references before "wobble" fails the construction.
	_, err := r.Create("star", Spec{
		Name:      "Sun",
		Reference: "test data",
		Attrs: Attrs{
			"planetary_system": "Solar System",
			"wobble":           "yes",
		},
	})
	require.ErrorIs(t, err, ErrUnknownAttribute)

	stars, err := system.Collection("stars")
	require.NoError(t, err)
	assert.Zero(t, stars.Len())

	registry, err := u.Collection("stars")
	require.NoError(t, err)
	assert.Zero(t, registry.Len())
}

func TestGetFallbacks(t *testing.T) {
	r, _ := setupRegistrar(t)
	newSystem(t, r)
	sun := newSun(t, r)

	earth, err := r.Create("planet", Spec{
		Name:      "Earth",
		Reference: "NASA Earth Fact Sheet",
		Attrs: Attrs{
			"primary":                "Sun",
			"equatorial_radius":      "6378.137 km",
			"volumetric_mean_radius": "6371.000 km",
		},
	})
	require.NoError(t, err)

	t.Run("first alias wins", func(t *testing.T) {
		radius, err := earth.Quantity("radius")
		require.NoError(t, err)
		assert.InDelta(t, 6.378137e6, radius.Value(), 1e-3)
	})

	t.Run("aliases tried in order", func(t *testing.T) {
		mars, err := r.Create("planet", Spec{
			Name:      "Mars",
			Reference: "NASA Mars Fact Sheet",
			Attrs:     Attrs{"volumetric_mean_radius": "3389.5 km"},
		})
		require.NoError(t, err)
		radius, err := mars.Quantity("radius")
		require.NoError(t, err)
		assert.InDelta(t, 3.3895e6, radius.Value(), 1e-3)
	})

	t.Run("fallback resolves links too", func(t *testing.T) {
		star, err := earth.Link("star")
		require.NoError(t, err)
		assert.Equal(t, sun, star)
	})

	t.Run("unset with exhausted aliases", func(t *testing.T) {
		bare, err := r.Create("planet", Spec{Name: "Vulcan"})
		require.NoError(t, err)
		_, err = bare.Get("radius")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("undeclared attribute", func(t *testing.T) {
		_, err := earth.Get("albedo")
		require.ErrorIs(t, err, ErrUnknownAttribute)
	})

	t.Run("typed accessor mismatch", func(t *testing.T) {
		_, err := earth.Quantity("primary")
		require.ErrorIs(t, err, ErrTypeMismatch)
		_, err = earth.Link("equatorial_radius")
		require.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestEntityUnlink(t *testing.T) {
	r, u := setupRegistrar(t)
	system := newSystem(t, r)
	sun := newSun(t, r)
	earth, err := r.Create("planet", Spec{
		Name:      "Earth",
		Reference: "NASA Earth Fact Sheet",
		Attrs:     Attrs{"primary": "Sun"},
	})
	require.NoError(t, err)

	require.NoError(t, sun.Unlink())

	// The sun dropped out of every registry that held it, and the planet
	// lost its link attribute.
	registry, err := u.Collection("stars")
	require.NoError(t, err)
	_, ok := registry.Lookup("Sun")
	assert.False(t, ok)

	stars, err := system.Collection("stars")
	require.NoError(t, err)
	assert.Zero(t, stars.Len())

	_, err = earth.Link("primary")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = earth.Link("star")
	require.ErrorIs(t, err, ErrNotFound)

	// The entity itself stays readable.
	assert.Equal(t, "Sun", sun.Name())
	_, err = sun.Quantity("mass")
	require.NoError(t, err)

	// Unlink is idempotent.
	require.NoError(t, sun.Unlink())
	assert.False(t, sun.Unlinking())
}
