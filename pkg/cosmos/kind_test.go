package cosmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/orrery/pkg/measure"
)

func TestDeriveNames(t *testing.T) {
	tests := []struct {
		camel          string
		wantSingular   string
		wantCollection string
	}{
		{"Star", "star", "stars"},
		{"Planet", "planet", "planets"},
		{"PlanetarySystem", "planetary_system", "planetary_systems"},
		{"Gas", "gas", "gases"},
		{"Universe", "universe", "universes"},
	}

	for _, tt := range tests {
		t.Run(tt.camel, func(t *testing.T) {
			singular, collection := deriveNames(tt.camel)
			assert.Equal(t, tt.wantSingular, singular)
			assert.Equal(t, tt.wantCollection, collection)
		})
	}
}

func TestDeclare(t *testing.T) {
	t.Run("records declaration order", func(t *testing.T) {
		r := NewRegistrar()
		system, err := r.Declare(KindSpec{Name: "PlanetarySystem", Collections: []string{"stars"}})
		require.NoError(t, err)
		star, err := r.Declare(KindSpec{
			Name:        "Star",
			Links:       map[string]string{"planetary_system": "planetary_system"},
			Collections: []string{"planets"},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, system.Index())
		assert.Equal(t, 1, star.Index())
		kinds := r.Kinds()
		require.Len(t, kinds, 2)
		assert.Equal(t, "planetary_system", kinds[0].Name())
		assert.Equal(t, "star", kinds[1].Name())

		got, ok := r.KindByCollection("stars")
		require.True(t, ok)
		assert.Equal(t, star, got)
	})

	t.Run("singular and collection overrides", func(t *testing.T) {
		r := NewRegistrar()
		k, err := r.Declare(KindSpec{Name: "Dust", Singular: "dust_grain", Collection: "dust"})
		require.NoError(t, err)
		assert.Equal(t, "dust_grain", k.Name())
		assert.Equal(t, "dust", k.Collection())
	})
}

func TestDeclareSchemaErrors(t *testing.T) {
	// base declares the kinds that valid link targets need.
	base := func(t *testing.T) *Registrar {
		t.Helper()
		r := NewRegistrar()
		_, err := r.Declare(KindSpec{Name: "PlanetarySystem", Collections: []string{"stars"}})
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		spec KindSpec
		msg  string
	}{
		{
			name: "kind name must be CamelCase",
			spec: KindSpec{Name: "planetary system"},
			msg:  "must be CamelCase",
		},
		{
			name: "empty kind name",
			spec: KindSpec{Name: ""},
			msg:  "must be CamelCase",
		},
		{
			name: "bad link attribute identifier",
			spec: KindSpec{Name: "Star", Links: map[string]string{"Planetary_System": "planetary_system"}},
			msg:  "lowercase words",
		},
		{
			name: "double underscore rejected",
			spec: KindSpec{Name: "Star", Units: map[string]measure.Unit{"mean__mass": measure.Kilogram}},
			msg:  "lowercase words",
		},
		{
			name: "link target must already be declared",
			spec: KindSpec{Name: "Star", Links: map[string]string{"primary": "black_hole"}},
			msg:  "dependency order",
		},
		{
			name: "default hook needs matching collection on target",
			spec: KindSpec{Name: "Comet", Links: map[string]string{"planetary_system": "planetary_system"}},
			msg:  `declare a "comets" collection`,
		},
		{
			name: "duplicate kind",
			spec: KindSpec{Name: "PlanetarySystem"},
			msg:  "already declared",
		},
		{
			name: "attribute in two categories",
			spec: KindSpec{
				Name:    "Star",
				Units:   map[string]measure.Unit{"designation": measure.Kilogram},
				Strings: []string{"designation"},
			},
			msg: "more than one category",
		},
		{
			name: "empty fallback list",
			spec: KindSpec{Name: "Star", Fallbacks: map[string][]string{"radius": {}}},
			msg:  "at least one alias",
		},
		{
			name: "bad fallback alias",
			spec: KindSpec{Name: "Star", Fallbacks: map[string][]string{"radius": {"Equatorial"}}},
			msg:  "lowercase words",
		},
		{
			name: "hook without link attribute",
			spec: KindSpec{
				Name:      "Star",
				LinkHooks: map[string]LinkHook{"primary": func(e, target *Entity) error { return nil }},
			},
			msg: "no matching link attribute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base(t)
			_, err := r.Declare(tt.spec)
			require.ErrorIs(t, err, ErrSchema)
			assert.Contains(t, err.Error(), tt.msg)
			// A failed declaration leaves the registrar unchanged.
			assert.Len(t, r.Kinds(), 1)
		})
	}
}
