// Package catalog declares the astronomy entity kinds and provides the
// solar-system reference dataset as lazy per-universe loaders. It is a
// data-definition collaborator of the cosmos engine: everything here goes
// through the public construction and lookup API.
package catalog

import (
	"github.com/mesh-intelligence/orrery/pkg/cosmos"
	"github.com/mesh-intelligence/orrery/pkg/measure"
)

// Register declares the astronomy kinds on the registrar in dependency
// order: planetary systems, then stars, planets, and moons.
func Register(r *cosmos.Registrar) error {
	specs := []cosmos.KindSpec{
		{
			Name:        "PlanetarySystem",
			Collections: []string{"stars", "planets"},
		},
		{
			Name: "Star",
			Links: map[string]string{
				"planetary_system": "planetary_system",
			},
			Collections: []string{"planets"},
			Units: map[string]measure.Unit{
				"mass":                   measure.Kilogram,
				"volumetric_mean_radius": measure.Meter,
				"luminosity":             measure.Watt,
			},
			Strings: []string{"spectral_type"},
			Fallbacks: map[string][]string{
				"radius": {"volumetric_mean_radius"},
			},
		},
		{
			Name: "Planet",
			Links: map[string]string{
				"planetary_system": "planetary_system",
				"primary":          "star",
			},
			Collections: []string{"moons"},
			Units: map[string]measure.Unit{
				"mass":                   measure.Kilogram,
				"radius":                 measure.Meter,
				"volumetric_mean_radius": measure.Meter,
				"equatorial_radius":      measure.Meter,
				"polar_radius":           measure.Meter,
				"semimajor_axis":         measure.Meter,
				"sidereal_orbit_period":  measure.Second,
				"mean_temperature":       measure.Kelvin,
				"surface_pressure":       measure.Pascal,
			},
			Fallbacks: map[string][]string{
				"radius": {"equatorial_radius", "volumetric_mean_radius"},
				"star":   {"primary"},
			},
		},
		{
			Name: "Moon",
			Links: map[string]string{
				"primary": "planet",
			},
			Units: map[string]measure.Unit{
				"mass":                   measure.Kilogram,
				"volumetric_mean_radius": measure.Meter,
				"equatorial_radius":      measure.Meter,
				"polar_radius":           measure.Meter,
			},
			Fallbacks: map[string][]string{
				"radius": {"equatorial_radius", "volumetric_mean_radius"},
			},
		},
	}
	for _, spec := range specs {
		if _, err := r.Declare(spec); err != nil {
			return err
		}
	}
	return nil
}
