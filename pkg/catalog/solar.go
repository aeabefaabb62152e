package catalog

import (
	"github.com/mesh-intelligence/orrery/pkg/cosmos"
)

// SolarSystemName is the planetary system the reference dataset builds.
const SolarSystemName = "Solar System"

// Install registers the solar-system dataset loaders for the named
// universe. Each collection loads lazily the first time the universe
// materializes it.
func Install(r *cosmos.Registrar, universe string) {
	r.AddDataset(universe, "planetary_systems", loadPlanetarySystems)
	r.AddDataset(universe, "stars", loadStars)
	r.AddDataset(universe, "planets", loadPlanets)
	r.AddDataset(universe, "moons", loadMoons)
}

func loadPlanetarySystems(u *cosmos.Universe) error {
	_, err := u.Registrar().Create("planetary_system", cosmos.Spec{
		Name: SolarSystemName,
		In:   u,
	})
	return err
}

func loadStars(u *cosmos.Universe) error {
	_, err := u.Registrar().Create("star", cosmos.Spec{
		Name:         "Sun",
		In:           u,
		Reference:    `Williams, D.R. (23 February 2018). "Sun Fact Sheet". NASA Goddard Space Flight Center.`,
		ReferenceURL: "https://nssdc.gsfc.nasa.gov/planetary/factsheet/sunfact.html",
		Attrs: cosmos.Attrs{
			"planetary_system":       SolarSystemName,
			"mass":                   "1_988_500e24 kg",
			"volumetric_mean_radius": "695_700 km",
			"luminosity":             "382.8e24 W",
			"spectral_type":          "G2 V",
		},
	})
	return err
}

func loadPlanets(u *cosmos.Universe) error {
	planets := []cosmos.Spec{
		{
			Name:         "Mercury",
			Reference:    `Williams, D.R. (27 September 2018). "Mercury Fact Sheet". NASA Goddard Space Flight Center.`,
			ReferenceURL: "https://nssdc.gsfc.nasa.gov/planetary/factsheet/mercuryfact.html",
			Attrs: cosmos.Attrs{
				"planetary_system":      SolarSystemName,
				"primary":               "Sun",
				"mass":                  "0.33011e24 kg",
				"equatorial_radius":     "2439.7 km",
				"polar_radius":          "2439.7 km",
				"semimajor_axis":        "57.909e6 km",
				"sidereal_orbit_period": "87.969 d",
				"mean_temperature":      "440 K",
			},
		},
		{
			Name:         "Venus",
			Reference:    `Williams, D.R. (15 April 2020). "Venus Fact Sheet". NASA Goddard Space Flight Center.`,
			ReferenceURL: "https://nssdc.gsfc.nasa.gov/planetary/factsheet/venusfact.html",
			Attrs: cosmos.Attrs{
				"planetary_system":      SolarSystemName,
				"primary":               "Sun",
				"mass":                  "4.8675e24 kg",
				"equatorial_radius":     "6051.8 km",
				"polar_radius":          "6051.8 km",
				"semimajor_axis":        "108.21e6 km",
				"sidereal_orbit_period": "224.701 d",
				"mean_temperature":      "737 K",
				"surface_pressure":      "92 bar",
			},
		},
		{
			Name:         "Earth",
			Reference:    `Williams, D.R. (02 April 2020). "Earth Fact Sheet". NASA Goddard Space Flight Center.`,
			ReferenceURL: "https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html",
			Attrs: cosmos.Attrs{
				"planetary_system":       SolarSystemName,
				"primary":                "Sun",
				"mass":                   "5.9724e24 kg",
				"equatorial_radius":      "6378.137 km",
				"polar_radius":           "6356.752 km",
				"volumetric_mean_radius": "6371.000 km",
				"semimajor_axis":         "149.598e6 km",
				"sidereal_orbit_period":  "365.256 d",
				"mean_temperature":       "288 K",
				"surface_pressure":       "1.014 bar",
			},
		},
	}
	for _, spec := range planets {
		spec.In = u
		if _, err := u.Registrar().Create("planet", spec); err != nil {
			return err
		}
	}
	return nil
}

func loadMoons(u *cosmos.Universe) error {
	_, err := u.Registrar().Create("moon", cosmos.Spec{
		Name:         "Moon",
		In:           u,
		Reference:    `Williams, D.R. (01 July 2020). "Moon Fact Sheet". NASA Goddard Space Flight Center.`,
		ReferenceURL: "https://nssdc.gsfc.nasa.gov/planetary/factsheet/moonfact.html",
		Attrs: cosmos.Attrs{
			"primary":                "Earth",
			"mass":                   "0.07346e24 kg",
			"equatorial_radius":      "1738.1 km",
			"polar_radius":           "1736.0 km",
			"volumetric_mean_radius": "1737.4 km",
		},
	})
	return err
}
