package guideline

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// AgeBand is the age tier used for exercise recommendations
type AgeBand string

const (
	BandYoung  AgeBand = "young"  // under 1 year
	BandAdult  AgeBand = "adult"  // 1 to 7 years
	BandSenior AgeBand = "senior" // over 7 years
)

// BandForAge maps a fractional age in years to its band
func BandForAge(age float64) AgeBand {
	switch {
	case age < 1:
		return BandYoung
	case age <= 7:
		return BandAdult
	default:
		return BandSenior
	}
}

// Registry holds per-species, per-age-band exercise guidelines. The
// built-in defaults can be overridden from a TOML file so care advice is
// tunable without a rebuild.
type Registry struct {
	exercise map[types.Species]map[AgeBand]string
	generic  string
}

type fileConfig struct {
	Generic  string          `toml:"generic"`
	Exercise []exerciseEntry `toml:"exercise"`
}

type exerciseEntry struct {
	Species string `toml:"species"`
	Band    string `toml:"band"`
	Text    string `toml:"text"`
}

// NewDefault returns a registry with the built-in guidelines
func NewDefault() *Registry {
	return &Registry{
		generic: "I recommend consulting your vet for an exercise plan suited to your pet's species and age.",
		exercise: map[types.Species]map[AgeBand]string{
			types.SpeciesDog: {
				BandYoung:  "Puppies need several short play sessions a day - about 5 minutes of exercise per month of age, twice daily. Avoid long runs while joints are developing.",
				BandAdult:  "Adult dogs typically need 30-60 minutes of exercise daily: walks, fetch, or off-leash play depending on breed energy level.",
				BandSenior: "Senior dogs do best with gentle, consistent exercise - two or three short walks a day, avoiding high-impact activity.",
			},
			types.SpeciesCat: {
				BandYoung:  "Kittens burn energy in short bursts - schedule several interactive play sessions of 10-15 minutes through the day.",
				BandAdult:  "Adult cats need 20-30 minutes of active play daily; wand toys and food puzzles keep both body and mind engaged.",
				BandSenior: "Senior cats still benefit from a couple of short, gentle play sessions daily - keep sessions low-intensity and watch for stiffness.",
			},
		},
	}
}

// LoadFile reads a TOML override file and applies it on top of the
// defaults. Unknown species or band names are rejected.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read guideline file", goerr.V("path", path))
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse guideline file", goerr.V("path", path))
	}

	reg := NewDefault()
	if cfg.Generic != "" {
		reg.generic = cfg.Generic
	}

	for _, entry := range cfg.Exercise {
		species := types.NormalizeSpecies(entry.Species)
		if species == types.SpeciesUnknown {
			return nil, goerr.New("unknown species in guideline file",
				goerr.V("species", entry.Species), goerr.V("path", path))
		}

		band := AgeBand(entry.Band)
		if band != BandYoung && band != BandAdult && band != BandSenior {
			return nil, goerr.New("unknown age band in guideline file",
				goerr.V("band", entry.Band), goerr.V("path", path))
		}

		if entry.Text == "" {
			return nil, goerr.New("guideline text is required",
				goerr.V("species", entry.Species), goerr.V("band", entry.Band))
		}
		reg.exercise[species][band] = entry.Text
	}

	return reg, nil
}

// Exercise returns the guideline for the species and age. Unrecognized
// species get the generic consult-a-vet line. Exercise is total.
func (r *Registry) Exercise(species types.Species, age float64) string {
	bands, ok := r.exercise[species]
	if !ok {
		return r.generic
	}
	if text, ok := bands[BandForAge(age)]; ok {
		return text
	}
	return r.generic
}
