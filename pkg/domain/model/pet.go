package model

import (
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

const hoursPerYear = 24 * 365.25

// Pet is the roster entry the assistant reads. CRUD on pets happens
// elsewhere; the assistant only consumes this read surface.
type Pet struct {
	ID     types.PetID
	Name   string
	Type   string // free-form species label as entered by the owner
	Breed  string
	Gender string

	// BirthDate is only trusted for age math when the owner has
	// explicitly confirmed it. An unconfirmed date may be a placeholder
	// from an import, so ApproxAge takes over in that case.
	BirthDate          time.Time
	BirthDateConfirmed bool
	ApproxAge          float64 // stored approximate age in years

	WeightKg float64

	HealthIssues   StringList
	BehaviorIssues StringList
	MedicalHistory StringList

	IsVaccinated bool
	IsNeutered   bool
	LastVetVisit time.Time
	NextVetVisit time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears derives the pet's age in fractional years. A confirmed birth
// date wins over the stored approximate age; with neither, the age is 0.
func (p *Pet) AgeYears(now time.Time) float64 {
	if p.BirthDateConfirmed && !p.BirthDate.IsZero() {
		age := now.Sub(p.BirthDate).Hours() / hoursPerYear
		if age < 0 {
			return 0
		}
		return age
	}
	if p.ApproxAge > 0 {
		return p.ApproxAge
	}
	return 0
}

// Species normalizes the free-form type label
func (p *Pet) Species() types.Species {
	return types.NormalizeSpecies(p.Type)
}
