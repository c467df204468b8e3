package model

import (
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// PetContext is a derived, read-only snapshot of one pet handed to the
// reasoning service. It is rebuilt on every request since the underlying
// pet and task data may have changed.
type PetContext struct {
	ID                types.PetID `json:"id"`
	Name              string      `json:"name"`
	Type              string      `json:"type"`
	Breed             string      `json:"breed"`
	Age               float64     `json:"age"` // fractional years
	WeightKg          float64     `json:"weight"`
	Gender            string      `json:"gender"`
	HealthIssues      []string    `json:"healthIssues"`
	BehaviorIssues    []string    `json:"behaviorIssues"`
	MedicalHistory    []string    `json:"medicalHistory"`
	RecentTasks       []string    `json:"recentTasks"` // up to 3, most recent first
	VaccinationStatus []string    `json:"vaccinationStatus"`
	IsVaccinated      bool        `json:"isVaccinated"`
	IsNeutered        bool        `json:"isNeutered"`
	LastVetVisit      *time.Time  `json:"lastVetVisit,omitempty"`
	NextVetVisit      *time.Time  `json:"nextVetVisit,omitempty"`
}

// AdditionalContext carries roster-wide activity counters
type AdditionalContext struct {
	TotalTasks         int `json:"totalTasks"`
	OverdueTasks       int `json:"overdueTasks"`
	RecentVaccinations int `json:"recentVaccinations"`
}

// AssistantContext is the full snapshot sent with one assistant request.
// It is transient: it exists only for the duration of one SendMessage call.
type AssistantContext struct {
	Pets              []PetContext       `json:"pets"`
	SelectedPet       *PetContext        `json:"selectedPet"`
	TotalPets         int                `json:"totalPets"`
	AdditionalContext *AdditionalContext `json:"additionalContext,omitempty"`
}
