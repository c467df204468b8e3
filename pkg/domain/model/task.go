package model

import (
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// Task is a care task (walk, medication, grooming, ...) optionally tied
// to a pet.
type Task struct {
	ID          types.TaskID
	PetID       types.PetID
	Title       string
	Description string
	DueDate     time.Time
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task is past due and not completed
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Done && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// VaccinationRecord tracks a single vaccination for a pet
type VaccinationRecord struct {
	ID             types.VaccinationID
	PetID          types.PetID
	Name           string
	AdministeredAt time.Time
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

// IsExpiringWithin reports whether the vaccination expires inside the
// given window from now (already-expired records also count).
func (v *VaccinationRecord) IsExpiringWithin(now time.Time, window time.Duration) bool {
	if v.ExpiresAt.IsZero() {
		return false
	}
	return v.ExpiresAt.Before(now.Add(window))
}
