package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

func TestPet_AgeYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("confirmed birth date wins", func(t *testing.T) {
		pet := &model.Pet{
			BirthDate:          now.AddDate(-3, 0, 0),
			BirthDateConfirmed: true,
			ApproxAge:          8,
		}
		age := pet.AgeYears(now)
		gt.Value(t, age > 2.9 && age < 3.1).Equal(true)
	})

	t.Run("unconfirmed birth date is ignored", func(t *testing.T) {
		pet := &model.Pet{
			BirthDate:          now.AddDate(-3, 0, 0),
			BirthDateConfirmed: false,
			ApproxAge:          8,
		}
		gt.Number(t, pet.AgeYears(now)).Equal(8)
	})

	t.Run("no data yields zero", func(t *testing.T) {
		pet := &model.Pet{}
		gt.Number(t, pet.AgeYears(now)).Equal(0)
	})

	t.Run("future birth date clamps to zero", func(t *testing.T) {
		pet := &model.Pet{
			BirthDate:          now.AddDate(1, 0, 0),
			BirthDateConfirmed: true,
		}
		gt.Number(t, pet.AgeYears(now)).Equal(0)
	})

	t.Run("confirmed but zero birth date falls through", func(t *testing.T) {
		pet := &model.Pet{BirthDateConfirmed: true, ApproxAge: 5}
		gt.Number(t, pet.AgeYears(now)).Equal(5)
	})
}

func TestPet_Species(t *testing.T) {
	cases := []struct {
		label  string
		expect types.Species
	}{
		{label: "dog", expect: types.SpeciesDog},
		{label: "Puppy", expect: types.SpeciesDog},
		{label: "CAT", expect: types.SpeciesCat},
		{label: "kitten", expect: types.SpeciesCat},
		{label: "iguana", expect: types.SpeciesUnknown},
		{label: "", expect: types.SpeciesUnknown},
	}

	for _, tc := range cases {
		pet := &model.Pet{Type: tc.label}
		gt.Value(t, pet.Species()).Equal(tc.expect)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	gt.Value(t, (&model.Task{DueDate: now.Add(-time.Hour)}).IsOverdue(now)).Equal(true)
	gt.Value(t, (&model.Task{DueDate: now.Add(-time.Hour), Done: true}).IsOverdue(now)).Equal(false)
	gt.Value(t, (&model.Task{DueDate: now.Add(time.Hour)}).IsOverdue(now)).Equal(false)
	gt.Value(t, (&model.Task{}).IsOverdue(now)).Equal(false)
}

func TestVaccinationRecord_IsExpiringWithin(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	window := 14 * 24 * time.Hour

	t.Run("inside the window", func(t *testing.T) {
		rec := &model.VaccinationRecord{ExpiresAt: now.Add(7 * 24 * time.Hour)}
		gt.Value(t, rec.IsExpiringWithin(now, window)).Equal(true)
	})

	t.Run("already expired still counts", func(t *testing.T) {
		rec := &model.VaccinationRecord{ExpiresAt: now.Add(-24 * time.Hour)}
		gt.Value(t, rec.IsExpiringWithin(now, window)).Equal(true)
	})

	t.Run("outside the window", func(t *testing.T) {
		rec := &model.VaccinationRecord{ExpiresAt: now.Add(30 * 24 * time.Hour)}
		gt.Value(t, rec.IsExpiringWithin(now, window)).Equal(false)
	})

	t.Run("no expiry never triggers", func(t *testing.T) {
		rec := &model.VaccinationRecord{}
		gt.Value(t, rec.IsExpiringWithin(now, window)).Equal(false)
	})
}
