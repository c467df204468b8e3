package petcontext_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/repository/memory"
	"github.com/tailkeep-lab/tailkeep/pkg/service/petcontext"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newAssembler(repo *memory.Memory) *petcontext.Assembler {
	return petcontext.New(repo.Task(), repo.Vaccination(), petcontext.WithClock(fixedClock))
}

func TestAssembler_BuildBasic(t *testing.T) {
	t.Run("age from confirmed birth date", func(t *testing.T) {
		repo := memory.New()
		pet := &model.Pet{
			ID:                 types.NewPetID(),
			Name:               "Rex",
			Type:               "dog",
			BirthDate:          fixedNow.AddDate(-2, 0, 0),
			BirthDateConfirmed: true,
			ApproxAge:          9, // must lose to the confirmed date
		}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{pet}, "")
		gt.Number(t, len(assistantCtx.Pets)).Equal(1)

		age := assistantCtx.Pets[0].Age
		gt.Value(t, age > 1.9 && age < 2.1).Equal(true)
	})

	t.Run("unconfirmed birth date falls back to approximate age", func(t *testing.T) {
		repo := memory.New()
		pet := &model.Pet{
			ID:                 types.NewPetID(),
			Name:               "Mia",
			Type:               "cat",
			BirthDate:          fixedNow.AddDate(-10, 0, 0),
			BirthDateConfirmed: false,
			ApproxAge:          3,
		}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{pet}, "")
		gt.Number(t, assistantCtx.Pets[0].Age).Equal(3)
	})

	t.Run("no age data yields zero", func(t *testing.T) {
		repo := memory.New()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Pip", Type: "dog"}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{pet}, "")
		gt.Number(t, assistantCtx.Pets[0].Age).Equal(0)
	})

	t.Run("selected pet is a copy of its roster entry", func(t *testing.T) {
		repo := memory.New()
		petA := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}
		petB := &model.Pet{ID: types.NewPetID(), Name: "Mia", Type: "cat"}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{petA, petB}, petB.ID)
		gt.Value(t, assistantCtx.SelectedPet).NotNil()
		gt.Value(t, assistantCtx.SelectedPet.Name).Equal("Mia")
		gt.Number(t, assistantCtx.TotalPets).Equal(2)
	})

	t.Run("unknown selected pet leaves selection empty", func(t *testing.T) {
		repo := memory.New()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{pet}, types.NewPetID())
		gt.Value(t, assistantCtx.SelectedPet).Nil()
	})

	t.Run("list fields are never nil", func(t *testing.T) {
		repo := memory.New()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}

		assistantCtx := newAssembler(repo).BuildBasic([]*model.Pet{pet}, "")
		entry := assistantCtx.Pets[0]
		gt.Value(t, entry.HealthIssues).NotNil()
		gt.Value(t, entry.BehaviorIssues).NotNil()
		gt.Value(t, entry.MedicalHistory).NotNil()
	})

	t.Run("empty roster", func(t *testing.T) {
		repo := memory.New()
		assistantCtx := newAssembler(repo).BuildBasic(nil, "")
		gt.Number(t, assistantCtx.TotalPets).Equal(0)
		gt.Number(t, len(assistantCtx.Pets)).Equal(0)
		gt.Value(t, assistantCtx.SelectedPet).Nil()
	})
}

func TestAssembler_Build(t *testing.T) {
	t.Run("recent tasks capped at three per pet", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}

		for i := 0; i < 5; i++ {
			task := &model.Task{
				ID:        types.NewTaskID(),
				PetID:     pet.ID,
				Title:     fmt.Sprintf("task %d", i),
				CreatedAt: fixedNow.Add(-time.Duration(i) * time.Hour),
			}
			gt.NoError(t, repo.Task().Put(ctx, task)).Required()
		}

		assistantCtx := newAssembler(repo).Build(ctx, []*model.Pet{pet}, "")
		gt.Number(t, len(assistantCtx.Pets[0].RecentTasks)).Equal(3)
		// Newest first
		gt.Value(t, assistantCtx.Pets[0].RecentTasks[0]).Equal("task 0")
	})

	t.Run("overdue tasks counted in additional context", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}

		overdue := &model.Task{
			ID:        types.NewTaskID(),
			PetID:     pet.ID,
			Title:     "walk",
			DueDate:   fixedNow.Add(-24 * time.Hour),
			CreatedAt: fixedNow,
		}
		done := &model.Task{
			ID:        types.NewTaskID(),
			PetID:     pet.ID,
			Title:     "vet visit",
			DueDate:   fixedNow.Add(-24 * time.Hour),
			Done:      true,
			CreatedAt: fixedNow,
		}
		upcoming := &model.Task{
			ID:        types.NewTaskID(),
			PetID:     pet.ID,
			Title:     "grooming",
			DueDate:   fixedNow.Add(24 * time.Hour),
			CreatedAt: fixedNow,
		}
		for _, task := range []*model.Task{overdue, done, upcoming} {
			gt.NoError(t, repo.Task().Put(ctx, task)).Required()
		}

		assistantCtx := newAssembler(repo).Build(ctx, []*model.Pet{pet}, "")
		gt.Value(t, assistantCtx.AdditionalContext).NotNil()
		gt.Number(t, assistantCtx.AdditionalContext.TotalTasks).Equal(3)
		gt.Number(t, assistantCtx.AdditionalContext.OverdueTasks).Equal(1)
	})

	t.Run("vaccination status lines", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog"}

		valid := &model.VaccinationRecord{
			ID:             types.NewVaccinationID(),
			PetID:          pet.ID,
			Name:           "Rabies",
			AdministeredAt: fixedNow.Add(-30 * 24 * time.Hour),
			ExpiresAt:      fixedNow.AddDate(1, 0, 0),
		}
		expired := &model.VaccinationRecord{
			ID:             types.NewVaccinationID(),
			PetID:          pet.ID,
			Name:           "Bordetella",
			AdministeredAt: fixedNow.Add(-300 * 24 * time.Hour),
			ExpiresAt:      fixedNow.Add(-24 * time.Hour),
		}
		for _, rec := range []*model.VaccinationRecord{valid, expired} {
			gt.NoError(t, repo.Vaccination().Put(ctx, rec)).Required()
		}

		assistantCtx := newAssembler(repo).Build(ctx, []*model.Pet{pet}, pet.ID)
		status := assistantCtx.Pets[0].VaccinationStatus
		gt.Number(t, len(status)).Equal(2)
		gt.Value(t, status[0]).Equal("Rabies (valid until " + valid.ExpiresAt.Format("2006-01-02") + ")")
		gt.Value(t, status[1]).Equal("Bordetella (expired " + expired.ExpiresAt.Format("2006-01-02") + ")")

		// Selected pet carries the same enrichment
		gt.Number(t, len(assistantCtx.SelectedPet.VaccinationStatus)).Equal(2)
		gt.Number(t, assistantCtx.AdditionalContext.RecentVaccinations).Equal(1)
	})

	t.Run("degrades to basic context when sources fail", func(t *testing.T) {
		ctx := context.Background()
		pet := &model.Pet{ID: types.NewPetID(), Name: "Rex", Type: "dog", ApproxAge: 2}

		assembler := petcontext.New(&failingTasks{}, &failingVaccinations{}, petcontext.WithClock(fixedClock))
		assistantCtx := assembler.Build(ctx, []*model.Pet{pet}, "")

		gt.Number(t, len(assistantCtx.Pets)).Equal(1)
		gt.Number(t, assistantCtx.Pets[0].Age).Equal(2)
		gt.Number(t, len(assistantCtx.Pets[0].RecentTasks)).Equal(0)
		gt.Value(t, assistantCtx.AdditionalContext).NotNil()
		gt.Number(t, assistantCtx.AdditionalContext.TotalTasks).Equal(0)
	})
}

type failingTasks struct{}

func (r *failingTasks) Put(_ context.Context, _ *model.Task) error {
	return fmt.Errorf("unavailable")
}

func (r *failingTasks) ListRecent(_ context.Context, _ int) ([]*model.Task, error) {
	return nil, fmt.Errorf("unavailable")
}

func (r *failingTasks) ListByPet(_ context.Context, _ types.PetID) ([]*model.Task, error) {
	return nil, fmt.Errorf("unavailable")
}

type failingVaccinations struct{}

func (r *failingVaccinations) Put(_ context.Context, _ *model.VaccinationRecord) error {
	return fmt.Errorf("unavailable")
}

func (r *failingVaccinations) ListByPet(_ context.Context, _ types.PetID) ([]*model.VaccinationRecord, error) {
	return nil, fmt.Errorf("unavailable")
}

func (r *failingVaccinations) ListSince(_ context.Context, _ time.Time) ([]*model.VaccinationRecord, error) {
	return nil, fmt.Errorf("unavailable")
}
