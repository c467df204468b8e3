package petcontext

import (
	"context"
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// recentTasksPerPet bounds the per-pet task titles included in context
	recentTasksPerPet = 3

	// recentTaskFetchLimit bounds the roster-wide task fetch
	recentTaskFetchLimit = 50

	// vaccinationLookback is how far back vaccination records are pulled
	// for the status summary
	vaccinationLookback = 365 * 24 * time.Hour

	// recentVaccinationWindow is the window counted as "recent" in the
	// additional context
	recentVaccinationWindow = 90 * 24 * time.Hour
)

// Assembler builds the AssistantContext snapshot for one request. The
// snapshot is rebuilt fresh on every call; pet and task data may have
// changed since the last one.
type Assembler struct {
	tasks        interfaces.TaskRepository
	vaccinations interfaces.VaccinationRepository
	now          func() time.Time
}

type Option func(*Assembler)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

func New(tasks interfaces.TaskRepository, vaccinations interfaces.VaccinationRepository, opts ...Option) *Assembler {
	a := &Assembler{
		tasks:        tasks,
		vaccinations: vaccinations,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles the full context. Task and vaccination fetches run
// concurrently and are best-effort: a failing source degrades to empty
// data, never to an error. Build is total.
func (a *Assembler) Build(ctx context.Context, pets []*model.Pet, selectedPet types.PetID) *model.AssistantContext {
	now := a.now().UTC()
	logger := logging.From(ctx)

	var recentTasks []*model.Task
	var vaccinations []*model.VaccinationRecord

	// Independent reads, fanned out and joined before use. Errors are
	// swallowed per source so one bad collaborator cannot take down the
	// whole context.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		tasks, err := a.tasks.ListRecent(egCtx, recentTaskFetchLimit)
		if err != nil {
			logger.Warn("failed to fetch recent tasks, degrading to empty", "error", err.Error())
			return nil
		}
		recentTasks = tasks
		return nil
	})
	eg.Go(func() error {
		records, err := a.vaccinations.ListSince(egCtx, now.Add(-vaccinationLookback))
		if err != nil {
			logger.Warn("failed to fetch vaccinations, degrading to empty", "error", err.Error())
			return nil
		}
		vaccinations = records
		return nil
	})
	_ = eg.Wait() // goroutines never return errors; they degrade instead

	assistantCtx := a.BuildBasic(pets, selectedPet)

	tasksByPet := groupTasksByPet(recentTasks)
	vaccinationsByPet := groupVaccinationsByPet(vaccinations)
	for i := range assistantCtx.Pets {
		petID := assistantCtx.Pets[i].ID
		assistantCtx.Pets[i].RecentTasks = recentTaskTitles(tasksByPet[petID])
		assistantCtx.Pets[i].VaccinationStatus = vaccinationStatus(vaccinationsByPet[petID], now)
	}
	if assistantCtx.SelectedPet != nil {
		petID := assistantCtx.SelectedPet.ID
		assistantCtx.SelectedPet.RecentTasks = recentTaskTitles(tasksByPet[petID])
		assistantCtx.SelectedPet.VaccinationStatus = vaccinationStatus(vaccinationsByPet[petID], now)
	}

	overdue := 0
	for _, task := range recentTasks {
		if task.IsOverdue(now) {
			overdue++
		}
	}
	recentVaccinations := 0
	for _, rec := range vaccinations {
		if !rec.AdministeredAt.Before(now.Add(-recentVaccinationWindow)) {
			recentVaccinations++
		}
	}

	assistantCtx.AdditionalContext = &model.AdditionalContext{
		TotalTasks:         len(recentTasks),
		OverdueTasks:       overdue,
		RecentVaccinations: recentVaccinations,
	}

	return assistantCtx
}

// BuildBasic assembles a context from the pet roster alone, without
// touching the task or vaccination collaborators. This is also the shape
// Build degrades to when every auxiliary source fails.
func (a *Assembler) BuildBasic(pets []*model.Pet, selectedPet types.PetID) *model.AssistantContext {
	now := a.now().UTC()

	assistantCtx := &model.AssistantContext{
		Pets:      make([]model.PetContext, 0, len(pets)),
		TotalPets: len(pets),
	}

	for _, pet := range pets {
		entry := petEntry(pet, now)
		assistantCtx.Pets = append(assistantCtx.Pets, entry)
		if selectedPet != "" && pet.ID == selectedPet {
			selected := entry
			assistantCtx.SelectedPet = &selected
		}
	}

	return assistantCtx
}

func petEntry(pet *model.Pet, now time.Time) model.PetContext {
	entry := model.PetContext{
		ID:             pet.ID,
		Name:           pet.Name,
		Type:           pet.Type,
		Breed:          pet.Breed,
		Age:            pet.AgeYears(now),
		WeightKg:       pet.WeightKg,
		Gender:         pet.Gender,
		HealthIssues:   normalizeList(pet.HealthIssues),
		BehaviorIssues: normalizeList(pet.BehaviorIssues),
		MedicalHistory: normalizeList(pet.MedicalHistory),
		IsVaccinated:   pet.IsVaccinated,
		IsNeutered:     pet.IsNeutered,
	}
	if !pet.LastVetVisit.IsZero() {
		visit := pet.LastVetVisit
		entry.LastVetVisit = &visit
	}
	if !pet.NextVetVisit.IsZero() {
		visit := pet.NextVetVisit
		entry.NextVetVisit = &visit
	}
	return entry
}

func normalizeList(list model.StringList) []string {
	if len(list) == 0 {
		return []string{}
	}
	return []string(list)
}

func groupTasksByPet(tasks []*model.Task) map[types.PetID][]*model.Task {
	grouped := make(map[types.PetID][]*model.Task)
	for _, task := range tasks {
		if task.PetID == "" {
			continue
		}
		grouped[task.PetID] = append(grouped[task.PetID], task)
	}
	return grouped
}

func groupVaccinationsByPet(records []*model.VaccinationRecord) map[types.PetID][]*model.VaccinationRecord {
	grouped := make(map[types.PetID][]*model.VaccinationRecord)
	for _, rec := range records {
		grouped[rec.PetID] = append(grouped[rec.PetID], rec)
	}
	return grouped
}

// recentTaskTitles picks the top titles, newest first. The task fetch is
// already ordered newest-first, so this is a bounded copy.
func recentTaskTitles(tasks []*model.Task) []string {
	titles := make([]string, 0, recentTasksPerPet)
	for _, task := range tasks {
		if len(titles) >= recentTasksPerPet {
			break
		}
		titles = append(titles, task.Title)
	}
	return titles
}

func vaccinationStatus(records []*model.VaccinationRecord, now time.Time) []string {
	status := make([]string, 0, len(records))
	for _, rec := range records {
		line := rec.Name
		if !rec.ExpiresAt.IsZero() {
			if rec.ExpiresAt.Before(now) {
				line += " (expired " + rec.ExpiresAt.Format("2006-01-02") + ")"
			} else {
				line += " (valid until " + rec.ExpiresAt.Format("2006-01-02") + ")"
			}
		}
		status = append(status, line)
	}
	return status
}
