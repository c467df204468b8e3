package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[types.TaskID]*model.Task
}

var _ interfaces.TaskRepository = &taskRepository{}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.TaskID]*model.Task),
	}
}

func (r *taskRepository) Put(_ context.Context, task *model.Task) error {
	if task == nil {
		return goerr.New("task is nil")
	}
	if task.ID == "" {
		return goerr.New("task ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *taskRepository) ListRecent(_ context.Context, limit int) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	result := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		copied := *task
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *taskRepository) ListByPet(_ context.Context, petID types.PetID) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Task
	for _, task := range r.tasks {
		if task.PetID == petID {
			copied := *task
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type vaccinationRepository struct {
	mu      sync.RWMutex
	records map[types.VaccinationID]*model.VaccinationRecord
}

var _ interfaces.VaccinationRepository = &vaccinationRepository{}

func newVaccinationRepository() *vaccinationRepository {
	return &vaccinationRepository{
		records: make(map[types.VaccinationID]*model.VaccinationRecord),
	}
}

func (r *vaccinationRepository) Put(_ context.Context, rec *model.VaccinationRecord) error {
	if rec == nil {
		return goerr.New("vaccination record is nil")
	}
	if rec.ID == "" {
		return goerr.New("vaccination ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *rec
	r.records[rec.ID] = &copied
	return nil
}

func (r *vaccinationRepository) ListByPet(_ context.Context, petID types.PetID) ([]*model.VaccinationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.VaccinationRecord
	for _, rec := range r.records {
		if rec.PetID == petID {
			copied := *rec
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AdministeredAt.After(result[j].AdministeredAt)
	})
	return result, nil
}

func (r *vaccinationRepository) ListSince(_ context.Context, since time.Time) ([]*model.VaccinationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.VaccinationRecord
	for _, rec := range r.records {
		if !rec.AdministeredAt.Before(since) {
			copied := *rec
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AdministeredAt.After(result[j].AdministeredAt)
	})
	return result, nil
}
