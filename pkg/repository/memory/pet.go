package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

type petRepository struct {
	mu   sync.RWMutex
	pets map[types.PetID]*model.Pet
}

var _ interfaces.PetRepository = &petRepository{}

func newPetRepository() *petRepository {
	return &petRepository{
		pets: make(map[types.PetID]*model.Pet),
	}
}

func (r *petRepository) Put(_ context.Context, pet *model.Pet) error {
	if pet == nil {
		return goerr.New("pet is nil")
	}
	if pet.ID == "" {
		return goerr.New("pet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *pet
	r.pets[pet.ID] = &copied
	return nil
}

func (r *petRepository) Get(_ context.Context, id types.PetID) (*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.pets[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "pet not found", goerr.V("id", id))
	}
	copied := *pet
	return &copied, nil
}

func (r *petRepository) List(_ context.Context) ([]*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Pet, 0, len(r.pets))
	for _, pet := range r.pets {
		copied := *pet
		result = append(result, &copied)
	}

	// Stable order for callers: oldest roster entry first
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *petRepository) Delete(_ context.Context, id types.PetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return goerr.Wrap(ErrNotFound, "pet not found", goerr.V("id", id))
	}
	delete(r.pets, id)
	return nil
}
