package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type petDoc struct {
	ID                 string    `firestore:"id"`
	Name               string    `firestore:"name"`
	Type               string    `firestore:"type"`
	Breed              string    `firestore:"breed"`
	Gender             string    `firestore:"gender"`
	BirthDate          time.Time `firestore:"birth_date"`
	BirthDateConfirmed bool      `firestore:"birth_date_confirmed"`
	ApproxAge          float64   `firestore:"approx_age"`
	WeightKg           float64   `firestore:"weight_kg"`
	HealthIssues       []string  `firestore:"health_issues"`
	BehaviorIssues     []string  `firestore:"behavior_issues"`
	MedicalHistory     []string  `firestore:"medical_history"`
	IsVaccinated       bool      `firestore:"is_vaccinated"`
	IsNeutered         bool      `firestore:"is_neutered"`
	LastVetVisit       time.Time `firestore:"last_vet_visit"`
	NextVetVisit       time.Time `firestore:"next_vet_visit"`
	CreatedAt          time.Time `firestore:"created_at"`
	UpdatedAt          time.Time `firestore:"updated_at"`
}

func toPetDoc(p *model.Pet) *petDoc {
	return &petDoc{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Type:               p.Type,
		Breed:              p.Breed,
		Gender:             p.Gender,
		BirthDate:          p.BirthDate,
		BirthDateConfirmed: p.BirthDateConfirmed,
		ApproxAge:          p.ApproxAge,
		WeightKg:           p.WeightKg,
		HealthIssues:       p.HealthIssues,
		BehaviorIssues:     p.BehaviorIssues,
		MedicalHistory:     p.MedicalHistory,
		IsVaccinated:       p.IsVaccinated,
		IsNeutered:         p.IsNeutered,
		LastVetVisit:       p.LastVetVisit,
		NextVetVisit:       p.NextVetVisit,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func fromPetDoc(d *petDoc) *model.Pet {
	return &model.Pet{
		ID:                 types.PetID(d.ID),
		Name:               d.Name,
		Type:               d.Type,
		Breed:              d.Breed,
		Gender:             d.Gender,
		BirthDate:          d.BirthDate,
		BirthDateConfirmed: d.BirthDateConfirmed,
		ApproxAge:          d.ApproxAge,
		WeightKg:           d.WeightKg,
		HealthIssues:       d.HealthIssues,
		BehaviorIssues:     d.BehaviorIssues,
		MedicalHistory:     d.MedicalHistory,
		IsVaccinated:       d.IsVaccinated,
		IsNeutered:         d.IsNeutered,
		LastVetVisit:       d.LastVetVisit,
		NextVetVisit:       d.NextVetVisit,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type petRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.PetRepository = &petRepository{}

func newPetRepository(client *firestore.Client) *petRepository {
	return &petRepository{client: client}
}

func (r *petRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_pets"
	}
	return "pets"
}

func (r *petRepository) Put(ctx context.Context, pet *model.Pet) error {
	if pet == nil {
		return goerr.New("pet is nil")
	}
	if pet.ID == "" {
		return goerr.New("pet ID is required")
	}

	docRef := r.client.Collection(r.collection()).Doc(pet.ID.String())
	if _, err := docRef.Set(ctx, toPetDoc(pet)); err != nil {
		return goerr.Wrap(err, "failed to save pet", goerr.V("id", pet.ID))
	}
	return nil
}

func (r *petRepository) Get(ctx context.Context, id types.PetID) (*model.Pet, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "pet not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get pet", goerr.V("id", id))
	}

	var d petDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal pet", goerr.V("id", id))
	}
	return fromPetDoc(&d), nil
}

func (r *petRepository) List(ctx context.Context) ([]*model.Pet, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var pets []*model.Pet
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate pets")
		}

		var d petDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal pet", goerr.V("doc_id", doc.Ref.ID))
		}
		pets = append(pets, fromPetDoc(&d))
	}
	return pets, nil
}

func (r *petRepository) Delete(ctx context.Context, id types.PetID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete pet", goerr.V("id", id))
	}
	return nil
}
