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
)

type vaccinationDoc struct {
	ID             string    `firestore:"id"`
	PetID          string    `firestore:"pet_id"`
	Name           string    `firestore:"name"`
	AdministeredAt time.Time `firestore:"administered_at"`
	ExpiresAt      time.Time `firestore:"expires_at"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func toVaccinationDoc(v *model.VaccinationRecord) *vaccinationDoc {
	return &vaccinationDoc{
		ID:             v.ID.String(),
		PetID:          v.PetID.String(),
		Name:           v.Name,
		AdministeredAt: v.AdministeredAt,
		ExpiresAt:      v.ExpiresAt,
		CreatedAt:      v.CreatedAt,
	}
}

func fromVaccinationDoc(d *vaccinationDoc) *model.VaccinationRecord {
	return &model.VaccinationRecord{
		ID:             types.VaccinationID(d.ID),
		PetID:          types.PetID(d.PetID),
		Name:           d.Name,
		AdministeredAt: d.AdministeredAt,
		ExpiresAt:      d.ExpiresAt,
		CreatedAt:      d.CreatedAt,
	}
}

type vaccinationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.VaccinationRepository = &vaccinationRepository{}

func newVaccinationRepository(client *firestore.Client) *vaccinationRepository {
	return &vaccinationRepository{client: client}
}

func (r *vaccinationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_vaccinations"
	}
	return "vaccinations"
}

func (r *vaccinationRepository) Put(ctx context.Context, rec *model.VaccinationRecord) error {
	if rec == nil {
		return goerr.New("vaccination record is nil")
	}
	if rec.ID == "" {
		return goerr.New("vaccination ID is required")
	}

	docRef := r.client.Collection(r.collection()).Doc(rec.ID.String())
	if _, err := docRef.Set(ctx, toVaccinationDoc(rec)); err != nil {
		return goerr.Wrap(err, "failed to save vaccination record", goerr.V("id", rec.ID))
	}
	return nil
}

func (r *vaccinationRepository) ListByPet(ctx context.Context, petID types.PetID) ([]*model.VaccinationRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("pet_id", "==", petID.String()).
		OrderBy("administered_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectVaccinations(iter)
}

func (r *vaccinationRepository) ListSince(ctx context.Context, since time.Time) ([]*model.VaccinationRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("administered_at", ">=", since).
		OrderBy("administered_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectVaccinations(iter)
}

func collectVaccinations(iter *firestore.DocumentIterator) ([]*model.VaccinationRecord, error) {
	var records []*model.VaccinationRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vaccination records")
		}

		var d vaccinationDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal vaccination record", goerr.V("doc_id", doc.Ref.ID))
		}
		records = append(records, fromVaccinationDoc(&d))
	}
	return records, nil
}
