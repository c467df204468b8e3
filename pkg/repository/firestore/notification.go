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

type notificationDoc struct {
	ID        string    `firestore:"id"`
	Kind      string    `firestore:"kind"`
	PetID     string    `firestore:"pet_id"`
	SourceID  string    `firestore:"source_id"`
	Title     string    `firestore:"title"`
	Body      string    `firestore:"body"`
	DedupeKey string    `firestore:"dedupe_key"`
	CreatedAt time.Time `firestore:"created_at"`
}

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.NotificationRepository = &notificationRepository{}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_notifications"
	}
	return "notifications"
}

func (r *notificationRepository) Put(ctx context.Context, n *model.Notification) error {
	if n == nil {
		return goerr.New("notification is nil")
	}
	if n.ID == "" {
		return goerr.New("notification ID is required")
	}

	doc := &notificationDoc{
		ID:        n.ID.String(),
		Kind:      n.Kind.String(),
		PetID:     n.PetID.String(),
		SourceID:  n.SourceID,
		Title:     n.Title,
		Body:      n.Body,
		DedupeKey: n.DedupeKey(),
		CreatedAt: n.CreatedAt,
	}

	docRef := r.client.Collection(r.collection()).Doc(n.ID.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save notification", goerr.V("id", n.ID))
	}
	return nil
}

func (r *notificationRepository) List(ctx context.Context, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 100
	}

	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var notifications []*model.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications")
		}

		var d notificationDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal notification", goerr.V("doc_id", doc.Ref.ID))
		}
		notifications = append(notifications, &model.Notification{
			ID:        types.NotificationID(d.ID),
			Kind:      types.NotificationKind(d.Kind),
			PetID:     types.PetID(d.PetID),
			SourceID:  d.SourceID,
			Title:     d.Title,
			Body:      d.Body,
			CreatedAt: d.CreatedAt,
		})
	}
	return notifications, nil
}

func (r *notificationRepository) Exists(ctx context.Context, dedupeKey string) (bool, error) {
	iter := r.client.Collection(r.collection()).
		Where("dedupe_key", "==", dedupeKey).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to query notifications", goerr.V("dedupe_key", dedupeKey))
	}
	return true, nil
}
