package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

type Firestore struct {
	client       *firestore.Client
	conversation *conversationRepository
	pet          *petRepository
	task         *taskRepository
	vaccination  *vaccinationRepository
	notification *notificationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test
// runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.conversation.collectionPrefix = prefix
		f.pet.collectionPrefix = prefix
		f.task.collectionPrefix = prefix
		f.vaccination.collectionPrefix = prefix
		f.notification.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		conversation: newConversationRepository(client),
		pet:          newPetRepository(client),
		task:         newTaskRepository(client),
		vaccination:  newVaccinationRepository(client),
		notification: newNotificationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Conversation() interfaces.ConversationRepository {
	return f.conversation
}

func (f *Firestore) Pet() interfaces.PetRepository {
	return f.pet
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Vaccination() interfaces.VaccinationRepository {
	return f.vaccination
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
