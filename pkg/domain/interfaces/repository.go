package interfaces

import (
	"context"
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Conversation() ConversationRepository
	Pet() PetRepository
	Task() TaskRepository
	Vaccination() VaccinationRepository
	Notification() NotificationRepository

	Close() error
}

// ConversationRepository stores the durable conversation archive: one
// record per profile holding the capped tail of exchanged messages.
type ConversationRepository interface {
	// Load returns the archived messages for the profile. A missing or
	// corrupt archive yields an empty slice, not an error; only real
	// I/O failures are returned.
	Load(ctx context.Context, profileID types.ProfileID) ([]model.ArchivedMessage, error)

	// Save overwrites the archive with the given messages. Callers are
	// expected to pass the already-truncated tail.
	Save(ctx context.Context, profileID types.ProfileID, msgs []model.ArchivedMessage) error

	// Delete removes the archive record entirely
	Delete(ctx context.Context, profileID types.ProfileID) error
}

// PetRepository is the read surface of the pet roster plus the writes
// needed to maintain it. The assistant only reads.
type PetRepository interface {
	Put(ctx context.Context, pet *model.Pet) error
	Get(ctx context.Context, id types.PetID) (*model.Pet, error)
	List(ctx context.Context) ([]*model.Pet, error)
	Delete(ctx context.Context, id types.PetID) error
}

// TaskRepository stores care tasks
type TaskRepository interface {
	Put(ctx context.Context, task *model.Task) error
	// ListRecent returns tasks ordered newest-first, up to limit
	ListRecent(ctx context.Context, limit int) ([]*model.Task, error)
	ListByPet(ctx context.Context, petID types.PetID) ([]*model.Task, error)
}

// VaccinationRepository stores vaccination records
type VaccinationRepository interface {
	Put(ctx context.Context, rec *model.VaccinationRecord) error
	ListByPet(ctx context.Context, petID types.PetID) ([]*model.VaccinationRecord, error)
	// ListSince returns records administered at or after the given time
	ListSince(ctx context.Context, since time.Time) ([]*model.VaccinationRecord, error)
}

// NotificationRepository stores reminder notifications
type NotificationRepository interface {
	Put(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, limit int) ([]*model.Notification, error)
	// Exists reports whether a notification with the given dedupe key
	// has already been recorded
	Exists(ctx context.Context, dedupeKey string) (bool, error)
}
