package memory

import (
	"context"
	"sync"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

type conversationRepository struct {
	mu       sync.RWMutex
	archives map[types.ProfileID][]model.ArchivedMessage
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		archives: make(map[types.ProfileID][]model.ArchivedMessage),
	}
}

func (r *conversationRepository) Load(_ context.Context, profileID types.ProfileID) ([]model.ArchivedMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.archives[profileID]
	result := make([]model.ArchivedMessage, len(msgs))
	copy(result, msgs)
	return result, nil
}

func (r *conversationRepository) Save(_ context.Context, profileID types.ProfileID, msgs []model.ArchivedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]model.ArchivedMessage, len(msgs))
	copy(copied, msgs)
	r.archives[profileID] = copied
	return nil
}

func (r *conversationRepository) Delete(_ context.Context, profileID types.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.archives, profileID)
	return nil
}
