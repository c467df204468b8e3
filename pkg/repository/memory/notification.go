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

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[types.NotificationID]*model.Notification
	dedupeKeys    map[string]struct{}
}

var _ interfaces.NotificationRepository = &notificationRepository{}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[types.NotificationID]*model.Notification),
		dedupeKeys:    make(map[string]struct{}),
	}
}

func (r *notificationRepository) Put(_ context.Context, n *model.Notification) error {
	if n == nil {
		return goerr.New("notification is nil")
	}
	if n.ID == "" {
		return goerr.New("notification ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *n
	r.notifications[n.ID] = &copied
	r.dedupeKeys[n.DedupeKey()] = struct{}{}
	return nil
}

func (r *notificationRepository) List(_ context.Context, limit int) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	result := make([]*model.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		copied := *n
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

func (r *notificationRepository) Exists(_ context.Context, dedupeKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.dedupeKeys[dedupeKey]
	return ok, nil
}
