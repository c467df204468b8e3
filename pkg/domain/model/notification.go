package model

import (
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// Notification is a reminder record produced by the background worker
// when a task goes overdue or a vaccination approaches expiry. Delivery
// channels are out of scope; this is the durable record the UI reads.
type Notification struct {
	ID        types.NotificationID
	Kind      types.NotificationKind
	PetID     types.PetID
	SourceID  string // ID of the task or vaccination that triggered it
	Title     string
	Body      string
	CreatedAt time.Time
}

// DedupeKey identifies a notification per source entity per calendar day,
// so the worker does not pile up duplicates on every scan cycle.
func (n *Notification) DedupeKey() string {
	return string(n.Kind) + "/" + n.SourceID + "/" + n.CreatedAt.UTC().Format("2006-01-02")
}
