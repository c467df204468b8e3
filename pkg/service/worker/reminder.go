package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/async"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/errutil"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
)

const (
	// vaccinationDueWindow is how close to expiry a vaccination must be
	// before a reminder is produced
	vaccinationDueWindow = 14 * 24 * time.Hour

	// taskScanLimit bounds the task fetch per scan cycle
	taskScanLimit = 200
)

// ReminderWorker periodically scans for overdue tasks and vaccinations
// approaching expiry, and records a Notification for each. Delivery is
// someone else's job; this only maintains the durable records the UI
// reads.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ReminderWorker struct {
	repo     interfaces.Repository
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReminderWorker creates a new reminder scan worker
func NewReminderWorker(repo interfaces.Repository, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background scan loop. The initial scan and periodic
// rescans run in a goroutine and do not block server startup.
func (w *ReminderWorker) Start(ctx context.Context) error {
	logging.Default().Info("Reminder worker starting", "interval", w.interval.String())
	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReminderWorker) Stop() {
	logging.Default().Info("Reminder worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Reminder worker stopped")
}

func (w *ReminderWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.scan(ctx); err != nil {
		errutil.Handle(ctx, err, "Initial reminder scan failed (will retry next interval)") //nolint:errcheck // retried by the ticker
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				errutil.Handle(ctx, err, "Reminder scan failed (will retry next interval)") //nolint:errcheck // retried by the ticker
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Reminder worker context cancelled")
			return
		}
	}
}

// scan collects due reminders and dispatches the notification writes
// asynchronously so a slow storage backend cannot stall the scan loop.
func (w *ReminderWorker) scan(ctx context.Context) error {
	now := time.Now().UTC()

	tasks, err := w.repo.Task().ListRecent(ctx, taskScanLimit)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if !task.IsOverdue(now) {
			continue
		}
		w.notify(ctx, &model.Notification{
			ID:        types.NewNotificationID(),
			Kind:      types.NotificationTaskOverdue,
			PetID:     task.PetID,
			SourceID:  task.ID.String(),
			Title:     "Task overdue: " + task.Title,
			Body:      fmt.Sprintf("%q was due on %s and is not done yet.", task.Title, task.DueDate.Format("2006-01-02")),
			CreatedAt: now,
		})
	}

	pets, err := w.repo.Pet().List(ctx)
	if err != nil {
		return err
	}

	for _, pet := range pets {
		records, err := w.repo.Vaccination().ListByPet(ctx, pet.ID)
		if err != nil {
			logging.From(ctx).Warn("failed to list vaccinations for reminder scan",
				"pet_id", pet.ID.String(), "error", err.Error())
			continue
		}
		for _, rec := range records {
			if !rec.IsExpiringWithin(now, vaccinationDueWindow) {
				continue
			}
			w.notify(ctx, &model.Notification{
				ID:        types.NewNotificationID(),
				Kind:      types.NotificationVaccinationDue,
				PetID:     pet.ID,
				SourceID:  rec.ID.String(),
				Title:     fmt.Sprintf("Vaccination due for %s: %s", pet.Name, rec.Name),
				Body:      fmt.Sprintf("%s's %s vaccination expires on %s.", pet.Name, rec.Name, rec.ExpiresAt.Format("2006-01-02")),
				CreatedAt: now,
			})
		}
	}

	return nil
}

// notify writes the notification unless an equivalent one already exists
// for the same source entity today
func (w *ReminderWorker) notify(ctx context.Context, n *model.Notification) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		exists, err := w.repo.Notification().Exists(ctx, n.DedupeKey())
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return w.repo.Notification().Put(ctx, n)
	})
}
