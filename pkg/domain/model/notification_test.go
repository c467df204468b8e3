package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

func TestNotification_DedupeKey(t *testing.T) {
	day := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	t.Run("same source same day collides", func(t *testing.T) {
		a := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "task-1", CreatedAt: day}
		b := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "task-1", CreatedAt: day.Add(5 * time.Hour)}
		gt.Value(t, a.DedupeKey()).Equal(b.DedupeKey())
	})

	t.Run("different day differs", func(t *testing.T) {
		a := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "task-1", CreatedAt: day}
		b := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "task-1", CreatedAt: day.AddDate(0, 0, 1)}
		gt.Value(t, a.DedupeKey()).NotEqual(b.DedupeKey())
	})

	t.Run("different kind differs", func(t *testing.T) {
		a := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "x", CreatedAt: day}
		b := &model.Notification{Kind: types.NotificationVaccinationDue, SourceID: "x", CreatedAt: day}
		gt.Value(t, a.DedupeKey()).NotEqual(b.DedupeKey())
	})

	t.Run("key shape", func(t *testing.T) {
		n := &model.Notification{Kind: types.NotificationTaskOverdue, SourceID: "task-1", CreatedAt: day}
		gt.Value(t, n.DedupeKey()).Equal("task_overdue/task-1/2025-06-15")
	})
}
