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

type taskDoc struct {
	ID          string    `firestore:"id"`
	PetID       string    `firestore:"pet_id"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	DueDate     time.Time `firestore:"due_date"`
	Done        bool      `firestore:"done"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func toTaskDoc(t *model.Task) *taskDoc {
	return &taskDoc{
		ID:          t.ID.String(),
		PetID:       t.PetID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Done:        t.Done,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromTaskDoc(d *taskDoc) *model.Task {
	return &model.Task{
		ID:          types.TaskID(d.ID),
		PetID:       types.PetID(d.PetID),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Done:        d.Done,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.TaskRepository = &taskRepository{}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tasks"
	}
	return "tasks"
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	if task == nil {
		return goerr.New("task is nil")
	}
	if task.ID == "" {
		return goerr.New("task ID is required")
	}

	docRef := r.client.Collection(r.collection()).Doc(task.ID.String())
	if _, err := docRef.Set(ctx, toTaskDoc(task)); err != nil {
		return goerr.Wrap(err, "failed to save task", goerr.V("id", task.ID))
	}
	return nil
}

func (r *taskRepository) ListRecent(ctx context.Context, limit int) ([]*model.Task, error) {
	if limit <= 0 {
		limit = 50
	}

	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	return collectTasks(iter)
}

func (r *taskRepository) ListByPet(ctx context.Context, petID types.PetID) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).
		Where("pet_id", "==", petID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectTasks(iter)
}

func collectTasks(iter *firestore.DocumentIterator) ([]*model.Task, error) {
	var tasks []*model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var d taskDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("doc_id", doc.Ref.ID))
		}
		tasks = append(tasks, fromTaskDoc(&d))
	}
	return tasks, nil
}
