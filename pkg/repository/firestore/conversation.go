package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type archivedMessageDoc struct {
	Content string `firestore:"content"`
	IsUser  string `firestore:"is_user"`
}

type conversationDoc struct {
	ProfileID string               `firestore:"profile_id"`
	Messages  []archivedMessageDoc `firestore:"messages"`
	UpdatedAt time.Time            `firestore:"updated_at"`
}

type conversationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository(client *firestore.Client) *conversationRepository {
	return &conversationRepository{client: client}
}

func (r *conversationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_conversations"
	}
	return "conversations"
}

func (r *conversationRepository) Load(ctx context.Context, profileID types.ProfileID) ([]model.ArchivedMessage, error) {
	docRef := r.client.Collection(r.collection()).Doc(profileID.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get conversation archive",
			goerr.V("profile_id", profileID))
	}

	var archive conversationDoc
	if err := doc.DataTo(&archive); err != nil {
		// A corrupt archive is recoverable: start the conversation fresh
		logging.From(ctx).Warn("conversation archive is corrupt, resetting to empty",
			"profile_id", profileID.String(),
			"error", err.Error())
		return nil, nil
	}

	msgs := make([]model.ArchivedMessage, len(archive.Messages))
	for i, m := range archive.Messages {
		msgs[i] = model.ArchivedMessage{Content: m.Content, IsUser: m.IsUser}
	}
	return msgs, nil
}

func (r *conversationRepository) Save(ctx context.Context, profileID types.ProfileID, msgs []model.ArchivedMessage) error {
	docMsgs := make([]archivedMessageDoc, len(msgs))
	for i, m := range msgs {
		docMsgs[i] = archivedMessageDoc{Content: m.Content, IsUser: m.IsUser}
	}

	docRef := r.client.Collection(r.collection()).Doc(profileID.String())
	if _, err := docRef.Set(ctx, &conversationDoc{
		ProfileID: profileID.String(),
		Messages:  docMsgs,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return goerr.Wrap(err, "failed to save conversation archive",
			goerr.V("profile_id", profileID),
			goerr.V("count", len(msgs)))
	}
	return nil
}

func (r *conversationRepository) Delete(ctx context.Context, profileID types.ProfileID) error {
	docRef := r.client.Collection(r.collection()).Doc(profileID.String())
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete conversation archive",
			goerr.V("profile_id", profileID))
	}
	return nil
}
