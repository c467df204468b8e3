package interfaces

import (
	"context"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
)

// ReasoningReply is the normalized reply from the remote reasoning
// service. Actions stay as raw descriptors; the action normalizer turns
// them into canonical SuggestedActions.
type ReasoningReply struct {
	Message string
	Actions []model.RawAction
}

// ReasoningClient sends a message with its assembled context and history
// to the remote reasoning service. Any failure (network, non-2xx,
// malformed body) is returned as an error; the caller decides to fall
// back locally.
type ReasoningClient interface {
	Query(ctx context.Context, message string, petContext *model.AssistantContext, history []model.ArchivedMessage) (*ReasoningReply, error)
}
