package reasoning

import (
	"fmt"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
)

// queryRequest is the wire shape sent to the reasoning endpoint. The
// conversation history entries carry isUser as the string "true"/"false";
// the remote contract predates this service and must be preserved.
type queryRequest struct {
	Message             string                  `json:"message"`
	PetContext          *model.AssistantContext `json:"pet_context"`
	ConversationHistory []model.ArchivedMessage `json:"conversation_history"`
}

// queryResponse tolerates upstream schema drift: the reply text may be
// under "message" or "response", and actions under either spelling of
// the suggested-actions key.
type queryResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`

	SuggestedActionsSnake []model.RawAction `json:"suggested_actions"`
	SuggestedActionsCamel []model.RawAction `json:"suggestedActions"`
}

// replyText picks the reply field in fixed precedence order
func (r *queryResponse) replyText() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Response
}

// actions picks the populated actions field in fixed precedence order
func (r *queryResponse) actions() []model.RawAction {
	if len(r.SuggestedActionsSnake) > 0 {
		return r.SuggestedActionsSnake
	}
	return r.SuggestedActionsCamel
}

// StatusError is returned for non-2xx responses from the reasoning
// endpoint, carrying the status code and any detail text from the body.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("reasoning service returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("reasoning service returned status %d", e.StatusCode)
}
