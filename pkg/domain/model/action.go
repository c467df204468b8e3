package model

import "github.com/tailkeep-lab/tailkeep/pkg/domain/types"

// SuggestedAction is the canonical follow-up action shape. Actions are
// value objects; never mutated after creation.
type SuggestedAction struct {
	ID          types.ActionID   `json:"id"`
	Type        types.ActionType `json:"type"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
}

// NewSuggestedAction creates an action with a generated ID
func NewSuggestedAction(actionType types.ActionType, label, description string) SuggestedAction {
	return SuggestedAction{
		ID:          types.NewActionID(),
		Type:        actionType,
		Label:       label,
		Description: description,
	}
}

// AssistantResponse is what the caller receives from SendMessage. The
// message text is also materialized as the assistant-authored entry
// appended to conversation history.
type AssistantResponse struct {
	Message          string            `json:"message"`
	SuggestedActions []SuggestedAction `json:"suggestedActions"`
}
