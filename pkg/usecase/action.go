package usecase

import (
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// NormalizeActions converts raw action descriptors, whether supplied by
// the remote reasoning service or generated locally, into canonical
// SuggestedActions. It never fails: missing fields are filled with
// generated or default values, and out-of-taxonomy types are coerced to
// "general" so downstream routing only ever sees the closed set.
func NormalizeActions(raw []model.RawAction) []model.SuggestedAction {
	actions := make([]model.SuggestedAction, 0, len(raw))
	for _, r := range raw {
		actions = append(actions, normalizeAction(r))
	}
	return actions
}

func normalizeAction(r model.RawAction) model.SuggestedAction {
	// Plain string descriptor
	if r.Text != "" {
		return model.SuggestedAction{
			ID:          types.NewActionID(),
			Type:        types.ActionGeneral,
			Label:       r.Text,
			Description: "Quick action: " + r.Text,
		}
	}

	action := model.SuggestedAction{
		ID:          types.ActionID(r.ID),
		Label:       r.Label,
		Description: r.Description,
	}

	if action.ID == "" {
		action.ID = types.NewActionID()
	}

	// "action" is an alternate field name: some responses use it for the
	// action type, others for the label text
	actionType := types.ActionType(r.Type)
	if !actionType.IsValid() && types.ActionType(r.Action).IsValid() {
		actionType = types.ActionType(r.Action)
	}
	if !actionType.IsValid() {
		actionType = types.ActionGeneral
	}
	action.Type = actionType

	if action.Label == "" && !types.ActionType(r.Action).IsValid() {
		action.Label = r.Action
	}

	if action.Description == "" && action.Label != "" {
		action.Description = "Quick action: " + action.Label
	}

	return action
}
