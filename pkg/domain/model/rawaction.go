package model

import "encoding/json"

// RawAction is an action descriptor as it arrives from the remote
// reasoning service: either a bare string or an object with any subset
// of the known fields. Malformed entries decode to an empty descriptor
// rather than failing; the normalizer coerces whatever is present.
type RawAction struct {
	Text string // set when the descriptor was a plain string

	ID          string
	Action      string
	Type        string
	Label       string
	Description string
}

// UnmarshalJSON accepts either a JSON string or a partial object
func (r *RawAction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RawAction{Text: s}
		return nil
	}

	var obj struct {
		ID          string `json:"id"`
		Action      string `json:"action"`
		Type        string `json:"type"`
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*r = RawAction{
			ID:          obj.ID,
			Action:      obj.Action,
			Type:        obj.Type,
			Label:       obj.Label,
			Description: obj.Description,
		}
		return nil
	}

	*r = RawAction{}
	return nil
}

// RawActionFromString builds a descriptor for a locally generated plain
// string action
func RawActionFromString(s string) RawAction {
	return RawAction{Text: s}
}
