package model

import "encoding/json"

// StringList is a []string that tolerates upstream shape drift: older
// clients send a single string where newer ones send an array. Unknown
// shapes decode to an empty list instead of failing.
type StringList []string

// UnmarshalJSON accepts either a JSON array of strings or a single string
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = []string{single}
		return nil
	}

	*s = nil
	return nil
}
