package utils

import (
	"encoding/json"
	"strings"
)

// TrimmedString drops surrounding whitespace while decoding, so length rules
// in binding tags see the value that gets stored.
type TrimmedString string

func (s *TrimmedString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = TrimmedString(strings.TrimSpace(raw))
	return nil
}

func (s TrimmedString) String() string {
	return string(s)
}
