package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts JSON strings or numbers and keeps the textual form.
// The restaurant backend emits ids and table numbers in both shapes.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", string(trimmed))
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String implements fmt.Stringer.
func (f FlexString) String() string {
	return string(f)
}

// IsZero reports whether the value is empty.
func (f FlexString) IsZero() bool {
	return f == ""
}
