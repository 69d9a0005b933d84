package types

import (
	"encoding/json"
	"testing"
)

func TestFlexStringUnmarshal(t *testing.T) {
	type payload struct {
		Table FlexString `json:"tableNumber"`
	}

	cases := []struct {
		name string
		raw  string
		want FlexString
	}{
		{name: "string", raw: `{"tableNumber": "A5"}`, want: "A5"},
		{name: "integer", raw: `{"tableNumber": 12}`, want: "12"},
		{name: "null", raw: `{"tableNumber": null}`, want: ""},
		{name: "missing", raw: `{}`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got payload
			if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Table != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got.Table)
			}
		})
	}
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var f FlexString
	if err := json.Unmarshal([]byte(`{"a":1}`), &f); err == nil {
		t.Fatalf("expected object to be rejected")
	}
}

func TestFlexStringMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(FlexString("7"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"7"` {
		t.Fatalf("expected quoted value, got %s", out)
	}
}
