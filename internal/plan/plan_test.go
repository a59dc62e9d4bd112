package plan

import (
	"encoding/json"
	"testing"
)

func TestActionJSONRoundTrip(t *testing.T) {
	actions := []Action{
		Wait(150),
		Modifiers(1, 0, 0, 0),
		Key(30, KeyPressed),
		Key(30, KeyReleased),
	}

	for _, a := range actions {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("Marshal(%+v): %v", a, err)
		}
		var got Action
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != a {
			t.Errorf("round trip: got %+v, want %+v", got, a)
		}
	}
}

func TestActionMarshalIncludesTypeTag(t *testing.T) {
	data, err := json.Marshal(Wait(10))
	if err != nil {
		t.Fatal(err)
	}
	var head struct {
		Type ActionType `json:"type"`
		Ms   uint64      `json:"ms"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		t.Fatal(err)
	}
	if head.Type != ActionWait || head.Ms != 10 {
		t.Errorf("got %+v, want {wait 10}", head)
	}
}

func TestUnmarshalUnknownActionType(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"bogus"}`), &a)
	if err == nil {
		t.Error("expected an error for an unknown action type")
	}
}

func TestPlanJSONRoundTrip(t *testing.T) {
	p := Plan{
		Version: 1,
		Config:  Config{Layout: "us", KeymapFormat: 1, Keymap: "xkb", WPMTarget: 55.0},
		Actions: []Action{Wait(10), Key(30, KeyPressed)},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var got Plan
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Version != p.Version || got.Config != p.Config || len(got.Actions) != len(p.Actions) {
		t.Errorf("got %+v, want %+v", got, p)
	}
}
