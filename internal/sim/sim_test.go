package sim

import (
	"testing"

	"drafter/internal/keyboard"
	"drafter/internal/plan"
)

func keyPress(keycode uint32) plan.Action { return plan.Key(keycode, plan.KeyPressed) }
func keyRelease(keycode uint32) plan.Action { return plan.Key(keycode, plan.KeyReleased) }

func typeChar(keycode uint32, shift bool) []plan.Action {
	var out []plan.Action
	if shift {
		out = append(out, keyPress(keyboard.KeyLeftShift))
	}
	out = append(out, keyPress(keycode), keyRelease(keycode))
	if shift {
		out = append(out, keyRelease(keyboard.KeyLeftShift))
	}
	return out
}

func TestTypedTextPlainWord(t *testing.T) {
	var actions []plan.Action
	actions = append(actions, typeChar(keyboard.KeyH, false)...)
	actions = append(actions, typeChar(keyboard.KeyI, false)...)
	p := plan.Plan{Actions: actions}

	got, err := TypedText(p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestTypedTextShiftUppercase(t *testing.T) {
	actions := typeChar(keyboard.KeyH, true)
	p := plan.Plan{Actions: actions}

	got, err := TypedText(p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "H" {
		t.Errorf("got %q, want %q", got, "H")
	}
}

func TestTypedTextBackspaceAndDelete(t *testing.T) {
	var actions []plan.Action
	actions = append(actions, typeChar(keyboard.KeyH, false)...)
	actions = append(actions, typeChar(keyboard.KeyX, false)...)
	actions = append(actions, keyPress(keyboard.KeyBackspace), keyRelease(keyboard.KeyBackspace))
	actions = append(actions, typeChar(keyboard.KeyI, false)...)
	p := plan.Plan{Actions: actions}

	got, err := TypedText(p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestTypedTextCtrlLeftUnsupportedKeycode(t *testing.T) {
	actions := []plan.Action{
		keyPress(keyboard.KeyLeftCtrl),
		keyPress(keyboard.KeyA),
		keyRelease(keyboard.KeyA),
		keyRelease(keyboard.KeyLeftCtrl),
	}
	p := plan.Plan{Actions: actions}

	if _, err := TypedText(p); err == nil {
		t.Error("expected an error for ctrl+A, which this repo never emits")
	}
}

func TestComputeStats(t *testing.T) {
	p := plan.Plan{Actions: []plan.Action{
		plan.Wait(100),
		plan.Wait(50),
		plan.Modifiers(1, 0, 0, 0),
		keyPress(keyboard.KeyA),
		keyRelease(keyboard.KeyA),
	}}
	stats := ComputeStats(p)
	if stats.Actions != 5 || stats.KeyEvents != 2 || stats.ModifierUpdates != 1 || stats.TotalWaitMs != 150 {
		t.Errorf("got %+v, want {Actions:5 KeyEvents:2 ModifierUpdates:1 TotalWaitMs:150}", stats)
	}
}
