// Package plan holds the wire model for a generated typing plan: a flat
// stream of low-level input actions plus the keymap/layout metadata a
// playback backend needs to interpret keycodes.
package plan

import (
	"encoding/json"
	"fmt"
)

// KeyState is whether a key event is a press or a release.
type KeyState string

const (
	KeyPressed  KeyState = "pressed"
	KeyReleased KeyState = "released"
)

// ActionType discriminates the Action union over the wire, mirroring the
// teacher's protocol.Message Type field.
type ActionType string

const (
	ActionWait      ActionType = "wait"
	ActionModifiers ActionType = "modifiers"
	ActionKey       ActionType = "key"
)

// Action is one entry in a Plan's action stream. Exactly one of the
// type-specific field groups is populated, selected by Type.
type Action struct {
	Type ActionType

	// ActionWait
	Ms uint64

	// ActionModifiers
	ModsDepressed uint32
	ModsLatched   uint32
	ModsLocked    uint32
	Group         uint32

	// ActionKey
	Keycode uint32
	State   KeyState
}

// Wait returns a Wait action.
func Wait(ms uint64) Action {
	return Action{Type: ActionWait, Ms: ms}
}

// Modifiers returns a Modifiers action.
func Modifiers(depressed, latched, locked, group uint32) Action {
	return Action{
		Type:          ActionModifiers,
		ModsDepressed: depressed,
		ModsLatched:   latched,
		ModsLocked:    locked,
		Group:         group,
	}
}

// Key returns a Key action.
func Key(keycode uint32, state KeyState) Action {
	return Action{Type: ActionKey, Keycode: keycode, State: state}
}

type actionWait struct {
	Type ActionType `json:"type"`
	Ms   uint64     `json:"ms"`
}

type actionModifiers struct {
	Type          ActionType `json:"type"`
	ModsDepressed uint32     `json:"mods_depressed"`
	ModsLatched   uint32     `json:"mods_latched"`
	ModsLocked    uint32     `json:"mods_locked"`
	Group         uint32     `json:"group"`
}

type actionKey struct {
	Type    ActionType `json:"type"`
	Keycode uint32     `json:"keycode"`
	State   KeyState   `json:"state"`
}

// MarshalJSON renders the action as a serde-style tagged union.
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case ActionWait:
		return json.Marshal(actionWait{Type: a.Type, Ms: a.Ms})
	case ActionModifiers:
		return json.Marshal(actionModifiers{
			Type:          a.Type,
			ModsDepressed: a.ModsDepressed,
			ModsLatched:   a.ModsLatched,
			ModsLocked:    a.ModsLocked,
			Group:         a.Group,
		})
	case ActionKey:
		return json.Marshal(actionKey{Type: a.Type, Keycode: a.Keycode, State: a.State})
	default:
		return nil, fmt.Errorf("plan: unknown action type %q", a.Type)
	}
}

// UnmarshalJSON parses the tagged union back into an Action.
func (a *Action) UnmarshalJSON(data []byte) error {
	var head struct {
		Type ActionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("plan: decoding action type: %w", err)
	}

	switch head.Type {
	case ActionWait:
		var v actionWait
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("plan: decoding wait action: %w", err)
		}
		*a = Action{Type: ActionWait, Ms: v.Ms}
	case ActionModifiers:
		var v actionModifiers
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("plan: decoding modifiers action: %w", err)
		}
		*a = Action{
			Type:          ActionModifiers,
			ModsDepressed: v.ModsDepressed,
			ModsLatched:   v.ModsLatched,
			ModsLocked:    v.ModsLocked,
			Group:         v.Group,
		}
	case ActionKey:
		var v actionKey
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("plan: decoding key action: %w", err)
		}
		*a = Action{Type: ActionKey, Keycode: v.Keycode, State: v.State}
	default:
		return fmt.Errorf("plan: unknown action type %q", head.Type)
	}
	return nil
}

// Config carries the keymap/layout metadata a playback backend needs
// alongside the action stream.
type Config struct {
	Layout       string  `json:"layout"`
	KeymapFormat uint32  `json:"keymap_format"`
	Keymap       string  `json:"keymap"`
	WPMTarget    float64 `json:"wpm_target"`
}

// Plan is a complete, self-contained typing plan.
type Plan struct {
	Version int      `json:"version"`
	Config  Config   `json:"config"`
	Actions []Action `json:"actions"`
}
