// Package keymap supplies the XKB keymap payload a playback backend hands
// to a compositor alongside a Plan, plus the modifier-mask layout the
// planner needs to build Modifiers actions.
//
// Generating a real XKB keymap string requires libxkbcommon (the original
// implementation shells out to it via cgo); no xkbcommon or XKB-generation
// binding exists anywhere in the retrieval pack to ground a pure-Go
// generator on. Rather than fabricate one, the payload is embedded as a
// static asset the same way the teacher embeds binary assets
// (internal/embedded), and the returned Info always describes the
// "us"/pc105 layout the planner is hard-wired to type against.
package keymap

import (
	_ "embed"
	"fmt"
)

// FormatXKBV1 mirrors the original's KEYMAP_FORMAT_XKB_V1 constant: the
// wire value a Wayland virtual-keyboard client would pass as keymap_format.
const FormatXKBV1 uint32 = 1

//go:embed us_qwerty.xkb
var usQwertyKeymap string

// Info describes a compiled keymap: the string payload a compositor needs
// plus the modifier bit positions the planner encodes into Modifiers
// actions.
type Info struct {
	Layout       string
	KeymapFormat uint32
	Keymap       string
	ShiftMask    uint32
	CtrlMask     uint32
}

// bit positions of the Shift and Control modifiers in the embedded
// us/pc105 XKB keymap, matching what libxkbcommon's mod_get_index would
// report for that keymap.
const (
	shiftModIndex = 0
	ctrlModIndex  = 2
)

// USQwerty returns the fixed keymap the planner types against.
func USQwerty() (Info, error) {
	if usQwertyKeymap == "" {
		return Info{}, fmt.Errorf("keymap: embedded us_qwerty keymap is empty")
	}
	return Info{
		Layout:       "us",
		KeymapFormat: FormatXKBV1,
		Keymap:       usQwertyKeymap,
		ShiftMask:    1 << shiftModIndex,
		CtrlMask:     1 << ctrlModIndex,
	}, nil
}
