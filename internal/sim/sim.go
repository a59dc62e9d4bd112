// Package sim re-simulates a Plan's action stream against a fresh editor
// model, independent of the planner that produced it. It is the
// verification path spec.md's "Draft Verifier" describes, and also backs a
// plan's summary statistics.
package sim

import (
	"fmt"

	"drafter/internal/editor"
	"drafter/internal/keyboard"
	"drafter/internal/plan"
)

// Stats is a plan's summary counters, printed by the CLI after planning.
type Stats struct {
	Actions         int
	KeyEvents       int
	ModifierUpdates int
	TotalWaitMs     uint64
}

// ComputeStats tallies a plan's action stream.
func ComputeStats(p plan.Plan) Stats {
	out := Stats{Actions: len(p.Actions)}
	for _, a := range p.Actions {
		switch a.Type {
		case plan.ActionWait:
			out.TotalWaitMs += a.Ms
		case plan.ActionModifiers:
			out.ModifierUpdates++
		case plan.ActionKey:
			out.KeyEvents++
		}
	}
	return out
}

func keystrokeMap() map[[2]uint32]rune {
	out := make(map[[2]uint32]rune)
	add := func(c rune) {
		stroke, ok := keyboard.CharToKeystroke(c)
		if !ok {
			return
		}
		shift := uint32(0)
		if stroke.Shift {
			shift = 1
		}
		out[[2]uint32{stroke.Keycode, shift}] = c
	}
	add('\n')
	add(' ')
	for b := rune(33); b <= 126; b++ {
		add(b)
	}
	return out
}

// TypedText replays a plan's Key actions against a fresh editor model and
// returns the resulting buffer contents. It does not model editor-specific
// behaviors such as smart-quote auto-substitution: it is intended for
// verification and tests, working purely off keycodes.
func TypedText(p plan.Plan) (string, error) {
	ed := editor.New()
	shiftDown := false
	ctrlDown := false
	strokes := keystrokeMap()

	for _, a := range p.Actions {
		if a.Type != plan.ActionKey {
			continue
		}

		switch {
		case (a.Keycode == keyboard.KeyLeftShift || a.Keycode == keyboard.KeyRightShift) && a.State == plan.KeyPressed:
			shiftDown = true
			continue
		case (a.Keycode == keyboard.KeyLeftShift || a.Keycode == keyboard.KeyRightShift) && a.State == plan.KeyReleased:
			shiftDown = false
			continue
		case a.Keycode == keyboard.KeyLeftCtrl && a.State == plan.KeyPressed:
			ctrlDown = true
			continue
		case a.Keycode == keyboard.KeyLeftCtrl && a.State == plan.KeyReleased:
			ctrlDown = false
			continue
		case a.State == plan.KeyReleased:
			continue
		}

		switch a.Keycode {
		case keyboard.KeyLeft:
			if ctrlDown {
				ed.MoveWordLeft()
			} else {
				ed.MoveLeft()
			}
		case keyboard.KeyRight:
			if ctrlDown {
				ed.MoveWordRight()
			} else {
				ed.MoveRight()
			}
		case keyboard.KeyBackspace:
			ed.Backspace()
		case keyboard.KeyDelete:
			ed.Delete()
		default:
			if ctrlDown {
				return "", fmt.Errorf("sim: unsupported ctrl+keycode %d", a.Keycode)
			}
			shift := uint32(0)
			if shiftDown {
				shift = 1
			}
			c, ok := strokes[[2]uint32{a.Keycode, shift}]
			if !ok {
				return "", fmt.Errorf("sim: unsupported keycode %d (shift=%v)", a.Keycode, shiftDown)
			}
			ed.Insert(c)
		}
	}

	return ed.String(), nil
}
