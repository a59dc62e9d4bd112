package planner

import (
	"math/rand"

	"drafter/internal/keyboard"
	"drafter/internal/plan"
)

func rngIntn(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func rngU64(rng *rand.Rand, lo, hi uint64) uint64 {
	if hi <= lo {
		return lo
	}
	return lo + uint64(rng.Int63n(int64(hi-lo+1)))
}

func rngBool(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// actionBuilder accumulates a Plan's action stream and tracks the shift/ctrl
// modifier state needed to decide whether a Modifiers action must be
// emitted before the next key event.
type actionBuilder struct {
	actions   []plan.Action
	shiftDown bool
	ctrlDown  bool
	shiftMask uint32
	ctrlMask  uint32
}

func newActionBuilder(shiftMask, ctrlMask uint32) *actionBuilder {
	return &actionBuilder{shiftMask: shiftMask, ctrlMask: ctrlMask}
}

func (b *actionBuilder) wait(ms uint64) {
	if ms == 0 {
		return
	}
	b.actions = append(b.actions, plan.Wait(ms))
}

func (b *actionBuilder) key(keycode uint32, state plan.KeyState) {
	b.actions = append(b.actions, plan.Key(keycode, state))
}

func (b *actionBuilder) setModifiers() {
	var depressed uint32
	if b.shiftDown {
		depressed |= b.shiftMask
	}
	if b.ctrlDown {
		depressed |= b.ctrlMask
	}
	b.actions = append(b.actions, plan.Modifiers(depressed, 0, 0, 0))
}

func (b *actionBuilder) setShift(down bool, rng *rand.Rand) {
	if b.shiftDown == down {
		return
	}
	if down {
		b.key(keyboard.KeyLeftShift, plan.KeyPressed)
		b.wait(rngU64(rng, 5, 20))
		b.shiftDown = true
		b.setModifiers()
		b.wait(rngU64(rng, 0, 12))
	} else {
		b.key(keyboard.KeyLeftShift, plan.KeyReleased)
		b.wait(rngU64(rng, 5, 20))
		b.shiftDown = false
		b.setModifiers()
		b.wait(rngU64(rng, 0, 12))
	}
}

func (b *actionBuilder) setCtrl(down bool, rng *rand.Rand) {
	if b.ctrlDown == down {
		return
	}
	if down {
		b.key(keyboard.KeyLeftCtrl, plan.KeyPressed)
		b.wait(rngU64(rng, 5, 20))
		b.ctrlDown = true
		b.setModifiers()
		b.wait(rngU64(rng, 0, 12))
	} else {
		b.key(keyboard.KeyLeftCtrl, plan.KeyReleased)
		b.wait(rngU64(rng, 5, 20))
		b.ctrlDown = false
		b.setModifiers()
		b.wait(rngU64(rng, 0, 12))
	}
}

func (b *actionBuilder) pressKey(keycode uint32, rng *rand.Rand) {
	holdMs := rngU64(rng, 18, 70)
	b.key(keycode, plan.KeyPressed)
	b.wait(holdMs)
	b.key(keycode, plan.KeyReleased)
}

func (b *actionBuilder) typeChar(stroke keyboard.Keystroke, rng *rand.Rand) {
	b.setCtrl(false, rng)
	b.setShift(stroke.Shift, rng)
	b.pressKey(stroke.Keycode, rng)
}

func (b *actionBuilder) navLeft(rng *rand.Rand) {
	b.setCtrl(false, rng)
	b.setShift(false, rng)
	b.pressKey(keyboard.KeyLeft, rng)
}

func (b *actionBuilder) navRight(rng *rand.Rand) {
	b.setCtrl(false, rng)
	b.setShift(false, rng)
	b.pressKey(keyboard.KeyRight, rng)
}

func (b *actionBuilder) navWordLeft(rng *rand.Rand) {
	b.setCtrl(true, rng)
	b.setShift(false, rng)
	b.pressKey(keyboard.KeyLeft, rng)
}

func (b *actionBuilder) navWordRight(rng *rand.Rand) {
	b.setCtrl(true, rng)
	b.setShift(false, rng)
	b.pressKey(keyboard.KeyRight, rng)
}

func (b *actionBuilder) backspace(rng *rand.Rand) {
	b.setCtrl(false, rng)
	b.setShift(false, rng)
	b.pressKey(keyboard.KeyBackspace, rng)
}
