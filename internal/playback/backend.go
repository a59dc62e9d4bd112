// Package playback defines the contract a compositor-facing backend must
// satisfy to replay a plan.Plan, plus one concrete Linux implementation.
//
// spec.md frames the Wayland virtual-keyboard-unstable-v1 client and the
// X11 XTEST client as external collaborators; no Wayland-protocol or
// X11-protocol Go bindings exist anywhere in the retrieval pack to ground
// either one on. Backend is the contract both would satisfy; the one
// concrete backend actually provided here talks to a bare Linux
// evdev/uinput device instead, grounded on the teacher's x/sys dependency
// and its InputInjector interface shape (internal/input).
package playback

import (
	"context"
	"time"

	"drafter/internal/plan"
)

// Backend accepts a decoded key or modifier event and a wait duration, in
// the order a Plan's actions occur, and reproduces them against whatever
// input surface it controls.
type Backend interface {
	// SetModifiers applies a Modifiers action.
	SetModifiers(ctx context.Context, a plan.Action) error
	// SetKey applies a Key action.
	SetKey(ctx context.Context, a plan.Action) error
	// Wait sleeps for the duration a Wait action specifies, or returns
	// early if ctx is canceled.
	Wait(ctx context.Context, d time.Duration) error
	// Close releases any resources the backend holds open.
	Close() error
}

// Play walks p's action stream against backend in order, calling onAction
// (if non-nil) after each action is applied — the hook internal/monitor
// uses to broadcast a trace.
func Play(ctx context.Context, backend Backend, p plan.Plan, onAction func(index int, a plan.Action)) error {
	for i, a := range p.Actions {
		var err error
		switch a.Type {
		case plan.ActionWait:
			err = backend.Wait(ctx, time.Duration(a.Ms)*time.Millisecond)
		case plan.ActionModifiers:
			err = backend.SetModifiers(ctx, a)
		case plan.ActionKey:
			err = backend.SetKey(ctx, a)
		}
		if err != nil {
			return err
		}
		if onAction != nil {
			onAction(i, a)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
