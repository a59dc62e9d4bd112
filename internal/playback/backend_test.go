package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"drafter/internal/plan"
)

type fakeBackend struct {
	waits     []time.Duration
	modifiers []plan.Action
	keys      []plan.Action
	failOn    plan.ActionType
	closed    bool
}

func (f *fakeBackend) SetModifiers(ctx context.Context, a plan.Action) error {
	if f.failOn == plan.ActionModifiers {
		return errors.New("modifiers failed")
	}
	f.modifiers = append(f.modifiers, a)
	return nil
}

func (f *fakeBackend) SetKey(ctx context.Context, a plan.Action) error {
	if f.failOn == plan.ActionKey {
		return errors.New("key failed")
	}
	f.keys = append(f.keys, a)
	return nil
}

func (f *fakeBackend) Wait(ctx context.Context, d time.Duration) error {
	if f.failOn == plan.ActionWait {
		return errors.New("wait failed")
	}
	f.waits = append(f.waits, d)
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func TestPlayDispatchesEachActionType(t *testing.T) {
	backend := &fakeBackend{}
	p := plan.Plan{Actions: []plan.Action{
		plan.Wait(10),
		plan.Modifiers(1, 0, 0, 0),
		plan.Key(30, plan.KeyPressed),
	}}

	var seen []int
	err := Play(context.Background(), backend, p, func(i int, a plan.Action) {
		seen = append(seen, i)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(backend.waits) != 1 || backend.waits[0] != 10*time.Millisecond {
		t.Errorf("got waits %v, want a single 10ms wait", backend.waits)
	}
	if len(backend.modifiers) != 1 {
		t.Errorf("got %d modifier calls, want 1", len(backend.modifiers))
	}
	if len(backend.keys) != 1 {
		t.Errorf("got %d key calls, want 1", len(backend.keys))
	}
	if len(seen) != 3 {
		t.Errorf("got %d onAction calls, want 3", len(seen))
	}
}

func TestPlayStopsOnBackendError(t *testing.T) {
	backend := &fakeBackend{failOn: plan.ActionKey}
	p := plan.Plan{Actions: []plan.Action{
		plan.Wait(5),
		plan.Key(30, plan.KeyPressed),
		plan.Wait(5),
	}}

	err := Play(context.Background(), backend, p, nil)
	if err == nil {
		t.Fatal("expected Play to propagate the backend error")
	}
	if len(backend.waits) != 1 {
		t.Errorf("expected the second Wait not to run after the key error, got %d waits", len(backend.waits))
	}
}

func TestPlayStopsOnCanceledContext(t *testing.T) {
	backend := &fakeBackend{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := plan.Plan{Actions: []plan.Action{
		plan.Wait(5),
		plan.Wait(5),
	}}

	err := Play(ctx, backend, p, nil)
	if err == nil {
		t.Fatal("expected Play to stop once the context is canceled")
	}
	if len(backend.waits) != 1 {
		t.Errorf("expected only the first action to run before the cancellation check, got %d waits", len(backend.waits))
	}
}
