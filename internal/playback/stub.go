//go:build !linux

package playback

import (
	"context"
	"fmt"
	"time"

	"drafter/internal/plan"
)

// unsupportedBackend reports an error for every key and modifier call
// (Wait still sleeps and Close is a no-op), matching the
// teacher's stub Injector pattern (internal/input/inject_stub.go) for
// platforms with no wired input-injection implementation.
type unsupportedBackend struct{}

// NewUinputBackend is unavailable outside Linux.
func NewUinputBackend() (Backend, error) {
	return nil, fmt.Errorf("playback: uinput backend not supported on this platform")
}

func (unsupportedBackend) SetModifiers(context.Context, plan.Action) error {
	return fmt.Errorf("playback: input injection not supported on this platform")
}

func (unsupportedBackend) SetKey(context.Context, plan.Action) error {
	return fmt.Errorf("playback: input injection not supported on this platform")
}

func (unsupportedBackend) Wait(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (unsupportedBackend) Close() error { return nil }
