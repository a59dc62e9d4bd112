//go:build linux

package playback

import (
	"context"
	"fmt"
	"os"
	"time"
	"unsafe"

	"drafter/internal/keyboard"
	"drafter/internal/plan"

	"golang.org/x/sys/unix"
)

// ioctl request numbers from linux/uinput.h. golang.org/x/sys/unix does not
// export these (they are device-driver specific, not general syscall
// numbers), so they are reproduced here the way any Go uinput client must.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn = 0x00
	evKey = 0x01

	synReport = 0

	busUSB           = 0x03
	uinputMaxNameLen = 80
	absCnt           = 64
)

type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [uinputMaxNameLen]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [absCnt]int32
	Absmin       [absCnt]int32
	Absfuzz      [absCnt]int32
	Absflat      [absCnt]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// UinputBackend drives a virtual keyboard through /dev/uinput ioctls,
// standing in for a real Wayland virtual-keyboard-unstable-v1 or X11 XTEST
// client on a bare evdev session.
type UinputBackend struct {
	fd int
}

// NewUinputBackend opens /dev/uinput, registers the allowlisted keycodes,
// and creates the virtual device. The caller must hold permission to open
// /dev/uinput (typically membership in the "input" group or root).
func NewUinputBackend() (Backend, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("playback: open /dev/uinput: %w", err)
	}
	fd := int(f.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		f.Close()
		return nil, fmt.Errorf("playback: UI_SET_EVBIT(EV_KEY): %w", err)
	}

	for code := range keyboard.AllowedKeycodes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			f.Close()
			return nil, fmt.Errorf("playback: UI_SET_KEYBIT(%d): %w", code, err)
		}
	}
	// Left Ctrl/Shift may not appear in AllowedKeycodes' iteration if the
	// caller trimmed it, but the planner always emits them, so register
	// them unconditionally too.
	for _, code := range []uint32{keyboard.KeyLeftCtrl, keyboard.KeyLeftShift, keyboard.KeyRightShift} {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			f.Close()
			return nil, fmt.Errorf("playback: UI_SET_KEYBIT(%d): %w", code, err)
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], "drafter-virtual-keyboard")
	dev.ID = inputID{BusType: busUSB, Vendor: 0x1209, Product: 0x0001, Version: 1}

	if _, _, errno := unix.Syscall(unix.SYS_WRITE, uintptr(fd), uintptr(unsafe.Pointer(&dev)), unsafe.Sizeof(dev)); errno != 0 {
		f.Close()
		return nil, fmt.Errorf("playback: write uinput_user_dev: %w", errno)
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(uiDevCreate), 0); errno != 0 {
		f.Close()
		return nil, fmt.Errorf("playback: UI_DEV_CREATE: %w", errno)
	}

	// Give the kernel/compositor a moment to enumerate the new device.
	time.Sleep(200 * time.Millisecond)

	return &UinputBackend{fd: fd}, nil
}

func (b *UinputBackend) writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	_, _, errno := unix.Syscall(unix.SYS_WRITE, uintptr(b.fd), uintptr(unsafe.Pointer(&ev)), unsafe.Sizeof(ev))
	if errno != 0 {
		return fmt.Errorf("playback: write input_event: %w", errno)
	}
	return nil
}

func (b *UinputBackend) sync() error {
	return b.writeEvent(evSyn, synReport, 0)
}

// SetModifiers is a no-op for uinput: modifier state is a consequence of
// the discrete key press/release events already written, not a separate
// wire message the way Wayland's set_modifiers request works.
func (b *UinputBackend) SetModifiers(ctx context.Context, a plan.Action) error {
	return nil
}

// SetKey writes a single key press or release and flushes it with a sync
// report.
func (b *UinputBackend) SetKey(ctx context.Context, a plan.Action) error {
	value := int32(0)
	if a.State == plan.KeyPressed {
		value = 1
	}
	if err := b.writeEvent(evKey, uint16(a.Keycode), value); err != nil {
		return err
	}
	return b.sync()
}

// Wait sleeps for d, or returns early if ctx is canceled.
func (b *UinputBackend) Wait(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close destroys the virtual device and releases the file descriptor.
func (b *UinputBackend) Close() error {
	unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), uintptr(uiDevDestroy), 0)
	return unix.Close(b.fd)
}
