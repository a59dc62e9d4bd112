// Package osutils wraps the handful of Linux session utilities drafter
// shells out to: keeping the screen from locking mid-playback and
// checking whether the calling user can actually open /dev/uinput.
package osutils

import (
	"fmt"
	"os"
	"os/exec"
)

// InhibitSleep holds a running systemd-inhibit process that prevents the
// session from idling or the screen from locking. Call Release when
// playback finishes or is aborted.
type InhibitSleep struct {
	cmd *exec.Cmd
}

// Inhibit starts a systemd-inhibit lock for the duration of a plan
// playback, so a long draft does not get interrupted by the screen
// locking partway through.
func Inhibit(reason string) (*InhibitSleep, error) {
	cmd := exec.Command("systemd-inhibit",
		"--what=idle:sleep",
		"--who=drafter",
		"--why="+reason,
		"--mode=block",
		"sleep", "infinity",
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("osutils: systemd-inhibit: %w", err)
	}
	return &InhibitSleep{cmd: cmd}, nil
}

// Release ends the inhibit lock, allowing the session to idle normally
// again.
func (i *InhibitSleep) Release() error {
	if i == nil || i.cmd.Process == nil {
		return nil
	}
	return i.cmd.Process.Kill()
}

// CanOpenUinput reports whether the current process can open /dev/uinput
// for writing, without actually registering a virtual device. Used to
// give a clear error before playback starts instead of failing deep
// inside the backend.
func CanOpenUinput() error {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("osutils: /dev/uinput not writable (join the \"input\" group or run as root): %w", err)
	}
	return f.Close()
}
