package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestIsEnabledFalseInitially(t *testing.T) {
	withTempHome(t)
	if IsEnabled() {
		t.Error("expected IsEnabled to be false before Enable is ever called")
	}
}

func TestEnableWritesDesktopEntry(t *testing.T) {
	home := withTempHome(t)
	if err := Enable(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(home, ".config", "autostart", "drafter.desktop")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !IsEnabled() {
		t.Error("expected IsEnabled to be true after Enable")
	}
	content := string(data)
	if !strings.Contains(content, "Exec=") || !strings.Contains(content, "--tray") {
		t.Errorf("desktop entry missing an Exec line with --tray: %q", content)
	}
}

func TestDisableRemovesDesktopEntry(t *testing.T) {
	withTempHome(t)
	if err := Enable(); err != nil {
		t.Fatal(err)
	}
	if err := Disable(); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() {
		t.Error("expected IsEnabled to be false after Disable")
	}
}

func TestDisableWithoutEnableIsNotAnError(t *testing.T) {
	withTempHome(t)
	if err := Disable(); err != nil {
		t.Errorf("expected Disable on a never-enabled entry to be a no-op, got %v", err)
	}
}
