package config

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		configPath: filepath.Join(t.TempDir(), "config.json"),
		config:     DefaultConfig(),
	}
}

func TestLoadOnMissingFileKeepsDefaults(t *testing.T) {
	m := newTestManager(t)
	if err := m.Load(); err != nil {
		t.Fatalf("Load on a missing file should not error, got %v", err)
	}
	if m.Get().Planner.WPMMin != DefaultConfig().Planner.WPMMin {
		t.Error("expected defaults to survive a Load against a missing file")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	m := newTestManager(t)
	m.Get().Planner.WPMMin = 72.5
	m.Get().General.MonitorEnabled = true

	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	m2 := newTestManager(t)
	m2.configPath = m.configPath
	if err := m2.Load(); err != nil {
		t.Fatal(err)
	}
	if m2.Get().Planner.WPMMin != 72.5 {
		t.Errorf("got wpm_min %v, want 72.5", m2.Get().Planner.WPMMin)
	}
	if !m2.Get().General.MonitorEnabled {
		t.Error("expected monitor_enabled to round-trip as true")
	}
}

func TestSetReplacesConfigAndFiresCallback(t *testing.T) {
	m := newTestManager(t)
	called := false
	m.RegisterChangeCallback(func() { called = true })

	cfg := DefaultConfig()
	cfg.Planner.WPMMax = 99
	m.Set(cfg)

	if !called {
		t.Error("expected the change callback to fire on Set")
	}
	if m.Get().Planner.WPMMax != 99 {
		t.Errorf("got wpm_max %v, want 99", m.Get().Planner.WPMMax)
	}
}

func TestLoadFiresChangeCallback(t *testing.T) {
	m := newTestManager(t)
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	called := false
	m.RegisterChangeCallback(func() { called = true })
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("expected the change callback to fire on Load")
	}
}
