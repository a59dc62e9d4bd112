package hotkey

import (
	"testing"
	"time"
)

func TestRegisterEmptyStringIsANoop(t *testing.T) {
	m := NewManager()
	idx, err := m.Register("", func() {})
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Errorf("got index %d, want 0", idx)
	}
	if len(m.hotkeys) != 0 {
		t.Errorf("expected no hotkey to be registered, got %d", len(m.hotkeys))
	}
}

func TestUpdateStateTriggersMatchingHotkey(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 1)
	if _, err := m.Register("Ctrl+Alt+Shift+Esc", func() {
		fired <- struct{}{}
	}); err != nil {
		t.Fatal(err)
	}

	m.UpdateState("CTRL", true)
	m.UpdateState("ALT", true)
	m.UpdateState("SHIFT", true)
	m.UpdateState("ESC", true)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Error("expected the hotkey callback to fire once all parts are down")
	}
}

func TestUpdateStateDoesNotTriggerOnPartialMatch(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 1)
	if _, err := m.Register("Ctrl+Alt+Shift+Esc", func() {
		fired <- struct{}{}
	}); err != nil {
		t.Fatal(err)
	}

	m.UpdateState("CTRL", true)
	m.UpdateState("ALT", true)

	select {
	case <-fired:
		t.Error("expected the hotkey callback not to fire on a partial match")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdateStateKeyUpRemovesFromState(t *testing.T) {
	m := NewManager()
	m.UpdateState("CTRL", true)
	m.UpdateState("CTRL", false)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentState["CTRL"] {
		t.Error("expected CTRL to be removed from state after key up")
	}
}

func TestClearRemovesAllHotkeys(t *testing.T) {
	m := NewManager()
	if _, err := m.Register("Ctrl+1", func() {}); err != nil {
		t.Fatal(err)
	}
	m.Clear()
	if len(m.hotkeys) != 0 {
		t.Errorf("expected 0 hotkeys after Clear, got %d", len(m.hotkeys))
	}
}
