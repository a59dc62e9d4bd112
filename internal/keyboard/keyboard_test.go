package keyboard

import (
	"math/rand"
	"testing"
)

func TestKeystrokeForOutputCharAllowlist(t *testing.T) {
	stroke, ok := KeystrokeForOutputChar('A')
	if !ok {
		t.Fatal("expected 'A' to be supported")
	}
	if stroke.Keycode != KeyA || !stroke.Shift {
		t.Errorf("got %+v, want {KeyA true}", stroke)
	}

	if _, ok := KeystrokeForOutputChar('\t'); ok {
		t.Error("expected tab to be unsupported")
	}
}

func TestKeystrokeForOutputCharSmartQuotes(t *testing.T) {
	stroke, ok := KeystrokeForOutputChar('’')
	if !ok {
		t.Fatal("expected right single quote to be supported")
	}
	want, _ := CharToKeystroke('\'')
	if stroke != want {
		t.Errorf("got %+v, want %+v", stroke, want)
	}
}

func TestFindFirstUnsupportedChar(t *testing.T) {
	idx, c, ok := FindFirstUnsupportedChar("hello\tworld")
	if !ok {
		t.Fatal("expected an unsupported character")
	}
	if idx != 5 || c != '\t' {
		t.Errorf("got (%d, %q), want (5, '\\t')", idx, c)
	}

	if _, _, ok := FindFirstUnsupportedChar("hello world"); ok {
		t.Error("expected no unsupported character")
	}
}

func TestAllowedKeycodesCoversEveryMappedKeystroke(t *testing.T) {
	for c := rune(0x20); c <= 0x7E; c++ {
		stroke, ok := CharToKeystroke(c)
		if !ok {
			continue
		}
		if !AllowedKeycodes[stroke.Keycode] {
			t.Errorf("keycode %d for %q not in AllowedKeycodes", stroke.Keycode, c)
		}
	}
}

func TestQwertyAdjacentCharPreservesCase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, ok := QwertyAdjacentChar('S', rng)
	if !ok {
		t.Fatal("expected 's' to have neighbors")
	}
	if c < 'A' || c > 'Z' {
		t.Errorf("got %q, want an uppercase letter", c)
	}
}

func TestQwertyAdjacentCharNoNeighbors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := QwertyAdjacentChar('!', rng); ok {
		t.Error("expected '!' to have no defined neighbors")
	}
}
