package editor

import "testing"

func TestInsertAndBackspace(t *testing.T) {
	m := New()
	for _, c := range "helo" {
		m.Insert(c)
	}
	m.Cursor = 3
	m.Insert('l')
	if m.String() != "hello" {
		t.Fatalf("got %q, want %q", m.String(), "hello")
	}

	m.Backspace()
	if m.String() != "helo" {
		t.Errorf("got %q, want %q", m.String(), "helo")
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	m := New()
	m.Insert('a')
	m.Cursor = 0
	m.Backspace()
	if m.String() != "a" {
		t.Errorf("got %q, want %q", m.String(), "a")
	}
}

func TestDeleteAtEndIsNoop(t *testing.T) {
	m := New()
	m.Insert('a')
	m.Delete()
	if m.String() != "a" {
		t.Errorf("got %q, want %q", m.String(), "a")
	}
}

func TestMoveLeftRightClamp(t *testing.T) {
	m := New()
	m.MoveLeft()
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	m.Insert('a')
	m.MoveRight()
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestIsWordChar(t *testing.T) {
	cases := map[rune]bool{
		'a': true, 'Z': true, '5': true, '\'': true, '’': true,
		' ': false, '.': false, '-': false,
	}
	for c, want := range cases {
		if got := IsWordChar(c); got != want {
			t.Errorf("IsWordChar(%q) = %v, want %v", c, got, want)
		}
	}
}

func TestMoveWordLeftRight(t *testing.T) {
	m := New()
	for _, c := range "one two" {
		m.Insert(c)
	}
	m.MoveWordLeft()
	if m.Cursor != 4 {
		t.Errorf("cursor after MoveWordLeft = %d, want 4", m.Cursor)
	}
	m.MoveWordRight()
	if m.Cursor != 7 {
		t.Errorf("cursor after MoveWordRight = %d, want 7", m.Cursor)
	}
}
