// Package editor implements the minimal linear buffer/cursor model the
// planner simulates against while it builds a plan, and that the verifier
// re-simulates fresh against the finished action stream.
package editor

import "drafter/internal/wordnav"

// IsWordChar classifies a rune as part of a word for the purposes of Ctrl
// word-navigation and typo/variant selection: ASCII letters/digits plus an
// apostrophe (ASCII or the Unicode right single quote), matching the
// planner's own notion of a Word token.
func IsWordChar(c rune) bool {
	isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	return isAlnum || c == '\'' || c == '’'
}

// Model is the simulated editor buffer and cursor.
type Model struct {
	Buf    []rune
	Cursor int
}

// New returns an empty editor model.
func New() *Model {
	return &Model{}
}

// Insert inserts c at the cursor and advances the cursor past it.
func (m *Model) Insert(c rune) {
	m.Buf = append(m.Buf, 0)
	copy(m.Buf[m.Cursor+1:], m.Buf[m.Cursor:])
	m.Buf[m.Cursor] = c
	m.Cursor++
}

// Backspace deletes the character before the cursor, if any.
func (m *Model) Backspace() {
	if m.Cursor == 0 {
		return
	}
	m.Cursor--
	m.Buf = append(m.Buf[:m.Cursor], m.Buf[m.Cursor+1:]...)
}

// Delete deletes the character at the cursor, if any.
func (m *Model) Delete() {
	if m.Cursor >= len(m.Buf) {
		return
	}
	m.Buf = append(m.Buf[:m.Cursor], m.Buf[m.Cursor+1:]...)
}

// MoveLeft moves the cursor one position left, clamped to the buffer start.
func (m *Model) MoveLeft() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// MoveRight moves the cursor one position right, clamped to the buffer end.
func (m *Model) MoveRight() {
	if m.Cursor < len(m.Buf) {
		m.Cursor++
	}
}

// MoveWordLeft moves the cursor to the Ctrl+Left destination.
func (m *Model) MoveWordLeft() {
	m.Cursor = wordnav.CtrlLeft(m.Buf, m.Cursor, IsWordChar)
}

// MoveWordRight moves the cursor to the Ctrl+Right destination.
func (m *Model) MoveWordRight() {
	m.Cursor = wordnav.CtrlRight(m.Buf, m.Cursor, IsWordChar)
}

// String returns the buffer contents.
func (m *Model) String() string {
	return string(m.Buf)
}

// Len returns the number of runes currently in the buffer.
func (m *Model) Len() int {
	return len(m.Buf)
}
