// Package keyboard maps output characters to the fixed set of Linux evdev
// keystrokes the planner is allowed to emit.
package keyboard

import "math/rand"

// Keystroke is a single physical key plus whether Shift must be held for it
// to produce the intended character.
type Keystroke struct {
	Keycode uint32
	Shift   bool
}

// Linux evdev keycodes (see linux/input-event-codes.h). These are the
// allowlisted keys plus Esc, Tab and Right Shift, which AllowedKeycodes
// leaves out.
const (
	KeyEsc uint32 = 1

	Key1 uint32 = 2
	Key2 uint32 = 3
	Key3 uint32 = 4
	Key4 uint32 = 5
	Key5 uint32 = 6
	Key6 uint32 = 7
	Key7 uint32 = 8
	Key8 uint32 = 9
	Key9 uint32 = 10
	Key0 uint32 = 11

	KeyMinus     uint32 = 12
	KeyEqual     uint32 = 13
	KeyBackspace uint32 = 14
	KeyTab       uint32 = 15

	KeyQ uint32 = 16
	KeyW uint32 = 17
	KeyE uint32 = 18
	KeyR uint32 = 19
	KeyT uint32 = 20
	KeyY uint32 = 21
	KeyU uint32 = 22
	KeyI uint32 = 23
	KeyO uint32 = 24
	KeyP uint32 = 25

	KeyLeftBrace  uint32 = 26
	KeyRightBrace uint32 = 27
	KeyEnter      uint32 = 28

	KeyLeftCtrl uint32 = 29

	KeyA uint32 = 30
	KeyS uint32 = 31
	KeyD uint32 = 32
	KeyF uint32 = 33
	KeyG uint32 = 34
	KeyH uint32 = 35
	KeyJ uint32 = 36
	KeyK uint32 = 37
	KeyL uint32 = 38

	KeySemicolon uint32 = 39
	KeyApostrophe uint32 = 40
	KeyGrave      uint32 = 41

	KeyLeftShift uint32 = 42

	KeyBackslash uint32 = 43

	KeyZ uint32 = 44
	KeyX uint32 = 45
	KeyC uint32 = 46
	KeyV uint32 = 47
	KeyB uint32 = 48
	KeyN uint32 = 49
	KeyM uint32 = 50

	KeyComma uint32 = 51
	KeyDot   uint32 = 52
	KeySlash uint32 = 53

	KeyRightShift uint32 = 54

	KeySpace uint32 = 57

	KeyDelete uint32 = 111

	KeyLeft  uint32 = 105
	KeyRight uint32 = 106
	KeyUp    uint32 = 103
	KeyDown  uint32 = 108

	KeyHome uint32 = 102
	KeyEnd  uint32 = 107
)

// AllowedKeycodes is the closed keyboard allowlist from spec.md §6. A Plan
// must never reference a keycode outside this set.
var AllowedKeycodes = map[uint32]bool{
	Key1: true, Key2: true, Key3: true, Key4: true, Key5: true,
	Key6: true, Key7: true, Key8: true, Key9: true, Key0: true,
	KeyMinus: true, KeyEqual: true, KeyBackspace: true,
	KeyQ: true, KeyW: true, KeyE: true, KeyR: true, KeyT: true,
	KeyY: true, KeyU: true, KeyI: true, KeyO: true, KeyP: true,
	KeyLeftBrace: true, KeyRightBrace: true, KeyEnter: true,
	KeyLeftCtrl: true,
	KeyA: true, KeyS: true, KeyD: true, KeyF: true, KeyG: true,
	KeyH: true, KeyJ: true, KeyK: true, KeyL: true,
	KeySemicolon: true, KeyApostrophe: true, KeyGrave: true,
	KeyLeftShift: true,
	KeyBackslash: true,
	KeyZ: true, KeyX: true, KeyC: true, KeyV: true, KeyB: true,
	KeyN: true, KeyM: true,
	KeyComma: true, KeyDot: true, KeySlash: true,
	KeySpace: true,
	KeyDelete: true,
	KeyLeft: true, KeyRight: true, KeyUp: true, KeyDown: true,
	KeyHome: true, KeyEnd: true,
}

// TypedCharForOutputChar maps a draft character to the character the planner
// actually types (smart quotes collapse to their ASCII counterpart; the
// editor is assumed to auto-substitute them back).
func TypedCharForOutputChar(c rune) (rune, bool) {
	switch c {
	case '\n':
		return '\n', true
	case '\t', '\r':
		return 0, false
	case '’', '‘': // ’ ‘
		return '\'', true
	case '”', '“': // ” “
		return '"', true
	}
	if c == ' ' || (c >= 0x21 && c <= 0x7E) {
		return c, true
	}
	return 0, false
}

// KeystrokeForOutputChar returns the physical keystroke that produces c, or
// false if c is not in the allowlisted character set.
func KeystrokeForOutputChar(c rune) (Keystroke, bool) {
	typed, ok := TypedCharForOutputChar(c)
	if !ok {
		return Keystroke{}, false
	}
	return CharToKeystroke(typed)
}

// FindFirstUnsupportedChar scans text and returns the byte offset and rune
// of the first character the Key Mapper cannot type.
func FindFirstUnsupportedChar(text string) (int, rune, bool) {
	for i, c := range text {
		if _, ok := KeystrokeForOutputChar(c); !ok {
			return i, c, true
		}
	}
	return 0, 0, false
}

// CharToKeystroke maps one already-ASCII-normalized character to its
// keystroke. Returns false for anything outside the fixed US-QWERTY table.
func CharToKeystroke(c rune) (Keystroke, bool) {
	switch c {
	case 'a':
		return Keystroke{KeyA, false}, true
	case 'b':
		return Keystroke{KeyB, false}, true
	case 'c':
		return Keystroke{KeyC, false}, true
	case 'd':
		return Keystroke{KeyD, false}, true
	case 'e':
		return Keystroke{KeyE, false}, true
	case 'f':
		return Keystroke{KeyF, false}, true
	case 'g':
		return Keystroke{KeyG, false}, true
	case 'h':
		return Keystroke{KeyH, false}, true
	case 'i':
		return Keystroke{KeyI, false}, true
	case 'j':
		return Keystroke{KeyJ, false}, true
	case 'k':
		return Keystroke{KeyK, false}, true
	case 'l':
		return Keystroke{KeyL, false}, true
	case 'm':
		return Keystroke{KeyM, false}, true
	case 'n':
		return Keystroke{KeyN, false}, true
	case 'o':
		return Keystroke{KeyO, false}, true
	case 'p':
		return Keystroke{KeyP, false}, true
	case 'q':
		return Keystroke{KeyQ, false}, true
	case 'r':
		return Keystroke{KeyR, false}, true
	case 's':
		return Keystroke{KeyS, false}, true
	case 't':
		return Keystroke{KeyT, false}, true
	case 'u':
		return Keystroke{KeyU, false}, true
	case 'v':
		return Keystroke{KeyV, false}, true
	case 'w':
		return Keystroke{KeyW, false}, true
	case 'x':
		return Keystroke{KeyX, false}, true
	case 'y':
		return Keystroke{KeyY, false}, true
	case 'z':
		return Keystroke{KeyZ, false}, true
	case 'A':
		return Keystroke{KeyA, true}, true
	case 'B':
		return Keystroke{KeyB, true}, true
	case 'C':
		return Keystroke{KeyC, true}, true
	case 'D':
		return Keystroke{KeyD, true}, true
	case 'E':
		return Keystroke{KeyE, true}, true
	case 'F':
		return Keystroke{KeyF, true}, true
	case 'G':
		return Keystroke{KeyG, true}, true
	case 'H':
		return Keystroke{KeyH, true}, true
	case 'I':
		return Keystroke{KeyI, true}, true
	case 'J':
		return Keystroke{KeyJ, true}, true
	case 'K':
		return Keystroke{KeyK, true}, true
	case 'L':
		return Keystroke{KeyL, true}, true
	case 'M':
		return Keystroke{KeyM, true}, true
	case 'N':
		return Keystroke{KeyN, true}, true
	case 'O':
		return Keystroke{KeyO, true}, true
	case 'P':
		return Keystroke{KeyP, true}, true
	case 'Q':
		return Keystroke{KeyQ, true}, true
	case 'R':
		return Keystroke{KeyR, true}, true
	case 'S':
		return Keystroke{KeyS, true}, true
	case 'T':
		return Keystroke{KeyT, true}, true
	case 'U':
		return Keystroke{KeyU, true}, true
	case 'V':
		return Keystroke{KeyV, true}, true
	case 'W':
		return Keystroke{KeyW, true}, true
	case 'X':
		return Keystroke{KeyX, true}, true
	case 'Y':
		return Keystroke{KeyY, true}, true
	case 'Z':
		return Keystroke{KeyZ, true}, true
	case '1':
		return Keystroke{Key1, false}, true
	case '2':
		return Keystroke{Key2, false}, true
	case '3':
		return Keystroke{Key3, false}, true
	case '4':
		return Keystroke{Key4, false}, true
	case '5':
		return Keystroke{Key5, false}, true
	case '6':
		return Keystroke{Key6, false}, true
	case '7':
		return Keystroke{Key7, false}, true
	case '8':
		return Keystroke{Key8, false}, true
	case '9':
		return Keystroke{Key9, false}, true
	case '0':
		return Keystroke{Key0, false}, true
	case '!':
		return Keystroke{Key1, true}, true
	case '@':
		return Keystroke{Key2, true}, true
	case '#':
		return Keystroke{Key3, true}, true
	case '$':
		return Keystroke{Key4, true}, true
	case '%':
		return Keystroke{Key5, true}, true
	case '^':
		return Keystroke{Key6, true}, true
	case '&':
		return Keystroke{Key7, true}, true
	case '*':
		return Keystroke{Key8, true}, true
	case '(':
		return Keystroke{Key9, true}, true
	case ')':
		return Keystroke{Key0, true}, true
	case '-':
		return Keystroke{KeyMinus, false}, true
	case '_':
		return Keystroke{KeyMinus, true}, true
	case '=':
		return Keystroke{KeyEqual, false}, true
	case '+':
		return Keystroke{KeyEqual, true}, true
	case '[':
		return Keystroke{KeyLeftBrace, false}, true
	case '{':
		return Keystroke{KeyLeftBrace, true}, true
	case ']':
		return Keystroke{KeyRightBrace, false}, true
	case '}':
		return Keystroke{KeyRightBrace, true}, true
	case '\\':
		return Keystroke{KeyBackslash, false}, true
	case '|':
		return Keystroke{KeyBackslash, true}, true
	case ';':
		return Keystroke{KeySemicolon, false}, true
	case ':':
		return Keystroke{KeySemicolon, true}, true
	case '\'':
		return Keystroke{KeyApostrophe, false}, true
	case '"':
		return Keystroke{KeyApostrophe, true}, true
	case '`':
		return Keystroke{KeyGrave, false}, true
	case '~':
		return Keystroke{KeyGrave, true}, true
	case ',':
		return Keystroke{KeyComma, false}, true
	case '<':
		return Keystroke{KeyComma, true}, true
	case '.':
		return Keystroke{KeyDot, false}, true
	case '>':
		return Keystroke{KeyDot, true}, true
	case '/':
		return Keystroke{KeySlash, false}, true
	case '?':
		return Keystroke{KeySlash, true}, true
	case ' ':
		return Keystroke{KeySpace, false}, true
	case '\n':
		return Keystroke{KeyEnter, false}, true
	}
	return Keystroke{}, false
}

var qwertyNeighbors = map[rune][]rune{
	'a': {'q', 'w', 's', 'z', 'x'},
	'b': {'v', 'g', 'h', 'n'},
	'c': {'x', 'd', 'f', 'v'},
	'd': {'s', 'e', 'r', 'f', 'c', 'x'},
	'e': {'w', 's', 'd', 'r'},
	'f': {'d', 'r', 't', 'g', 'v', 'c'},
	'g': {'f', 't', 'y', 'h', 'b', 'v'},
	'h': {'g', 'y', 'u', 'j', 'n', 'b'},
	'i': {'u', 'j', 'k', 'o'},
	'j': {'h', 'u', 'i', 'k', 'm', 'n'},
	'k': {'j', 'i', 'o', 'l', ',', 'm'},
	'l': {'k', 'o', 'p', ';', '.'},
	'm': {'n', 'j', 'k', ','},
	'n': {'b', 'h', 'j', 'm'},
	'o': {'i', 'k', 'l', 'p'},
	'p': {'o', 'l', '['},
	'q': {'w', 'a'},
	'r': {'e', 'd', 'f', 't'},
	's': {'a', 'w', 'e', 'd', 'x', 'z'},
	't': {'r', 'f', 'g', 'y'},
	'u': {'y', 'h', 'j', 'i'},
	'v': {'c', 'f', 'g', 'b'},
	'w': {'q', 'a', 's', 'e'},
	'x': {'z', 's', 'd', 'c'},
	'y': {'t', 'g', 'h', 'u'},
	'z': {'a', 's', 'x'},
	'1': {'2', 'q'},
	'2': {'1', '3', 'q', 'w'},
	'3': {'2', '4', 'w', 'e'},
	'4': {'3', '5', 'e', 'r'},
	'5': {'4', '6', 'r', 't'},
	'6': {'5', '7', 't', 'y'},
	'7': {'6', '8', 'y', 'u'},
	'8': {'7', '9', 'u', 'i'},
	'9': {'8', '0', 'i', 'o'},
	'0': {'9', 'o', 'p'},
}

// QwertyAdjacentChar returns a random physically-adjacent key for c on a
// US-QWERTY layout, preserving case, or false if c has no defined neighbors.
func QwertyAdjacentChar(c rune, rng *rand.Rand) (rune, bool) {
	base := c
	upper := false
	if c >= 'A' && c <= 'Z' {
		base = c - 'A' + 'a'
		upper = true
	}

	neighbors, ok := qwertyNeighbors[base]
	if !ok {
		return 0, false
	}

	chosen := neighbors[rng.Intn(len(neighbors))]
	if upper && chosen >= 'a' && chosen <= 'z' {
		chosen = chosen - 'a' + 'A'
	}
	return chosen, true
}
