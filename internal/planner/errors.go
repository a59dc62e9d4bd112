package planner

import "fmt"

// UnsupportedCharacterError reports the first draft character the keyboard
// mapper cannot type, with its position for a human to locate it.
type UnsupportedCharacterError struct {
	Char rune
	Line int
	Col  int
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf(
		"unsupported character %q (U+%04X) at line %d, column %d. Supported: ASCII, newline, and smart quotes (’ ‘ ” “). Tabs are not allowed.",
		e.Char, e.Char, e.Line, e.Col,
	)
}

// InvalidConfigError reports a Config field that failed validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %s", e.Field, e.Reason)
}

// VerificationMismatchError means the finished plan did not reproduce the
// draft it was asked to type: either the editor model the assembler kept
// while building it, or (in the revising planner) a fresh re-simulation of
// its action stream, disagrees with the draft. It signals a planner bug,
// not a bad draft, and should never be surfaced to a playback backend.
type VerificationMismatchError struct {
	Want string
	Got  string
}

func (e *VerificationMismatchError) Error() string {
	return fmt.Sprintf("planner bug: simulated text does not match final draft (want %d chars, got %d chars)", len([]rune(e.Want)), len([]rune(e.Got)))
}

// ModifierImbalanceError means a correction target lies ahead of the
// simulated cursor, which the assembler can never reach by only moving
// backward — an internal invariant violation.
type ModifierImbalanceError struct {
	Detail string
}

func (e *ModifierImbalanceError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Detail)
}
