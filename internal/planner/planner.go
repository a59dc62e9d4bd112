// Package planner turns a finished draft into a Plan: a deterministic (for
// a given seed), single-threaded stream of low-level input actions that
// reproduces the draft through a mixture of correctly-typed characters,
// injected typos and phrasing variants, and immediate or delayed
// corrections, exactly as spec.md's Plan Assembler describes.
package planner

import (
	"fmt"
	"math/rand"

	"drafter/internal/editor"
	"drafter/internal/keyboard"
	"drafter/internal/keymap"
	"drafter/internal/phrase"
	"drafter/internal/plan"
	"drafter/internal/sim"
	"drafter/internal/tokenizer"
	"drafter/internal/wordnav"
)

type correctionConstraint int

const (
	constraintNone correctionConstraint = iota
	constraintSentenceOrParagraphBoundary
)

type outstandingError struct {
	start         int
	wrong         string
	correct       string
	fixAfterChars int
	constraint    correctionConstraint
}

func sentenceOrParagraphBoundary(c rune) bool {
	return c == '.' || c == '!' || c == '?' || c == '\n'
}

// checkSupported delegates to the tokenizer's own unsupported-character
// scan: the tokenizer is the first stage that ever sees a draft, so it
// owns the (line, col) reporting the rest of the planner reuses.
func checkSupported(finalText string) error {
	err := tokenizer.CheckSupported(finalText)
	if err == nil {
		return nil
	}
	uc := err.(*tokenizer.UnsupportedCharError)
	return &UnsupportedCharacterError{Char: uc.Char, Line: uc.Line, Col: uc.Col}
}

func typeString(b *actionBuilder, ed *editor.Model, s string, wpm float64, rng *rand.Rand) error {
	for _, c := range s {
		stroke, ok := keyboard.KeystrokeForOutputChar(c)
		if !ok {
			return fmt.Errorf("planner: unsupported character for US-QWERTY typing: %q (U+%04X)", c, c)
		}
		b.typeChar(stroke, rng)
		ed.Insert(c)

		delay := interCharDelayMs(wpm, rng)
		delay += punctuationPauseMs(c, rng)
		delay += maybeThinkPauseMs(c, rng)
		b.wait(delay)
	}
	return nil
}

func replaceAtEnd(b *actionBuilder, ed *editor.Model, wrong, correct string, wpm float64, rng *rand.Rand) error {
	b.wait(rngU64(rng, 60, 260))

	wrongLen := len([]rune(wrong))
	for i := 0; i < wrongLen; i++ {
		b.backspace(rng)
		ed.Backspace()
		b.wait(rngU64(rng, 15, 55))
	}

	return typeString(b, ed, correct, wpm, rng)
}

func navigateLeftTo(b *actionBuilder, ed *editor.Model, target int, profile wordnav.Profile, rng *rand.Rand) {
	if target > ed.Len() {
		target = ed.Len()
	}

	for ed.Cursor > target {
		ctrlTarget := wordnav.CtrlLeft(ed.Buf, ed.Cursor, editor.IsWordChar)
		ctrlDelta := ed.Cursor - ctrlTarget
		remaining := ed.Cursor - target

		var safe bool
		switch profile {
		case wordnav.Compatible:
			safe = wordnav.CompatibleJumpIsSafe(ed.Buf, ed.Cursor, ctrlTarget)
		default:
			safe = true
			for _, c := range ed.Buf[ctrlTarget:ed.Cursor] {
				if c == '\n' {
					safe = false
					break
				}
			}
		}

		if ctrlTarget >= target && ctrlDelta >= 4 && remaining >= 12 && safe {
			b.navWordLeft(rng)
			ed.MoveWordLeft()
		} else {
			b.navLeft(rng)
			ed.MoveLeft()
		}

		if rngBool(rng, 0.03) {
			b.wait(rngU64(rng, 40, 180))
		} else {
			b.wait(rngU64(rng, 6, 22))
		}
	}

	if profile == wordnav.Compatible {
		b.setCtrl(false, rng)
	}
}

func navigateRightTo(b *actionBuilder, ed *editor.Model, target int, profile wordnav.Profile, rng *rand.Rand) {
	if target > ed.Len() {
		target = ed.Len()
	}

	for ed.Cursor < target {
		ctrlTarget := wordnav.CtrlRight(ed.Buf, ed.Cursor, editor.IsWordChar)
		ctrlDelta := ctrlTarget - ed.Cursor
		remaining := target - ed.Cursor

		var safe bool
		switch profile {
		case wordnav.Compatible:
			safe = wordnav.CompatibleJumpIsSafe(ed.Buf, ed.Cursor, ctrlTarget)
		default:
			safe = true
			for _, c := range ed.Buf[ed.Cursor:ctrlTarget] {
				if c == '\n' {
					safe = false
					break
				}
			}
		}

		if ctrlTarget <= target && ctrlDelta >= 4 && remaining >= 12 && safe {
			b.navWordRight(rng)
			ed.MoveWordRight()
		} else {
			b.navRight(rng)
			ed.MoveRight()
		}

		b.wait(rngU64(rng, 6, 22))
	}

	b.setCtrl(false, rng)
}

func fixErrorAtPosition(b *actionBuilder, ed *editor.Model, err outstandingError, wpm float64, profile wordnav.Profile, rng *rand.Rand) error {
	wrongLen := len([]rune(err.wrong))
	targetEnd := err.start + wrongLen
	if targetEnd > ed.Cursor {
		return &ModifierImbalanceError{Detail: "correction target after cursor"}
	}

	navigateLeftTo(b, ed, targetEnd, profile, rng)

	b.wait(rngU64(rng, 50, 220))

	for i := 0; i < wrongLen; i++ {
		b.backspace(rng)
		ed.Backspace()
		b.wait(rngU64(rng, 15, 55))
	}

	if err := typeString(b, ed, err.correct, wpm, rng); err != nil {
		return err
	}

	navigateRightTo(b, ed, ed.Len(), profile, rng)
	return nil
}

// GenerateWithPhraseAlternatives is generate_plan_with_phrase_alternatives:
// it resolves alternativesByParagraph (one list per blank-line-separated
// paragraph of finalText) into phrase spans before assembling the plan.
func GenerateWithPhraseAlternatives(finalText string, cfg Config, alternativesByParagraph [][]phrase.Alternative, rng *rand.Rand) (plan.Plan, error) {
	if err := checkSupported(finalText); err != nil {
		return plan.Plan{}, err
	}

	spans, err := phraseSpansFromParagraphAlternatives(finalText, alternativesByParagraph)
	if err != nil {
		return plan.Plan{}, err
	}

	return generatePlanImpl(finalText, cfg, spans, rng)
}

// Generate is generate_plan: the default entry point. When cfg.NoRevision
// is set it types the draft with zero divergences.
func Generate(finalText string, cfg Config, rng *rand.Rand) (plan.Plan, error) {
	if cfg.NoRevision {
		return GenerateNoRevision(finalText, cfg, rng)
	}
	return generatePlanImpl(finalText, cfg, nil, rng)
}

// GenerateNoRevision types finalText with no typos, no synonym swaps, and
// no delayed corrections: an escape hatch for callers that want a plain,
// deterministic-length typing plan.
func GenerateNoRevision(finalText string, cfg Config, rng *rand.Rand) (plan.Plan, error) {
	if err := cfg.Validate(); err != nil {
		return plan.Plan{}, err
	}
	if err := checkSupported(finalText); err != nil {
		return plan.Plan{}, err
	}

	km, err := keymap.USQwerty()
	if err != nil {
		return plan.Plan{}, fmt.Errorf("planner: %w", err)
	}
	wpmTarget := cfg.WPMMin + rng.Float64()*(cfg.WPMMax-cfg.WPMMin)

	b := newActionBuilder(km.ShiftMask, km.CtrlMask)
	ed := editor.New()

	b.setModifiers()
	b.wait(rngU64(rng, 250, 600))

	if err := typeString(b, ed, finalText, wpmTarget, rng); err != nil {
		return plan.Plan{}, err
	}

	b.setShift(false, rng)
	b.setCtrl(false, rng)
	b.setModifiers()

	if got := ed.String(); got != finalText {
		return plan.Plan{}, &VerificationMismatchError{Want: finalText, Got: got}
	}

	return plan.Plan{
		Version: 1,
		Config: plan.Config{
			Layout:       km.Layout,
			KeymapFormat: km.KeymapFormat,
			Keymap:       km.Keymap,
			WPMTarget:    wpmTarget,
		},
		Actions: b.actions,
	}, nil
}

func generatePlanImpl(finalText string, cfg Config, phraseSpans []phraseSpan, rng *rand.Rand) (plan.Plan, error) {
	if err := cfg.Validate(); err != nil {
		return plan.Plan{}, err
	}
	if err := checkSupported(finalText); err != nil {
		return plan.Plan{}, err
	}

	km, err := keymap.USQwerty()
	if err != nil {
		return plan.Plan{}, fmt.Errorf("planner: %w", err)
	}
	wpmTarget := cfg.WPMMin + rng.Float64()*(cfg.WPMMax-cfg.WPMMin)

	b := newActionBuilder(km.ShiftMask, km.CtrlMask)
	ed := editor.New()
	var outstanding []outstandingError

	// Ensure compositor and clients start from a neutral modifier state.
	b.setModifiers()
	b.wait(rngU64(rng, 250, 600))

	chars := []rune(finalText)
	i := 0
	phraseIdx := 0
	var lastChar rune

	for i < len(chars) {
		progress := float64(i) / float64(len(chars))
		var nextPhraseStart int
		hasNextPhrase := phraseIdx < len(phraseSpans)
		if hasNextPhrase {
			nextPhraseStart = phraseSpans[phraseIdx].start
		}

		switch {
		case hasNextPhrase && nextPhraseStart == i:
			span := phraseSpans[phraseIdx]
			var typed string

			if len(outstanding) < cfg.MaxOutstandingErrors {
				startCursor := ed.Cursor
				typed = span.alternative
				if err := typeString(b, ed, typed, wpmTarget, rng); err != nil {
					return plan.Plan{}, err
				}
				outstanding = append(outstanding, outstandingError{
					start:         startCursor,
					wrong:         span.alternative,
					correct:       span.original,
					fixAfterChars: rngIntn(rng, 90, 420),
					constraint:    constraintSentenceOrParagraphBoundary,
				})
			} else {
				typed = span.original
				if err := typeString(b, ed, typed, wpmTarget, rng); err != nil {
					return plan.Plan{}, err
				}
			}

			typedRunes := []rune(typed)
			if len(typedRunes) == 0 {
				return plan.Plan{}, fmt.Errorf("planner: phrase alternative must not be empty")
			}
			lastChar = typedRunes[len(typedRunes)-1]

			i += span.originalLenChars
			phraseIdx++

		case editor.IsWordChar(chars[i]):
			start := i
			i++
			for i < len(chars) && editor.IsWordChar(chars[i]) {
				i++
			}
			wordEnd := i

			if hasNextPhrase && nextPhraseStart > start && nextPhraseStart < wordEnd {
				prefix := string(chars[start:nextPhraseStart])
				if err := typeString(b, ed, prefix, wpmTarget, rng); err != nil {
					return plan.Plan{}, err
				}
				lastChar = chars[nextPhraseStart-1]
				i = nextPhraseStart
			} else {
				word := string(chars[start:wordEnd])
				if err := typeWordWithMaybeError(b, ed, word, cfg, wpmTarget, &outstanding, rng); err != nil {
					return plan.Plan{}, err
				}
				lastChar = chars[wordEnd-1]
			}

		default:
			c := chars[i]
			i++

			if c == ' ' && cfg.ErrorRatePerWord > 0 && rngBool(rng, 0.015) && len(outstanding) < cfg.MaxOutstandingErrors {
				startCursor := ed.Cursor
				if err := typeString(b, ed, "  ", wpmTarget, rng); err != nil {
					return plan.Plan{}, err
				}
				outstanding = append(outstanding, outstandingError{
					start:         startCursor,
					wrong:         "  ",
					correct:       " ",
					fixAfterChars: rngIntn(rng, 40, 260),
					constraint:    constraintNone,
				})
			} else {
				if err := typeString(b, ed, string(c), wpmTarget, rng); err != nil {
					return plan.Plan{}, err
				}
			}

			lastChar = c
		}

		// Occasionally fix a recent mistake (delayed correction).
		if n := len(outstanding); n > 0 {
			err := outstanding[n-1]
			wrongLen := len([]rune(err.wrong))
			age := ed.Cursor - (err.start + wrongLen)
			if age < 0 {
				age = 0
			}
			lateStage := progress >= cfg.StopCorrectionsAfterProgress

			forceFix := n >= cfg.MaxOutstandingErrors
			due := age >= err.fixAfterChars

			var boundaryForRandomFix bool
			switch err.constraint {
			case constraintNone:
				boundaryForRandomFix = lastChar == ' ' || isOneOf(lastChar, ",.;:!?\n")
			case constraintSentenceOrParagraphBoundary:
				boundaryForRandomFix = sentenceOrParagraphBoundary(lastChar)
			}

			randomFix := !lateStage && rngBool(rng, 0.12) && boundaryForRandomFix

			var shouldFix bool
			switch err.constraint {
			case constraintNone:
				shouldFix = forceFix || (due && !lateStage) || randomFix
			case constraintSentenceOrParagraphBoundary:
				shouldFix = sentenceOrParagraphBoundary(lastChar) && (forceFix || (due && !lateStage) || randomFix)
			}

			if shouldFix {
				popped := outstanding[n-1]
				outstanding = outstanding[:n-1]
				if err := fixErrorAtPosition(b, ed, popped, wpmTarget, cfg.WordNavProfile, rng); err != nil {
					return plan.Plan{}, err
				}
				b.wait(rngU64(rng, 80, 420))
			}
		}
	}

	// Always do a near-end review pass.
	b.wait(rngU64(rng, cfg.ReviewPauseMsMin, cfg.ReviewPauseMsMax))

	for len(outstanding) > 0 {
		n := len(outstanding)
		popped := outstanding[n-1]
		outstanding = outstanding[:n-1]
		if err := fixErrorAtPosition(b, ed, popped, wpmTarget, cfg.WordNavProfile, rng); err != nil {
			return plan.Plan{}, err
		}
		b.wait(rngU64(rng, 120, 520))
	}

	// Return to neutral modifiers.
	b.setShift(false, rng)
	b.setCtrl(false, rng)
	b.setModifiers()

	if got := ed.String(); got != finalText {
		return plan.Plan{}, &VerificationMismatchError{Want: finalText, Got: got}
	}

	out := plan.Plan{
		Version: 1,
		Config: plan.Config{
			Layout:       km.Layout,
			KeymapFormat: km.KeymapFormat,
			Keymap:       km.Keymap,
			WPMTarget:    wpmTarget,
		},
		Actions: b.actions,
	}

	// Re-simulate the finished stream against a fresh editor. The simulator
	// inserts smart quotes as their ASCII keys, so compare with the draft as typed.
	wantTyped := make([]rune, 0, len(chars))
	for _, c := range chars {
		typedChar, _ := keyboard.TypedCharForOutputChar(c)
		wantTyped = append(wantTyped, typedChar)
	}
	if got, err := sim.TypedText(out); err != nil || got != string(wantTyped) {
		return plan.Plan{}, &VerificationMismatchError{Want: finalText, Got: got}
	}
	return out, nil
}

func isOneOf(c rune, set string) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

func typeWordWithMaybeError(b *actionBuilder, ed *editor.Model, word string, cfg Config, wpmTarget float64, outstanding *[]outstandingError, rng *rand.Rand) error {
	injectError := rngBool(rng, cfg.ErrorRatePerWord) && len(*outstanding) < cfg.MaxOutstandingErrors
	if !injectError {
		return typeString(b, ed, word, wpmTarget, rng)
	}

	wantVariant := rngBool(rng, cfg.WordVariantShare)
	var wrongWord string
	var ok bool
	if wantVariant {
		wrongWord, ok = wordVariant(word, rng)
		if !ok {
			wrongWord, ok = wordTypo(word, rng)
		}
	} else {
		wrongWord, ok = wordTypo(word, rng)
		if !ok {
			wrongWord, ok = wordVariant(word, rng)
		}
	}

	if !ok {
		return typeString(b, ed, word, wpmTarget, rng)
	}

	wordStartCursor := ed.Cursor
	if err := typeString(b, ed, wrongWord, wpmTarget, rng); err != nil {
		return err
	}

	if rngBool(rng, cfg.ImmediateFixRate) {
		return replaceAtEnd(b, ed, wrongWord, word, wpmTarget, rng)
	}

	*outstanding = append(*outstanding, outstandingError{
		start:         wordStartCursor,
		wrong:         wrongWord,
		correct:       word,
		fixAfterChars: rngIntn(rng, 25, 220),
		constraint:    constraintNone,
	})
	return nil
}
