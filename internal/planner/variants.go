package planner

import (
	"math/rand"
	"strings"

	"drafter/internal/keyboard"
)

func synonymOptions(wordLower string) []string {
	switch wordLower {
	case "important":
		return []string{"crucial", "key", "vital"}
	case "help":
		return []string{"assist", "aid", "support"}
	case "use":
		return []string{"utilize", "employ"}
	case "show":
		return []string{"demonstrate", "display"}
	case "make":
		return []string{"create", "build"}
	case "start":
		return []string{"begin", "kickoff"}
	case "end":
		return []string{"finish", "wrap"}
	case "idea":
		return []string{"concept", "notion"}
	case "quick":
		return []string{"fast", "rapid"}
	case "slow":
		return []string{"sluggish", "gradual"}
	default:
		return nil
	}
}

// applyCaseStyle recasts lower to match template's capitalization: all-caps
// stays all-caps, "Capitalized rest lowercase" recapitalizes just the first
// rune, anything else (mixed case, etc.) is left as-is.
func applyCaseStyle(template, lower string) string {
	allUpper := true
	for _, c := range template {
		if c >= 'a' && c <= 'z' {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToUpper(lower)
	}

	runes := []rune(template)
	firstIsUpper := len(runes) > 0 && runes[0] >= 'A' && runes[0] <= 'Z'
	restAreLower := true
	for _, c := range runes[minInt(1, len(runes)):] {
		if c >= 'A' && c <= 'Z' {
			restAreLower = false
			break
		}
	}

	if firstIsUpper && restAreLower && lower != "" {
		lowerRunes := []rune(lower)
		if lowerRunes[0] >= 'a' && lowerRunes[0] <= 'z' {
			lowerRunes[0] -= 'a' - 'A'
		}
		return string(lowerRunes)
	}

	return lower
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// wordVariant proposes a synonym/tense variant of word, or false if none
// applies.
func wordVariant(word string, rng *rand.Rand) (string, bool) {
	wordLower := strings.ToLower(word)

	if options := synonymOptions(wordLower); len(options) > 0 {
		option := options[rng.Intn(len(options))]
		if option != wordLower {
			return applyCaseStyle(word, option), true
		}
	}

	if strings.HasSuffix(wordLower, "ed") && len(wordLower) >= 4 {
		stem := wordLower[:len(wordLower)-2]
		return applyCaseStyle(word, stem+"ing"), true
	}
	if strings.HasSuffix(wordLower, "ing") && len(wordLower) >= 5 {
		stem := wordLower[:len(wordLower)-3]
		return applyCaseStyle(word, stem+"ed"), true
	}

	return "", false
}

// wordTypo proposes an adjacent-key substitution or letter swap for word,
// or false if none applies.
func wordTypo(word string, rng *rand.Rand) (string, bool) {
	chars := []rune(word)
	if len(chars) < 2 {
		return "", false
	}

	if len(chars) >= 4 && rngBool(rng, 0.25) {
		out := append([]rune(nil), chars...)
		idx := rng.Intn(len(out) - 1)
		out[idx], out[idx+1] = out[idx+1], out[idx]
		if s := string(out); s != word {
			return s, true
		}
	}

	idx := rng.Intn(len(chars))
	out := append([]rune(nil), chars...)
	if adj, ok := keyboard.QwertyAdjacentChar(out[idx], rng); ok {
		out[idx] = adj
		if s := string(out); s != word {
			return s, true
		}
	}

	return "", false
}
