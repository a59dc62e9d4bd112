// Package phrase validates paragraph-local phrase alternatives supplied by
// a remote rephrasing provider before the planner is allowed to type them
// in place of the final draft's wording.
package phrase

import (
	"fmt"
	"strings"

	"drafter/internal/keyboard"
)

// Alternative is one candidate substitution within a single paragraph: the
// planner types Alternative in place of Original, then edits it back.
type Alternative struct {
	Original    string `json:"original"`
	Alternative string `json:"alternative"`
}

// RephraseSystemPrompt documents the contract a remote provider's model
// must follow. It is not sent anywhere by this repository — no OpenAI or
// OpenRouter client is wired here (see internal/phraseprovider) — but a
// provider implementation on the other end of internal/phraseprovider's
// transport should be prompted along these lines.
const RephraseSystemPrompt = `You are a helper for a human-like typing simulator.

Goal
- Given a single paragraph of final-draft text, propose a small set of alternative wordings.
- The simulator will temporarily type "alternative" in place of "original", then later replace "alternative" back to "original".
- The final text after all edits must match the input paragraph exactly.

Output format (STRICT)
- Output ONLY valid JSON. No markdown, no surrounding prose, no code fences.
- Output MUST be a JSON array (possibly empty).
- Each array element MUST be an object with exactly these keys:
  - "original": string
  - "alternative": string
- No additional keys are allowed.

Hard constraints
- "original" MUST be a contiguous substring copied verbatim from the input paragraph.
- "original" MUST occur exactly once in the input paragraph (unique match). If not, expand the span to make it unique, or omit it.
- "original" MUST NOT start or end with whitespace.
- All "original" spans MUST be non-overlapping.
- "alternative" MUST be different from "original".
- "alternative" MUST NOT start or end with whitespace.
- Each suggestion MUST be usable as a direct substring replacement: do not require changing any text outside the span.

Character set (typing safety)
- ONLY use characters that are typeable by a US-QWERTY keyboard with ASCII input:
  - Allowed: ASCII printable characters, space, newline, and smart quotes (right/left single and double quotation marks).
  - Disallowed: tabs, carriage returns, and any other Unicode characters.

Quality guidance
- Prefer replacements that read naturally in context.
- Keep meaning similar unless the user explicitly asks for more dramatic rewrites.
- Return fewer items rather than violating constraints.
`

// RephraseJSONSchema is the JSON Schema RephraseSystemPrompt's output
// should validate against, for providers whose API can enforce structured
// output.
const RephraseJSONSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["original", "alternative"],
    "properties": {
      "original": { "type": "string" },
      "alternative": { "type": "string" }
    }
  }
}`

func isSupportedText(s string) bool {
	for _, c := range s {
		if _, ok := keyboard.TypedCharForOutputChar(c); !ok {
			return false
		}
	}
	return true
}

// Validate checks a paragraph's proposed alternatives against the hard
// constraints RephraseSystemPrompt documents: typeable characters, unique
// non-empty non-whitespace-padded spans, and non-overlapping placement
// within paragraph.
func Validate(paragraph string, items []Alternative) error {
	if !isSupportedText(paragraph) {
		return fmt.Errorf("phrase: paragraph contains unsupported characters")
	}

	type span struct{ start, end int }
	spans := make([]span, 0, len(items))

	for _, item := range items {
		if item.Original == "" {
			return fmt.Errorf("phrase: original must not be empty")
		}
		if strings.TrimSpace(item.Original) != item.Original {
			return fmt.Errorf("phrase: original must not start or end with whitespace")
		}
		if item.Alternative == "" {
			return fmt.Errorf("phrase: alternative must not be empty")
		}
		if strings.TrimSpace(item.Alternative) != item.Alternative {
			return fmt.Errorf("phrase: alternative must not start or end with whitespace")
		}
		if item.Original == item.Alternative {
			return fmt.Errorf("phrase: original and alternative must differ")
		}
		if !isSupportedText(item.Original) {
			return fmt.Errorf("phrase: original contains unsupported characters")
		}
		if !isSupportedText(item.Alternative) {
			return fmt.Errorf("phrase: alternative contains unsupported characters")
		}

		occurrences := strings.Count(paragraph, item.Original)
		if occurrences != 1 {
			return fmt.Errorf("phrase: original %q must occur exactly once in the paragraph, occurs %d times", item.Original, occurrences)
		}

		start := strings.Index(paragraph, item.Original)
		spans = append(spans, span{start: start, end: start + len(item.Original)})
	}

	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.start > b.start {
				a, b = b, a
			}
			if a.end > b.start {
				return fmt.Errorf("phrase: original spans must be non-overlapping")
			}
		}
	}

	return nil
}
