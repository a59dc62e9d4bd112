package planner

import (
	"math"

	"drafter/internal/wordnav"
)

// Config holds every knob the plan assembler consults. Fields beyond the
// minimal wpm/error-rate/immediate-fix set spec.md's data model names come
// from the original implementation's PlannerConfig and are carried forward
// as part of "a mixture of immediate and delayed corrections" (spec.md §1).
type Config struct {
	WPMMin float64
	WPMMax float64

	ErrorRatePerWord float64
	WordVariantShare float64
	ImmediateFixRate float64

	WordNavProfile wordnav.Profile

	MaxOutstandingErrors int

	// StopCorrectionsAfterProgress is the fraction, in [0,1], of the draft
	// after which opportunistic/due delayed fixes stop firing; only
	// forced fixes (outstanding at MaxOutstandingErrors) still happen.
	StopCorrectionsAfterProgress float64

	ReviewPauseMsMin uint64
	ReviewPauseMsMax uint64

	// NoRevision types the draft with zero divergences: no typos, no
	// synonym swaps, no delayed corrections.
	NoRevision bool
}

// DefaultConfig mirrors the original implementation's Default impl.
func DefaultConfig() Config {
	return Config{
		WPMMin:                       40.0,
		WPMMax:                       60.0,
		ErrorRatePerWord:             0.05,
		WordVariantShare:             0.35,
		ImmediateFixRate:             0.35,
		WordNavProfile:               wordnav.Chrome,
		MaxOutstandingErrors:         4,
		StopCorrectionsAfterProgress: 0.88,
		ReviewPauseMsMin:             1200,
		ReviewPauseMsMax:             2600,
		NoRevision:                   false,
	}
}

func between01(f float64) bool {
	return f >= 0.0 && f <= 1.0
}

// Validate checks a Config for internal consistency before it is used to
// generate a plan.
func (c Config) Validate() error {
	if !isFinite(c.WPMMin) {
		return &InvalidConfigError{Field: "wpm_min", Reason: "must be finite"}
	}
	if !isFinite(c.WPMMax) {
		return &InvalidConfigError{Field: "wpm_max", Reason: "must be finite"}
	}
	if !(c.WPMMin > 0.0 && c.WPMMax > 0.0) {
		return &InvalidConfigError{Field: "wpm_min/wpm_max", Reason: "must be > 0"}
	}
	if c.WPMMin > c.WPMMax {
		return &InvalidConfigError{Field: "wpm_min/wpm_max", Reason: "wpm_min must be <= wpm_max"}
	}
	if !between01(c.ErrorRatePerWord) {
		return &InvalidConfigError{Field: "error_rate_per_word", Reason: "must be between 0.0 and 1.0"}
	}
	if !between01(c.WordVariantShare) {
		return &InvalidConfigError{Field: "word_variant_share", Reason: "must be between 0.0 and 1.0"}
	}
	if !between01(c.ImmediateFixRate) {
		return &InvalidConfigError{Field: "immediate_fix_rate", Reason: "must be between 0.0 and 1.0"}
	}
	if !between01(c.StopCorrectionsAfterProgress) {
		return &InvalidConfigError{Field: "stop_corrections_after_progress", Reason: "must be between 0.0 and 1.0"}
	}
	if c.ReviewPauseMsMin > c.ReviewPauseMsMax {
		return &InvalidConfigError{Field: "review_pause_ms_min/review_pause_ms_max", Reason: "review_pause_ms_min must be <= review_pause_ms_max"}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
