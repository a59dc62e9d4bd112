package planner

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate cleanly: %v", err)
	}
}

func TestValidateRejectsReviewPauseRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReviewPauseMsMin, cfg.ReviewPauseMsMax = 3000, 1000
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error when review_pause_ms_min > review_pause_ms_max")
	}
}

func TestValidateRejectsNonPositiveWPM(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WPMMin = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for wpm_min == 0")
	}
}

func TestInvalidConfigErrorMessage(t *testing.T) {
	err := &InvalidConfigError{Field: "wpm_min", Reason: "must be > 0"}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}
