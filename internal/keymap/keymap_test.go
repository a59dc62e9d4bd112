package keymap

import "testing"

func TestUSQwertyReturnsAPopulatedKeymap(t *testing.T) {
	info, err := USQwerty()
	if err != nil {
		t.Fatal(err)
	}
	if info.Layout != "us" {
		t.Errorf("got layout %q, want \"us\"", info.Layout)
	}
	if info.KeymapFormat != FormatXKBV1 {
		t.Errorf("got format %d, want %d", info.KeymapFormat, FormatXKBV1)
	}
	if info.Keymap == "" {
		t.Error("expected a non-empty embedded keymap string")
	}
}

func TestUSQwertyModifierMasksAreDistinctBits(t *testing.T) {
	info, err := USQwerty()
	if err != nil {
		t.Fatal(err)
	}
	if info.ShiftMask == 0 {
		t.Error("expected a non-zero shift mask")
	}
	if info.CtrlMask == 0 {
		t.Error("expected a non-zero ctrl mask")
	}
	if info.ShiftMask == info.CtrlMask {
		t.Error("expected shift and ctrl masks to be distinct bits")
	}
	if info.ShiftMask&info.CtrlMask != 0 {
		t.Error("expected shift and ctrl masks not to overlap")
	}
}
