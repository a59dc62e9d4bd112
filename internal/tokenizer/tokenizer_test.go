package tokenizer

import "testing"

func TestTokenizeWordsSpacesPunct(t *testing.T) {
	toks, err := Tokenize("Hi, world!\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		kind Kind
		text string
	}{
		{Word, "Hi"},
		{Punct, ","},
		{Space, " "},
		{Word, "world"},
		{Punct, "!"},
		{Newline, "\n"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token[%d] = {%v %q}, want {%v %q}", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestTokenizeApostropheInsideWord(t *testing.T) {
	toks, err := Tokenize("don't")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != Word || toks[0].Text != "don't" {
		t.Errorf("got %+v, want a single Word token \"don't\"", toks)
	}
}

func TestTokenizeTrailingApostropheIsPunct(t *testing.T) {
	toks, err := Tokenize("cats' toys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != Word || toks[0].Text != "cats" {
		t.Fatalf("token[0] = %+v, want Word \"cats\"", toks[0])
	}
	if toks[1].Kind != Punct || toks[1].Text != "'" {
		t.Fatalf("token[1] = %+v, want Punct \"'\"", toks[1])
	}
}

func TestTokenizeByteRanges(t *testing.T) {
	toks, err := Tokenize("ab cd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].ByteStart != 0 || toks[0].ByteEnd != 2 {
		t.Errorf("token[0] range = [%d,%d), want [0,2)", toks[0].ByteStart, toks[0].ByteEnd)
	}
	if toks[2].ByteStart != 3 || toks[2].ByteEnd != 5 {
		t.Errorf("token[2] range = [%d,%d), want [3,5)", toks[2].ByteStart, toks[2].ByteEnd)
	}
}

func TestTokenizeRejectsUnsupportedChar(t *testing.T) {
	_, err := Tokenize("line one\tline two")
	if err == nil {
		t.Fatal("expected an error for a tab character")
	}
	uc, ok := err.(*UnsupportedCharError)
	if !ok {
		t.Fatalf("got error of type %T, want *UnsupportedCharError", err)
	}
	if uc.Char != '\t' || uc.Line != 1 || uc.Col != 9 {
		t.Errorf("got %+v, want {'\\t' line 1 col 9}", uc)
	}
}

func TestTokenizeLineColAcrossNewlines(t *testing.T) {
	_, err := Tokenize("ok\nbad\tline")
	uc, ok := err.(*UnsupportedCharError)
	if !ok {
		t.Fatalf("expected *UnsupportedCharError, got %v", err)
	}
	if uc.Line != 2 || uc.Col != 4 {
		t.Errorf("got line %d col %d, want line 2 col 4", uc.Line, uc.Col)
	}
}

func TestCheckSupported(t *testing.T) {
	if err := CheckSupported("plain ascii text."); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckSupported("bad\ttab"); err == nil {
		t.Error("expected an error for a tab character")
	}
}
