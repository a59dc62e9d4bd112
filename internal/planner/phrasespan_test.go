package planner

import (
	"testing"

	"drafter/internal/phrase"
)

func TestParagraphByteSpansSplitsOnBlankLines(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph"
	spans := paragraphByteSpans(text)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %v", len(spans), spans)
	}
	if text[spans[0][0]:spans[0][1]] != "first paragraph" {
		t.Errorf("span 0 = %q, want %q", text[spans[0][0]:spans[0][1]], "first paragraph")
	}
	if text[spans[1][0]:spans[1][1]] != "second paragraph" {
		t.Errorf("span 1 = %q, want %q", text[spans[1][0]:spans[1][1]], "second paragraph")
	}
}

func TestPhraseSpansFromParagraphAlternativesResolvesOffsets(t *testing.T) {
	text := "one two\n\nthree four"
	alts := [][]phrase.Alternative{
		{{Original: "two", Alternative: "duo"}},
		{{Original: "four", Alternative: "quattro"}},
	}

	spans, err := phraseSpansFromParagraphAlternatives(text, alts)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	runes := []rune(text)
	if string(runes[spans[0].start:spans[0].start+spans[0].originalLenChars]) != "two" {
		t.Errorf("span 0 does not point at \"two\": %+v", spans[0])
	}
	if string(runes[spans[1].start:spans[1].start+spans[1].originalLenChars]) != "four" {
		t.Errorf("span 1 does not point at \"four\": %+v", spans[1])
	}
}

func TestPhraseSpansFromParagraphAlternativesRejectsCountMismatch(t *testing.T) {
	text := "only one paragraph here"
	_, err := phraseSpansFromParagraphAlternatives(text, [][]phrase.Alternative{{}, {}})
	if err == nil {
		t.Error("expected an error when the alternatives list count does not match the paragraph count")
	}
}
