package planner

import (
	"fmt"
	"strings"

	"drafter/internal/phrase"
)

// phraseSpan is a resolved phrase-alternative substitution site, expressed
// in whole-draft character offsets.
type phraseSpan struct {
	start            int
	original         string
	alternative      string
	originalLenChars int
}

// paragraphByteSpans splits text into paragraphs separated by one or more
// blank lines, returning each paragraph's [start,end) byte range.
func paragraphByteSpans(text string) [][2]int {
	b := []byte(text)
	n := len(b)
	var spans [][2]int
	idx := 0

	for idx < n {
		for idx < n && b[idx] == '\n' {
			idx++
		}
		if idx >= n {
			break
		}

		start := idx
		for idx < n {
			if b[idx] == '\n' && idx+1 < n && b[idx+1] == '\n' {
				break
			}
			idx++
		}
		end := idx
		spans = append(spans, [2]int{start, end})

		for idx < n && b[idx] == '\n' {
			idx++
		}
	}

	return spans
}

func byteIndexToCharIndex(text string, byteIdx int) int {
	return len([]rune(text[:byteIdx]))
}

// phraseSpansFromParagraphAlternatives resolves a per-paragraph list of
// phrase alternatives into whole-draft, non-overlapping character spans.
func phraseSpansFromParagraphAlternatives(finalText string, alternativesByParagraph [][]phrase.Alternative) ([]phraseSpan, error) {
	paragraphSpans := paragraphByteSpans(finalText)
	if len(alternativesByParagraph) != len(paragraphSpans) {
		return nil, fmt.Errorf("planner: expected %d paragraph alternative lists, got %d", len(paragraphSpans), len(alternativesByParagraph))
	}

	finalTextLenChars := len([]rune(finalText))
	var spans []phraseSpan

	for idx, byteSpan := range paragraphSpans {
		startByte, endByte := byteSpan[0], byteSpan[1]
		paragraph := finalText[startByte:endByte]
		items := alternativesByParagraph[idx]

		if err := phrase.Validate(paragraph, items); err != nil {
			return nil, fmt.Errorf("planner: phrase alternatives failed validation for paragraph %d: %w", idx, err)
		}

		for _, item := range items {
			localStartByte := strings.Index(paragraph, item.Original)
			if localStartByte < 0 {
				return nil, fmt.Errorf("planner: original not found in paragraph %d", idx)
			}
			globalStartByte := startByte + localStartByte
			start := byteIndexToCharIndex(finalText, globalStartByte)
			originalLenChars := len([]rune(item.Original))

			if start+originalLenChars > finalTextLenChars {
				return nil, fmt.Errorf("planner: phrase alternative out of bounds in final text")
			}

			spans = append(spans, phraseSpan{
				start:            start,
				original:         item.Original,
				alternative:      item.Alternative,
				originalLenChars: originalLenChars,
			})
		}
	}

	// sort by start (small n, simple insertion sort keeps this dependency-free)
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j-1].start > spans[j].start; j-- {
			spans[j-1], spans[j] = spans[j], spans[j-1]
		}
	}

	for i := 0; i+1 < len(spans); i++ {
		prevEnd := spans[i].start + spans[i].originalLenChars
		nextStart := spans[i+1].start
		if prevEnd > nextStart {
			return nil, fmt.Errorf("planner: phrase alternative spans overlap in final text")
		}
	}

	return spans, nil
}
