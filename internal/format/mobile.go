package format

import "strings"

// maxParagraphLength is the character budget for one paragraph on a mobile
// screen.
const maxParagraphLength = 300

// Mobile re-wraps text into paragraphs of at most 300 characters separated by
// blank lines. The budget counts runes, not bytes, so Indic-script replies
// wrap at the same visual length as Latin ones. Cuts happen at the last space
// inside the budget so words stay intact; a run of 300+ characters without a
// space is hard-cut at the budget, on a rune boundary.
func Mobile(text string) string {
	var paragraphs []string

	runes := []rune(text)
	for len(runes) > maxParagraphLength {
		cut := lastSpace(runes[:maxParagraphLength])
		if cut <= 0 {
			cut = maxParagraphLength
		}
		paragraphs = append(paragraphs, string(runes[:cut]))
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}

	if len(runes) > 0 {
		paragraphs = append(paragraphs, string(runes))
	}

	return strings.Join(paragraphs, "\n\n")
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
