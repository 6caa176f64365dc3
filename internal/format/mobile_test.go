package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestMobile_ShortTextUnchanged(t *testing.T) {
	text := "Stay calm and move to higher ground."
	require.Equal(t, text, Mobile(text))
}

func TestMobile_EmptyText(t *testing.T) {
	require.Equal(t, "", Mobile(""))
}

func TestMobile_ExactlyThresholdUnchanged(t *testing.T) {
	text := strings.TrimRight(strings.Repeat("word ", 60), " ") // 299 chars
	require.LessOrEqual(t, len(text), maxParagraphLength)
	require.Equal(t, text, Mobile(text))
}

func TestMobile_ChunksRespectThreshold(t *testing.T) {
	text := strings.TrimRight(strings.Repeat("evacuate the area immediately ", 40), " ")
	out := Mobile(text)

	chunks := strings.Split(out, "\n\n")
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), maxParagraphLength)
		require.NotEmpty(t, chunk)
	}
}

func TestMobile_RejoinPreservesWords(t *testing.T) {
	words := []string{
		"During", "a", "flood,", "move", "immediately", "to", "higher", "ground.",
		"Avoid", "walking", "or", "driving", "through", "flood", "waters.",
	}
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString(strings.Join(words, " "))
		b.WriteString(" ")
	}
	text := strings.TrimRight(b.String(), " ")

	out := Mobile(text)
	rejoined := strings.ReplaceAll(out, "\n\n", " ")
	require.Equal(t, text, rejoined)
}

func TestMobile_CountsRunesNotBytes(t *testing.T) {
	// 44 runes but 114 bytes; repeated to land under the rune budget while
	// far exceeding it in bytes.
	sentence := "बाढ़ के दौरान ऊँची जगह पर जाएँ और शांत रहें।"
	text := strings.TrimRight(strings.Repeat(sentence+" ", 5), " ")
	require.LessOrEqual(t, len([]rune(text)), maxParagraphLength)
	require.Greater(t, len(text), maxParagraphLength)

	require.Equal(t, text, Mobile(text))
}

func TestMobile_HardCutKeepsRunesIntact(t *testing.T) {
	text := "a" + strings.Repeat("क", 400)
	out := Mobile(text)

	require.True(t, utf8.ValidString(out))
	chunks := strings.Split(out, "\n\n")
	require.Len(t, chunks, 2)
	require.Len(t, []rune(chunks[0]), maxParagraphLength)
	require.Len(t, []rune(chunks[1]), 101)
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestMobile_TrimsWhitespaceAfterCut(t *testing.T) {
	out := Mobile(strings.Repeat("x", maxParagraphLength) + "\nnext words")

	chunks := strings.Split(out, "\n\n")
	require.Len(t, chunks, 2)
	require.Equal(t, "next words", chunks[1])
}

func TestMobile_NoSpaceHardCutsAtThreshold(t *testing.T) {
	text := strings.Repeat("x", maxParagraphLength*2+50)
	out := Mobile(text)

	chunks := strings.Split(out, "\n\n")
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], maxParagraphLength)
	require.Len(t, chunks[1], maxParagraphLength)
	require.Len(t, chunks[2], 50)
	require.Equal(t, text, strings.Join(chunks, ""))
}
