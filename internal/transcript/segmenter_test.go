package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovaccess/votewatch/internal/domain"
)

const sampleTranscript = `<html><body><div id="divTranscript">
<br><span id="09:00:01"></span>THE MEETING WILL COME TO ORDER.
<br><span id="09:00:15"></span>MADAM CLERK, PLEASE CALL THE ROLL.
<br>SUPERVISOR CHAN? <font>PRESENT.</font>
<br>
<br><span id="09:01:02"></span>ITEM ONE IS NOW BEFORE THE BOARD.
</div></body></html>`

func TestExtractSegments(t *testing.T) {
	t.Run("timestamped segments in document order", func(t *testing.T) {
		segments, err := ExtractSegments(sampleTranscript)
		require.NoError(t, err)
		require.Len(t, segments, 4)

		assert.Equal(t, "THE MEETING WILL COME TO ORDER.", segments[0].Text)
		assert.Equal(t, "09:00:01", segments[0].Timestamp)
		assert.Equal(t, "09:00:15", segments[1].Timestamp)
		assert.Equal(t, "SUPERVISOR CHAN? PRESENT.", segments[2].Text)
		assert.Empty(t, segments[2].Timestamp)
		assert.Equal(t, "09:01:02", segments[3].Timestamp)
	})

	t.Run("missing container falls back to whole input", func(t *testing.T) {
		input := `<br><span id="10:30:00"></span>GOOD MORNING.`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "GOOD MORNING.", segments[0].Text)
		assert.Equal(t, "10:30:00", segments[0].Timestamp)
	})

	t.Run("text before the first break is its own segment", func(t *testing.T) {
		input := `<div id="divTranscript">CALL TO ORDER<br>ROLL CALL</div>`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "CALL TO ORDER", segments[0].Text)
		assert.Equal(t, "ROLL CALL", segments[1].Text)
	})

	t.Run("empty segments are dropped", func(t *testing.T) {
		input := `<div id="divTranscript"><br><br>   <br>ONLY LINE</div>`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "ONLY LINE", segments[0].Text)
	})

	t.Run("first timestamp within a segment wins", func(t *testing.T) {
		input := `<br><span id="11:00:00"></span><span id="11:00:05"></span>TWO MARKERS`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "11:00:00", segments[0].Timestamp)
	})

	t.Run("nested span text that looks like a timestamp is ignored", func(t *testing.T) {
		input := `<br><span id="note">12:00:00</span>ACTUAL TEXT`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "ACTUAL TEXT", segments[0].Text)
		assert.Empty(t, segments[0].Timestamp)
	})

	t.Run("nested block elements do not leak into segments", func(t *testing.T) {
		input := `<div id="divTranscript">
<br><span id="09:00:01"></span>SPOKEN LINE.
<div class="agenda-sidebar"><p>Item 1: Housing ordinance</p></div>
<br>NEXT LINE.
</div>`
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "SPOKEN LINE.", segments[0].Text)
		assert.Equal(t, "NEXT LINE.", segments[1].Text)
	})

	t.Run("entities decoded and whitespace collapsed", func(t *testing.T) {
		input := "<br>ITEM   ONE &amp; ITEM\n\tTWO"
		segments, err := ExtractSegments(input)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "ITEM ONE & ITEM TWO", segments[0].Text)
	})
}

func TestToMarkdown(t *testing.T) {
	t.Run("footnote markers and sorted definitions", func(t *testing.T) {
		segments := []domain.TranscriptSegment{
			{Text: "SECOND ITEM", Timestamp: "09:15:42"},
			{Text: "FIRST ITEM", Timestamp: "00:15:42"},
			{Text: "NO TIMESTAMP"},
		}

		out := ToMarkdown(segments, true)

		assert.Contains(t, out, "SECOND ITEM[^09-15-42]")
		assert.Contains(t, out, "FIRST ITEM[^00-15-42]")
		assert.Contains(t, out, "NO TIMESTAMP\n\n")
		assert.Contains(t, out, "[^00-15-42]: 00:15:42")
		assert.Contains(t, out, "[^09-15-42]: 09:15:42")

		// Definitions sorted lexicographically by marker key.
		assert.Less(t,
			indexOf(out, "[^00-15-42]: 00:15:42"),
			indexOf(out, "[^09-15-42]: 09:15:42"),
		)
	})

	t.Run("no footnote block without timestamps", func(t *testing.T) {
		segments := []domain.TranscriptSegment{{Text: "PLAIN"}}
		assert.Equal(t, "PLAIN", ToMarkdown(segments, true))
	})

	t.Run("timestamps suppressed when disabled", func(t *testing.T) {
		segments := []domain.TranscriptSegment{{Text: "LINE", Timestamp: "10:00:00"}}
		assert.Equal(t, "LINE", ToMarkdown(segments, false))
	})
}

func TestConvertIsDeterministic(t *testing.T) {
	first, err := Convert(sampleTranscript, true)
	require.NoError(t, err)
	second, err := Convert(sampleTranscript, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
