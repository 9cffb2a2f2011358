package transcript

import (
	"sort"
	"strings"

	"github.com/opengovaccess/votewatch/internal/domain"
)

// ToMarkdown renders segments as footnoted text. Each timestamped segment
// gets a marker formed by replacing ":" with "-" in its timestamp; a
// definition block at the end maps markers back to the original timestamps,
// sorted lexicographically by marker key. Rendering is a pure function of
// the segment list.
func ToMarkdown(segments []domain.TranscriptSegment, includeTimestamps bool) string {
	var lines []string
	footnotes := make(map[string]string)

	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if seg.Timestamp != "" && includeTimestamps {
			key := strings.ReplaceAll(seg.Timestamp, ":", "-")
			lines = append(lines, seg.Text+"[^"+key+"]")
			footnotes[key] = seg.Timestamp
		} else {
			lines = append(lines, seg.Text)
		}
	}

	if len(footnotes) > 0 {
		lines = append(lines, "\n---\n")

		keys := make([]string, 0, len(footnotes))
		for key := range footnotes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			lines = append(lines, "[^"+key+"]: "+footnotes[key])
		}
	}

	return strings.Join(lines, "\n\n")
}

// Convert parses transcript markup and renders it in one step.
func Convert(htmlContent string, includeTimestamps bool) (string, error) {
	segments, err := ExtractSegments(htmlContent)
	if err != nil {
		return "", err
	}
	return ToMarkdown(segments, includeTimestamps), nil
}
