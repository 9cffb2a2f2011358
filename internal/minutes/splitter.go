package minutes

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/opengovaccess/votewatch/internal/domain"
)

// Section is one candidate legislative item carved out of a minutes
// document, spanning from just after its file-number marker to the start of
// the next marker.
type Section struct {
	FileNumber string
	Title      string
	Status     domain.LegislationStatus
	VoteCounts map[domain.VoteType]int
	Text       string
}

var (
	fileNumberRe = regexp.MustCompile(`(?i)File\s+(?:No\.|#)\s*(\d+)`)
	titleLineRe  = regexp.MustCompile(`^[^\n]{10,200}`)

	ayeCountRe     = regexp.MustCompile(`(?i)(\d+)\s+ayes?`)
	noCountRe      = regexp.MustCompile(`(?i)(\d+)\s+no(?:es)?`)
	abstainCountRe = regexp.MustCompile(`(?i)(\d+)\s+abstain`)
	absentCountRe  = regexp.MustCompile(`(?i)(\d+)\s+absent`)
)

// Split carves minutes text into per-item sections, one per file-number
// marker occurrence, in document order. Duplicate file numbers are not
// deduplicated here; callers dedupe by file number before persistence.
func Split(text string) []Section {
	matches := fileNumberRe.FindAllStringSubmatchIndex(text, -1)
	sections := make([]Section, 0, len(matches))

	for i, m := range matches {
		fileNumber := text[m[2]:m[3]]

		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sectionText := text[start:end]

		sections = append(sections, Section{
			FileNumber: fileNumber,
			Title:      extractTitle(sectionText, fileNumber),
			Status:     extractStatus(sectionText),
			VoteCounts: extractVoteCounts(sectionText),
			Text:       sectionText,
		})
	}

	return sections
}

// extractTitle takes the first non-empty line of 10-200 characters, falling
// back to a synthesized "Item <fileNumber>" title.
func extractTitle(sectionText, fileNumber string) string {
	if m := titleLineRe.FindString(strings.TrimSpace(sectionText)); m != "" {
		return strings.TrimSpace(m)
	}
	return "Item " + fileNumber
}

// statusKeywords in scan order; the leftmost occurrence in the section text
// wins. No precedence beyond position exists when keywords co-occur.
var statusKeywords = []struct {
	keyword string
	status  domain.LegislationStatus
}{
	{"approved", domain.StatusApproved},
	{"passed", domain.StatusApproved},
	{"rejected", domain.StatusRejected},
	{"failed", domain.StatusRejected},
	{"continued", domain.StatusPending},
	{"withdrawn", domain.StatusPending},
}

func extractStatus(sectionText string) domain.LegislationStatus {
	lower := strings.ToLower(sectionText)

	best := -1
	status := domain.StatusPending
	for _, kw := range statusKeywords {
		if idx := strings.Index(lower, kw.keyword); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			status = kw.status
		}
	}
	return status
}

// extractVoteCounts matches each tally phrase independently. A key is
// present only if its phrase matched; absence is not zero.
func extractVoteCounts(sectionText string) map[domain.VoteType]int {
	counts := make(map[domain.VoteType]int)

	for vote, re := range map[domain.VoteType]*regexp.Regexp{
		domain.VoteAye:     ayeCountRe,
		domain.VoteNo:      noCountRe,
		domain.VoteAbstain: abstainCountRe,
		domain.VoteAbsent:  absentCountRe,
	} {
		if m := re.FindStringSubmatch(sectionText); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				counts[vote] = n
			}
		}
	}

	return counts
}
