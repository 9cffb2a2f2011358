package votes

import (
	"regexp"
	"sort"
	"strings"

	"github.com/opengovaccess/votewatch/internal/domain"
)

var sponsorsRe = regexp.MustCompile(`(?i)sponsors?:\s*([^.;\n]+)`)

// ExtractSponsors finds a "Sponsors: Mayor Lurie, Sauter" clause in the
// section text. The first roster name in the published list is the primary
// sponsor, later names are co-sponsors. Name order is the order of
// appearance in the clause, not roster order.
func ExtractSponsors(sectionText string, roster Roster) []CandidateAction {
	m := sponsorsRe.FindStringSubmatch(sectionText)
	if m == nil {
		return nil
	}
	clause := strings.ToLower(m[1])

	type hit struct {
		pos      int
		official domain.Official
	}
	var hits []hit
	for _, matchName := range roster.sortedNames() {
		if pos := strings.Index(clause, strings.ToLower(matchName)); pos >= 0 {
			hits = append(hits, hit{pos: pos, official: roster[matchName]})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	candidates := make([]CandidateAction, 0, len(hits))
	for i, h := range hits {
		actionType := domain.ActionCoSponsor
		if i == 0 {
			actionType = domain.ActionSponsor
		}
		candidates = append(candidates, CandidateAction{
			Official: h.official,
			Type:     actionType,
			Strategy: StrategyMention,
		})
	}
	return candidates
}
