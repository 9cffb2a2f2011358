package votes

import (
	"regexp"
	"sort"
	"strings"

	"github.com/opengovaccess/votewatch/internal/domain"
)

// Strategy tags which heuristic produced a candidate action.
type Strategy string

const (
	StrategyRollCall Strategy = "roll_call"
	StrategyMention  Strategy = "mention"
)

// CandidateAction is one heuristic's claim that an official acted on the
// item under extraction. Candidates are reconciled by a Policy before they
// become persisted actions.
type CandidateAction struct {
	Official domain.Official
	Type     domain.ActionType
	Vote     domain.VoteType
	Strategy Strategy
}

// Roster maps a matchable name (typically the surname published in minutes)
// to the official. Matching is substring-based, not token-boundary-based; a
// name that substring-matches unrelated text can yield false positives.
type Roster map[string]domain.Official

// NewRoster indexes officials by their matchable name.
func NewRoster(officials []domain.Official) Roster {
	r := make(Roster, len(officials))
	for _, o := range officials {
		r[o.MatchName()] = o
	}
	return r
}

// sortedNames gives a stable iteration order so extraction output, and with
// it first-wins reconciliation, is deterministic.
func (r Roster) sortedNames() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rollCallLabels are the published vote-label forms, each paired with its
// canonical vote type. The label expressions follow the source format
// "Ayes: Chan, Peskin; Noes: Stefani."
var rollCallLabels = []struct {
	pattern *regexp.Regexp
	vote    domain.VoteType
}{
	{regexp.MustCompile(`(?i)ayes?:\s*([^.;]+)`), domain.VoteAye},
	{regexp.MustCompile(`(?i)no(?:es)?:\s*([^.;]+)`), domain.VoteNo},
	{regexp.MustCompile(`(?i)abstain:\s*([^.;]+)`), domain.VoteAbstain},
	{regexp.MustCompile(`(?i)absent:\s*([^.;]+)`), domain.VoteAbsent},
	{regexp.MustCompile(`(?i)excused:\s*([^.;]+)`), domain.VoteExcused},
}

// mentionVocabulary maps narrative vote tokens to vote types. Tokens outside
// the vocabulary emit nothing.
var mentionVocabulary = map[string]domain.VoteType{
	"aye":     domain.VoteAye,
	"yes":     domain.VoteAye,
	"no":      domain.VoteNo,
	"nay":     domain.VoteNo,
	"abstain": domain.VoteAbstain,
	"absent":  domain.VoteAbsent,
}

// Extract runs both heuristics over the section text and reconciles their
// candidates under the given policy.
func Extract(sectionText string, roster Roster, policy Policy) []CandidateAction {
	candidates := append(
		extractRollCall(sectionText, roster),
		extractMentions(sectionText, roster)...,
	)
	return policy.Reconcile(candidates)
}

// extractRollCall finds grouped roll-call lists such as
// "Ayes: Chan, Peskin, Preston" and emits one candidate per roster name
// found in the captured name list.
func extractRollCall(text string, roster Roster) []CandidateAction {
	var candidates []CandidateAction

	for _, label := range rollCallLabels {
		m := label.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		names := strings.ToLower(m[1])

		for _, matchName := range roster.sortedNames() {
			if strings.Contains(names, strings.ToLower(matchName)) {
				candidates = append(candidates, CandidateAction{
					Official: roster[matchName],
					Type:     domain.ActionVote,
					Vote:     label.vote,
					Strategy: StrategyRollCall,
				})
			}
		}
	}

	return candidates
}

// extractMentions finds narrative statements such as
// "Supervisor Preston voted aye" for each roster official.
func extractMentions(text string, roster Roster) []CandidateAction {
	var candidates []CandidateAction

	for _, matchName := range roster.sortedNames() {
		pattern := regexp.MustCompile(`(?i)(?:Supervisor\s+)?` + regexp.QuoteMeta(matchName) + `\s+(?:voted\s+)?(\w+)`)
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		vote, ok := mentionVocabulary[strings.ToLower(m[1])]
		if !ok {
			continue
		}

		candidates = append(candidates, CandidateAction{
			Official: roster[matchName],
			Type:     domain.ActionVote,
			Vote:     vote,
			Strategy: StrategyMention,
		})
	}

	return candidates
}
