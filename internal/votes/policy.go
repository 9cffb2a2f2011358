package votes

import "fmt"

// Policy reconciles candidates when both extraction strategies claim an
// action for the same official on the same item. The source system emitted
// both claims; the policy here is an explicit configuration choice.
type Policy interface {
	Name() string
	Reconcile(candidates []CandidateAction) []CandidateAction
}

// ParsePolicy resolves a configured policy name.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "roll_call_wins":
		return PolicyRollCallWins{}, nil
	case "first_wins":
		return PolicyFirstWins{}, nil
	case "keep_all":
		return PolicyKeepAll{}, nil
	default:
		return nil, fmt.Errorf("unknown reconciliation policy: %s", name)
	}
}

// PolicyKeepAll keeps every emission, duplicates included, and leaves
// resolution to the caller.
type PolicyKeepAll struct{}

func (PolicyKeepAll) Name() string { return "keep_all" }

func (PolicyKeepAll) Reconcile(candidates []CandidateAction) []CandidateAction {
	return candidates
}

// PolicyFirstWins keeps the first emission per official and action type.
type PolicyFirstWins struct{}

func (PolicyFirstWins) Name() string { return "first_wins" }

func (PolicyFirstWins) Reconcile(candidates []CandidateAction) []CandidateAction {
	type key struct {
		name       string
		actionType string
	}
	seen := make(map[key]bool)

	kept := make([]CandidateAction, 0, len(candidates))
	for _, c := range candidates {
		k := key{name: c.Official.Name, actionType: string(c.Type)}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, c)
	}
	return kept
}

// PolicyRollCallWins prefers the roll-call emission for an official when
// both strategies emitted one; otherwise the mention emission stands. The
// published roll-call grouping is the more structured signal, so it is the
// default.
type PolicyRollCallWins struct{}

func (PolicyRollCallWins) Name() string { return "roll_call_wins" }

func (PolicyRollCallWins) Reconcile(candidates []CandidateAction) []CandidateAction {
	type key struct {
		name       string
		actionType string
	}
	fromRollCall := make(map[key]bool)
	for _, c := range candidates {
		if c.Strategy == StrategyRollCall {
			fromRollCall[key{name: c.Official.Name, actionType: string(c.Type)}] = true
		}
	}

	seen := make(map[key]bool)
	kept := make([]CandidateAction, 0, len(candidates))
	for _, c := range candidates {
		k := key{name: c.Official.Name, actionType: string(c.Type)}
		if c.Strategy != StrategyRollCall && fromRollCall[k] {
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, c)
	}
	return kept
}
