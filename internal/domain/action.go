package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionVote      ActionType = "vote"
	ActionSponsor   ActionType = "sponsor"
	ActionCoSponsor ActionType = "co_sponsor"
	ActionPropose   ActionType = "propose"
)

type VoteType string

const (
	VoteAye     VoteType = "aye"
	VoteNo      VoteType = "no"
	VoteAbstain VoteType = "abstain"
	VoteAbsent  VoteType = "absent"
	VoteExcused VoteType = "excused"
)

// Action is one official's act on one legislative item. Actions are
// append-only: once extracted and stored they are never updated.
type Action struct {
	ID            uuid.UUID  `json:"id"`
	LegislationID uuid.UUID  `json:"legislationId"`
	OfficialID    uuid.UUID  `json:"officialId"`
	MeetingID     uuid.UUID  `json:"meetingId,omitempty"`
	Type          ActionType `json:"type"`
	Vote          VoteType   `json:"vote,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Validate enforces the vote invariant: a vote action must carry a vote
// value, any other action type must not.
func (a Action) Validate() error {
	if a.Type == ActionVote && a.Vote == "" {
		return fmt.Errorf("action of type %s requires a vote value", a.Type)
	}
	if a.Type != ActionVote && a.Vote != "" {
		return fmt.Errorf("action of type %s must not carry a vote value", a.Type)
	}
	return nil
}
