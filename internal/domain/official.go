package domain

import (
	"time"

	"github.com/google/uuid"
)

type OfficialType string

const (
	OfficialSupervisor OfficialType = "supervisor"
	OfficialMayor      OfficialType = "mayor"
)

// Official is an elected official. Seed data: the ingestion core only reads
// the roster, it never creates or mutates officials.
type Official struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      OfficialType `json:"type"`
	District  int          `json:"district,omitempty"`
	Initials  string       `json:"initials,omitempty"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"createdAt"`
}

// MatchName is the name form the vote extractor matches against minutes
// text, the family name for officials published as "Supervisor <surname>".
func (o Official) MatchName() string {
	for i := len(o.Name) - 1; i >= 0; i-- {
		if o.Name[i] == ' ' {
			return o.Name[i+1:]
		}
	}
	return o.Name
}
