package minutes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovaccess/votewatch/internal/domain"
)

const sampleMinutes = `BOARD OF SUPERVISORS
Regular Meeting Minutes

File No. 250210
Ordinance amending the Planning Code to rezone parcels along the transit corridor.
On motion, the ordinance was APPROVED.
8 ayes, 3 noes

File #250211
Resolution commending the public library system for expanded hours.
The resolution was continued to the next regular meeting.
`

func TestSplit(t *testing.T) {
	t.Run("one section per marker in document order", func(t *testing.T) {
		sections := Split(sampleMinutes)
		require.Len(t, sections, 2)

		assert.Equal(t, "250210", sections[0].FileNumber)
		assert.Equal(t, "250211", sections[1].FileNumber)
	})

	t.Run("title is first qualifying line", func(t *testing.T) {
		sections := Split(sampleMinutes)
		require.Len(t, sections, 2)

		assert.Equal(t, "Ordinance amending the Planning Code to rezone parcels along the transit corridor.", sections[0].Title)
		assert.Equal(t, "Resolution commending the public library system for expanded hours.", sections[1].Title)
	})

	t.Run("title falls back to synthesized item name", func(t *testing.T) {
		sections := Split("File No. 99\nshort\n")
		require.Len(t, sections, 1)
		assert.Equal(t, "Item 99", sections[0].Title)
	})

	t.Run("statuses", func(t *testing.T) {
		sections := Split(sampleMinutes)
		require.Len(t, sections, 2)

		assert.Equal(t, domain.StatusApproved, sections[0].Status)
		assert.Equal(t, domain.StatusPending, sections[1].Status)
	})

	t.Run("vote counts present only when phrase matched", func(t *testing.T) {
		sections := Split(sampleMinutes)
		require.Len(t, sections, 2)

		assert.Equal(t, map[domain.VoteType]int{
			domain.VoteAye: 8,
			domain.VoteNo:  3,
		}, sections[0].VoteCounts)

		_, hasAbstain := sections[0].VoteCounts[domain.VoteAbstain]
		_, hasAbsent := sections[0].VoteCounts[domain.VoteAbsent]
		assert.False(t, hasAbstain)
		assert.False(t, hasAbsent)
	})

	t.Run("duplicate file numbers are kept", func(t *testing.T) {
		text := "File No. 7\nFirst occurrence of the duplicated item.\nFile No. 7\nSecond occurrence of the duplicated item.\n"
		sections := Split(text)
		require.Len(t, sections, 2)
		assert.Equal(t, sections[0].FileNumber, sections[1].FileNumber)
	})

	t.Run("no markers yields no sections", func(t *testing.T) {
		assert.Empty(t, Split("Minutes with no legislative items at all."))
	})
}

func TestExtractStatus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.LegislationStatus
	}{
		{"approved", "the motion was APPROVED unanimously", domain.StatusApproved},
		{"passed", "finally passed on second reading", domain.StatusApproved},
		{"rejected", "the ordinance was rejected", domain.StatusRejected},
		{"failed", "the motion failed", domain.StatusRejected},
		{"continued", "continued to the call of the chair", domain.StatusPending},
		{"withdrawn", "withdrawn by the sponsor", domain.StatusPending},
		{"no keyword defaults to pending", "referred to committee", domain.StatusPending},
		{"leftmost keyword wins", "REJECTED; a later amendment was approved", domain.StatusRejected},
		{"approved before other keywords", "APPROVED, then the appeal failed", domain.StatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractStatus(tt.text))
		})
	}
}

func TestExtractVoteCounts(t *testing.T) {
	counts := extractVoteCounts("7 ayes, 2 noes, 1 abstain, 1 absent")

	assert.Equal(t, map[domain.VoteType]int{
		domain.VoteAye:     7,
		domain.VoteNo:      2,
		domain.VoteAbstain: 1,
		domain.VoteAbsent:  1,
	}, counts)

	assert.Empty(t, extractVoteCounts("no tallies recorded here"))
}
