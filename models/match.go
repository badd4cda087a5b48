package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
)

// SetsPerMatch is the best-of-3 convention used by every match.
const SetsPerMatch = 3

type SlotKind string

const (
	SlotTeam        SlotKind = "team"
	SlotPlaceholder SlotKind = "placeholder"
	SlotBye         SlotKind = "bye"
)

type Outcome string

const (
	OutcomeWinner Outcome = "winner"
	OutcomeLoser  Outcome = "loser"
)

// Slot is one side of a match: a concrete team, a placeholder waiting on an
// earlier match, or a bye.
type Slot struct {
	Kind          SlotKind `json:"kind"`
	TeamID        string   `json:"team_id,omitempty"`
	Label         string   `json:"label,omitempty"`
	SourceMatchID string   `json:"source_match_id,omitempty"`
	SourceOutcome Outcome  `json:"source_outcome,omitempty"`
}

func TeamSlot(teamID string) Slot {
	return Slot{Kind: SlotTeam, TeamID: teamID}
}

func PlaceholderSlot(label, sourceMatchID string, outcome Outcome) Slot {
	return Slot{Kind: SlotPlaceholder, Label: label, SourceMatchID: sourceMatchID, SourceOutcome: outcome}
}

func ByeSlot() Slot {
	return Slot{Kind: SlotBye}
}

func (s Slot) IsTeam() bool {
	return s.Kind == SlotTeam && s.TeamID != ""
}

type Match struct {
	ID          string      `json:"id"`
	Order       int         `json:"order"`
	SideA       Slot        `json:"side_a"`
	SideB       Slot        `json:"side_b"`
	Status      MatchStatus `json:"status"`
	ScoreA      []int       `json:"score_a,omitempty"`
	ScoreB      []int       `json:"score_b,omitempty"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
	Place       *string     `json:"place,omitempty"`
}

// SetsWon counts, per side, the score entries strictly greater than the
// opponent's entry for the same set.
func (m Match) SetsWon() (a, b int) {
	for i := 0; i < len(m.ScoreA) && i < len(m.ScoreB); i++ {
		switch {
		case m.ScoreA[i] > m.ScoreB[i]:
			a++
		case m.ScoreB[i] > m.ScoreA[i]:
			b++
		}
	}
	return a, b
}

// Games sums every set entry of each side.
func (m Match) Games() (a, b int) {
	for _, g := range m.ScoreA {
		a += g
	}
	for _, g := range m.ScoreB {
		b += g
	}
	return a, b
}

// Winner returns the winning and losing slots. ok is false while the match
// is unfinished or the sets are level.
func (m Match) Winner() (winner, loser Slot, ok bool) {
	if m.Status != MatchStatusFinished {
		return Slot{}, Slot{}, false
	}
	a, b := m.SetsWon()
	switch {
	case a > b:
		return m.SideA, m.SideB, true
	case b > a:
		return m.SideB, m.SideA, true
	default:
		return Slot{}, Slot{}, false
	}
}

func (m Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// Involves reports whether the team plays on either side.
func (m Match) Involves(teamID string) bool {
	return (m.SideA.IsTeam() && m.SideA.TeamID == teamID) || (m.SideB.IsTeam() && m.SideB.TeamID == teamID)
}

func (m Match) clone() Match {
	out := m
	if m.ScoreA != nil {
		out.ScoreA = append([]int(nil), m.ScoreA...)
	}
	if m.ScoreB != nil {
		out.ScoreB = append([]int(nil), m.ScoreB...)
	}
	if m.ScheduledAt != nil {
		at := *m.ScheduledAt
		out.ScheduledAt = &at
	}
	if m.Place != nil {
		p := *m.Place
		out.Place = &p
	}
	return out
}
