package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam(t *testing.T) {
	t.Parallel()

	blank := "  "
	team := NewTeam(Player{Name: "Ana María Ruiz"}, Player{Name: "Lucía Paz"}, &blank)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Ruiz / Paz", team.Name)
	assert.Nil(t, team.Club)
	assert.Equal(t, "", team.ClubName())

	club := " Padel Norte "
	other := NewTeam(Player{Name: "A B"}, Player{Name: "C D"}, &club)
	assert.NotEqual(t, team.ID, other.ID)
	assert.Equal(t, "Padel Norte", other.ClubName())
}

func TestMatchWinner(t *testing.T) {
	t.Parallel()

	m := Match{SideA: TeamSlot("a"), SideB: TeamSlot("b"), ScoreA: []int{6, 2, 7}, ScoreB: []int{4, 6, 5}}
	_, _, ok := m.Winner()
	assert.False(t, ok, "unfinished match has no winner")

	m.Status = MatchStatusFinished
	w, l, ok := m.Winner()
	require.True(t, ok)
	assert.Equal(t, "a", w.TeamID)
	assert.Equal(t, "b", l.TeamID)

	a, b := m.Games()
	assert.Equal(t, 15, a)
	assert.Equal(t, 15, b)

	m.ScoreA, m.ScoreB = []int{6, 6}, []int{6, 6}
	_, _, ok = m.Winner()
	assert.False(t, ok)
}

func TestMatchInvolves(t *testing.T) {
	t.Parallel()

	m := Match{SideA: TeamSlot("a"), SideB: PlaceholderSlot("Winner Match 1", "ZA_M1", OutcomeWinner)}
	assert.True(t, m.Involves("a"))
	assert.False(t, m.Involves(""))
	assert.False(t, m.SideB.IsTeam())
	assert.False(t, ByeSlot().IsTeam())
}

func TestCategoryClone(t *testing.T) {
	t.Parallel()

	c := Category{
		Teams: []Team{{ID: "a"}, {ID: "b"}},
		Zones: []Zone{{
			Name:    "Zone A",
			Teams:   []Team{{ID: "a"}, {ID: "b"}},
			Matches: []Match{{ID: "ZA_M1", SideA: TeamSlot("a"), SideB: TeamSlot("b"), ScoreA: []int{6}, ScoreB: []int{1}}},
		}},
		Rounds: []PlayoffRound{{Name: RoundFinal, Matches: []Match{{ID: "R1_M1"}}}},
	}
	cp := c.Clone()
	cp.Teams[0].Name = "changed"
	cp.Zones[0].Matches[0].ScoreA[0] = 0
	cp.Rounds[0].Matches[0].Status = MatchStatusFinished

	assert.Empty(t, c.Teams[0].Name)
	assert.Equal(t, 6, c.Zones[0].Matches[0].ScoreA[0])
	assert.Empty(t, c.Rounds[0].Matches[0].Status)
}

func TestTournamentDeriveStatus(t *testing.T) {
	t.Parallel()

	tour := Tournament{}
	assert.Equal(t, StatusActive, tour.DeriveStatus())

	tour.Categories = []Category{{Status: CategoryFinished}, {Status: CategoryInPlay}}
	assert.Equal(t, StatusActive, tour.DeriveStatus())

	tour.Categories[1].Status = CategoryFinished
	assert.Equal(t, StatusFinished, tour.DeriveStatus())

	tour.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, tour.DeriveStatus())
}

func TestStandingRowDifferences(t *testing.T) {
	t.Parallel()

	r := StandingRow{SetsFor: 3, SetsAgainst: 4, GamesFor: 30, GamesAgainst: 25}
	assert.Equal(t, -1, r.SetDifference())
	assert.Equal(t, 5, r.GameDifference())
}
