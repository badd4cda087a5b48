package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pairs-tournament/models"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{ID: fmt.Sprintf("t%02d", i), Name: fmt.Sprintf("Team %02d", i)}
	}
	return teams
}

func withClub(t models.Team, club string) models.Team {
	t.Club = &club
	return t
}

func teamIDs(teams []models.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.ID
	}
	return out
}

// sideAWins is a finished 6-3 6-4 result for side A.
func sideAWins() ScoreUpdate {
	return ScoreUpdate{ScoreA: []int{6, 6}, ScoreB: []int{3, 4}, Status: models.MatchStatusFinished}
}

func sideBWins() ScoreUpdate {
	return ScoreUpdate{ScoreA: []int{3, 4}, ScoreB: []int{6, 6}, Status: models.MatchStatusFinished}
}

func finished(id, a, b string, scoreA, scoreB []int) models.Match {
	return models.Match{
		ID:     id,
		SideA:  models.TeamSlot(a),
		SideB:  models.TeamSlot(b),
		Status: models.MatchStatusFinished,
		ScoreA: scoreA,
		ScoreB: scoreB,
	}
}

// playZones finishes every zone match with side A winning.
func playZones(t *testing.T, c models.Category) models.Category {
	t.Helper()
	for {
		pending := ""
		for _, z := range c.Zones {
			for _, m := range z.Matches {
				if !m.IsFinished() {
					pending = m.ID
					break
				}
			}
			if pending != "" {
				break
			}
		}
		if pending == "" {
			return c
		}
		var err error
		c, err = RecordScore(c, pending, sideAWins())
		require.NoError(t, err)
	}
}

// playOpenRounds finishes every pending playoff match with side A winning.
func playOpenRounds(t *testing.T, c models.Category) models.Category {
	t.Helper()
	for _, r := range c.Rounds {
		for _, m := range r.Matches {
			if m.IsFinished() {
				continue
			}
			var err error
			c, err = RecordScore(c, m.ID, sideAWins())
			require.NoError(t, err)
		}
	}
	return c
}
