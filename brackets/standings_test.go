package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pairs-tournament/models"
)

func threeTeamZone() models.Zone {
	teams := makeTeams(3)
	return models.Zone{
		Name:  "Zone A",
		Teams: teams,
		Matches: []models.Match{
			finished("ZA_M1", "t00", "t01", []int{6, 6}, []int{3, 4}),
			finished("ZA_M2", "t00", "t02", []int{6, 3, 6}, []int{4, 6, 2}),
			finished("ZA_M3", "t01", "t02", []int{2, 6, 7}, []int{6, 4, 5}),
		},
	}
}

func TestComputeStandings(t *testing.T) {
	t.Parallel()

	rows, err := ComputeStandings(threeTeamZone())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "t00", rows[0].Team.ID)
	assert.Equal(t, 4, rows[0].Points)
	assert.Equal(t, 2, rows[0].Won)
	assert.Equal(t, 4, rows[0].SetsFor)
	assert.Equal(t, 1, rows[0].SetsAgainst)
	assert.Equal(t, 27, rows[0].GamesFor)
	assert.Equal(t, 19, rows[0].GamesAgainst)

	assert.Equal(t, "t01", rows[1].Team.ID)
	assert.Equal(t, 3, rows[1].Points)
	assert.Equal(t, "t02", rows[2].Team.ID)
	assert.Equal(t, 2, rows[2].Points)
	assert.Equal(t, 2, rows[2].Played)
}

func TestComputeStandings_IgnoresMatchOrder(t *testing.T) {
	t.Parallel()

	zone := threeTeamZone()
	want, err := ComputeStandings(zone)
	require.NoError(t, err)

	zone.Matches[0], zone.Matches[2] = zone.Matches[2], zone.Matches[0]
	got, err := ComputeStandings(zone)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestComputeStandings_TieBreakers(t *testing.T) {
	t.Parallel()

	zone := models.Zone{
		Name:  "Zone A",
		Teams: makeTeams(4),
		Matches: []models.Match{
			finished("M1", "t00", "t02", []int{6, 4, 6}, []int{4, 6, 4}),
			finished("M2", "t00", "t03", []int{1, 1}, []int{6, 6}),
			finished("M3", "t01", "t03", []int{6, 6}, []int{0, 0}),
			finished("M4", "t01", "t02", []int{0, 0}, []int{6, 6}),
		},
	}
	rows, err := ComputeStandings(zone)
	require.NoError(t, err)

	// every team is 1-1 on 3 points
	for _, r := range rows {
		assert.Equal(t, 3, r.Points, r.Team.ID)
	}
	// t02 +1 sets; t01 and t03 level on sets, games 0 against -2; t00 -1 sets
	assert.Equal(t, []string{"t02", "t01", "t03", "t00"}, []string{
		rows[0].Team.ID, rows[1].Team.ID, rows[2].Team.ID, rows[3].Team.ID,
	})
}

func TestComputeStandings_SkipsUnfinished(t *testing.T) {
	t.Parallel()

	zone := threeTeamZone()
	zone.Matches[2].Status = models.MatchStatusInProgress
	rows, err := ComputeStandings(zone)
	require.NoError(t, err)
	for _, r := range rows {
		if r.Team.ID == "t01" {
			assert.Equal(t, 1, r.Played)
		}
	}
}

func TestComputeStandings_UnknownTeam(t *testing.T) {
	t.Parallel()

	zone := threeTeamZone()
	zone.Matches[0].SideB = models.TeamSlot("ghost")
	_, err := ComputeStandings(zone)
	require.ErrorIs(t, err, ErrUnknownTeam)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestQualifiers(t *testing.T) {
	t.Parallel()

	c := models.Category{Status: models.CategoryRegistrationClosed, Teams: makeTeams(8)}
	c, err := DrawZones(c)
	require.NoError(t, err)
	c = playZones(t, c)

	q, err := Qualifiers(c)
	require.NoError(t, err)
	require.Len(t, q, 4)

	// first places by zone name, then second places
	assert.Equal(t, []string{"t00", "t01", "t03", "t02"}, teamIDs(q))
}

func TestQualifiersPerZone(t *testing.T) {
	t.Parallel()

	zone := func(n int) models.Zone { return models.Zone{Teams: makeTeams(n)} }

	assert.Equal(t, 0, qualifiersPerZone(models.CategorySettings{}, nil))
	assert.Equal(t, 3, qualifiersPerZone(models.CategorySettings{}, []models.Zone{zone(3)}))
	assert.Equal(t, 4, qualifiersPerZone(models.CategorySettings{}, []models.Zone{zone(5)}))
	assert.Equal(t, 2, qualifiersPerZone(models.CategorySettings{}, []models.Zone{zone(4), zone(4)}))
	assert.Equal(t, 1, qualifiersPerZone(models.CategorySettings{}, []models.Zone{zone(3), zone(3), zone(3)}))
	assert.Equal(t, 2, qualifiersPerZone(models.CategorySettings{QualifiersPerZone: 2}, []models.Zone{zone(3), zone(3), zone(3)}))
}
