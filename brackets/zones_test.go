package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pairs-tournament/models"
)

func TestZoneSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n      int
		fours  int
		threes int
	}{
		{n: 6, fours: 0, threes: 2},
		{n: 7, fours: 1, threes: 1},
		{n: 8, fours: 2, threes: 0},
		{n: 9, fours: 0, threes: 3},
		{n: 10, fours: 1, threes: 2},
		{n: 11, fours: 2, threes: 1},
		{n: 12, fours: 3, threes: 0},
		{n: 13, fours: 1, threes: 3},
		{n: 22, fours: 4, threes: 2},
	}
	for _, tt := range tests {
		sizes := zoneSizes(tt.n)
		fours, threes, sum := 0, 0, 0
		for _, s := range sizes {
			switch s {
			case 4:
				fours++
			case 3:
				threes++
			default:
				t.Fatalf("n=%d: unexpected zone size %d", tt.n, s)
			}
			sum += s
		}
		assert.Equal(t, tt.n, sum, "n=%d", tt.n)
		assert.Equal(t, tt.fours, fours, "n=%d fours", tt.n)
		assert.Equal(t, tt.threes, threes, "n=%d threes", tt.n)
	}
}

func TestAllocateZones_SizesAlwaysThreeOrFour(t *testing.T) {
	t.Parallel()

	for n := 6; n <= 40; n++ {
		zones := AllocateZones(makeTeams(n), models.CategorySettings{})
		total := 0
		for _, z := range zones {
			require.Contains(t, []int{3, 4}, len(z.Teams), "n=%d zone %s", n, z.Name)
			total += len(z.Teams)
		}
		require.Equal(t, n, total, "n=%d", n)
	}
}

func TestAllocateZones_SmallCategories(t *testing.T) {
	t.Parallel()

	assert.Empty(t, AllocateZones(nil, models.CategorySettings{}))

	for n := 1; n <= 5; n++ {
		zones := AllocateZones(makeTeams(n), models.CategorySettings{})
		require.Len(t, zones, 1)
		assert.Len(t, zones[0].Teams, n)
		assert.Len(t, zones[0].Matches, n*(n-1)/2)
	}
}

func TestAllocateZones_SnakeOrder(t *testing.T) {
	t.Parallel()

	zones := AllocateZones(makeTeams(8), models.CategorySettings{})
	require.Len(t, zones, 2)
	assert.Equal(t, "Zone A", zones[0].Name)
	assert.Equal(t, "Zone B", zones[1].Name)
	assert.Equal(t, []string{"t00", "t03", "t04", "t07"}, teamIDs(zones[0].Teams))
	assert.Equal(t, []string{"t01", "t02", "t05", "t06"}, teamIDs(zones[1].Teams))
}

func TestAllocateZones_SeedsTakeFirstSlot(t *testing.T) {
	t.Parallel()

	zones := AllocateZones(makeTeams(8), models.CategorySettings{UseSeedings: true})
	require.Len(t, zones, 2)
	assert.Equal(t, []string{"t00", "t02", "t05", "t06"}, teamIDs(zones[0].Teams))
	assert.Equal(t, []string{"t01", "t03", "t04", "t07"}, teamIDs(zones[1].Teams))
}

func TestAllocateZones_NineTeamsMakeThreeZonesOfThree(t *testing.T) {
	t.Parallel()

	zones := AllocateZones(makeTeams(9), models.CategorySettings{})
	require.Len(t, zones, 3)
	for _, z := range zones {
		assert.Len(t, z.Teams, 3)
		assert.Len(t, z.Matches, 3)
	}
}

func TestAllocateZones_RepairsClubConflict(t *testing.T) {
	t.Parallel()

	teams := makeTeams(8)
	teams[0] = withClub(teams[0], "Padel Norte")
	teams[3] = withClub(teams[3], "Padel Norte")

	plain := AllocateZones(teams, models.CategorySettings{})
	require.Equal(t, 1, ClubConflicts(plain[0]))

	zones := AllocateZones(teams, models.CategorySettings{AvoidClubConflicts: true})
	seen := map[string]bool{}
	for _, z := range zones {
		assert.Zero(t, ClubConflicts(z), z.Name)
		for _, team := range z.Teams {
			seen[team.ID] = true
		}
		assert.Len(t, z.Matches, 6)
	}
	assert.Len(t, seen, 8)
}

func TestAllocateZones_RepairKeepsSeedsInPlace(t *testing.T) {
	t.Parallel()

	teams := makeTeams(8)
	teams[0] = withClub(teams[0], "Club X")
	teams[2] = withClub(teams[2], "Club X")

	zones := AllocateZones(teams, models.CategorySettings{UseSeedings: true, AvoidClubConflicts: true})
	assert.Equal(t, "t00", zones[0].Teams[0].ID)
	assert.Equal(t, "t01", zones[1].Teams[0].ID)
	for _, z := range zones {
		assert.Zero(t, ClubConflicts(z), z.Name)
	}
}

func TestAllocateZones_UnresolvableConflictsAreBestEffort(t *testing.T) {
	t.Parallel()

	teams := makeTeams(8)
	for i := range teams {
		teams[i] = withClub(teams[i], "Everyone")
	}

	zones := AllocateZones(teams, models.CategorySettings{AvoidClubConflicts: true})
	require.Len(t, zones, 2)
	total := 0
	for _, z := range zones {
		total += len(z.Teams)
		assert.Equal(t, 3, ClubConflicts(z))
	}
	assert.Equal(t, 8, total)
}

func TestZoneLetter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", zoneLetter(0))
	assert.Equal(t, "Z", zoneLetter(25))
	assert.Equal(t, "AA", zoneLetter(26))
	assert.Equal(t, "AB", zoneLetter(27))
}
