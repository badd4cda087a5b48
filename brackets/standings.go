package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/pairs-tournament/models"
)

const (
	pointsForWin  = 2
	pointsForLoss = 1
)

// ComputeStandings ranks a zone by points, then set difference, then game
// difference. Remaining ties keep the zone's team order. Only finished
// matches count; a finished match naming a team outside the zone is an error.
func ComputeStandings(zone models.Zone) ([]models.StandingRow, error) {
	rows := make([]models.StandingRow, len(zone.Teams))
	position := make(map[string]int, len(zone.Teams))
	for i, t := range zone.Teams {
		rows[i] = models.StandingRow{Team: t}
		position[t.ID] = i
	}

	for _, m := range zone.Matches {
		if !m.IsFinished() {
			continue
		}
		if !m.SideA.IsTeam() || !m.SideB.IsTeam() {
			return nil, fmt.Errorf("%w: finished match %s in %s has an unresolved slot", ErrUnknownTeam, m.ID, zone.Name)
		}
		ia, okA := position[m.SideA.TeamID]
		ib, okB := position[m.SideB.TeamID]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: match %s references a team outside %s", ErrUnknownTeam, m.ID, zone.Name)
		}

		setsA, setsB := m.SetsWon()
		if setsA == setsB {
			return nil, fmt.Errorf("%w: match %s in %s", ErrUndecidedMatch, m.ID, zone.Name)
		}
		gamesA, gamesB := m.Games()

		a, b := &rows[ia], &rows[ib]
		a.Played++
		b.Played++
		a.SetsFor += setsA
		a.SetsAgainst += setsB
		b.SetsFor += setsB
		b.SetsAgainst += setsA
		a.GamesFor += gamesA
		a.GamesAgainst += gamesB
		b.GamesFor += gamesB
		b.GamesAgainst += gamesA

		winner, loser := a, b
		if setsB > setsA {
			winner, loser = b, a
		}
		winner.Won++
		winner.Points += pointsForWin
		loser.Lost++
		loser.Points += pointsForLoss
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].SetDifference() != rows[j].SetDifference() {
			return rows[i].SetDifference() > rows[j].SetDifference()
		}
		return rows[i].GameDifference() > rows[j].GameDifference()
	})
	return rows, nil
}

// Qualifiers picks the teams advancing from zone play, ordered for
// BuildBracket: every zone's first place by zone name, then every second
// place, and so on.
func Qualifiers(category models.Category) ([]models.Team, error) {
	zones := append([]models.Zone(nil), category.Zones...)
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })

	perZone := qualifiersPerZone(category.Settings, zones)

	tables := make([][]models.StandingRow, len(zones))
	for i, z := range zones {
		rows, err := ComputeStandings(z)
		if err != nil {
			return nil, err
		}
		tables[i] = rows
	}

	var out []models.Team
	for rank := 0; rank < perZone; rank++ {
		for _, rows := range tables {
			if rank < len(rows) {
				out = append(out, rows[rank].Team)
			}
		}
	}
	return out, nil
}

// qualifiersPerZone: one zone sends up to four teams, two zones send two
// each, three or more zones send their winners.
func qualifiersPerZone(settings models.CategorySettings, zones []models.Zone) int {
	if settings.QualifiersPerZone > 0 {
		return settings.QualifiersPerZone
	}
	switch len(zones) {
	case 0:
		return 0
	case 1:
		return min(4, len(zones[0].Teams))
	case 2:
		return 2
	default:
		return 1
	}
}
