package brackets

import (
	"github.com/Dosada05/pairs-tournament/models"
)

// singleZoneLimit is the largest team count drawn into one zone.
const singleZoneLimit = 5

type placement struct {
	team models.Team
	seed bool
}

// AllocateZones partitions teams into zones of 3 or 4 and schedules each
// zone. Up to five teams share a single zone. Placement order is the input
// order; with seedings the first team of each zone is pinned to slot 1.
func AllocateZones(teams []models.Team, settings models.CategorySettings) []models.Zone {
	if len(teams) == 0 {
		return []models.Zone{}
	}

	sizes := zoneSizes(len(teams))
	slots := make([][]placement, len(sizes))
	for i, size := range sizes {
		slots[i] = make([]placement, 0, size)
	}

	rest := teams
	if settings.UseSeedings {
		for i := range slots {
			slots[i] = append(slots[i], placement{team: teams[i], seed: true})
		}
		rest = teams[len(slots):]
	}
	snakePlace(slots, sizes, rest)

	if settings.AvoidClubConflicts && len(slots) > 1 {
		repairClubConflicts(slots, 2*len(slots))
	}

	zones := make([]models.Zone, len(slots))
	for i, zoneSlots := range slots {
		zoneTeams := make([]models.Team, len(zoneSlots))
		for j, p := range zoneSlots {
			zoneTeams[j] = p.team
		}
		zones[i] = models.Zone{
			Name:    "Zone " + zoneLetter(i),
			Teams:   zoneTeams,
			Matches: ScheduleZone(i, zoneTeams, settings),
		}
	}
	return zones
}

// zoneSizes applies the remainder rule: n mod 4 decides how many 3-team
// zones are needed, the rest hold 4 teams. 4-team zones come first.
func zoneSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n <= singleZoneLimit {
		return []int{n}
	}

	threes := 0
	switch n % 4 {
	case 1:
		threes = 3
	case 2:
		threes = 2
	case 3:
		threes = 1
	}
	fours := (n - 3*threes) / 4

	sizes := make([]int, 0, fours+threes)
	for i := 0; i < fours; i++ {
		sizes = append(sizes, 4)
	}
	for i := 0; i < threes; i++ {
		sizes = append(sizes, 3)
	}
	return sizes
}

// snakePlace distributes teams boustrophedon style: even rounds go left to
// right, odd rounds right to left. Full zones are skipped.
func snakePlace(slots [][]placement, sizes []int, teams []models.Team) {
	next := 0
	for round := 0; next < len(teams); round++ {
		for k := 0; k < len(slots) && next < len(teams); k++ {
			z := k
			if round%2 == 1 {
				z = len(slots) - 1 - k
			}
			if len(slots[z]) >= sizes[z] {
				continue
			}
			slots[z] = append(slots[z], placement{team: teams[next]})
			next++
		}
	}
}

// repairClubConflicts is a bounded local search. Each iteration performs at
// most one swap; it stops early once no swap is possible. Conflicts may remain.
func repairClubConflicts(slots [][]placement, maxIterations int) {
	for i := 0; i < maxIterations; i++ {
		if !swapOneConflict(slots) {
			return
		}
	}
}

func swapOneConflict(slots [][]placement) bool {
	for src := range slots {
		for _, ti := range conflictingPositions(slots[src]) {
			club := slots[src][ti].team.ClubName()
			for dst := range slots {
				if dst == src {
					continue
				}
				for tj, candidate := range slots[dst] {
					if candidate.seed || zoneHasClub(slots[dst], club, tj) {
						continue
					}
					if cc := candidate.team.ClubName(); cc != "" && zoneHasClub(slots[src], cc, ti) {
						continue
					}
					slots[src][ti], slots[dst][tj] = slots[dst][tj], slots[src][ti]
					return true
				}
			}
		}
	}
	return false
}

// conflictingPositions lists non-seed positions whose club already appears
// earlier in the same zone.
func conflictingPositions(zone []placement) []int {
	var out []int
	seen := make(map[string]bool, len(zone))
	for i, p := range zone {
		club := p.team.ClubName()
		if club == "" {
			continue
		}
		if seen[club] && !p.seed {
			out = append(out, i)
		}
		seen[club] = true
	}
	return out
}

func zoneHasClub(zone []placement, club string, skip int) bool {
	if club == "" {
		return false
	}
	for i, p := range zone {
		if i != skip && p.team.ClubName() == club {
			return true
		}
	}
	return false
}

// ClubConflicts counts, per zone, the teams sharing a club with an earlier team.
func ClubConflicts(zone models.Zone) int {
	seen := make(map[string]bool, len(zone.Teams))
	conflicts := 0
	for _, t := range zone.Teams {
		club := t.ClubName()
		if club == "" {
			continue
		}
		if seen[club] {
			conflicts++
		}
		seen[club] = true
	}
	return conflicts
}

// zoneLetter maps 0 -> A, 25 -> Z, 26 -> AA.
func zoneLetter(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
