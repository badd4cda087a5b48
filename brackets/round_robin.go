package brackets

import (
	"fmt"

	"github.com/Dosada05/pairs-tournament/models"
)

// fixedFormatSize is the only zone size the fixed 4-match format supports.
const fixedFormatSize = 4

// ScheduleZone creates the matches of one zone. zoneIndex only feeds the
// match UIDs ("ZA_M1", "ZB_M3", ...).
//
// A 4-team zone with FixedFormatZones plays seed1-seed3, seed2-seed4, then
// winners and losers of those two. Every other zone plays a single round robin.
func ScheduleZone(zoneIndex int, teams []models.Team, settings models.CategorySettings) []models.Match {
	prefix := "Z" + zoneLetter(zoneIndex)
	if settings.FixedFormatZones && len(teams) == fixedFormatSize {
		return fixedFormatMatches(prefix, teams)
	}
	return roundRobinMatches(prefix, teams)
}

func roundRobinMatches(prefix string, teams []models.Team) []models.Match {
	n := len(teams)
	matches := make([]models.Match, 0, n*(n-1)/2)
	order := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			order++
			matches = append(matches, models.Match{
				ID:     matchUID(prefix, order),
				Order:  order,
				SideA:  models.TeamSlot(teams[i].ID),
				SideB:  models.TeamSlot(teams[j].ID),
				Status: models.MatchStatusPending,
			})
		}
	}
	return matches
}

func fixedFormatMatches(prefix string, teams []models.Team) []models.Match {
	m1 := matchUID(prefix, 1)
	m2 := matchUID(prefix, 2)
	return []models.Match{
		{
			ID: m1, Order: 1, Status: models.MatchStatusPending,
			SideA: models.TeamSlot(teams[0].ID),
			SideB: models.TeamSlot(teams[2].ID),
		},
		{
			ID: m2, Order: 2, Status: models.MatchStatusPending,
			SideA: models.TeamSlot(teams[1].ID),
			SideB: models.TeamSlot(teams[3].ID),
		},
		{
			ID: matchUID(prefix, 3), Order: 3, Status: models.MatchStatusPending,
			SideA: models.PlaceholderSlot("Winner Match 1", m1, models.OutcomeWinner),
			SideB: models.PlaceholderSlot("Winner Match 2", m2, models.OutcomeWinner),
		},
		{
			ID: matchUID(prefix, 4), Order: 4, Status: models.MatchStatusPending,
			SideA: models.PlaceholderSlot("Loser Match 1", m1, models.OutcomeLoser),
			SideB: models.PlaceholderSlot("Loser Match 2", m2, models.OutcomeLoser),
		},
	}
}

// ResolveZonePlaceholders fills slots that wait on an earlier match with the
// concrete winner or loser once that match is decided. Slots keep their source
// so a corrected earlier result is picked up again; a match whose teams change
// that way goes back to pending with its score cleared.
func ResolveZonePlaceholders(zone models.Zone) models.Zone {
	byID := make(map[string]models.Match, len(zone.Matches))
	for _, m := range zone.Matches {
		byID[m.ID] = m
	}

	resolve := func(s models.Slot) models.Slot {
		if s.SourceMatchID == "" {
			return s
		}
		src, ok := byID[s.SourceMatchID]
		if !ok {
			return s
		}
		placeholder := models.PlaceholderSlot(s.Label, s.SourceMatchID, s.SourceOutcome)
		winner, loser, decided := src.Winner()
		if !decided {
			return placeholder
		}
		picked := winner
		if s.SourceOutcome == models.OutcomeLoser {
			picked = loser
		}
		if !picked.IsTeam() {
			return placeholder
		}
		resolved := placeholder
		resolved.Kind = models.SlotTeam
		resolved.TeamID = picked.TeamID
		return resolved
	}

	out := zone
	out.Matches = make([]models.Match, len(zone.Matches))
	for i, m := range zone.Matches {
		sideA, sideB := resolve(m.SideA), resolve(m.SideB)
		if sideA.TeamID != m.SideA.TeamID || sideB.TeamID != m.SideB.TeamID {
			m.Status = models.MatchStatusPending
			m.ScoreA, m.ScoreB = nil, nil
		}
		m.SideA, m.SideB = sideA, sideB
		out.Matches[i] = m
	}
	return out
}

func matchUID(prefix string, order int) string {
	return fmt.Sprintf("%s_M%d", prefix, order)
}
