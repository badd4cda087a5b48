package models

type Zone struct {
	Name    string  `json:"name"`
	Teams   []Team  `json:"teams"`
	Matches []Match `json:"matches"`
}

// AllFinished reports whether every match of the zone has been played.
func (z Zone) AllFinished() bool {
	for _, m := range z.Matches {
		if !m.IsFinished() {
			return false
		}
	}
	return true
}

func (z Zone) HasTeam(teamID string) bool {
	for _, t := range z.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

// StandingRow is one line of a zone table.
type StandingRow struct {
	Team         Team `json:"team"`
	Played       int  `json:"played"`
	Won          int  `json:"won"`
	Lost         int  `json:"lost"`
	SetsFor      int  `json:"sets_for"`
	SetsAgainst  int  `json:"sets_against"`
	GamesFor     int  `json:"games_for"`
	GamesAgainst int  `json:"games_against"`
	Points       int  `json:"points"`
}

func (r StandingRow) SetDifference() int {
	return r.SetsFor - r.SetsAgainst
}

func (r StandingRow) GameDifference() int {
	return r.GamesFor - r.GamesAgainst
}

func (z Zone) clone() Zone {
	out := Zone{Name: z.Name}
	out.Teams = append([]Team(nil), z.Teams...)
	out.Matches = cloneMatches(z.Matches)
	return out
}

func cloneMatches(in []Match) []Match {
	if in == nil {
		return nil
	}
	out := make([]Match, len(in))
	for i, m := range in {
		out[i] = m.clone()
	}
	return out
}
