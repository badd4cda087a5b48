package models

type RoundName string

const (
	RoundFinal      RoundName = "Final"
	RoundThirdPlace RoundName = "Third-and-Fourth-Place"
	RoundSemifinals RoundName = "Semifinals"
	RoundQuarters   RoundName = "Quarterfinals"
)

type PlayoffRound struct {
	Name          RoundName `json:"name"`
	Matches       []Match   `json:"matches"`
	TeamsWithByes []Team    `json:"teams_with_byes,omitempty"`
}

// IsTerminal reports whether no round can follow this one.
func (r PlayoffRound) IsTerminal() bool {
	return r.Name == RoundFinal || r.Name == RoundThirdPlace
}

func (r PlayoffRound) AllFinished() bool {
	for _, m := range r.Matches {
		if !m.IsFinished() {
			return false
		}
	}
	return true
}

func (r PlayoffRound) clone() PlayoffRound {
	return PlayoffRound{
		Name:          r.Name,
		Matches:       cloneMatches(r.Matches),
		TeamsWithByes: append([]Team(nil), r.TeamsWithByes...),
	}
}

// Finisher is a final placement, 1 to 4.
type Finisher struct {
	Position int  `json:"position"`
	Team     Team `json:"team"`
}
