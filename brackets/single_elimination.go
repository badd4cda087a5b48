package brackets

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dosada05/pairs-tournament/models"
)

// BuildBracket creates the first elimination round from qualifiers already
// ordered by rank. The top (bracketSize - n) qualifiers skip the round with a
// bye; the rest are paired best against worst. Fewer than two qualifiers
// yield no rounds.
func BuildBracket(qualifiers []models.Team) []models.PlayoffRound {
	n := len(qualifiers)
	if n < 2 {
		return []models.PlayoffRound{}
	}

	size := BracketSize(n)
	numByes := size - n

	round := models.PlayoffRound{
		Name:          RoundNameFor(size),
		TeamsWithByes: append([]models.Team(nil), qualifiers[:numByes]...),
	}

	remaining := qualifiers[numByes:]
	m := len(remaining)
	round.Matches = make([]models.Match, 0, m/2)
	for i := 0; i < m/2; i++ {
		round.Matches = append(round.Matches, playoffMatch(1, i+1, remaining[i], remaining[m-1-i]))
	}
	return []models.PlayoffRound{round}
}

// BracketSize is the smallest power of two holding n teams.
func BracketSize(n int) int {
	if n <= 1 {
		return 1
	}
	numRounds := int(math.Ceil(math.Log2(float64(n))))
	return 1 << uint(numRounds)
}

// RoundNameFor names a round by how many teams enter it.
func RoundNameFor(teamCount int) models.RoundName {
	switch size := BracketSize(teamCount); size {
	case 1, 2:
		return models.RoundFinal
	case 4:
		return models.RoundSemifinals
	case 8:
		return models.RoundQuarters
	default:
		return models.RoundName(fmt.Sprintf("Round of %d", size))
	}
}

// AdvanceRound computes the rounds that follow the last completed one.
// Leaving a two-match Semifinals produces a Final and a
// Third-and-Fourth-Place round; every other round produces exactly one.
func AdvanceRound(category models.Category) ([]models.PlayoffRound, error) {
	last, ok := category.LastRound()
	if !ok {
		return nil, ErrNoBracket
	}
	if last.IsTerminal() {
		return nil, fmt.Errorf("%w: last round is %s", ErrBracketComplete, last.Name)
	}
	if !last.AllFinished() {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteRound, last.Name)
	}

	teams := category.TeamIndex()
	nextNo := len(category.Rounds) + 1

	if last.Name == models.RoundSemifinals && len(last.Matches) == 2 {
		w1, l1, err := decide(last.Matches[0], teams)
		if err != nil {
			return nil, err
		}
		w2, l2, err := decide(last.Matches[1], teams)
		if err != nil {
			return nil, err
		}
		return []models.PlayoffRound{
			{Name: models.RoundFinal, Matches: []models.Match{playoffMatch(nextNo, 1, w1, w2)}},
			{Name: models.RoundThirdPlace, Matches: []models.Match{playoffMatch(nextNo+1, 1, l1, l2)}},
		}, nil
	}

	advancing := make([]models.Team, 0, len(last.Matches)+len(last.TeamsWithByes))
	for _, m := range last.Matches {
		winner, _, err := decide(m, teams)
		if err != nil {
			return nil, err
		}
		advancing = append(advancing, winner)
	}
	advancing = append(advancing, last.TeamsWithByes...)

	if len(advancing) == 0 || len(advancing)%2 != 0 {
		return nil, fmt.Errorf("%w: %d teams after %s", ErrOddTeamCount, len(advancing), last.Name)
	}

	sort.SliceStable(advancing, func(i, j int) bool { return advancing[i].Name < advancing[j].Name })

	next := models.PlayoffRound{
		Name:    RoundNameFor(len(advancing)),
		Matches: make([]models.Match, 0, len(advancing)/2),
	}
	for i := 0; i < len(advancing); i += 2 {
		next.Matches = append(next.Matches, playoffMatch(nextNo, i/2+1, advancing[i], advancing[i+1]))
	}
	return []models.PlayoffRound{next}, nil
}

func decide(m models.Match, teams map[string]models.Team) (winner, loser models.Team, err error) {
	w, l, ok := m.Winner()
	if !ok {
		return models.Team{}, models.Team{}, fmt.Errorf("%w: %s", ErrUndecidedMatch, m.ID)
	}
	winner, okW := teams[w.TeamID]
	loser, okL := teams[l.TeamID]
	if !w.IsTeam() || !l.IsTeam() || !okW || !okL {
		return models.Team{}, models.Team{}, fmt.Errorf("%w: match %s", ErrUnknownTeam, m.ID)
	}
	return winner, loser, nil
}

func playoffMatch(roundNo, order int, a, b models.Team) models.Match {
	return models.Match{
		ID:     fmt.Sprintf("R%d_M%d", roundNo, order),
		Order:  order,
		SideA:  models.TeamSlot(a.ID),
		SideB:  models.TeamSlot(b.ID),
		Status: models.MatchStatusPending,
	}
}
