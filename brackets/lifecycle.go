package brackets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/pairs-tournament/models"
)

const maxGamesPerSet = 99

// ManualZone is an organizer-defined zone: a name and the names of its teams.
type ManualZone struct {
	Name      string   `json:"name" yaml:"name"`
	TeamNames []string `json:"team_names" yaml:"team_names"`
}

// ScoreUpdate replaces the score, status and schedule of one match.
type ScoreUpdate struct {
	ScoreA      []int
	ScoreB      []int
	Status      models.MatchStatus
	ScheduledAt *time.Time
	Place       *string
}

// InitialStatus is the first status of a new category.
func InitialStatus(settings models.CategorySettings) models.CategoryStatus {
	if settings.IsManual {
		return models.CategoryManualSetup
	}
	return models.CategoryRegistrationOpen
}

// Every lifecycle function below works on a copy: on error the caller's
// category is untouched, on success the updated copy is returned.

func RegisterTeam(category models.Category, team models.Team) (models.Category, error) {
	if category.Status != models.CategoryRegistrationOpen {
		return category, wrongStatus(string(category.Status), string(models.CategoryRegistrationOpen))
	}
	for _, t := range category.Teams {
		if t.ID == team.ID {
			return category, fmt.Errorf("%w: %s", ErrDuplicateTeam, team.ID)
		}
	}
	out := category.Clone()
	out.Teams = append(out.Teams, team)
	return out, nil
}

func CloseRegistration(category models.Category) (models.Category, error) {
	if category.Status != models.CategoryRegistrationOpen {
		return category, wrongStatus(string(category.Status), string(models.CategoryRegistrationOpen))
	}
	out := category.Clone()
	out.Status = models.CategoryRegistrationClosed
	return out, nil
}

// DrawZones partitions the registered teams into zones and schedules them.
func DrawZones(category models.Category) (models.Category, error) {
	if category.Status != models.CategoryRegistrationClosed {
		return category, wrongStatus(string(category.Status), string(models.CategoryRegistrationClosed))
	}
	if len(category.Teams) == 0 {
		return category, fmt.Errorf("%w: category %s", ErrNoTeams, category.Name)
	}
	out := category.Clone()
	out.Zones = AllocateZones(out.Teams, out.Settings)
	out.Status = models.CategoryZonesDrawn
	return out, nil
}

// SetupManualZones creates teams from the given names and schedules a round
// robin (or fixed format) in each zone.
func SetupManualZones(category models.Category, zones []ManualZone) (models.Category, error) {
	if category.Status != models.CategoryManualSetup {
		return category, wrongStatus(string(category.Status), string(models.CategoryManualSetup))
	}
	if len(zones) == 0 {
		return category, fmt.Errorf("%w: no zones given", ErrInsufficientData)
	}

	out := category.Clone()
	out.Zones = make([]models.Zone, 0, len(zones))
	for i, mz := range zones {
		teams := make([]models.Team, 0, len(mz.TeamNames))
		for _, name := range mz.TeamNames {
			if strings.TrimSpace(name) == "" {
				continue
			}
			teams = append(teams, models.NewNamedTeam(name))
		}
		if len(teams) < 2 {
			return category, fmt.Errorf("%w: zone %q needs at least 2 teams", ErrInsufficientData, mz.Name)
		}
		name := strings.TrimSpace(mz.Name)
		if name == "" {
			name = "Zone " + zoneLetter(i)
		}
		out.Teams = append(out.Teams, teams...)
		out.Zones = append(out.Zones, models.Zone{
			Name:    name,
			Teams:   teams,
			Matches: ScheduleZone(i, teams, out.Settings),
		})
	}
	out.Status = models.CategoryZonesDrawn
	return out, nil
}

// RecordScore updates one zone match (while zones are being played) or one
// playoff match (while the bracket is being played).
func RecordScore(category models.Category, matchID string, update ScoreUpdate) (models.Category, error) {
	if err := validateScore(update); err != nil {
		return category, err
	}

	switch category.Status {
	case models.CategoryZonesDrawn:
		for zi, z := range category.Zones {
			for mi, m := range z.Matches {
				if m.ID != matchID {
					continue
				}
				updated, err := applyScore(m, update)
				if err != nil {
					return category, err
				}
				out := category.Clone()
				out.Zones[zi].Matches[mi] = updated
				out.Zones[zi] = ResolveZonePlaceholders(out.Zones[zi])
				return out, nil
			}
		}
	case models.CategoryInPlay:
		for ri, r := range category.Rounds {
			for mi, m := range r.Matches {
				if m.ID != matchID {
					continue
				}
				if ri < len(category.Rounds)-1 && !r.IsTerminal() {
					return category, fmt.Errorf("%w: %s already advanced", ErrPreconditionNotMet, r.Name)
				}
				updated, err := applyScore(m, update)
				if err != nil {
					return category, err
				}
				out := category.Clone()
				out.Rounds[ri].Matches[mi] = updated
				return out, nil
			}
		}
	default:
		return category, wrongStatus(string(category.Status), string(models.CategoryZonesDrawn), string(models.CategoryInPlay))
	}
	return category, fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
}

func validateScore(update ScoreUpdate) error {
	switch update.Status {
	case models.MatchStatusPending, models.MatchStatusInProgress, models.MatchStatusFinished:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidScore, update.Status)
	}
	if len(update.ScoreA) != len(update.ScoreB) {
		return fmt.Errorf("%w: %d sets against %d", ErrInvalidScore, len(update.ScoreA), len(update.ScoreB))
	}
	if len(update.ScoreA) > models.SetsPerMatch {
		return fmt.Errorf("%w: at most %d sets", ErrInvalidScore, models.SetsPerMatch)
	}
	if update.Status == models.MatchStatusFinished && len(update.ScoreA) == 0 {
		return fmt.Errorf("%w: finished match needs at least one set", ErrInvalidScore)
	}
	for i := range update.ScoreA {
		if update.ScoreA[i] < 0 || update.ScoreB[i] < 0 || update.ScoreA[i] > maxGamesPerSet || update.ScoreB[i] > maxGamesPerSet {
			return fmt.Errorf("%w: set %d out of range", ErrInvalidScore, i+1)
		}
	}
	return nil
}

func applyScore(m models.Match, update ScoreUpdate) (models.Match, error) {
	if update.Status != models.MatchStatusPending && (!m.SideA.IsTeam() || !m.SideB.IsTeam()) {
		return m, fmt.Errorf("%w: match %s is waiting on earlier results", ErrPreconditionNotMet, m.ID)
	}
	out := m
	out.ScoreA = append([]int(nil), update.ScoreA...)
	out.ScoreB = append([]int(nil), update.ScoreB...)
	out.Status = update.Status
	if update.ScheduledAt != nil {
		at := *update.ScheduledAt
		out.ScheduledAt = &at
	}
	if update.Place != nil {
		p := *update.Place
		out.Place = &p
	}
	if out.IsFinished() {
		if _, _, ok := out.Winner(); !ok {
			return m, fmt.Errorf("%w: %s", ErrUndecidedMatch, m.ID)
		}
	}
	return out, nil
}

// StartPlayoffs closes zone play and builds the first bracket round.
func StartPlayoffs(category models.Category) (models.Category, error) {
	if category.Status != models.CategoryZonesDrawn {
		return category, wrongStatus(string(category.Status), string(models.CategoryZonesDrawn))
	}
	for _, z := range category.Zones {
		if !z.AllFinished() {
			return category, fmt.Errorf("%w: %s", ErrZonesIncomplete, z.Name)
		}
	}

	qualifiers, err := Qualifiers(category)
	if err != nil {
		return category, err
	}
	rounds := BuildBracket(qualifiers)
	if len(rounds) == 0 {
		return category, fmt.Errorf("%w: got %d", ErrNotEnoughQualifiers, len(qualifiers))
	}

	out := category.Clone()
	out.Rounds = rounds
	out.Status = models.CategoryInPlay
	return out, nil
}

// AdvanceBracket appends the next round(s) once the last round is complete.
func AdvanceBracket(category models.Category) (models.Category, error) {
	if category.Status != models.CategoryInPlay {
		return category, wrongStatus(string(category.Status), string(models.CategoryInPlay))
	}
	next, err := AdvanceRound(category)
	if err != nil {
		return category, err
	}
	out := category.Clone()
	out.Rounds = append(out.Rounds, next...)
	return out, nil
}

// FinishCategory records the finishers once the Final (and the
// Third-and-Fourth-Place match, when there is one) has been played.
func FinishCategory(category models.Category) (models.Category, error) {
	if category.Status != models.CategoryInPlay {
		return category, wrongStatus(string(category.Status), string(models.CategoryInPlay))
	}
	final, ok := category.RoundByName(models.RoundFinal)
	if !ok {
		return category, fmt.Errorf("%w: final not scheduled yet", ErrIncompleteRound)
	}
	third, hasThird := category.RoundByName(models.RoundThirdPlace)
	if !final.AllFinished() || (hasThird && !third.AllFinished()) {
		return category, fmt.Errorf("%w: final matches pending", ErrIncompleteRound)
	}
	if len(final.Matches) != 1 {
		return category, fmt.Errorf("%w: final has %d matches", ErrDataIntegrity, len(final.Matches))
	}

	teams := category.TeamIndex()
	champion, runnerUp, err := decide(final.Matches[0], teams)
	if err != nil {
		return category, err
	}
	finishers := []models.Finisher{
		{Position: 1, Team: champion},
		{Position: 2, Team: runnerUp},
	}

	switch {
	case hasThird && len(third.Matches) == 1:
		bronze, fourth, err := decide(third.Matches[0], teams)
		if err != nil {
			return category, err
		}
		finishers = append(finishers,
			models.Finisher{Position: 3, Team: bronze},
			models.Finisher{Position: 4, Team: fourth},
		)
	case !hasThird:
		if semi, ok := category.RoundByName(models.RoundSemifinals); ok && len(semi.Matches) == 1 {
			_, loser, err := decide(semi.Matches[0], teams)
			if err != nil {
				return category, err
			}
			finishers = append(finishers, models.Finisher{Position: 3, Team: loser})
		}
	}

	out := category.Clone()
	out.Finishers = finishers
	out.Status = models.CategoryFinished
	return out, nil
}

// DrawTournament draws every category whose registration is closed.
func DrawTournament(tournament models.Tournament) (models.Tournament, error) {
	out := tournament.Clone()
	drawn := 0
	for i, c := range out.Categories {
		if c.Status != models.CategoryRegistrationClosed || len(c.Teams) == 0 {
			continue
		}
		updated, err := DrawZones(c)
		if err != nil {
			return tournament, fmt.Errorf("draw category %s: %w", c.Name, err)
		}
		out.Categories[i] = updated
		drawn++
	}
	if drawn == 0 {
		return tournament, ErrNoDrawableCategories
	}
	out.Status = out.DeriveStatus()
	return out, nil
}
