package brackets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pairs-tournament/models"
)

func openCategory(t *testing.T, n int, settings models.CategorySettings) models.Category {
	t.Helper()
	c := models.Category{ID: "cat-1", Name: "Mixed A", Settings: settings, Status: InitialStatus(settings)}
	for _, team := range makeTeams(n) {
		var err error
		c, err = RegisterTeam(c, team)
		require.NoError(t, err)
	}
	return c
}

func TestInitialStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.CategoryRegistrationOpen, InitialStatus(models.CategorySettings{}))
	assert.Equal(t, models.CategoryManualSetup, InitialStatus(models.CategorySettings{IsManual: true}))
}

func TestLifecycle_NineTeams(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 9, models.CategorySettings{})
	c, err := CloseRegistration(c)
	require.NoError(t, err)
	c, err = DrawZones(c)
	require.NoError(t, err)
	require.Len(t, c.Zones, 3)
	assert.Equal(t, models.CategoryZonesDrawn, c.Status)

	_, err = StartPlayoffs(c)
	require.ErrorIs(t, err, ErrZonesIncomplete)

	c = playZones(t, c)
	c, err = StartPlayoffs(c)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryInPlay, c.Status)

	// three zone winners: one bye and one semifinal match
	require.Len(t, c.Rounds, 1)
	first := c.Rounds[0]
	assert.Equal(t, models.RoundSemifinals, first.Name)
	assert.Equal(t, []string{"t00"}, teamIDs(first.TeamsWithByes))
	require.Len(t, first.Matches, 1)
	assert.Equal(t, "t01", first.Matches[0].SideA.TeamID)
	assert.Equal(t, "t02", first.Matches[0].SideB.TeamID)

	_, err = AdvanceBracket(c)
	require.ErrorIs(t, err, ErrIncompleteRound)

	c = playOpenRounds(t, c)
	c, err = AdvanceBracket(c)
	require.NoError(t, err)
	require.Len(t, c.Rounds, 2)
	final := c.Rounds[1]
	assert.Equal(t, models.RoundFinal, final.Name)
	assert.Equal(t, "R2_M1", final.Matches[0].ID)

	_, err = FinishCategory(c)
	require.ErrorIs(t, err, ErrIncompleteRound)

	c = playOpenRounds(t, c)
	_, err = AdvanceBracket(c)
	require.ErrorIs(t, err, ErrBracketComplete)

	c, err = FinishCategory(c)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFinished, c.Status)
	require.Len(t, c.Finishers, 3)
	assert.Equal(t, "t00", c.Finishers[0].Team.ID)
	assert.Equal(t, "t01", c.Finishers[1].Team.ID)
	assert.Equal(t, "t02", c.Finishers[2].Team.ID)
	assert.Equal(t, 3, c.Finishers[2].Position)
}

func TestLifecycle_EightTeamsWithThirdPlace(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 8, models.CategorySettings{})
	c, err := CloseRegistration(c)
	require.NoError(t, err)
	c, err = DrawZones(c)
	require.NoError(t, err)
	c = playZones(t, c)
	c, err = StartPlayoffs(c)
	require.NoError(t, err)

	// qualifiers t00 t01 t03 t02: semis t00-t02 and t01-t03
	semis := c.Rounds[0]
	require.Len(t, semis.Matches, 2)
	assert.Equal(t, "t00", semis.Matches[0].SideA.TeamID)
	assert.Equal(t, "t02", semis.Matches[0].SideB.TeamID)

	c = playOpenRounds(t, c)
	c, err = AdvanceBracket(c)
	require.NoError(t, err)
	require.Len(t, c.Rounds, 3)

	// finish the final only
	c, err = RecordScore(c, c.Rounds[1].Matches[0].ID, sideBWins())
	require.NoError(t, err)
	_, err = FinishCategory(c)
	require.ErrorIs(t, err, ErrIncompleteRound)

	c = playOpenRounds(t, c)
	c, err = FinishCategory(c)
	require.NoError(t, err)
	require.Len(t, c.Finishers, 4)
	got := make([]string, 0, 4)
	for i, f := range c.Finishers {
		assert.Equal(t, i+1, f.Position)
		got = append(got, f.Team.ID)
	}
	assert.Equal(t, []string{"t01", "t00", "t02", "t03"}, got)
}

func TestRegisterTeam(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 2, models.CategorySettings{})
	_, err := RegisterTeam(c, makeTeams(1)[0])
	assert.ErrorIs(t, err, ErrDuplicateTeam)

	closed, err := CloseRegistration(c)
	require.NoError(t, err)
	_, err = RegisterTeam(closed, models.NewNamedTeam("Late"))
	assert.ErrorIs(t, err, ErrWrongStatus)
	assert.Len(t, c.Teams, 2)

	_, err = CloseRegistration(closed)
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestDrawZones_Errors(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 4, models.CategorySettings{})
	_, err := DrawZones(c)
	assert.ErrorIs(t, err, ErrWrongStatus)

	empty := models.Category{Status: models.CategoryRegistrationClosed}
	_, err = DrawZones(empty)
	assert.ErrorIs(t, err, ErrNoTeams)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSetupManualZones(t *testing.T) {
	t.Parallel()

	settings := models.CategorySettings{IsManual: true, FixedFormatZones: true}
	c := models.Category{Name: "Open", Settings: settings, Status: InitialStatus(settings)}

	_, err := SetupManualZones(c, []ManualZone{{Name: "North", TeamNames: []string{"Solo", " "}}})
	require.ErrorIs(t, err, ErrInsufficientData)

	c, err = SetupManualZones(c, []ManualZone{
		{Name: "North", TeamNames: []string{"Ruiz / Lima", "Paz / Soto", "Gil / Vega", "Rey / Cano"}},
		{TeamNames: []string{"Diaz / Mora", "Ortiz / Ramos", "Leon / Cruz"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryZonesDrawn, c.Status)
	require.Len(t, c.Zones, 2)
	assert.Equal(t, "North", c.Zones[0].Name)
	assert.Equal(t, "Zone B", c.Zones[1].Name)
	assert.Len(t, c.Teams, 7)
	assert.Len(t, c.Zones[0].Matches, 4)
	assert.Len(t, c.Zones[1].Matches, 3)

	_, err = SetupManualZones(c, nil)
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestRecordScore_FixedFormatResolvesPlaceholders(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 4, models.CategorySettings{FixedFormatZones: true})
	c, err := CloseRegistration(c)
	require.NoError(t, err)
	c, err = DrawZones(c)
	require.NoError(t, err)

	_, err = RecordScore(c, "ZA_M3", sideAWins())
	require.ErrorIs(t, err, ErrPreconditionNotMet)

	c, err = RecordScore(c, "ZA_M1", sideBWins())
	require.NoError(t, err)
	c, err = RecordScore(c, "ZA_M2", sideAWins())
	require.NoError(t, err)

	m3 := c.Zones[0].Matches[2]
	assert.Equal(t, "t02", m3.SideA.TeamID)
	assert.Equal(t, "t01", m3.SideB.TeamID)

	c = playZones(t, c)
	rows, err := ComputeStandings(c.Zones[0])
	require.NoError(t, err)
	assert.Equal(t, "t02", rows[0].Team.ID)
}

func TestRecordScore_FixedFormatCorrectionResetsDependentMatches(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 4, models.CategorySettings{FixedFormatZones: true})
	c, err := CloseRegistration(c)
	require.NoError(t, err)
	c, err = DrawZones(c)
	require.NoError(t, err)
	c = playZones(t, c)

	m3 := c.Zones[0].Matches[2]
	require.Equal(t, "t00", m3.SideA.TeamID)
	require.True(t, m3.IsFinished())

	// same winner, new score: later matches keep their results
	c, err = RecordScore(c, "ZA_M1", ScoreUpdate{ScoreA: []int{7, 6}, ScoreB: []int{5, 0}, Status: models.MatchStatusFinished})
	require.NoError(t, err)
	assert.True(t, c.Zones[0].Matches[2].IsFinished())
	assert.True(t, c.Zones[0].Matches[3].IsFinished())

	c, err = RecordScore(c, "ZA_M1", sideBWins())
	require.NoError(t, err)

	matches := c.Zones[0].Matches
	assert.True(t, matches[1].IsFinished(), "ZA_M2 does not depend on ZA_M1")
	for _, m := range matches[2:] {
		assert.Equal(t, models.MatchStatusPending, m.Status, m.ID)
		assert.Empty(t, m.ScoreA, m.ID)
		assert.Empty(t, m.ScoreB, m.ID)
	}
	assert.Equal(t, "t02", matches[2].SideA.TeamID)
	assert.Equal(t, "t00", matches[3].SideA.TeamID)

	rows, err := ComputeStandings(c.Zones[0])
	require.NoError(t, err)
	for _, r := range rows {
		assert.LessOrEqual(t, r.Played, 1, r.Team.ID)
	}

	_, err = StartPlayoffs(c)
	assert.ErrorIs(t, err, ErrZonesIncomplete)
}

func TestRecordScore_Validation(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 3, models.CategorySettings{})
	c, err := CloseRegistration(c)
	require.NoError(t, err)

	_, err = RecordScore(c, "ZA_M1", sideAWins())
	require.ErrorIs(t, err, ErrWrongStatus)

	c, err = DrawZones(c)
	require.NoError(t, err)

	tests := []struct {
		name   string
		update ScoreUpdate
		want   error
	}{
		{"unknown status", ScoreUpdate{Status: "abandoned"}, ErrInvalidScore},
		{"uneven sets", ScoreUpdate{ScoreA: []int{6}, ScoreB: []int{6, 2}, Status: models.MatchStatusInProgress}, ErrInvalidScore},
		{"too many sets", ScoreUpdate{ScoreA: []int{6, 1, 6, 6}, ScoreB: []int{1, 6, 1, 1}, Status: models.MatchStatusFinished}, ErrInvalidScore},
		{"finished without sets", ScoreUpdate{Status: models.MatchStatusFinished}, ErrInvalidScore},
		{"negative games", ScoreUpdate{ScoreA: []int{-1}, ScoreB: []int{6}, Status: models.MatchStatusInProgress}, ErrInvalidScore},
		{"no winner", ScoreUpdate{ScoreA: []int{6, 3}, ScoreB: []int{3, 6}, Status: models.MatchStatusFinished}, ErrUndecidedMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RecordScore(c, "ZA_M1", tt.update)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrDataIntegrity)
			assert.Equal(t, c, out)
		})
	}

	_, err = RecordScore(c, "ZA_M9", sideAWins())
	assert.ErrorIs(t, err, ErrUnknownMatch)
}

func TestRecordScore_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	c := openCategory(t, 3, models.CategorySettings{})
	c, err := CloseRegistration(c)
	require.NoError(t, err)
	c, err = DrawZones(c)
	require.NoError(t, err)

	at := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)
	court := "Court 2"
	update := ScoreUpdate{ScoreA: []int{4}, ScoreB: []int{2}, Status: models.MatchStatusInProgress, ScheduledAt: &at, Place: &court}
	out, err := RecordScore(c, "ZA_M1", update)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusPending, c.Zones[0].Matches[0].Status)
	assert.Nil(t, c.Zones[0].Matches[0].ScoreA)

	m := out.Zones[0].Matches[0]
	assert.Equal(t, models.MatchStatusInProgress, m.Status)
	assert.Equal(t, []int{4}, m.ScoreA)
	require.NotNil(t, m.ScheduledAt)
	assert.True(t, at.Equal(*m.ScheduledAt))
	require.NotNil(t, m.Place)
	assert.Equal(t, "Court 2", *m.Place)

	update.ScoreA[0] = 5
	assert.Equal(t, []int{4}, out.Zones[0].Matches[0].ScoreA)
}

func TestRecordScore_AdvancedRoundIsLocked(t *testing.T) {
	t.Parallel()

	teams := makeTeams(4)
	c := models.Category{Status: models.CategoryInPlay, Teams: teams, Rounds: BuildBracket(teams)}
	c = playOpenRounds(t, c)
	c, err := AdvanceBracket(c)
	require.NoError(t, err)

	_, err = RecordScore(c, "R1_M1", sideBWins())
	require.ErrorIs(t, err, ErrPreconditionNotMet)

	// both terminal rounds stay editable
	_, err = RecordScore(c, "R2_M1", sideBWins())
	require.NoError(t, err)
	_, err = RecordScore(c, "R3_M1", sideBWins())
	require.NoError(t, err)
}

func TestStartPlayoffs_NotEnoughQualifiers(t *testing.T) {
	t.Parallel()

	c := models.Category{
		Status: models.CategoryZonesDrawn,
		Zones:  []models.Zone{{Name: "Zone A", Teams: makeTeams(1)}},
	}
	_, err := StartPlayoffs(c)
	assert.ErrorIs(t, err, ErrNotEnoughQualifiers)
}

func TestFinishCategory_Errors(t *testing.T) {
	t.Parallel()

	_, err := FinishCategory(models.Category{Status: models.CategoryZonesDrawn})
	assert.ErrorIs(t, err, ErrWrongStatus)

	teams := makeTeams(4)
	c := models.Category{Status: models.CategoryInPlay, Teams: teams, Rounds: BuildBracket(teams)}
	_, err = FinishCategory(c)
	assert.ErrorIs(t, err, ErrIncompleteRound)
}

func TestDrawTournament(t *testing.T) {
	t.Parallel()

	ready := openCategory(t, 6, models.CategorySettings{})
	ready, err := CloseRegistration(ready)
	require.NoError(t, err)
	open := openCategory(t, 4, models.CategorySettings{})
	emptyClosed := models.Category{Name: "Empty", Status: models.CategoryRegistrationClosed}

	tour := models.Tournament{ID: "t-1", Name: "Spring Open", Categories: []models.Category{ready, open, emptyClosed}}
	out, err := DrawTournament(tour)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryZonesDrawn, out.Categories[0].Status)
	assert.Len(t, out.Categories[0].Zones, 2)
	assert.Equal(t, models.CategoryRegistrationOpen, out.Categories[1].Status)
	assert.Equal(t, models.CategoryRegistrationClosed, out.Categories[2].Status)
	assert.Equal(t, models.StatusActive, out.Status)

	assert.Equal(t, models.CategoryRegistrationClosed, tour.Categories[0].Status)

	_, err = DrawTournament(out)
	assert.ErrorIs(t, err, ErrNoDrawableCategories)
}
