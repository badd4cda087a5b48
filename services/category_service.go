package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
)

type RegisterTeamInput struct {
	Player1 models.Player `json:"player1" yaml:"player1" validate:"required"`
	Player2 models.Player `json:"player2" yaml:"player2" validate:"required"`
	Club    *string       `json:"club,omitempty" yaml:"club,omitempty"`
}

// ZoneStandings is the ranked table of one zone.
type ZoneStandings struct {
	Zone string               `json:"zone"`
	Rows []models.StandingRow `json:"rows"`
}

// CategoryService exposes the category lifecycle. Every mutating call is
// serialized per tournament and saved before it returns.
type CategoryService interface {
	Get(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	RegisterTeam(ctx context.Context, tournamentID, categoryID string, input RegisterTeamInput) (*models.Team, error)
	CloseRegistration(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	DrawZones(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	SetupManualZones(ctx context.Context, tournamentID, categoryID string, zones []brackets.ManualZone) (*models.Category, error)
	RecordScore(ctx context.Context, tournamentID, categoryID, matchID string, update brackets.ScoreUpdate) (*models.Category, error)
	StartPlayoffs(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	AdvanceBracket(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	Finish(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)
	Standings(ctx context.Context, tournamentID, categoryID string) ([]ZoneStandings, error)
}

type categoryService struct {
	*mutator
}

func NewCategoryService(deps Dependencies) CategoryService {
	return &categoryService{mutator: newMutator(deps)}
}

func (s *categoryService) Get(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	idx, ok := t.CategoryIndex(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}
	c := t.Categories[idx]
	return &c, nil
}

func (s *categoryService) RegisterTeam(ctx context.Context, tournamentID, categoryID string, input RegisterTeamInput) (*models.Team, error) {
	if input.Player1.Surname() == "" || input.Player2.Surname() == "" {
		return nil, fmt.Errorf("%w: both players need a name", ErrValidationFailed)
	}
	team := models.NewTeam(input.Player1, input.Player2, input.Club)
	_, err := s.mutateCategory(ctx, tournamentID, categoryID, "register_team", func(c models.Category) (models.Category, error) {
		return brackets.RegisterTeam(c, team)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *categoryService) CloseRegistration(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "close_registration", brackets.CloseRegistration)
}

func (s *categoryService) DrawZones(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "draw_zones", brackets.DrawZones)
}

func (s *categoryService) SetupManualZones(ctx context.Context, tournamentID, categoryID string, zones []brackets.ManualZone) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "setup_manual_zones", func(c models.Category) (models.Category, error) {
		return brackets.SetupManualZones(c, zones)
	})
}

func (s *categoryService) RecordScore(ctx context.Context, tournamentID, categoryID, matchID string, update brackets.ScoreUpdate) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "record_score", func(c models.Category) (models.Category, error) {
		return brackets.RecordScore(c, matchID, update)
	})
}

func (s *categoryService) StartPlayoffs(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "start_playoffs", brackets.StartPlayoffs)
}

func (s *categoryService) AdvanceBracket(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "advance_bracket", brackets.AdvanceBracket)
}

func (s *categoryService) Finish(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	return s.mutateCategory(ctx, tournamentID, categoryID, "finish_category", brackets.FinishCategory)
}

// Standings ranks every zone of the category, zones sorted by name.
func (s *categoryService) Standings(ctx context.Context, tournamentID, categoryID string) ([]ZoneStandings, error) {
	c, err := s.Get(ctx, tournamentID, categoryID)
	if err != nil {
		return nil, err
	}
	zones := append([]models.Zone(nil), c.Zones...)
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })

	out := make([]ZoneStandings, 0, len(zones))
	for _, z := range zones {
		rows, err := brackets.ComputeStandings(z)
		if err != nil {
			return nil, err
		}
		out = append(out, ZoneStandings{Zone: z.Name, Rows: rows})
	}
	return out, nil
}
