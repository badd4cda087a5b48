package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
	"github.com/Dosada05/pairs-tournament/repositories"
)

const overviewConcurrency = 8

type CreateCategoryInput struct {
	Name     string                  `json:"name" yaml:"name" validate:"required,max=100"`
	Settings models.CategorySettings `json:"settings" yaml:"settings"`
}

type CreateTournamentInput struct {
	Name       string                `json:"name" yaml:"name" validate:"required,max=200"`
	StartDate  time.Time             `json:"start_date" yaml:"start_date" validate:"required"`
	Organizer  models.Contact        `json:"organizer" yaml:"organizer"`
	Categories []CreateCategoryInput `json:"categories" yaml:"categories" validate:"dive"`
}

// CategoryOverview summarizes a category for tournament listings.
type CategoryOverview struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Status    models.CategoryStatus `json:"status"`
	TeamCount int                   `json:"team_count"`
	Champion  *models.Team          `json:"champion,omitempty"`
}

type TournamentOverview struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	StartDate  time.Time               `json:"start_date"`
	Status     models.TournamentStatus `json:"status"`
	Categories []CategoryOverview      `json:"categories"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	ListOverviews(ctx context.Context, filter repositories.ListTournamentsFilter) ([]TournamentOverview, error)
	AddCategory(ctx context.Context, tournamentID string, input CreateCategoryInput) (*models.Category, error)
	Draw(ctx context.Context, id string) (*models.Tournament, error)
	Cancel(ctx context.Context, id string) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
}

type tournamentService struct {
	*mutator
}

func NewTournamentService(deps Dependencies) TournamentService {
	return &tournamentService{mutator: newMutator(deps)}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}

	now := s.clock.Now().UTC()
	t := models.Tournament{
		ID:         uuid.NewString(),
		Name:       name,
		StartDate:  input.StartDate,
		Organizer:  input.Organizer,
		Categories: make([]models.Category, 0, len(input.Categories)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, ci := range input.Categories {
		category, err := newCategory(t, ci)
		if err != nil {
			return nil, err
		}
		t.Categories = append(t.Categories, category)
	}
	t.Status = t.DeriveStatus()

	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, handleRepositoryError(err, t.ID)
	}
	s.logger.Info("tournament created",
		slog.String("tournament_id", t.ID),
		slog.String("name", t.Name),
		slog.Int("categories", len(t.Categories)),
	)
	return &t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return s.load(ctx, id)
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return tournaments, nil
}

// ListOverviews loads the listed tournaments concurrently and summarizes them
// in listing order.
func (s *tournamentService) ListOverviews(ctx context.Context, filter repositories.ListTournamentsFilter) ([]TournamentOverview, error) {
	ids, err := s.repo.ListIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tournament ids: %w", err)
	}

	overviews := make([]TournamentOverview, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			t, err := s.load(gctx, id)
			if err != nil {
				return err
			}
			overviews[i] = overview(*t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overviews, nil
}

func (s *tournamentService) AddCategory(ctx context.Context, tournamentID string, input CreateCategoryInput) (*models.Category, error) {
	var added models.Category
	_, err := s.mutateTournament(ctx, tournamentID, func(t models.Tournament) (models.Tournament, error) {
		if t.Status == models.StatusCancelled {
			return t, fmt.Errorf("%w: %s", ErrTournamentCancelled, t.ID)
		}
		category, err := newCategory(t, input)
		if err != nil {
			return t, err
		}
		t.Categories = append(t.Categories, category)
		added = category
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("category added",
		slog.String("tournament_id", tournamentID),
		slog.String("category_id", added.ID),
		slog.String("status", string(added.Status)),
	)
	return &added, nil
}

// Draw draws every category whose registration is closed and pushes the new
// zones to connected clients.
func (s *tournamentService) Draw(ctx context.Context, id string) (*models.Tournament, error) {
	var drawn []string
	t, err := s.mutateTournament(ctx, id, func(t models.Tournament) (models.Tournament, error) {
		if t.Status == models.StatusCancelled {
			return t, fmt.Errorf("%w: %s", ErrTournamentCancelled, t.ID)
		}
		before := t.Clone()
		out, err := brackets.DrawTournament(t)
		if err != nil {
			return t, err
		}
		for i, c := range out.Categories {
			if before.Categories[i].Status != c.Status {
				drawn = append(drawn, c.ID)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	for _, categoryID := range drawn {
		idx, _ := t.CategoryIndex(categoryID)
		s.notify(*t, t.Categories[idx], false)
	}
	s.logger.Info("tournament drawn", slog.String("tournament_id", id), slog.Int("categories", len(drawn)))
	return t, nil
}

func (s *tournamentService) Cancel(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.mutateTournament(ctx, id, func(t models.Tournament) (models.Tournament, error) {
		t.Status = models.StatusCancelled
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament cancelled", slog.String("tournament_id", id))
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, id)
	}
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	return nil
}

func newCategory(t models.Tournament, input CreateCategoryInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}
	if input.Settings.QualifiersPerZone < 0 {
		return models.Category{}, fmt.Errorf("%w: qualifiers per zone must not be negative", ErrValidationFailed)
	}
	for _, c := range t.Categories {
		if strings.EqualFold(c.Name, name) {
			return models.Category{}, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}
	}
	return models.Category{
		ID:       uuid.NewString(),
		Name:     name,
		Status:   brackets.InitialStatus(input.Settings),
		Settings: input.Settings,
		Teams:    []models.Team{},
	}, nil
}

func overview(t models.Tournament) TournamentOverview {
	out := TournamentOverview{
		ID:         t.ID,
		Name:       t.Name,
		StartDate:  t.StartDate,
		Status:     t.Status,
		Categories: make([]CategoryOverview, len(t.Categories)),
	}
	for i, c := range t.Categories {
		co := CategoryOverview{
			ID:        c.ID,
			Name:      c.Name,
			Status:    c.Status,
			TeamCount: len(c.TeamIndex()),
		}
		for _, f := range c.Finishers {
			if f.Position == 1 {
				champion := f.Team
				co.Champion = &champion
			}
		}
		out.Categories[i] = co
	}
	return out
}
