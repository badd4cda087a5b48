package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/moby/locker"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
	"github.com/Dosada05/pairs-tournament/repositories"
)

// Notifier pushes live updates to the clients watching a tournament.
// *brackets.Hub implements it.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Archiver stores a finished category outside the database.
// *storage.TournamentArchiver implements it.
type Archiver interface {
	ArchiveCategory(ctx context.Context, tournament models.Tournament, categoryID string) (string, error)
}

// Dependencies are shared by the tournament and category services. Pass the
// same Locks to both so they serialize on the same tournament id.
type Dependencies struct {
	Repo     repositories.TournamentRepository
	Notifier Notifier
	Archiver Archiver
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Locks    *locker.Locker
}

// CategoryEvent is the payload of every websocket message.
type CategoryEvent struct {
	TournamentID     string                  `json:"tournament_id"`
	TournamentStatus models.TournamentStatus `json:"tournament_status"`
	Category         models.Category         `json:"category"`
}

// mutator loads, changes and saves whole tournament documents under the
// tournament's lock.
type mutator struct {
	repo     repositories.TournamentRepository
	notifier Notifier
	archiver Archiver
	clock    clockwork.Clock
	logger   *slog.Logger
	locks    *locker.Locker
}

func newMutator(deps Dependencies) *mutator {
	m := &mutator{
		repo:     deps.Repo,
		notifier: deps.Notifier,
		archiver: deps.Archiver,
		clock:    deps.Clock,
		logger:   deps.Logger,
		locks:    deps.Locks,
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.locks == nil {
		m.locks = locker.New()
	}
	return m
}

func (m *mutator) load(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := m.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}
	return t, nil
}

// lock serializes work on one tournament within this process.
func (m *mutator) lock(tournamentID string) func() {
	m.locks.Lock(tournamentID)
	return func() {
		if err := m.locks.Unlock(tournamentID); err != nil {
			m.logger.Error("failed to release tournament lock", slog.String("tournament_id", tournamentID), slog.Any("error", err))
		}
	}
}

// mutateTournament applies fn to a copy of the stored tournament, re-derives
// its status and saves it. Load and save share one repository transaction,
// which row-locks the document in Postgres. Nothing is saved when fn fails.
func (m *mutator) mutateTournament(ctx context.Context, tournamentID string, fn func(models.Tournament) (models.Tournament, error)) (*models.Tournament, error) {
	unlock := m.lock(tournamentID)
	defer unlock()

	var saved *models.Tournament
	err := m.repo.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		current, err := m.repo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err, tournamentID)
		}
		updated, err := fn(current.Clone())
		if err != nil {
			return err
		}
		updated.Status = updated.DeriveStatus()
		updated.UpdatedAt = m.clock.Now().UTC()

		if err := m.repo.Save(ctx, exec, &updated); err != nil {
			return handleRepositoryError(err, tournamentID)
		}
		saved = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// mutateCategory runs one lifecycle step on a category, then broadcasts the
// new state and archives the category when the step finished it.
func (m *mutator) mutateCategory(ctx context.Context, tournamentID, categoryID, op string, fn func(models.Category) (models.Category, error)) (*models.Category, error) {
	var before, after models.Category
	saved, err := m.mutateTournament(ctx, tournamentID, func(t models.Tournament) (models.Tournament, error) {
		if t.Status == models.StatusCancelled {
			return t, fmt.Errorf("%w: %s", ErrTournamentCancelled, t.ID)
		}
		idx, ok := t.CategoryIndex(categoryID)
		if !ok {
			return t, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
		}
		before = t.Categories[idx]
		updated, err := fn(before)
		if err != nil {
			return t, err
		}
		t.Categories[idx] = updated
		after = updated
		return t, nil
	})
	if err != nil {
		m.logger.Warn("category operation rejected",
			slog.String("op", op),
			slog.String("tournament_id", tournamentID),
			slog.String("category_id", categoryID),
			slog.Any("error", err),
		)
		return nil, err
	}

	m.logger.Info("category updated",
		slog.String("op", op),
		slog.String("tournament_id", tournamentID),
		slog.String("category_id", categoryID),
		slog.String("from", string(before.Status)),
		slog.String("to", string(after.Status)),
		slog.Int("rounds", len(after.Rounds)),
	)

	finished := after.Status == models.CategoryFinished && before.Status != models.CategoryFinished
	m.notify(*saved, after, finished)
	if finished {
		m.archive(ctx, *saved, categoryID)
	}
	return &after, nil
}

func (m *mutator) notify(t models.Tournament, category models.Category, finished bool) {
	if m.notifier == nil {
		return
	}
	msgType := brackets.MessageCategoryUpdated
	if finished {
		msgType = brackets.MessageCategoryFinished
	}
	room := brackets.RoomForTournament(t.ID)
	m.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    msgType,
		RoomID:  room,
		Payload: CategoryEvent{TournamentID: t.ID, TournamentStatus: t.Status, Category: category},
	})
}

// archive failures are logged; the category stays finished in the database.
func (m *mutator) archive(ctx context.Context, t models.Tournament, categoryID string) {
	if m.archiver == nil {
		return
	}
	location, err := m.archiver.ArchiveCategory(ctx, t, categoryID)
	if err != nil {
		m.logger.Error("failed to archive finished category",
			slog.String("tournament_id", t.ID),
			slog.String("category_id", categoryID),
			slog.Any("error", err),
		)
		return
	}
	m.logger.Info("category archived",
		slog.String("tournament_id", t.ID),
		slog.String("category_id", categoryID),
		slog.String("location", location),
	)
}

func handleRepositoryError(err error, tournamentID string) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
	case errors.Is(err, repositories.ErrTournamentConflict):
		return fmt.Errorf("%w: %s", ErrTournamentConflict, tournamentID)
	default:
		return fmt.Errorf("tournament %s: %w", tournamentID, err)
	}
}
