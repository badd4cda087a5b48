package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/Dosada05/pairs-tournament/models"
)

// memoryTournamentRepository keeps deep copies of every document, so callers
// never share slices with the store. exec arguments are ignored.
type memoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]models.Tournament
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{tournaments: make(map[string]models.Tournament)}
}

func (r *memoryTournamentRepository) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[t.ID]; ok {
		return ErrTournamentConflict
	}
	r.tournaments[t.ID] = t.Clone()
	return nil
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	out := t.Clone()
	return &out, nil
}

func (r *memoryTournamentRepository) GetForUpdate(ctx context.Context, _ SQLExecutor, id string) (*models.Tournament, error) {
	return r.GetByID(ctx, id)
}

// WithinTx only calls fn; each Save is atomic on its own.
func (r *memoryTournamentRepository) WithinTx(_ context.Context, fn func(exec SQLExecutor) error) error {
	return fn(nil)
}

func (r *memoryTournamentRepository) List(_ context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.filtered(filter)
	out := make([]models.Tournament, len(matched))
	for i, t := range matched {
		out[i] = t.Clone()
	}
	return out, nil
}

func (r *memoryTournamentRepository) ListIDs(_ context.Context, filter ListTournamentsFilter) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.filtered(filter)
	ids := make([]string, len(matched))
	for i, t := range matched {
		ids[i] = t.ID
	}
	return ids, nil
}

func (r *memoryTournamentRepository) Save(_ context.Context, _ SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[t.ID]; !ok {
		return ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t.Clone()
	return nil
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

// filtered mirrors the Postgres ordering: newest start date first, then
// newest creation time. Callers hold the lock.
func (r *memoryTournamentRepository) filtered(filter ListTournamentsFilter) []models.Tournament {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return out[:0]
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out
}
