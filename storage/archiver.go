package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/pairs-tournament/models"
)

const archiveContentType = "application/json"

// CategoryArchive is the document written when a category finishes.
type CategoryArchive struct {
	TournamentID   string            `json:"tournament_id"`
	TournamentName string            `json:"tournament_name"`
	Category       models.Category   `json:"category"`
	ArchivedAt     time.Time         `json:"archived_at"`
	Finishers      []models.Finisher `json:"finishers"`
}

// TournamentArchiver uploads finished categories as JSON documents.
type TournamentArchiver struct {
	store  ObjectStore
	clock  clockwork.Clock
	prefix string
}

func NewTournamentArchiver(store ObjectStore, clock clockwork.Clock) *TournamentArchiver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TournamentArchiver{store: store, clock: clock, prefix: "archive"}
}

// ArchiveKey is archive/<tournament>/<category>/<unix seconds>.json.
func (a *TournamentArchiver) ArchiveKey(tournamentID, categoryID string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%d.json", a.prefix, tournamentID, categoryID, at.Unix())
}

// ArchiveCategory uploads one category of the tournament and returns the
// object's public location (or its key when the bucket is private).
func (a *TournamentArchiver) ArchiveCategory(ctx context.Context, tournament models.Tournament, categoryID string) (string, error) {
	idx, ok := tournament.CategoryIndex(categoryID)
	if !ok {
		return "", fmt.Errorf("archive: category %s not in tournament %s", categoryID, tournament.ID)
	}
	category := tournament.Categories[idx]
	now := a.clock.Now().UTC()

	doc := CategoryArchive{
		TournamentID:   tournament.ID,
		TournamentName: tournament.Name,
		Category:       category,
		ArchivedAt:     now,
		Finishers:      category.Finishers,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("archive: encode category %s: %w", categoryID, err)
	}

	key := a.ArchiveKey(tournament.ID, categoryID, now)
	result, err := a.store.Upload(ctx, key, archiveContentType, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if result.Location != "" {
		return result.Location, nil
	}
	return result.Key, nil
}
