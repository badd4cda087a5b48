package models

import "time"

// TournamentStatus is derived from the statuses of the categories.
type TournamentStatus string

const (
	StatusActive    TournamentStatus = "active"
	StatusFinished  TournamentStatus = "finished"
	StatusCancelled TournamentStatus = "cancelled"
)

type Contact struct {
	Name  string  `json:"name" yaml:"name"`
	Phone *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email *string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Tournament is stored and replaced as a whole document.
type Tournament struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	StartDate  time.Time        `json:"start_date"`
	Organizer  Contact          `json:"organizer"`
	Categories []Category       `json:"categories"`
	Status     TournamentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// DeriveStatus keeps Status consistent with the categories: Finished iff every
// category is finished. A cancelled tournament stays cancelled.
func (t Tournament) DeriveStatus() TournamentStatus {
	if t.Status == StatusCancelled {
		return StatusCancelled
	}
	if len(t.Categories) == 0 {
		return StatusActive
	}
	for _, c := range t.Categories {
		if c.Status != CategoryFinished {
			return StatusActive
		}
	}
	return StatusFinished
}

func (t Tournament) CategoryIndex(categoryID string) (int, bool) {
	for i, c := range t.Categories {
		if c.ID == categoryID {
			return i, true
		}
	}
	return -1, false
}

func (t Tournament) Clone() Tournament {
	out := t
	if t.Categories != nil {
		out.Categories = make([]Category, len(t.Categories))
		for i, c := range t.Categories {
			out.Categories[i] = c.Clone()
		}
	}
	return out
}
