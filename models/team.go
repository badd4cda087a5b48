package models

import (
	"strings"

	"github.com/google/uuid"
)

// Player is one half of a pair. It has no identity of its own.
type Player struct {
	Name  string  `json:"name" yaml:"name"`
	Phone *string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Surname returns the last word of the player's name.
func (p Player) Surname() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players,omitempty"`
	Club    *string  `json:"club,omitempty"`
}

// NewTeam builds a pair with a fresh id and a "Smith / Jones" display name.
func NewTeam(p1, p2 Player, club *string) Team {
	return Team{
		ID:      uuid.NewString(),
		Name:    p1.Surname() + " / " + p2.Surname(),
		Players: []Player{p1, p2},
		Club:    normalizeClub(club),
	}
}

// NewNamedTeam is used by manual setup, where organizers type team names directly.
func NewNamedTeam(name string) Team {
	return Team{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
}

// ClubName returns the club or "" when the team has none.
func (t Team) ClubName() string {
	if t.Club == nil {
		return ""
	}
	return *t.Club
}

func normalizeClub(club *string) *string {
	if club == nil {
		return nil
	}
	c := strings.TrimSpace(*club)
	if c == "" {
		return nil
	}
	return &c
}
