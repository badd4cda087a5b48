package models

// CategoryStatus mirrors the lifecycle of a category: registration, zone play,
// bracket play and completion.
type CategoryStatus string

const (
	CategoryRegistrationOpen   CategoryStatus = "registration_open"
	CategoryRegistrationClosed CategoryStatus = "registration_closed"
	CategoryManualSetup        CategoryStatus = "manual_setup"
	CategoryZonesDrawn         CategoryStatus = "zones_drawn"
	CategoryInPlay             CategoryStatus = "in_play"
	CategoryFinished           CategoryStatus = "finished"
)

type CategorySettings struct {
	IsManual           bool `json:"is_manual" yaml:"is_manual"`
	UseSeedings        bool `json:"use_seedings" yaml:"use_seedings"`
	AvoidClubConflicts bool `json:"avoid_club_conflicts" yaml:"avoid_club_conflicts"`
	FixedFormatZones   bool `json:"fixed_format_zones" yaml:"fixed_format_zones"`
	// QualifiersPerZone overrides the automatic qualification rule when > 0.
	QualifiersPerZone int `json:"qualifiers_per_zone,omitempty" yaml:"qualifiers_per_zone,omitempty"`
}

type Category struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Status    CategoryStatus   `json:"status"`
	Settings  CategorySettings `json:"settings"`
	Teams     []Team           `json:"teams"`
	Zones     []Zone           `json:"zones,omitempty"`
	Rounds    []PlayoffRound   `json:"rounds,omitempty"`
	Finishers []Finisher       `json:"finishers,omitempty"`
}

// Clone returns a deep copy so callers can mutate it without touching the
// original value.
func (c Category) Clone() Category {
	out := c
	out.Teams = append([]Team(nil), c.Teams...)
	if c.Zones != nil {
		out.Zones = make([]Zone, len(c.Zones))
		for i, z := range c.Zones {
			out.Zones[i] = z.clone()
		}
	}
	if c.Rounds != nil {
		out.Rounds = make([]PlayoffRound, len(c.Rounds))
		for i, r := range c.Rounds {
			out.Rounds[i] = r.clone()
		}
	}
	out.Finishers = append([]Finisher(nil), c.Finishers...)
	return out
}

// TeamIndex maps team ids to teams, covering registered teams and those
// created by manual zone setup.
func (c Category) TeamIndex() map[string]Team {
	idx := make(map[string]Team, len(c.Teams))
	for _, t := range c.Teams {
		idx[t.ID] = t
	}
	for _, z := range c.Zones {
		for _, t := range z.Teams {
			idx[t.ID] = t
		}
	}
	return idx
}

// LastRound returns the most recently appended playoff round.
func (c Category) LastRound() (PlayoffRound, bool) {
	if len(c.Rounds) == 0 {
		return PlayoffRound{}, false
	}
	return c.Rounds[len(c.Rounds)-1], true
}

func (c Category) RoundByName(name RoundName) (PlayoffRound, bool) {
	for _, r := range c.Rounds {
		if r.Name == name {
			return r, true
		}
	}
	return PlayoffRound{}, false
}
