package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
)

type drawFile struct {
	Name       string         `yaml:"name"`
	Categories []categoryFile `yaml:"categories"`
}

type categoryFile struct {
	Name     string                  `yaml:"name"`
	Settings models.CategorySettings `yaml:"settings"`
	Teams    []teamFile              `yaml:"teams"`
}

type teamFile struct {
	Player1 models.Player `yaml:"player1"`
	Player2 models.Player `yaml:"player2"`
	Club    *string       `yaml:"club"`
}

func parseDrawFile(r io.Reader) (*drawFile, error) {
	var f drawFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse draw file: %w", err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("parse draw file: tournament name is required")
	}
	return &f, nil
}

// tournament registers every team and closes registration, leaving each
// category ready to draw.
func (f *drawFile) tournament() (models.Tournament, error) {
	t := models.Tournament{Name: f.Name}
	for i, cf := range f.Categories {
		settings := cf.Settings
		settings.IsManual = false
		c := models.Category{
			ID:       fmt.Sprintf("c%d", i+1),
			Name:     cf.Name,
			Settings: settings,
			Status:   brackets.InitialStatus(settings),
		}
		for _, tf := range cf.Teams {
			var err error
			c, err = brackets.RegisterTeam(c, models.NewTeam(tf.Player1, tf.Player2, tf.Club))
			if err != nil {
				return t, fmt.Errorf("category %s: %w", cf.Name, err)
			}
		}
		c, err := brackets.CloseRegistration(c)
		if err != nil {
			return t, fmt.Errorf("category %s: %w", cf.Name, err)
		}
		t.Categories = append(t.Categories, c)
	}
	return t, nil
}
