// Command draw allocates zones for the categories described in a YAML file
// and prints the result as JSON, without a server or database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
)

func main() {
	file := flag.String("file", "", "YAML tournament description (default stdin)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logger.Error("failed to open input", slog.String("file", *file), slog.Any("error", err))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := run(in, os.Stdout); err != nil {
		logger.Error("draw failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	spec, err := parseDrawFile(in)
	if err != nil {
		return err
	}
	tournament, err := spec.tournament()
	if err != nil {
		return err
	}
	drawn, err := brackets.DrawTournament(tournament)
	if err != nil {
		return fmt.Errorf("draw %s: %w", tournament.Name, err)
	}

	result := drawResult{Tournament: drawn.Name}
	for _, c := range drawn.Categories {
		cr := categoryResult{Category: c.Name, Zones: make([]zoneResult, len(c.Zones))}
		for i, z := range c.Zones {
			zr := zoneResult{Name: z.Name, ClubConflicts: brackets.ClubConflicts(z), Matches: z.Matches}
			for _, t := range z.Teams {
				zr.Teams = append(zr.Teams, t.Name)
			}
			cr.Zones[i] = zr
		}
		result.Categories = append(result.Categories, cr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type drawResult struct {
	Tournament string           `json:"tournament"`
	Categories []categoryResult `json:"categories"`
}

type categoryResult struct {
	Category string       `json:"category"`
	Zones    []zoneResult `json:"zones"`
}

type zoneResult struct {
	Name          string         `json:"name"`
	Teams         []string       `json:"teams"`
	ClubConflicts int            `json:"club_conflicts"`
	Matches       []models.Match `json:"matches"`
}
