package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/Dosada05/pairs-tournament/db"
)

var errUsage = errors.New("usage")

// migrator is the part of *migrate.Migrate this command drives.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

type openFunc func(dsn string) (migrator, error)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	open := func(dsn string) (migrator, error) { return db.NewMigrator(dsn) }
	err := run(os.Args[1:], os.Getenv("DATABASE_URL"), os.Stdout, logger, open)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "%v\nusage: %s <up|down|version> [steps]\n", err, filepath.Base(os.Args[0]))
		os.Exit(2)
	case err != nil:
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type command struct {
	name  string
	steps int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("%w: missing command", errUsage)
	}
	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0])), steps: 1}
	switch cmd.name {
	case "up", "version":
		if len(args) > 1 {
			return command{}, fmt.Errorf("%w: %s takes no arguments", errUsage, cmd.name)
		}
	case "down":
		if len(args) > 2 {
			return command{}, fmt.Errorf("%w: down takes at most one argument", errUsage)
		}
		if len(args) == 2 {
			steps, err := strconv.Atoi(args[1])
			if err != nil || steps <= 0 {
				return command{}, fmt.Errorf("%w: invalid down steps %q", errUsage, args[1])
			}
			cmd.steps = steps
		}
	default:
		return command{}, fmt.Errorf("%w: unknown command %q", errUsage, cmd.name)
	}
	return cmd, nil
}

func run(args []string, dsn string, out io.Writer, logger *slog.Logger, open openFunc) (err error) {
	cmd, err := parseCommand(args)
	if err != nil {
		return err
	}
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return errors.New("DATABASE_URL is required")
	}

	m, err := open(dsn)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close migrator: %w", closeErr))
		}
	}()

	switch cmd.name {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		logger.Info("migrations applied")
	case "down":
		if err := ignoreNoChange(m.Steps(-cmd.steps), logger); err != nil {
			return fmt.Errorf("migrate down %d: %w", cmd.steps, err)
		}
		logger.Info("migrations rolled back", slog.Int("steps", cmd.steps))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	}
	return nil
}

func ignoreNoChange(err error, logger *slog.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}
