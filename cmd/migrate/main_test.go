package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	stepsErr   error
	version    uint
	dirty      bool
	versionErr error
	closeErr   error

	steps  []int
	ups    int
	closed bool
}

func (f *fakeMigrator) Up() error {
	f.ups++
	return f.upErr
}

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return f.stepsErr
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func (f *fakeMigrator) Close() (error, error) {
	f.closed = true
	return nil, f.closeErr
}

func runWith(t *testing.T, f *fakeMigrator, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(args, "postgres://localhost/pairs", &out, logger, func(string) (migrator, error) {
		return f, nil
	})
	return out.String(), err
}

func TestRun_Commands(t *testing.T) {
	t.Parallel()

	f := &fakeMigrator{}
	_, err := runWith(t, f, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, f.ups)
	assert.True(t, f.closed)

	f = &fakeMigrator{}
	_, err = runWith(t, f, "down")
	require.NoError(t, err)
	_, err = runWith(t, f, "DOWN", "3")
	require.NoError(t, err)
	assert.Equal(t, []int{-1, -3}, f.steps)

	f = &fakeMigrator{version: 1, dirty: true}
	out, err := runWith(t, f, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\ndirty: true\n", out)

	f = &fakeMigrator{versionErr: migrate.ErrNilVersion}
	out, err = runWith(t, f, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: none\n", out)

	f = &fakeMigrator{upErr: migrate.ErrNoChange}
	_, err = runWith(t, f, "up")
	assert.NoError(t, err)
}

func TestRun_ClosesMigratorOnFailure(t *testing.T) {
	t.Parallel()

	dirty := errors.New("dirty database version 1")
	f := &fakeMigrator{upErr: dirty}
	_, err := runWith(t, f, "up")
	require.ErrorIs(t, err, dirty)
	assert.True(t, f.closed)

	f = &fakeMigrator{stepsErr: dirty, closeErr: errors.New("connection reset")}
	_, err = runWith(t, f, "down")
	require.ErrorIs(t, err, dirty)
	assert.ErrorContains(t, err, "connection reset")
	assert.True(t, f.closed)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		nil,
		{"sideways"},
		{"down", "0"},
		{"down", "two"},
		{"up", "1"},
	} {
		opened := false
		err := run(args, "postgres://localhost/pairs", io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)),
			func(string) (migrator, error) {
				opened = true
				return &fakeMigrator{}, nil
			})
		assert.ErrorIs(t, err, errUsage, "%v", args)
		assert.False(t, opened, "%v", args)
	}

	err := run([]string{"up"}, " ", io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	assert.EqualError(t, err, "DATABASE_URL is required")
}
