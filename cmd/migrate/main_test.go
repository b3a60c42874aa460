package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgstarter/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(context.Background(), config.ResolveDatabase(nil), logger, &out, args)
	return out.String(), err
}

func TestCreateWritesPair(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "create", filepath.Join(dir, "AddUserIndex"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*_adduserindex.*.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, 2, strings.Count(out, "created "))
}

func TestGenerateDescribesEntities(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "generate", filepath.Join(dir, "users_v2"))
	require.NoError(t, err)

	ups, err := filepath.Glob(filepath.Join(dir, "*_users_v2.up.sql"))
	require.NoError(t, err)
	require.Len(t, ups, 1)
	body, err := os.ReadFile(ups[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "users (id, name, email")
}

func TestCreateHonoursDirFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "-dir", dir, "create", "add_index")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*_add_index.*.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	_, err = os.Stat("db")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateNeedsPath(t *testing.T) {
	_, err := runCLI(t, "create")
	assert.Error(t, err)
}

func TestMissingCommand(t *testing.T) {
	out, err := runCLI(t)
	assert.Error(t, err)
	assert.Contains(t, out, "usage: migrate")
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "explode")
	assert.ErrorContains(t, err, `unknown command "explode"`)
}

func TestSeedRejectsBadCount(t *testing.T) {
	_, err := runCLI(t, "seed", "many")
	assert.ErrorContains(t, err, "invalid count")
}

type fakeRunner struct {
	upErr, downErr error
	version        uint
	dirty, ok      bool
	calls          []string
}

func (f *fakeRunner) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeRunner) Down() error {
	f.calls = append(f.calls, "down")
	return f.downErr
}

func (f *fakeRunner) Version() (uint, bool, bool, error) {
	f.calls = append(f.calls, "version")
	return f.version, f.dirty, f.ok, nil
}

func TestRunMigratorRun(t *testing.T) {
	f := &fakeRunner{version: 20250101000000, ok: true}
	var out bytes.Buffer
	require.NoError(t, runMigrator(f, "run", &out))
	assert.Equal(t, []string{"up", "version"}, f.calls)
	assert.Equal(t, "version 20250101000000\n", out.String())
}

func TestRunMigratorRevertFailure(t *testing.T) {
	boom := errors.New("no migration to revert")
	f := &fakeRunner{downErr: boom}
	err := runMigrator(f, "revert", io.Discard)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"down"}, f.calls)
}

func TestRunMigratorVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runMigrator(&fakeRunner{}, "version", &out))
	assert.Equal(t, "no migrations applied\n", out.String())

	out.Reset()
	require.NoError(t, runMigrator(&fakeRunner{version: 7, dirty: true, ok: true}, "version", &out))
	assert.Equal(t, "version 7 (dirty)\n", out.String())
}
