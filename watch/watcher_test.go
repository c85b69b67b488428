package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner/coverage"
	"team-planner/game"
	"team-planner/types"
)

const (
	pikachuTeam  = `{"team":[{"pokemon":{"id":25,"name":"pikachu","types":["electric"]},"moves":[{"name":"surf","type":"water","power":90}],"nature":"hardy"}]}`
	gyaradosTeam = `{"team":[{"pokemon":{"id":130,"name":"gyarados","types":["water","flying"]},"moves":[],"nature":"adamant"},{"pokemon":{"id":25,"name":"pikachu","types":["electric"]},"moves":[],"nature":"hardy"}]}`
)

// waitFor returns the first update matching ok. Errors and other updates in
// between are skipped since a rewrite can be observed half-written.
func waitFor(t *testing.T, w *Watcher, ok func(Update) bool) Update {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u := <-w.Updates:
			if ok(u) {
				return u
			}
		case err := <-w.Errors:
			t.Logf("skipped: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for update")
			return Update{}
		}
	}
}

func nextError(t *testing.T, w *Watcher) error {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-w.Errors:
			return err
		case <-w.Updates:
		case <-deadline:
			t.Fatal("timed out waiting for error")
			return nil
		}
	}
}

func members(n int) func(Update) bool {
	return func(u Update) bool { return len(u.Members) == n }
}

func TestWatcher_FollowsRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.json")
	require.NoError(t, os.WriteFile(path, []byte(pikachuTeam), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	first := waitFor(t, w, members(1))
	assert.Equal(t, 1, first.Coverage.Offensive[types.Fire])

	require.NoError(t, os.WriteFile(path, []byte(gyaradosTeam), 0o644))
	second := waitFor(t, w, members(2))
	assert.Equal(t, game.Nature("adamant"), second.Members[0].Nature)
	assert.Equal(t, []string{"gyarados"}, second.Coverage.Defensive[types.Electric].Weaknesses)
	assert.Zero(t, second.Coverage.Offensive[types.Fire])

	// A broken file is reported and watching continues.
	require.NoError(t, os.WriteFile(path, []byte(`{"team":`), 0o644))
	assert.ErrorIs(t, nextError(t, w), game.ErrMalformedImport)

	require.NoError(t, os.WriteFile(path, []byte(pikachuTeam), 0o644))
	third := waitFor(t, w, members(1))
	assert.Equal(t, "pikachu", third.Members[0].Pokemon.Name)
}

func TestWatcher_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.json")
	team := `{"team":[{"pokemon":{"id":25,"name":"pikachu","types":["electric"]},"moves":[{"name":"will-o-wisp","type":"fire","damageClass":"status"}],"nature":"hardy"}]}`
	require.NoError(t, os.WriteFile(path, []byte(team), 0o644))

	w, err := NewWatcher(path, coverage.ExcludeStatusMoves(true))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	u := waitFor(t, w, members(1))
	assert.Zero(t, u.Coverage.Offensive[types.Grass])
}

func TestWatcher_MissingFile(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.ErrorIs(t, nextError(t, w), os.ErrNotExist)
}
