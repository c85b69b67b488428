package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dex.json", cfg.DexPath)
	assert.Equal(t, "teams.db", cfg.DBPath)
	assert.Equal(t, ":42069", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Coverage.ExcludeStatusMoves)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "dex_path",
			envKey: "TEAMPLANNER_DEX_PATH",
			envVal: "/srv/dex.yaml",
			field:  func(c Config) any { return c.DexPath },
			want:   "/srv/dex.yaml",
		},
		{
			name:   "listen_addr",
			envKey: "TEAMPLANNER_LISTEN_ADDR",
			envVal: "127.0.0.1:9000",
			field:  func(c Config) any { return c.ListenAddr },
			want:   "127.0.0.1:9000",
		},
		{
			name:   "read_timeout",
			envKey: "TEAMPLANNER_READ_TIMEOUT",
			envVal: "3s",
			field:  func(c Config) any { return c.ReadTimeout },
			want:   3 * time.Second,
		},
		{
			name:   "exclude_status_moves",
			envKey: "TEAMPLANNER_COVERAGE_EXCLUDE_STATUS_MOVES",
			envVal: "true",
			field:  func(c Config) any { return c.Coverage.ExcludeStatusMoves },
			want:   true,
		},
		{
			name:   "watch_debounce",
			envKey: "TEAMPLANNER_WATCH_DEBOUNCE",
			envVal: "250ms",
			field:  func(c Config) any { return c.Watch.Debounce },
			want:   250 * time.Millisecond,
		},
		{
			name:   "verbose",
			envKey: "TEAMPLANNER_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			BindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".team-planner.yaml")
	content := "db_path: /var/lib/teams.db\ncoverage:\n  exclude_status_moves: true\nwatch:\n  debounce: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/teams.db", cfg.DBPath)
	assert.True(t, cfg.Coverage.ExcludeStatusMoves)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "dex.json", cfg.DexPath)
}

func TestLoad_Invalid(t *testing.T) {
	resetViper()
	viper.Set("watch.debounce", "0s")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalid)
}
