package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. TEAMPLANNER_DB_PATH.
const EnvPrefix = "TEAMPLANNER"

type CoverageConfig struct {
	ExcludeStatusMoves bool `mapstructure:"exclude_status_moves"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds all runtime configuration.
// Values are populated from .team-planner.yaml, TEAMPLANNER_* env vars, and CLI flags.
type Config struct {
	DexPath      string         `mapstructure:"dex_path"`
	DBPath       string         `mapstructure:"db_path"`
	ListenAddr   string         `mapstructure:"listen_addr"`
	ReadTimeout  time.Duration  `mapstructure:"read_timeout"`
	WriteTimeout time.Duration  `mapstructure:"write_timeout"`
	Verbose      bool           `mapstructure:"verbose"`
	Coverage     CoverageConfig `mapstructure:"coverage"`
	Watch        WatchConfig    `mapstructure:"watch"`
}

// BindEnv maps TEAMPLANNER_* variables onto config keys. Nested keys use an
// underscore, so coverage.exclude_status_moves reads
// TEAMPLANNER_COVERAGE_EXCLUDE_STATUS_MOVES.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("dex_path", "dex.json")
	viper.SetDefault("db_path", "teams.db")
	viper.SetDefault("listen_addr", ":42069")
	viper.SetDefault("read_timeout", 10*time.Second)
	viper.SetDefault("write_timeout", 10*time.Second)
	viper.SetDefault("verbose", false)
	viper.SetDefault("coverage.exclude_status_moves", false)
	viper.SetDefault("watch.debounce", 100*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.DexPath == "":
		return fmt.Errorf("config: %w: dex_path is empty", ErrInvalid)
	case c.DBPath == "":
		return fmt.Errorf("config: %w: db_path is empty", ErrInvalid)
	case c.ListenAddr == "":
		return fmt.Errorf("config: %w: listen_addr is empty", ErrInvalid)
	case c.ReadTimeout <= 0 || c.WriteTimeout <= 0:
		return fmt.Errorf("config: %w: timeouts must be positive", ErrInvalid)
	case c.Watch.Debounce <= 0:
		return fmt.Errorf("config: %w: watch.debounce must be positive", ErrInvalid)
	}
	return nil
}
