// Package cmd provides the team-planner command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"team-planner/config"
	"team-planner/coverage"
	"team-planner/data"
	"team-planner/store"
)

var rootCmd = &cobra.Command{
	Use:   "team-planner",
	Short: "Type coverage planner for six-member Pokémon teams",
	Long: `team-planner scores a team's offensive and defensive type coverage,
answers single matchup questions, keeps saved teams in SQLite and serves the
same engine over HTTP and a websocket session.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .team-planner.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("dex", "", "dex file (.json, .yaml or .toml)")
	rootCmd.PersistentFlags().String("db", "", "saved teams database")
	rootCmd.PersistentFlags().Bool("exclude-status", false, "do not count status moves toward offensive coverage")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("dex_path", rootCmd.PersistentFlags().Lookup("dex"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("coverage.exclude_status_moves", rootCmd.PersistentFlags().Lookup("exclude-status"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".team-planner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func coverageOptions(cfg config.Config) []coverage.Option {
	return []coverage.Option{coverage.ExcludeStatusMoves(cfg.Coverage.ExcludeStatusMoves)}
}

func openDex(cfg config.Config) (*data.Dex, error) {
	dex, err := data.Load(cfg.DexPath)
	if err != nil {
		return nil, fmt.Errorf("load dex: %w", err)
	}
	return dex, nil
}

func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open team store: %w", err)
	}
	return st, nil
}
