package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"team-planner/config"
	"team-planner/ui"
	"team-planner/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <export.json>",
	Short: "Reprint coverage whenever an exported team file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w, err := watch.NewWatcher(args[0], coverageOptions(cfg)...)
	if err != nil {
		return err
	}
	w.Debounce = cfg.Watch.Debounce
	w.Logger = log.New(os.Stderr, "", log.LstdFlags)
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-w.Updates:
			fmt.Fprintf(out, "── %s ──\n", u.File)
			fmt.Fprintln(out, ui.Roster(u.Members))
			fmt.Fprintln(out, ui.Coverage(u.Coverage))
		case err := <-w.Errors:
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
}
