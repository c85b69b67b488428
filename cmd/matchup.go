package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"team-planner/coverage"
	"team-planner/parser"
	"team-planner/types"
	"team-planner/ui"
)

var matchupCmd = &cobra.Command{
	Use:   "matchup <type> [type]",
	Short: "Show what a one or two type combination is weak, resistant and immune to",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMatchup,
}

func init() {
	matchupCmd.Flags().Bool("html", false, "print the HTML fragment instead of a table")
	rootCmd.AddCommand(matchupCmd)
}

func runMatchup(cmd *cobra.Command, args []string) error {
	ts, err := types.ParseList(args)
	if err != nil {
		return err
	}
	if len(ts) == 2 && ts[0] == ts[1] {
		ts = ts[:1]
	}

	m := coverage.Matchups(ts)
	if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
		fmt.Fprintln(cmd.OutOrStdout(), parser.RenderMatchup(m))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.Matchup(m))
	return nil
}
