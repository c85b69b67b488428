package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"team-planner/config"
	"team-planner/coverage"
	"team-planner/game"
	"team-planner/parser"
	"team-planner/report"
	"team-planner/ui"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage <export.json>",
	Short: "Show the type coverage of an exported team",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverage,
}

var buildCmd = &cobra.Command{
	Use:   "build <script>",
	Short: "Build a team from a file of protocol lines and show its coverage",
	Long: `Each line of the script is a roster command such as
|assign|0|pikachu or |move|0|thunderbolt. Failing lines are reported and
skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	for _, c := range []*cobra.Command{coverageCmd, buildCmd} {
		c.Flags().String("xlsx", "", "also write a spreadsheet report to this path")
		c.Flags().Bool("html", false, "print the HTML summary instead of tables")
	}
	buildCmd.Flags().StringP("out", "o", "", "write the built team as an export record")

	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(buildCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	r, err := game.Deserialize(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return printCoverage(cmd, cfg, r)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dex, err := openDex(cfg)
	if err != nil {
		return err
	}

	script, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	r, lineErrs := parser.ParseLog(dex, string(script))
	if lineErrs != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), lineErrs)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		b, err := r.MarshalExport()
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			return err
		}
		if cfg.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
		}
	}
	return printCoverage(cmd, cfg, r)
}

func printCoverage(cmd *cobra.Command, cfg config.Config, r *game.Roster) error {
	res := coverage.Aggregate(r, coverageOptions(cfg)...)

	if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
		fmt.Fprintln(cmd.OutOrStdout(), parser.RenderCoverage(res))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Roster(r.Members()))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Coverage(res))
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		if err := report.WriteXLSX(path, r, res); err != nil {
			return err
		}
		if cfg.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		}
	}
	return nil
}
