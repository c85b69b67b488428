package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"team-planner/config"
	"team-planner/coverage"
	"team-planner/data"
	"team-planner/game"
	"team-planner/ui"
)

var speciesCmd = &cobra.Command{
	Use:   "species <name>",
	Short: "Show a species' types, stats, matchups and learnable moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecies,
}

func init() {
	rootCmd.AddCommand(speciesCmd)
}

func runSpecies(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dex, err := openDex(cfg)
	if err != nil {
		return err
	}
	p, err := dex.Species(args[0])
	if err != nil {
		return err
	}
	ls, err := dex.Learnset(args[0])
	if err != nil {
		return err
	}
	evo, err := dex.EvolutionChain(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s  base stat total %d\n\n", p.ID, p.Name, p.StatTotal())
	fmt.Fprint(out, ui.Matchup(coverage.Matchups(p.Types)))
	if err := printEvolution(out, evo); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	groups := []struct {
		label string
		moves []game.Move
	}{
		{"level-up", ls.LevelUp},
		{"machine", ls.Machine},
		{"tutor", ls.Tutor},
		{"egg", ls.Egg},
		{"other", ls.Other},
	}
	for _, g := range groups {
		if len(g.moves) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s\n", strings.ToUpper(g.label))
		for _, mv := range g.moves {
			power := "-"
			if mv.Power != nil {
				power = fmt.Sprintf("%d", *mv.Power)
			}
			level := ""
			if mv.LearnMethod == game.LearnLevelUp {
				level = fmt.Sprintf("Lv %d", mv.LevelLearned)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mv.Name, mv.Type, power, level)
		}
	}
	return tw.Flush()
}

// printEvolution lists the family in chain order. A family of one prints
// nothing.
func printEvolution(w io.Writer, stages []data.EvolutionStage) error {
	if len(stages) < 2 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nEVOLUTION")
	for _, st := range stages {
		req := st.Requirement
		if req == "" {
			req = "base"
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s\n", st.ID, st.Name, req)
	}
	return tw.Flush()
}
