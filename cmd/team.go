package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"team-planner/config"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage saved teams",
}

var teamSaveCmd = &cobra.Command{
	Use:   "save <name> <export.json>",
	Short: "Save an exported team under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamSave,
}

var teamLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a saved team's export record",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamLoad,
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved teams",
	Args:  cobra.NoArgs,
	RunE:  runTeamList,
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamDelete,
}

func init() {
	teamLoadCmd.Flags().StringP("out", "o", "", "write the record to a file instead of stdout")

	teamCmd.AddCommand(teamSaveCmd)
	teamCmd.AddCommand(teamLoadCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamDeleteCmd)
	rootCmd.AddCommand(teamCmd)
}

func runTeamSave(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), args[0], payload); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
	return nil
}

func runTeamLoad(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	payload, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return os.WriteFile(out, payload, 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}

func runTeamList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	teams, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved teams")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMEMBERS\tEXPORTED\tSAVED")
	for _, t := range teams {
		exported := "-"
		if !t.ExportedAt.IsZero() {
			exported = humanize.Time(t.ExportedAt)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", t.Name, t.Members, exported, humanize.Time(t.SavedAt))
	}
	return tw.Flush()
}

func runTeamDelete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
