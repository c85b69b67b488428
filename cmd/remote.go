package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"team-planner/client"
	"team-planner/game"
	"team-planner/parser"
	"team-planner/ui"
)

var remoteCmd = &cobra.Command{
	Use:   "remote <addr>",
	Short: "Send protocol lines from stdin to a running server session",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemote,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}

func runRemote(cmd *cobra.Command, args []string) error {
	sc, err := client.Dial(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sc.Close()

	var last *parser.Reply
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rep, err := sc.Do(line)
		if err != nil {
			return err
		}
		last = &rep
		if !rep.OK {
			fmt.Fprintln(cmd.ErrOrStderr(), rep.Error)
			continue
		}
		members := make([]string, 0, len(rep.Roster))
		for i, m := range rep.Roster {
			if m != nil {
				members = append(members, fmt.Sprintf("%d:%s", i, m.DisplayName()))
			}
		}
		fmt.Fprintf(out, "ok [%s]\n", strings.Join(members, " "))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if last == nil {
		return nil
	}
	members := make([]game.TeamMember, 0, len(last.Roster))
	for _, m := range last.Roster {
		if m != nil {
			members = append(members, *m)
		}
	}
	fmt.Fprintln(out, ui.Roster(members))
	fmt.Fprintln(out, ui.Coverage(last.Coverage))
	return nil
}
