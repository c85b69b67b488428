// Package ui renders coverage, matchups and rosters for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"team-planner/coverage"
	"team-planner/game"
	"team-planner/types"
)

const barWidth = 20

func title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func typeLabel(t types.Type) string {
	return lipgloss.NewStyle().Foreground(typeColors[t.String()]).Bold(true).Render(title(t.String()))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

func joinOrDash(names []string, style lipgloss.Style) string {
	if len(names) == 0 {
		return styleMuted.Render("-")
	}
	return style.Render(strings.Join(names, ", "))
}

// Coverage renders the offensive bars and the defensive table.
func Coverage(res coverage.Result) string {
	if res.Empty() {
		return styleMuted.Render("No team members yet.")
	}

	top := res.MaxOffensive()
	off := newTable("Defender", "Hits", "")
	def := newTable("Attack", "Weak", "Resist", "Immune")
	for _, t := range types.All {
		n := res.Offensive[t]
		filled := n * barWidth / top
		bar := styleBar.Render(strings.Repeat("█", filled)) + styleMuted.Render(strings.Repeat("░", barWidth-filled))
		off.Row(typeLabel(t), fmt.Sprintf("%d", n), bar)

		d := res.Defensive[t]
		def.Row(typeLabel(t),
			joinOrDash(d.Weaknesses, styleWeak),
			joinOrDash(d.Resistances, styleResist),
			joinOrDash(d.Immunities, styleImmune))
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Offensive coverage") + "\n")
	sb.WriteString(off.String() + "\n")
	if missing := res.Uncovered(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, t := range missing {
			labels[i] = typeLabel(t)
		}
		sb.WriteString(styleWeak.Render("Not covered: ") + strings.Join(labels, " ") + "\n")
	}
	sb.WriteString("\n" + styleTitle.Render("Defensive coverage") + "\n")
	sb.WriteString(def.String() + "\n")
	if shared := res.SharedWeaknesses(3); len(shared) > 0 {
		labels := make([]string, len(shared))
		for i, t := range shared {
			labels[i] = typeLabel(t)
		}
		sb.WriteString(styleWeak.Render("Shared weaknesses: ") + strings.Join(labels, " ") + "\n")
	}
	return sb.String()
}

// Matchup renders the defensive profile of one type combination.
func Matchup(m coverage.Matchup) string {
	names := make([]string, len(m.Types))
	for i, t := range m.Types {
		names[i] = typeLabel(t)
	}

	tbl := newTable("Attack", "x")
	add := func(entries []coverage.Entry, style lipgloss.Style) {
		for _, e := range entries {
			tbl.Row(typeLabel(e.Type), style.Render(e.Multiplier.String()))
		}
	}
	add(m.WeakTo, styleWeak)
	add(m.ResistantTo, styleResist)
	add(m.ImmuneTo, styleImmune)

	return styleTitle.Render(strings.Join(names, " / ")) + "\n" + tbl.String() + "\n"
}

// Roster renders one row per occupied member.
func Roster(members []game.TeamMember) string {
	if len(members) == 0 {
		return styleMuted.Render("No team members yet.")
	}

	tbl := newTable("#", "Name", "Types", "Nature", "Item", "Moves")
	for i, m := range members {
		ts := make([]string, len(m.Pokemon.Types))
		for j, t := range m.Pokemon.Types {
			ts[j] = typeLabel(t)
		}
		nature := title(string(m.Nature))
		if up, down := m.Nature.Effect(); up != "" {
			nature += styleMuted.Render(fmt.Sprintf(" (+%s -%s)", up, down))
		}
		item := styleMuted.Render("-")
		if m.HeldItem != nil {
			item = title(m.HeldItem.Name)
		}
		moves := make([]string, len(m.Moves))
		for j, mv := range m.Moves {
			moves[j] = title(mv.Name)
		}
		name := m.DisplayName()
		if m.Nickname != "" {
			name += styleMuted.Render(" (" + title(m.Pokemon.Name) + ")")
		}
		tbl.Row(fmt.Sprintf("%d", i+1), name, strings.Join(ts, " "), nature, item, strings.Join(moves, ", "))
	}
	return tbl.String() + "\n"
}
