package parser

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"team-planner/coverage"
	"team-planner/types"
)

// DisplayName turns a dex slug such as "thunder-shock" into "Thunder Shock".
func DisplayName(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func typeBadge(t types.Type) string {
	return fmt.Sprintf("<span class='type type-%s'>%s</span>", t, DisplayName(t.String()))
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "<span class='none'>-</span>"
	}
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = html.EscapeString(n)
	}
	return strings.Join(escaped, ", ")
}

// RenderCoverage builds the HTML summary fragment for a coverage result.
func RenderCoverage(res coverage.Result) string {
	var sb strings.Builder

	sb.WriteString("<div class='coverage-summary'>")
	if res.Empty() {
		sb.WriteString("<p class='empty'>Add a Pokémon to see team coverage.</p></div>")
		return sb.String()
	}

	top := res.MaxOffensive()
	sb.WriteString("<h3>Offensive coverage</h3><table class='offensive'>")
	for _, t := range types.All {
		n := res.Offensive[t]
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td><div class='bar' style='width:%d%%'></div></td><td>%d</td></tr>",
			typeBadge(t), n*100/top, n))
	}
	sb.WriteString("</table>")

	if missing := res.Uncovered(); len(missing) > 0 {
		badges := make([]string, len(missing))
		for i, t := range missing {
			badges[i] = typeBadge(t)
		}
		sb.WriteString("<div class='uncovered'><b>No super effective move against:</b> " + strings.Join(badges, " ") + "</div>")
	}

	sb.WriteString("<h3>Defensive coverage</h3><table class='defensive'>")
	sb.WriteString("<tr><th>Attack</th><th>Weak</th><th>Resist</th><th>Immune</th></tr>")
	for _, t := range types.All {
		d := res.Defensive[t]
		class := ""
		if len(d.Weaknesses) >= 3 {
			class = " class='danger'"
		}
		sb.WriteString(fmt.Sprintf("<tr%s><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			class, typeBadge(t), nameList(d.Weaknesses), nameList(d.Resistances), nameList(d.Immunities)))
	}
	sb.WriteString("</table></div>")
	return sb.String()
}

func entryList(entries []coverage.Entry) string {
	if len(entries) == 0 {
		return "<span class='none'>-</span>"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s ×%s", typeBadge(e.Type), e.Multiplier)
	}
	return strings.Join(parts, " ")
}

// RenderMatchup builds the HTML fragment for a single type combination.
func RenderMatchup(m coverage.Matchup) string {
	var sb strings.Builder

	badges := make([]string, len(m.Types))
	for i, t := range m.Types {
		badges[i] = typeBadge(t)
	}
	sb.WriteString("<div class='matchup'><h3>" + strings.Join(badges, " ") + "</h3>")
	sb.WriteString("<div><b>Weak to:</b> " + entryList(m.WeakTo) + "</div>")
	sb.WriteString("<div><b>Resists:</b> " + entryList(m.ResistantTo) + "</div>")
	sb.WriteString("<div><b>Immune to:</b> " + entryList(m.ImmuneTo) + "</div>")
	sb.WriteString("</div>")
	return sb.String()
}
