package commands

import (
	"fmt"
	"io"
	"osucard-backend/lib/scrapers/osuskills"
	"osucard-backend/lib/skillstore"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderSkillReport(out io.Writer, report osuskills.SkillReport) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Skill", "Value", "Percent", "World", "Country"})
	for _, name := range osuskills.SkillNames {
		skill := report.Skills[name]
		t.AppendRow(table.Row{
			name,
			skill.Value,
			fmt.Sprintf("%.1f%%", skill.Percent),
			fmt.Sprintf("#%d", skill.GlobalRank),
			fmt.Sprintf("#%d", skill.CountryRank),
		})
	}
	if len(report.Tags) > 0 {
		// tags are shown as osu!Skills spells them
		t.Style().Format.Footer = text.FormatDefault
		t.AppendFooter(table.Row{"Tags", strings.Join(report.Tags, ", ")})
	}
	t.Render()
}

func renderHistory(out io.Writer, snapshots []skillstore.Snapshot) {
	t := newTable(out)

	header := table.Row{"Date"}
	for _, name := range osuskills.SkillNames {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, snapshot := range snapshots {
		row := table.Row{snapshot.Time.Format(time.DateOnly)}
		for _, name := range osuskills.SkillNames {
			row = append(row, snapshot.Report.Skills[name].Value)
		}
		t.AppendRow(row)
	}
	t.Render()
}
