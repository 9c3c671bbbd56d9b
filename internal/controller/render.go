package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	stages := stageColumns(reports)

	header := append([]string{"Source", "Records"}, stages...)
	header = append(header, "Changed")

	alignment := make([]int, len(header))
	for i := range alignment {
		alignment[i] = tablewriter.ALIGN_CENTER
	}

	alignment[0] = tablewriter.ALIGN_LEFT

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment(alignment)

	totalRecords, totalChanged := 0, 0
	perStage := make([]int, len(stages))

	for _, report := range reports {
		row := []string{string(report.Source), strconv.Itoa(report.Records)}

		for i, stage := range stages {
			changed := report.ChangedBy(stage)
			perStage[i] += changed
			row = append(row, strconv.Itoa(changed))
		}

		row = append(row, strconv.Itoa(report.Changed()))
		table.Append(row)

		totalRecords += report.Records
		totalChanged += report.Changed()
	}

	footer := []string{fmt.Sprintf("Total Files %d", len(reports)), strconv.Itoa(totalRecords)}
	for _, n := range perStage {
		footer = append(footer, strconv.Itoa(n))
	}

	footer = append(footer, strconv.Itoa(totalChanged))
	table.SetFooter(footer)

	table.Render()

	return tableBuffer.String()
}

// stageColumns lists stage names in the order they first appear across reports.
func stageColumns(reports []m.Report) []string {
	var names []string

	seen := make(map[string]struct{})

	for _, report := range reports {
		for _, stage := range report.Stages {
			if _, ok := seen[stage.Name]; ok {
				continue
			}

			seen[stage.Name] = struct{}{}
			names = append(names, stage.Name)
		}
	}

	return names
}

func renderDocletTable(records []m.Doclet) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Longname", "Kind", "Scope", "Access", "Memberof"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for i, d := range records {
		table.Append(docletRow(i, d))
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total Records %d", len(records)), "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func docletRow(index int, d m.Doclet) []string {
	longname := d.Longname
	if longname == "" {
		longname = d.Name
	}

	if d.IsPlaceholder() {
		longname += " (undocumented)"
	}

	return []string{
		strconv.Itoa(index),
		longname,
		string(d.Kind),
		string(d.Scope),
		string(d.Access),
		d.Memberof,
	}
}

type diffPalette struct {
	header *color.Color
	hunk   *color.Color
	added  *color.Color
	remove *color.Color
}

func newDiffPalette(enabled bool) diffPalette {
	p := diffPalette{
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		added:  color.New(color.FgGreen),
		remove: color.New(color.FgRed),
	}

	for _, c := range []*color.Color{p.header, p.hunk, p.added, p.remove} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func renderDiff(diff m.RecordDiff, palette diffPalette) string {
	var b strings.Builder

	b.WriteString(palette.header.Sprintf("%s [%d] %s", diff.Source, diff.Index, diff.Longname))
	b.WriteString("\n")

	for _, line := range strings.Split(strings.TrimSuffix(diff.Unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(palette.header.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(palette.hunk.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(palette.added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(palette.remove.Sprint(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	return b.String()
}
