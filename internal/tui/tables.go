package tui

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/scriptorium/scriptorium/internal/model"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// stageCountsTable projects the per-stage counters in pipeline order.
// Stages the backend did not report show as zero; counters for unknown
// stage names are appended at the bottom so nothing is silently dropped.
func stageCountsTable(snap *model.Snapshot) string {
	rows := make([][]string, 0, len(model.Stages))
	for _, stage := range model.Stages {
		rows = append(rows, []string{string(stage), fmt.Sprintf("%d", snap.StageCounts[string(stage)])})
	}

	var extras []string
	for name := range snap.StageCounts {
		if !model.Stage(name).Known() {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		rows = append(rows, []string{name, fmt.Sprintf("%d", snap.StageCounts[name])})
	}

	return renderTable(
		[]string{"Stage", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

// manuscriptsTable projects the active manuscripts, sorted by ID for a
// stable display across polls.
func manuscriptsTable(snap *model.Snapshot) string {
	ids := make([]string, 0, len(snap.ActiveManuscripts))
	for id := range snap.ActiveManuscripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		state := snap.ActiveManuscripts[id]
		rows = append(rows, []string{
			model.TruncateID(id),
			clip(state.DisplayTitle(id), 24),
			clip(state.DisplayAuthor(), 16),
			string(state.Stage),
			string(state.Status),
			fmt.Sprintf("%.1f", state.Score),
		})
	}

	return renderTable(
		[]string{"ID", "Title", "Author", "Stage", "Status", "Score"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// agentsTable projects the agent status map, sorted by agent name.
func agentsTable(snap *model.Snapshot) string {
	names := make([]string, 0, len(snap.AgentStates))
	for name := range snap.AgentStates {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		a := snap.AgentStates[name]
		working := a.Manuscript
		if working == "" {
			working = "-"
		} else {
			working = model.TruncateID(working)
		}
		rows = append(rows, []string{
			name,
			a.Status,
			working,
			fmt.Sprintf("%d", a.Processed),
		})
	}

	return renderTable(
		[]string{"Agent", "Status", "Working On", "Done"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
