package scene

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scriptorium/scriptorium/internal/model"
)

const (
	objectGlyph   = '●'
	gridGlyph     = '┄'
	maxLabelRunes = 14

	// Scene extents mapped onto the canvas. Horizontal covers the jitter
	// range plus margin; vertical covers the anchor column.
	halfWidthUnits  = 4.0
	halfHeightUnits = 6.5
)

var gridStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3F4451"))
var stageNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636B78"))

type cell struct {
	ch    rune
	style lipgloss.Style
	set   bool
}

// RenderFrame draws the rotating scene into a width×height block of
// terminal cells. Stage anchor lines are drawn first, then objects from
// far to near so closer manuscripts paint over farther ones.
func RenderFrame(objects []*Object, cam Camera, width, height int) string {
	if width < 20 || height < len(model.Stages) {
		return ""
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// Left gutter holds the stage names next to their anchor rows.
	gutter := 0
	for _, stage := range model.Stages {
		if len(stage) > gutter {
			gutter = len(stage)
		}
	}
	gutter += 2

	plotW := width - gutter
	for _, stage := range model.Stages {
		row := rowFor(AnchorY(stage), height)
		name := string(stage)
		for i, ch := range name {
			putCell(grid, row, i, ch, stageNameStyle)
		}
		for col := gutter; col < width; col++ {
			putCell(grid, row, col, gridGlyph, gridStyle)
		}
	}

	// Far to near.
	ordered := make([]*Object, len(objects))
	copy(ordered, objects)
	sort.Slice(ordered, func(i, j int) bool {
		_, _, di := cam.project(ordered[i].Pos)
		_, _, dj := cam.project(ordered[j].Pos)
		return di < dj
	})

	for _, obj := range ordered {
		x, y, _ := cam.project(obj.Pos)
		row := rowFor(y, height)
		col := gutter + colFor(x, plotW)
		style := lipgloss.NewStyle().Foreground(obj.Color)

		putCell(grid, row, col, objectGlyph, style)
		label := []rune(truncateLabel(obj.Label))
		for i, ch := range label {
			putCell(grid, row, col+2+i, ch, style)
		}
	}

	lines := make([]string, height)
	for r, rowCells := range grid {
		var b strings.Builder
		for _, c := range rowCells {
			if !c.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.ch)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func putCell(grid [][]cell, row, col int, ch rune, style lipgloss.Style) {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	grid[row][col] = cell{ch: ch, style: style, set: true}
}

// rowFor maps scene Y to a canvas row, top row at +halfHeightUnits.
func rowFor(y float64, height int) int {
	frac := (halfHeightUnits - y) / (2 * halfHeightUnits)
	row := int(frac * float64(height-1))
	if row < 0 {
		return 0
	}
	if row >= height {
		return height - 1
	}
	return row
}

// colFor maps view-space X to a plot column.
func colFor(x float64, plotWidth int) int {
	frac := (x + halfWidthUnits) / (2 * halfWidthUnits)
	col := int(frac * float64(plotWidth-1))
	if col < 0 {
		return 0
	}
	if col >= plotWidth {
		return plotWidth - 1
	}
	return col
}

func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelRunes {
		return label
	}
	return string(runes[:maxLabelRunes-1]) + "…"
}
