package scene

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/scriptorium/scriptorium/internal/model"
)

// Vertical layout of the stage anchors. The first pipeline stage sits at
// the top of the scene and each following stage steps down by anchorStep,
// so no two stages share a Y level.
const (
	anchorTop  = 5.25
	anchorStep = 1.5
)

// Status colors take precedence over stage colors (see targetColor).
var (
	ColorPublished  = lipgloss.Color("#98C379")
	ColorRejected   = lipgloss.Color("#E06C75")
	ColorInProgress = lipgloss.Color("#E5C07B")
)

// stageColors is the static per-stage color table.
var stageColors = map[model.Stage]lipgloss.Color{
	model.StageSubmission:  lipgloss.Color("#61AFEF"),
	model.StageScreening:   lipgloss.Color("#56B6C2"),
	model.StageAnalysis:    lipgloss.Color("#C678DD"),
	model.StageReview:      lipgloss.Color("#D19A66"),
	model.StageRevision:    lipgloss.Color("#E5C07B"),
	model.StageQA:          lipgloss.Color("#ABB2BF"),
	model.StageLayout:      lipgloss.Color("#5C6370"),
	model.StagePublication: lipgloss.Color("#98C379"),
}

// stageAnchors maps each known stage to its fixed anchor Y, computed once
// from the pipeline order.
var stageAnchors = func() map[model.Stage]float64 {
	anchors := make(map[model.Stage]float64, len(model.Stages))
	for i, stage := range model.Stages {
		anchors[stage] = anchorTop - float64(i)*anchorStep
	}
	return anchors
}()

// AnchorY returns the fixed Y position for a stage, or 0 for an
// unrecognized stage name.
func AnchorY(stage model.Stage) float64 {
	if y, ok := stageAnchors[stage]; ok {
		return y
	}
	return 0
}

// StageColor returns the display color for a stage, or the in-progress
// color for an unrecognized stage name.
func StageColor(stage model.Stage) lipgloss.Color {
	if c, ok := stageColors[stage]; ok {
		return c
	}
	return ColorInProgress
}

// targetColor applies the strict precedence: terminal status first, then
// stage color, then the in-progress default.
func targetColor(state model.ManuscriptState) lipgloss.Color {
	switch state.Status {
	case model.StatusPublished:
		return ColorPublished
	case model.StatusRejected:
		return ColorRejected
	}
	return StageColor(state.Stage)
}
