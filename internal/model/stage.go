package model

// Stage is one step of the editorial pipeline
type Stage string

const (
	StageSubmission  Stage = "Submission"
	StageScreening   Stage = "Screening"
	StageAnalysis    Stage = "Analysis"
	StageReview      Stage = "Review"
	StageRevision    Stage = "Revision"
	StageQA          Stage = "QA"
	StageLayout      Stage = "Layout"
	StagePublication Stage = "Publication"
)

// Stages lists every pipeline stage in processing order.
// The order is load-bearing: scene anchors and table rows derive from it.
var Stages = []Stage{
	StageSubmission,
	StageScreening,
	StageAnalysis,
	StageReview,
	StageRevision,
	StageQA,
	StageLayout,
	StagePublication,
}

// Index returns the stage's position in the pipeline, or -1 if the
// stage name is not one of the known stages.
func (s Stage) Index() int {
	for i, known := range Stages {
		if s == known {
			return i
		}
	}
	return -1
}

// Known reports whether the stage is part of the fixed pipeline.
func (s Stage) Known() bool {
	return s.Index() >= 0
}
