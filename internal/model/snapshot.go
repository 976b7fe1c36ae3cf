package model

import "strings"

// Status represents the backend's verdict on a manuscript
type Status string

const (
	StatusInProcess Status = "in_process"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// ManuscriptData carries the human-facing fields of a manuscript.
// Any of these may be empty; consumers default them at display time.
type ManuscriptData struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Summary string `json:"summary"`
}

// ManuscriptState is the backend's view of one active manuscript.
// The client never mutates it, only mirrors it.
type ManuscriptState struct {
	Stage  Stage          `json:"etapa_atual"`
	Status Status         `json:"status"`
	Score  float64        `json:"score"`
	Data   ManuscriptData `json:"data"`
}

// DisplayTitle returns the manuscript title, falling back to a
// truncated ID when the backend sent none.
func (m ManuscriptState) DisplayTitle(id string) string {
	if t := strings.TrimSpace(m.Data.Title); t != "" {
		return t
	}
	return TruncateID(id)
}

// DisplayAuthor returns the author or "Unknown" when absent.
func (m ManuscriptState) DisplayAuthor() string {
	if a := strings.TrimSpace(m.Data.Author); a != "" {
		return a
	}
	return "Unknown"
}

// AgentState is the backend's status line for one pipeline agent.
type AgentState struct {
	Status     string `json:"status"`
	Manuscript string `json:"manuscrito"`
	Processed  int    `json:"processados"`
}

// Snapshot is one fetched state of the whole pipeline.
// It is immutable once decoded; every poll cycle produces a fresh one.
type Snapshot struct {
	ActiveManuscripts map[string]ManuscriptState `json:"manuscritos_ativos"`
	StageCounts       map[string]int             `json:"contadores_etapas"`
	AgentStates       map[string]AgentState      `json:"status_agentes"`
}

// Submission is the request body for creating a manuscript.
type Submission struct {
	Content  string             `json:"conteudo"`
	Metadata SubmissionMetadata `json:"metadata"`
}

// SubmissionMetadata describes the manuscript being submitted.
type SubmissionMetadata struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	AIGCDeclared bool   `json:"aigc_declarado"`
}

// SubmissionReceipt is the backend's acknowledgement of a submission.
type SubmissionReceipt struct {
	ManuscriptID  string `json:"manuscrito_id"`
	InitialStatus string `json:"status_inicial"`
}

// TruncateID shortens an opaque manuscript ID for display.
func TruncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
