package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scriptorium/scriptorium/internal/client"
	"github.com/scriptorium/scriptorium/internal/config"
	"github.com/scriptorium/scriptorium/internal/model"
)

// Helper to create a test model with minimal initialization
func createTestModel() Model {
	cfg := config.DefaultConfig()
	m := NewRootModel(cfg, client.New(cfg.BackendURL))
	m.ready = true
	m.width = 140
	m.height = 40
	return m
}

func testSnapshot(ids ...string) *model.Snapshot {
	snap := &model.Snapshot{
		ActiveManuscripts: map[string]model.ManuscriptState{},
		StageCounts:       map[string]int{},
		AgentStates:       map[string]model.AgentState{},
	}
	for _, id := range ids {
		snap.ActiveManuscripts[id] = model.ManuscriptState{
			Stage:  model.StageQA,
			Status: model.StatusInProcess,
			Data:   model.ManuscriptData{Title: "T-" + id},
		}
		snap.StageCounts[string(model.StageQA)]++
	}
	return snap
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// TestSnapshotMsgReconcilesRegistry tests that a fresh snapshot drives the
// scene registry to the snapshot's key set
func TestSnapshotMsgReconcilesRegistry(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.Update(snapshotMsg{snap: testSnapshot("abc123", "def456")})
	m = newModel.(Model)

	if m.registry.Len() != 2 {
		t.Fatalf("expected 2 tracked objects, got %d", m.registry.Len())
	}
	if m.registry.Get("abc123") == nil || m.registry.Get("def456") == nil {
		t.Errorf("expected objects for both snapshot IDs")
	}
	if m.fetchErr != "" {
		t.Errorf("expected fetchErr cleared, got %q", m.fetchErr)
	}
	if m.lastUpdated.IsZero() {
		t.Errorf("expected lastUpdated to be set")
	}
}

// TestEmptySnapshotEmptiesRegistry tests removal through the UI path
func TestEmptySnapshotEmptiesRegistry(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.Update(snapshotMsg{snap: testSnapshot("abc123")})
	m = newModel.(Model)
	if m.registry.Len() != 1 {
		t.Fatalf("expected 1 tracked object, got %d", m.registry.Len())
	}

	newModel, _ = m.Update(snapshotMsg{snap: testSnapshot()})
	m = newModel.(Model)
	if m.registry.Len() != 0 {
		t.Errorf("expected empty registry after empty snapshot, got %d objects", m.registry.Len())
	}
}

// TestFetchFailureKeepsLastKnownGood tests that a failed poll leaves the
// previous snapshot and scene intact
func TestFetchFailureKeepsLastKnownGood(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.Update(snapshotMsg{snap: testSnapshot("abc123")})
	m = newModel.(Model)

	newModel, _ = m.Update(fetchFailedMsg{err: errors.New("connection refused")})
	m = newModel.(Model)

	if m.snapshot == nil {
		t.Fatal("expected last known snapshot to be preserved")
	}
	if m.registry.Len() != 1 {
		t.Errorf("expected scene preserved across fetch failure, got %d objects", m.registry.Len())
	}
	if m.fetchErr == "" {
		t.Errorf("expected fetchErr to be surfaced")
	}
	if m.fetching {
		t.Errorf("expected fetching flag cleared")
	}
}

// TestFrameTickAdvancesCameraAndReschedules tests the render loop cadence
func TestFrameTickAdvancesCameraAndReschedules(t *testing.T) {
	m := createTestModel()
	before := m.camera.Yaw

	newModel, cmd := m.Update(frameTickMsg{})
	m = newModel.(Model)

	if m.camera.Yaw == before {
		t.Errorf("expected camera yaw to advance")
	}
	if cmd == nil {
		t.Errorf("expected next frame tick to be scheduled")
	}
}

// TestPollTickSchedulesFetch tests the poll loop cadence
func TestPollTickSchedulesFetch(t *testing.T) {
	m := createTestModel()

	newModel, cmd := m.Update(pollTickMsg{})
	m = newModel.(Model)

	if cmd == nil {
		t.Fatal("expected poll tick to schedule the next tick and a fetch")
	}
	if !m.fetching {
		t.Errorf("expected fetching flag set")
	}
}

// TestRefreshKeyTriggersImmediateFetch tests the manual refresh action
func TestRefreshKeyTriggersImmediateFetch(t *testing.T) {
	m := createTestModel()

	newModel, cmd := m.Update(keyMsg('r'))
	m = newModel.(Model)

	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if !m.fetching {
		t.Errorf("expected fetching flag set")
	}
}

// TestSubmitKeyOpensForm tests entering the submission view
func TestSubmitKeyOpensForm(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.Update(keyMsg('n'))
	m = newModel.(Model)

	if m.viewMode != ViewModeSubmit {
		t.Errorf("expected submit view, got %v", m.viewMode)
	}
}

// TestEscapeLeavesForm tests cancelling the submission view
func TestEscapeLeavesForm(t *testing.T) {
	m := createTestModel()
	m.viewMode = ViewModeSubmit

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = newModel.(Model)

	if m.viewMode != ViewModeDashboard {
		t.Errorf("expected dashboard view after esc, got %v", m.viewMode)
	}
}

// TestEnterOnInvalidFormShowsError tests that an empty form does not submit
func TestEnterOnInvalidFormShowsError(t *testing.T) {
	m := createTestModel()
	m.viewMode = ViewModeSubmit

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(Model)

	if cmd != nil {
		t.Errorf("expected no submit command for an invalid form")
	}
	if m.statusMsg == "" {
		t.Errorf("expected a validation message")
	}
}

// TestTypingFillsFocusedField tests that runes land in the form inputs
func TestTypingFillsFocusedField(t *testing.T) {
	m := createTestModel()
	m.viewMode = ViewModeSubmit

	for _, r := range "Eels" {
		newModel, _ := m.Update(keyMsg(r))
		m = newModel.(Model)
	}

	if got := m.form.inputs[fieldTitle].Value(); got != "Eels" {
		t.Errorf("expected title input %q, got %q", "Eels", got)
	}
}

// TestSubmissionSuccessReturnsToDashboard tests the happy submission path
func TestSubmissionSuccessReturnsToDashboard(t *testing.T) {
	m := createTestModel()
	m.viewMode = ViewModeSubmit

	newModel, cmd := m.Update(submissionDoneMsg{
		receipt: &model.SubmissionReceipt{ManuscriptID: "ms-42", InitialStatus: "in_process"},
	})
	m = newModel.(Model)

	if m.viewMode != ViewModeDashboard {
		t.Errorf("expected dashboard view after successful submission")
	}
	if !strings.Contains(m.statusMsg, "ms-42") {
		t.Errorf("expected status message to name the new manuscript, got %q", m.statusMsg)
	}
	if cmd == nil {
		t.Errorf("expected a forced refresh after submission")
	}
}

// TestSubmissionFailureStaysInForm tests the failed submission path
func TestSubmissionFailureStaysInForm(t *testing.T) {
	m := createTestModel()
	m.viewMode = ViewModeSubmit

	newModel, _ := m.Update(submissionDoneMsg{err: errors.New("backend said no")})
	m = newModel.(Model)

	if m.viewMode != ViewModeSubmit {
		t.Errorf("expected to stay in submit view after failure")
	}
	if !strings.Contains(m.statusMsg, "backend said no") {
		t.Errorf("expected failure message surfaced, got %q", m.statusMsg)
	}
}

// TestHelpToggles tests the help overlay
func TestHelpToggles(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.Update(keyMsg('?'))
	m = newModel.(Model)
	if m.viewMode != ViewModeHelp {
		t.Fatalf("expected help view")
	}

	newModel, _ = m.Update(keyMsg('?'))
	m = newModel.(Model)
	if m.viewMode != ViewModeDashboard {
		t.Errorf("expected dashboard view after closing help")
	}
}
