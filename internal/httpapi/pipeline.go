package httpapi

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scriptorium/scriptorium/internal/model"
)

// Pipeline is the stub backend's in-memory editorial pipeline. It seeds a
// handful of manuscripts and advances them through the stages on a
// ticker, so the dashboard has live state to mirror. Nothing persists;
// restarting the stub restarts the world.
type Pipeline struct {
	mu          sync.Mutex
	manuscripts map[string]*tracked
	agents      map[string]model.AgentState
	rng         *rand.Rand
}

// tracked wraps a manuscript with bookkeeping the wire format omits.
type tracked struct {
	state model.ManuscriptState
	// cycles spent in a terminal status before the manuscript leaves the
	// active set
	terminalCycles int
}

var agentNames = []string{"screener", "reviewer", "qa-bot", "typesetter"}

var seedTitles = []struct {
	title  string
	author string
}{
	{"On the Migration of Eels", "B. Costa"},
	{"A Field Guide to Vanishing Ink", "M. Ferreira"},
	{"Twelve Protocols for Quiet Rooms", "H. Okafor"},
	{"The Cartographer's Apology", "L. Duarte"},
}

// NewPipeline returns a pipeline seeded with a few in-process manuscripts.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		manuscripts: make(map[string]*tracked),
		agents:      make(map[string]model.AgentState),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, name := range agentNames {
		p.agents[name] = model.AgentState{Status: "idle"}
	}
	for i, seed := range seedTitles {
		stage := model.Stages[i*2%len(model.Stages)]
		p.insert(model.ManuscriptState{
			Stage:  stage,
			Status: model.StatusInProcess,
			Score:  5 + p.rng.Float64()*4,
			Data:   model.ManuscriptData{Title: seed.title, Author: seed.author},
		})
	}
	return p
}

func (p *Pipeline) insert(state model.ManuscriptState) string {
	id := "ms-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	p.manuscripts[id] = &tracked{state: state}
	return id
}

// Submit registers a new manuscript at the head of the pipeline and
// returns its assigned ID.
func (p *Pipeline) Submit(sub model.Submission) model.SubmissionReceipt {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.insert(model.ManuscriptState{
		Stage:  model.StageSubmission,
		Status: model.StatusInProcess,
		Score:  5,
		Data: model.ManuscriptData{
			Title:   sub.Metadata.Title,
			Author:  sub.Metadata.Author,
			Summary: summarize(sub.Content),
		},
	})
	return model.SubmissionReceipt{
		ManuscriptID:  id,
		InitialStatus: string(model.StatusInProcess),
	}
}

// Snapshot returns a deep copy of the current pipeline state in the wire
// shape the dashboard polls.
func (p *Pipeline) Snapshot() model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := model.Snapshot{
		ActiveManuscripts: make(map[string]model.ManuscriptState, len(p.manuscripts)),
		StageCounts:       make(map[string]int, len(model.Stages)),
		AgentStates:       make(map[string]model.AgentState, len(p.agents)),
	}
	for _, stage := range model.Stages {
		snap.StageCounts[string(stage)] = 0
	}
	for id, m := range p.manuscripts {
		snap.ActiveManuscripts[id] = m.state
		snap.StageCounts[string(m.state.Stage)]++
	}
	for name, a := range p.agents {
		snap.AgentStates[name] = a
	}
	return snap
}

// Advance moves the world forward one tick: in-process manuscripts may
// progress a stage, drift in score, or hit a terminal verdict; finished
// manuscripts linger one cycle and then leave the active set; agents are
// reassigned to whatever is in flight.
func (p *Pipeline) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, m := range p.manuscripts {
		if m.state.Status != model.StatusInProcess {
			m.terminalCycles++
			if m.terminalCycles > 1 {
				delete(p.manuscripts, id)
			}
			continue
		}

		m.state.Score += p.rng.Float64()*1.2 - 0.5
		if m.state.Score < 0 {
			m.state.Score = 0
		}

		if p.rng.Float64() > 0.6 {
			continue // lingers in its current stage this tick
		}

		idx := m.state.Stage.Index()
		switch {
		case m.state.Score < 2.5:
			m.state.Status = model.StatusRejected
		case idx < 0:
			m.state.Stage = model.StageScreening
		case idx == len(model.Stages)-1:
			m.state.Status = model.StatusPublished
		default:
			m.state.Stage = model.Stages[idx+1]
		}
	}

	p.reassignAgents()
}

func (p *Pipeline) reassignAgents() {
	inFlight := make([]string, 0, len(p.manuscripts))
	for id, m := range p.manuscripts {
		if m.state.Status == model.StatusInProcess {
			inFlight = append(inFlight, id)
		}
	}

	for name, a := range p.agents {
		if len(inFlight) == 0 || p.rng.Float64() < 0.3 {
			a.Status = "idle"
			a.Manuscript = ""
		} else {
			a.Status = "busy"
			a.Manuscript = inFlight[p.rng.Intn(len(inFlight))]
			a.Processed++
		}
		p.agents[name] = a
	}
}

// Run advances the pipeline on the given cadence until ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Advance()
		}
	}
}

func summarize(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= 80 {
		return content
	}
	return string(runes[:80]) + "…"
}
