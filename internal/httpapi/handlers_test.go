package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptorium/scriptorium/internal/model"
)

func newTestServer(t *testing.T) (*httptest.Server, *Pipeline) {
	t.Helper()
	p := NewPipeline()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(SetupRoutes(p, logger))
	t.Cleanup(srv.Close)
	return srv, p
}

func TestGetStatusShape(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var snap model.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))

	assert.NotEmpty(t, snap.ActiveManuscripts, "pipeline starts seeded")
	assert.Len(t, snap.AgentStates, len(agentNames))
	for _, stage := range model.Stages {
		_, ok := snap.StageCounts[string(stage)]
		assert.True(t, ok, "counter missing for stage %s", stage)
	}
}

func TestStageCountsMatchActiveSet(t *testing.T) {
	p := NewPipeline()
	for i := 0; i < 10; i++ {
		p.Advance()
	}

	snap := p.Snapshot()
	total := 0
	for _, n := range snap.StageCounts {
		total += n
	}
	assert.Equal(t, len(snap.ActiveManuscripts), total)
}

func TestAdvanceRetiresFinishedManuscripts(t *testing.T) {
	p := NewPipeline()
	seeded := len(p.Snapshot().ActiveManuscripts)
	require.Positive(t, seeded)

	// Terminal manuscripts linger one cycle, then leave the active set,
	// so after enough ticks every seed has been retired.
	for i := 0; i < 500; i++ {
		p.Advance()
	}

	snap := p.Snapshot()
	assert.Empty(t, snap.ActiveManuscripts, "all seeds should eventually publish or reject")
}

func TestSubmitManuscriptEndpoint(t *testing.T) {
	srv, p := newTestServer(t)

	body := `{
		"conteudo": "A manuscript about the sea.",
		"metadata": {"title": "The Sea", "author": "N. Waves", "aigc_declarado": false}
	}`
	resp, err := http.Post(srv.URL+"/processar_manuscrito", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var receipt model.SubmissionReceipt
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&receipt))
	assert.True(t, strings.HasPrefix(receipt.ManuscriptID, "ms-"))
	assert.Equal(t, string(model.StatusInProcess), receipt.InitialStatus)

	snap := p.Snapshot()
	state, ok := snap.ActiveManuscripts[receipt.ManuscriptID]
	require.True(t, ok, "submitted manuscript must join the active set")
	assert.Equal(t, model.StageSubmission, state.Stage)
	assert.Equal(t, "The Sea", state.Data.Title)
}

func TestSubmitManuscriptValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing title", `{"conteudo": "text", "metadata": {"author": "A"}}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/processar_manuscrito", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
