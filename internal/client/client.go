package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/scriptorium/scriptorium/internal/model"
)

// Client talks to the scriptorium backend. Snapshot fetches go through a
// freshness window: within the window repeated calls return the cached
// snapshot instead of issuing a new request.
type Client struct {
	baseURL    string
	httpClient *http.Client

	freshness time.Duration

	cacheMutex     sync.RWMutex
	cachedSnapshot *model.Snapshot
	cacheTimestamp time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithFreshnessWindow overrides the default snapshot cache window.
func WithFreshnessWindow(d time.Duration) Option {
	return func(c *Client) {
		c.freshness = d
	}
}

// WithHTTPClient swaps the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		freshness: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStatus returns the current pipeline snapshot. Within the freshness
// window the previously fetched snapshot is returned without a network
// call. Network or non-2xx failures return a *FetchError; the caller is
// expected to keep displaying its last-known-good snapshot.
func (c *Client) FetchStatus(ctx context.Context) (*model.Snapshot, error) {
	c.cacheMutex.RLock()
	if c.cachedSnapshot != nil && time.Since(c.cacheTimestamp) < c.freshness {
		snap := c.cachedSnapshot
		c.cacheMutex.RUnlock()
		return snap, nil
	}
	c.cacheMutex.RUnlock()

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	// Double-check after acquiring write lock
	if c.cachedSnapshot != nil && time.Since(c.cacheTimestamp) < c.freshness {
		return c.cachedSnapshot, nil
	}

	snap, err := c.fetchStatus(ctx)
	if err != nil {
		return nil, err
	}

	c.cachedSnapshot = snap
	c.cacheTimestamp = time.Now()
	return snap, nil
}

func (c *Client) fetchStatus(ctx context.Context) (*model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Cause: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("unmarshal snapshot: %w", err)}
	}

	// Decoding a snapshot with absent maps yields nils; normalize so
	// downstream reconciliation can range over them unconditionally.
	if snap.ActiveManuscripts == nil {
		snap.ActiveManuscripts = map[string]model.ManuscriptState{}
	}
	if snap.StageCounts == nil {
		snap.StageCounts = map[string]int{}
	}
	if snap.AgentStates == nil {
		snap.AgentStates = map[string]model.AgentState{}
	}

	return &snap, nil
}

// Invalidate drops the cached snapshot so the next FetchStatus issues a
// real request. Used by the manual refresh action to pre-empt the
// freshness window.
func (c *Client) Invalidate() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cachedSnapshot = nil
	c.cacheTimestamp = time.Time{}
}

// SubmitManuscript posts a new manuscript to the backend. Failures return
// a *SubmissionError to be surfaced to the user; there is no retry.
func (c *Client) SubmitManuscript(ctx context.Context, sub model.Submission) (*model.SubmissionReceipt, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, &SubmissionError{Cause: fmt.Errorf("marshal submission: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/processar_manuscrito", bytes.NewReader(payload))
	if err != nil {
		return nil, &SubmissionError{Cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmissionError{Cause: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))}
	}

	var receipt model.SubmissionReceipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("unmarshal receipt: %w", err)}
	}

	return &receipt, nil
}
