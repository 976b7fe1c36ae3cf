package client

import "fmt"

// FetchError reports a failed snapshot fetch. It is never fatal: the
// dashboard keeps its last-known-good snapshot and retries on the next
// poll tick.
type FetchError struct {
	StatusCode int // zero when the request never got a response
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status fetch failed (HTTP %d): %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("status fetch failed: %v", e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// SubmissionError reports a failed manuscript submission. It is surfaced
// to the user as an actionable message; there is no automatic retry.
type SubmissionError struct {
	StatusCode int
	Cause      error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission failed (HTTP %d): %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("submission failed: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }
