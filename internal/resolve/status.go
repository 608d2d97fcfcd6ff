package resolve

import (
	"context"
	"errors"
)

// Centralized outcome kinds for a single table's resolution.
// Rules:
// - StatusResolved for a completed lookup, even if some attributes were absent
// - StatusQueryFailed for any catalog/engine failure
// - StatusTimedOut when the per-table deadline expired first
const (
	StatusResolved    = "resolved"
	StatusQueryFailed = "query_failed"
	StatusTimedOut    = "timed_out"
)

// StatusFor classifies a failure. Deadline expiry is reported as a timeout
// whether the engine noticed it or the collector stopped waiting.
func StatusFor(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimedOut
	}
	return StatusQueryFailed
}
