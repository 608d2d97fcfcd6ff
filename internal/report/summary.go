package report

import (
	"time"

	"github.com/ssriramteja/tablemeta/internal/resolve"
	"github.com/ssriramteja/tablemeta/pkg/types"
)

// Summarize condenses a finished batch into the run-level counts: how many
// rows came back fully populated versus degraded, and why the degraded ones
// degraded. requested is the raw input size before blank/duplicate dropping.
func Summarize(runID, namespace string, requested int, outcomes []resolve.Outcome, started time.Time) types.RunSummary {
	s := types.RunSummary{
		RunID:           runID,
		Namespace:       namespace,
		TablesRequested: requested,
		TablesCollected: len(outcomes),
		StartedAt:       started,
		Duration:        time.Since(started),
	}
	for _, o := range outcomes {
		switch o.Status {
		case resolve.StatusResolved:
			if o.Record.Populated() {
				s.Populated++
			}
		case resolve.StatusQueryFailed:
			s.Degraded++
			s.QueryFailures++
		case resolve.StatusTimedOut:
			s.Degraded++
			s.Timeouts++
		}
	}
	return s
}
