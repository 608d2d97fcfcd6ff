package types

import "time"

// TableMetadata is one collected row, one per input table. TableName is always
// set; every other field is nil when the catalog had no value for it or the
// lookup failed.
type TableMetadata struct {
	TableName      string  `json:"table_name"`
	Location       *string `json:"location"`
	Owner          *string `json:"owner"`
	CreateTime     *string `json:"create_time"`
	LastAccessTime *string `json:"last_access_time"`
	RowCount       *int64  `json:"row_count"`
}

// Populated reports whether every optional field carries a value.
func (m TableMetadata) Populated() bool {
	return m.Location != nil && m.Owner != nil && m.CreateTime != nil &&
		m.LastAccessTime != nil && m.RowCount != nil
}

// Degraded reports whether the row carries nothing but its name, the shape a
// failed lookup leaves behind.
func (m TableMetadata) Degraded() bool {
	return m.Location == nil && m.Owner == nil && m.CreateTime == nil &&
		m.LastAccessTime == nil && m.RowCount == nil
}

type RunSummary struct {
	RunID           string        `json:"run_id"`
	Namespace       string        `json:"namespace"`
	TablesRequested int           `json:"tables_requested"`
	TablesCollected int           `json:"tables_collected"`
	Populated       int           `json:"populated"`
	Degraded        int           `json:"degraded"`
	QueryFailures   int           `json:"query_failures"`
	Timeouts        int           `json:"timeouts"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
}
