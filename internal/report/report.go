package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ssriramteja/tablemeta/internal/resolve"
	"github.com/ssriramteja/tablemeta/pkg/types"
)

// ErrMissingTableName marks a record that violates the fixed schema. Seeing
// it means a programming defect upstream, not an operational condition.
var ErrMissingTableName = errors.New("record is missing its table name")

// ResultSet is the aggregate the output side consumes: one record per
// collected table, sorted by table name so repeated runs serialize
// identically regardless of completion order.
type ResultSet struct {
	Records []types.TableMetadata
}

// Columns fixes the serialization order and naming for every tabular format.
func Columns() []string {
	return []string{
		"table_name",
		"location",
		"owner",
		"create_time",
		"last_access_time",
		"row_count",
	}
}

// Assemble collects records into a ResultSet. It performs no transformation
// beyond ordering; the only failure is a schema violation.
func Assemble(records []types.TableMetadata) (*ResultSet, error) {
	out := make([]types.TableMetadata, 0, len(records))
	for i, rec := range records {
		if rec.TableName == "" {
			return nil, fmt.Errorf("assemble record %d: %w", i, ErrMissingTableName)
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TableName < out[j].TableName
	})
	return &ResultSet{Records: out}, nil
}

// Records strips the internal tags off a batch of outcomes.
func Records(outcomes []resolve.Outcome) []types.TableMetadata {
	records := make([]types.TableMetadata, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, o.Record)
	}
	return records
}
