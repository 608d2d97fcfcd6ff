package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ssriramteja/tablemeta/internal/report"
	"github.com/ssriramteja/tablemeta/pkg/types"
)

// WriteCSV writes the result set with a header row; absent fields become
// empty cells.
func WriteCSV(path string, rs *report.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(report.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range rs.Records {
		if err := w.Write(csvRow(rec)); err != nil {
			f.Close()
			return fmt.Errorf("write csv row for %s: %w", rec.TableName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func csvRow(rec types.TableMetadata) []string {
	row := []string{
		rec.TableName,
		deref(rec.Location),
		deref(rec.Owner),
		deref(rec.CreateTime),
		deref(rec.LastAccessTime),
		"",
	}
	if rec.RowCount != nil {
		row[5] = strconv.FormatInt(*rec.RowCount, 10)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
