package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ssriramteja/tablemeta/internal/report"
)

// WriteJSON writes the result set as an array of records. Every column is
// present in every object; absent fields serialize as null so the schema
// stays fixed.
func WriteJSON(path string, rs *report.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs.Records); err != nil {
		f.Close()
		return fmt.Errorf("encode json: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
