package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/internal/report"
)

// Supported artifact formats. Prior runs at the same path are overwritten.
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

type Options struct {
	Dir      string
	Basename string
	Formats  []string
}

// Writer serializes one ResultSet into the configured tabular artifacts.
type Writer struct {
	opts Options
	log  *zap.Logger
}

func NewWriter(opts Options, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{opts: opts, log: log}
}

// Write produces one file per configured format and returns the paths in
// configuration order.
func (w *Writer) Write(rs *report.ResultSet) ([]string, error) {
	if err := os.MkdirAll(w.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", w.opts.Dir, err)
	}

	var paths []string
	for _, format := range w.opts.Formats {
		path := filepath.Join(w.opts.Dir, w.opts.Basename+"."+format)
		var err error
		switch format {
		case FormatCSV:
			err = WriteCSV(path, rs)
		case FormatJSON:
			err = WriteJSON(path, rs)
		case FormatParquet:
			err = WriteParquet(path, rs)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return nil, err
		}
		w.log.Info("wrote artifact",
			zap.String("path", path),
			zap.Int("records", len(rs.Records)))
		paths = append(paths, path)
	}
	return paths, nil
}
