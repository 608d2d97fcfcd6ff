package export

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/ssriramteja/tablemeta/internal/report"
)

const parquetChunkSize = 1024

func parquetSchema() *arrow.Schema {
	cols := report.Columns()
	return arrow.NewSchema([]arrow.Field{
		{Name: cols[0], Type: arrow.BinaryTypes.String},
		{Name: cols[1], Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: cols[2], Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: cols[3], Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: cols[4], Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: cols[5], Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)
}

// WriteParquet writes the result set as a single snappy-compressed parquet
// file; absent fields become parquet nulls.
func WriteParquet(path string, rs *report.ResultSet) error {
	schema := parquetSchema()
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	names := builder.Field(0).(*array.StringBuilder)
	strCols := []*array.StringBuilder{
		builder.Field(1).(*array.StringBuilder),
		builder.Field(2).(*array.StringBuilder),
		builder.Field(3).(*array.StringBuilder),
		builder.Field(4).(*array.StringBuilder),
	}
	counts := builder.Field(5).(*array.Int64Builder)

	for _, rec := range rs.Records {
		names.Append(rec.TableName)
		for i, v := range []*string{rec.Location, rec.Owner, rec.CreateTime, rec.LastAccessTime} {
			if v == nil {
				strCols[i].AppendNull()
			} else {
				strCols[i].Append(*v)
			}
		}
		if rec.RowCount == nil {
			counts.AppendNull()
		} else {
			counts.Append(*rec.RowCount)
		}
	}

	record := builder.NewRecord()
	defer record.Release()
	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	if err := pqarrow.WriteTable(table, f, parquetChunkSize, props, pqarrow.DefaultWriterProps()); err != nil {
		f.Close()
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
