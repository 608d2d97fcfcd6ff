package resolve

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/internal/catalog"
	"github.com/ssriramteja/tablemeta/pkg/types"
)

// Outcome pairs the public record with the internal failure tag. The record
// is always usable: on any failure it carries the table name and nothing
// else, so one broken table never aborts a batch.
type Outcome struct {
	Record types.TableMetadata
	Status string
	Err    error
}

// Failure builds the degraded outcome for a table.
func Failure(table, status string, err error) Outcome {
	return Outcome{
		Record: types.TableMetadata{TableName: table},
		Status: status,
		Err:    err,
	}
}

// Resolver turns one table identifier into one metadata record using the
// catalog client's describe and count queries.
type Resolver struct {
	client catalog.Client
	log    *zap.Logger
}

func New(client catalog.Client, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{client: client, log: log}
}

// Resolve runs both lookups for the table. Every failure kind collapses into
// a degraded record; the reason survives in the outcome tag and the log.
func (r *Resolver) Resolve(ctx context.Context, table string) Outcome {
	entries, err := r.client.Describe(ctx, table)
	if err != nil {
		return r.failed(table, err)
	}

	count, err := r.client.Count(ctx, table)
	if err != nil {
		return r.failed(table, err)
	}

	rec := mapEntries(table, entries)
	rec.RowCount = &count
	return Outcome{Record: rec, Status: StatusResolved}
}

func (r *Resolver) failed(table string, err error) Outcome {
	status := StatusFor(err)
	fields := []zap.Field{
		zap.String("table", table),
		zap.String("status", status),
		zap.Error(err),
	}
	var qe *catalog.QueryError
	if errors.As(err, &qe) {
		fields = append(fields, zap.String("op", string(qe.Op)))
	}
	r.log.Warn("table lookup failed, recording degraded row", fields...)
	return Failure(table, status, err)
}

// mapEntries folds raw describe rows into the fixed attribute set. Keys are
// matched after trimming padding and a trailing ':' and lowercasing; anything
// else is ignored. Empty values count as absent, and the first occurrence of
// a key wins.
func mapEntries(table string, entries []catalog.DescribeEntry) types.TableMetadata {
	rec := types.TableMetadata{TableName: table}
	for _, e := range entries {
		val := strings.TrimSpace(e.Value)
		if val == "" {
			continue
		}
		switch normalizeKey(e.Key) {
		case "location":
			setIfNil(&rec.Location, val)
		case "owner":
			setIfNil(&rec.Owner, val)
		case "createtime":
			setIfNil(&rec.CreateTime, val)
		case "lastaccesstime":
			setIfNil(&rec.LastAccessTime, val)
		}
	}
	return rec
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimSuffix(key, ":")
	key = strings.TrimSpace(key)
	return strings.ToLower(key)
}

func setIfNil(field **string, val string) {
	if *field == nil {
		*field = &val
	}
}
