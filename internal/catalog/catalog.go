package catalog

import (
	"context"
	"fmt"
)

// DescribeEntry is one attribute row from a describe query. Value is "" when
// the engine returned NULL for it.
type DescribeEntry struct {
	Key   string
	Value string
}

// Client issues the two read-only lookups the collector needs. Implementations
// must be safe for concurrent use; every call issues exactly one query and
// performs no retries.
type Client interface {
	Describe(ctx context.Context, table string) ([]DescribeEntry, error)
	Count(ctx context.Context, table string) (int64, error)
	Close() error
}

// Op names the query that failed.
type Op string

const (
	OpDescribe Op = "describe"
	OpCount    Op = "count"
)

// QueryError wraps any failure coming back from the catalog engine for a
// single table: unreachable engine, absent table, malformed identifier, or an
// engine-side timeout. Callers are expected to absorb it, not abort on it.
type QueryError struct {
	Table string
	Op    Op
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog %s %q: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
