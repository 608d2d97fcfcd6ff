package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/internal/catalog"
)

const pingTimeout = 5 * time.Second

// Client reads table metadata from a catalog engine over the MySQL wire
// protocol. Hive-compatible lakehouse frontends (Doris, StarRocks and
// friends) answer DESCRIBE FORMATTED with attribute rows; plain row counting
// works everywhere the protocol does.
type Client struct {
	db        *sql.DB
	namespace string
	log       *zap.Logger
}

// NewClient opens a pooled connection for the run. A bad DSN is a hard error;
// an unreachable engine is not, since every lookup degrades per table anyway.
func NewClient(ctx context.Context, dsn, namespace string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse engine dsn: %w", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open engine connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Warn("catalog engine not reachable at startup, lookups will degrade",
			zap.String("addr", cfg.Addr),
			zap.Error(err))
	} else {
		log.Info("connected to catalog engine",
			zap.String("addr", cfg.Addr),
			zap.String("user", cfg.User),
			zap.String("namespace", namespace))
	}

	return &Client{db: db, namespace: namespace, log: log}, nil
}

// Describe runs the attribute query for one table and returns the raw rows as
// key/value pairs. Row shape varies by engine (two or three columns), so only
// the first two columns are kept and NULLs collapse to "".
func (c *Client) Describe(ctx context.Context, table string) ([]catalog.DescribeEntry, error) {
	query := fmt.Sprintf("DESCRIBE FORMATTED %s", c.qualify(table))
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &catalog.QueryError{Table: table, Op: catalog.OpDescribe, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &catalog.QueryError{Table: table, Op: catalog.OpDescribe, Err: err}
	}

	var entries []catalog.DescribeEntry
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &catalog.QueryError{Table: table, Op: catalog.OpDescribe, Err: err}
		}

		var entry catalog.DescribeEntry
		if len(vals) > 0 && vals[0].Valid {
			entry.Key = vals[0].String
		}
		if len(vals) > 1 && vals[1].Valid {
			entry.Value = vals[1].String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &catalog.QueryError{Table: table, Op: catalog.OpDescribe, Err: err}
	}
	return entries, nil
}

// Count returns the table's row count.
func (c *Client) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", c.qualify(table))
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, &catalog.QueryError{Table: table, Op: catalog.OpCount, Err: err}
	}
	return count, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) qualify(table string) string {
	return quoteIdent(c.namespace) + "." + quoteIdent(table)
}

// quoteIdent backtick-quotes an identifier for the MySQL dialect, doubling
// any embedded backticks.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var _ catalog.Client = (*Client)(nil)
