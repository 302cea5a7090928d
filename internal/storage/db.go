package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver

	"genesetdocs/internal/util"
)

const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// DB is a read-only handle on a gene set database. Queries are written with
// '?' placeholders and rebound for drivers that number them.
type DB struct {
	SQL    *sql.DB
	driver string
}

// NewDB opens and pings the database. For sqlite the dsn may be a plain file
// path, which is opened read-only so a mistyped path never creates an empty
// database. A missing database file is reported as util.ErrCorpusMissing.
func NewDB(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		if !strings.HasPrefix(dsn, "file:") {
			if _, err := os.Stat(dsn); errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", util.ErrCorpusMissing, dsn)
			}
		}
		dsn = sqliteDSN(dsn)
	case DriverPgx, "postgres":
		driver = DriverPgx
	default:
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return &DB{SQL: db, driver: driver}, nil
}

func sqliteDSN(dsn string) string {
	if strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	return "file:" + dsn + "?mode=ro"
}

func (d *DB) Driver() string { return d.driver }

func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.SQL.QueryContext(ctx, d.Rebind(query), args...)
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.SQL.QueryRowContext(ctx, d.Rebind(query), args...)
}

// Rebind rewrites '?' placeholders as $1, $2, ... for pgx. Queries in this
// package never contain a literal '?' inside a string.
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPgx || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
