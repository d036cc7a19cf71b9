package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect abstracts the differences between the two backends so statement
// text stays backend-agnostic everywhere else: placeholder style,
// autoincrement-key DDL and how a fresh insert id is retrieved. One
// implementation is selected at startup; nothing else branches on the
// backend.
type Dialect interface {
	Name() string
	Driver() string

	// Rebind converts a statement written with ? placeholders into the
	// backend's native placeholder syntax.
	Rebind(query string) string

	// AutoIncrementPK is the DDL fragment declaring an autoincrement
	// integer primary key column named id.
	AutoIncrementPK() string

	// insertID runs an INSERT (already rebound) and returns the generated
	// row id.
	insertID(ctx context.Context, conn *sql.Conn, query string, args []any) (int64, error)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string   { return "sqlite" }
func (sqliteDialect) Driver() string { return "sqlite3" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) AutoIncrementPK() string {
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (sqliteDialect) insertID(ctx context.Context, conn *sql.Conn, query string, args []any) (int64, error) {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type postgresDialect struct{}

func (postgresDialect) Name() string   { return "postgres" }
func (postgresDialect) Driver() string { return "postgres" }

// Rebind rewrites ? placeholders as $1..$n. Statement text never carries a
// literal question mark, so no quote tracking is needed.
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (postgresDialect) AutoIncrementPK() string {
	return "id SERIAL PRIMARY KEY"
}

// lib/pq does not support LastInsertId, so inserts go through RETURNING.
func (postgresDialect) insertID(ctx context.Context, conn *sql.Conn, query string, args []any) (int64, error) {
	var id int64
	err := conn.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
	return id, err
}
