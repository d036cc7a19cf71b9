package database

import (
	"context"
	"fmt"
)

// Row is the canonical row shape every backend returns: a column→value
// mapping that remembers column order, so callers never branch on the
// driver's native row type.
type Row struct {
	columns []string
	values  map[string]any
}

// Columns returns the column names in statement order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the value for a column, or nil when the column is absent.
func (r Row) Get(column string) any {
	return r.values[column]
}

// Exec runs a mutating statement written with ? placeholders and returns
// the number of affected rows. Parameter values are never interpolated
// into the statement text.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.conn.ExecContext(ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// Query runs a read statement written with ? placeholders and returns
// every row as a canonical column→value mapping.
func (c *Conn) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := c.conn.QueryContext(ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		m := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				m[col] = string(b)
			} else {
				m[col] = values[i]
			}
		}
		out = append(out, Row{columns: columns, values: m})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// insert runs an INSERT and returns the generated id, going through the
// dialect since the backends retrieve fresh ids differently.
func (c *Conn) insert(ctx context.Context, query string, args ...any) (int64, error) {
	return c.dialect.insertID(ctx, c.conn, c.dialect.Rebind(query), args)
}
