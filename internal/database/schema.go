package database

import (
	"context"
	"fmt"
)

// VendorCategories is the fixed category list seeded on first use.
var VendorCategories = []string{
	"Venue",
	"Catering",
	"Decoration",
	"Photography",
	"Music & DJ",
	"Mehndi",
	"Priest",
	"Transport",
	"Misc",
}

// tables maps table name to its column DDL. The autoincrement primary key
// comes from the dialect and is prepended to every table.
var tables = []struct {
	name    string
	columns string
}{
	{"events", `
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		assigned_to TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"guests", `
		side TEXT NOT NULL,
		name TEXT NOT NULL,
		relation TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		visited BOOLEAN NOT NULL DEFAULT FALSE,
		stay_required BOOLEAN NOT NULL DEFAULT FALSE,
		room_no TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"travel", `
		guest_id INTEGER NOT NULL,
		arrival_date TEXT NOT NULL DEFAULT '',
		arrival_time TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT '',
		ref_no TEXT NOT NULL DEFAULT '',
		pickup_required BOOLEAN NOT NULL DEFAULT FALSE,
		pickup_person TEXT NOT NULL DEFAULT '',
		vehicle TEXT NOT NULL DEFAULT '',
		checkin_date TEXT NOT NULL DEFAULT '',
		checkout_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		assigned_to TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"vendors", `
		category TEXT NOT NULL,
		vendor_name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		assigned_to TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"rooms", `
		room_no TEXT NOT NULL,
		guest_name TEXT NOT NULL DEFAULT '',
		checkin TEXT NOT NULL DEFAULT '',
		checkout TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		assigned_to TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"purchases", `
		category TEXT NOT NULL,
		item TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"commercials", `
		category TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"notes", `
		category TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"uploads", `
		category TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		external_link TEXT NOT NULL,
		uploaded_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL`},
	{"vendor_categories", `
		name TEXT NOT NULL`},
}

// EnsureSchema creates any missing tables and seeds the one-time bootstrap
// rows. It is idempotent: running it again creates nothing and seeds only
// tables that are still empty.
func (s *Store) EnsureSchema(ctx context.Context) error {
	conn, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, t := range tables {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s,%s)",
			t.name, s.dialect.AutoIncrementPK(), t.columns)
		if _, err := conn.conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
	}

	if err := conn.seed(ctx); err != nil {
		return err
	}
	return nil
}

// seed inserts the bootstrap rows, only when the target table is empty.
func (c *Conn) seed(ctx context.Context) error {
	empty, err := c.tableEmpty(ctx, "events")
	if err != nil {
		return err
	}
	if empty {
		_, err := c.Exec(ctx,
			`INSERT INTO events (title, date, time, notes, status, created_by, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			"Venue Finalisation", "2026-01-25", "11:00",
			"Finalize venue and booking confirmation.", StatusPending, "SYSTEM", nowUTC())
		if err != nil {
			return fmt.Errorf("failed to seed default event: %w", err)
		}
	}

	empty, err = c.tableEmpty(ctx, "vendor_categories")
	if err != nil {
		return err
	}
	if empty {
		for _, name := range VendorCategories {
			if _, err := c.Exec(ctx, `INSERT INTO vendor_categories (name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("failed to seed vendor category: %w", err)
			}
		}
	}
	return nil
}

func (c *Conn) tableEmpty(ctx context.Context, table string) (bool, error) {
	var n int64
	err := c.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n == 0, nil
}

// ListVendorCategories returns the fixed category list in seeded order.
func (c *Conn) ListVendorCategories(ctx context.Context) ([]string, error) {
	rows, err := c.Query(ctx, `SELECT name FROM vendor_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor categories: %w", err)
	}
	var names []string
	for _, r := range rows {
		if s, ok := r.Get("name").(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}
