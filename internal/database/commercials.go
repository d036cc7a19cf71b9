package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const commercialColumns = "id, category, amount, notes, created_by, updated_at"

func scanCommercial(row interface{ Scan(...any) error }) (*Commercial, error) {
	cm := &Commercial{}
	err := row.Scan(&cm.ID, &cm.Category, &cm.Amount, &cm.Notes, &cm.CreatedBy, &cm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// CreateCommercial inserts a commercial spend record and returns the
// stored record.
func (c *Conn) CreateCommercial(ctx context.Context, cm Commercial) (*Commercial, error) {
	id, err := c.insert(ctx,
		`INSERT INTO commercials (category, amount, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		cm.Category, cm.Amount, cm.Notes, cm.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create commercial: %w", err)
	}
	return c.GetCommercialByID(ctx, id)
}

// GetCommercialByID retrieves a commercial record by id.
func (c *Conn) GetCommercialByID(ctx context.Context, id int64) (*Commercial, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+commercialColumns+` FROM commercials WHERE id = ?`), id)
	cm, err := scanCommercial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commercial: %w", err)
	}
	return cm, nil
}

// ListCommercials returns all commercial records.
func (c *Conn) ListCommercials(ctx context.Context) ([]*Commercial, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+commercialColumns+` FROM commercials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list commercials: %w", err)
	}
	defer rows.Close()

	var commercials []*Commercial
	for rows.Next() {
		cm, err := scanCommercial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commercial: %w", err)
		}
		commercials = append(commercials, cm)
	}
	return commercials, rows.Err()
}

// TotalCommercials sums every amount.
func TotalCommercials(commercials []*Commercial) decimal.Decimal {
	total := decimal.Zero
	for _, cm := range commercials {
		total = total.Add(cm.Amount)
	}
	return total
}

// UpdateCommercial overwrites a commercial record's editable fields.
func (c *Conn) UpdateCommercial(ctx context.Context, cm Commercial) error {
	affected, err := c.Exec(ctx,
		`UPDATE commercials SET category = ?, amount = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		cm.Category, cm.Amount, cm.Notes, nowUTC(), cm.ID)
	if err != nil {
		return fmt.Errorf("failed to update commercial: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCommercial removes a commercial record.
func (c *Conn) DeleteCommercial(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM commercials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete commercial: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
