package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const purchaseColumns = "id, category, item, amount, status, notes, created_by, updated_at"

func scanPurchase(row interface{ Scan(...any) error }) (*Purchase, error) {
	p := &Purchase{}
	err := row.Scan(&p.ID, &p.Category, &p.Item, &p.Amount, &p.Status,
		&p.Notes, &p.CreatedBy, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePurchase inserts a purchase and returns the stored record.
func (c *Conn) CreatePurchase(ctx context.Context, p Purchase) (*Purchase, error) {
	if p.Status == "" {
		p.Status = StatusPending
	}
	id, err := c.insert(ctx,
		`INSERT INTO purchases (category, item, amount, status, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Category, p.Item, p.Amount, p.Status, p.Notes, p.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return c.GetPurchaseByID(ctx, id)
}

// GetPurchaseByID retrieves a purchase by id.
func (c *Conn) GetPurchaseByID(ctx context.Context, id int64) (*Purchase, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`), id)
	p, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return p, nil
}

// ListPurchases returns all purchases grouped by category.
func (c *Conn) ListPurchases(ctx context.Context) ([]*Purchase, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// UpdatePurchase overwrites a purchase's editable fields.
func (c *Conn) UpdatePurchase(ctx context.Context, p Purchase) error {
	affected, err := c.Exec(ctx,
		`UPDATE purchases SET category = ?, item = ?, amount = ?, status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		p.Category, p.Item, p.Amount, p.Status, p.Notes, nowUTC(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update purchase: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePurchase removes a purchase.
func (c *Conn) DeletePurchase(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
