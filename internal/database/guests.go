package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const guestColumns = "id, side, name, relation, phone, visited, stay_required, room_no, notes, created_by, updated_at"

func scanGuest(row interface{ Scan(...any) error }) (*Guest, error) {
	g := &Guest{}
	err := row.Scan(&g.ID, &g.Side, &g.Name, &g.Relation, &g.Phone,
		&g.Visited, &g.StayRequired, &g.RoomNo, &g.Notes, &g.CreatedBy, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// CreateGuest inserts a guest and returns the stored record.
func (c *Conn) CreateGuest(ctx context.Context, g Guest) (*Guest, error) {
	id, err := c.insert(ctx,
		`INSERT INTO guests (side, name, relation, phone, visited, stay_required, room_no, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Side, g.Name, g.Relation, g.Phone, g.Visited, g.StayRequired,
		g.RoomNo, g.Notes, g.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return c.GetGuestByID(ctx, id)
}

// GetGuestByID retrieves a guest by id.
func (c *Conn) GetGuestByID(ctx context.Context, id int64) (*Guest, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+guestColumns+` FROM guests WHERE id = ?`), id)
	g, err := scanGuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return g, nil
}

// ListGuests returns all guests, bride side first, then by id.
func (c *Conn) ListGuests(ctx context.Context) ([]*Guest, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY side, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []*Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// UpdateGuest overwrites a guest's editable fields.
func (c *Conn) UpdateGuest(ctx context.Context, g Guest) error {
	affected, err := c.Exec(ctx,
		`UPDATE guests SET side = ?, name = ?, relation = ?, phone = ?, visited = ?, stay_required = ?, room_no = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		g.Side, g.Name, g.Relation, g.Phone, g.Visited, g.StayRequired,
		g.RoomNo, g.Notes, nowUTC(), g.ID)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleGuestVisited flips the visited flag.
func (c *Conn) ToggleGuestVisited(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx,
		`UPDATE guests SET visited = NOT visited, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle guest visit: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGuest removes a guest. Travel rows keep their guest_id; the link
// is soft and dangles after this.
func (c *Conn) DeleteGuest(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
