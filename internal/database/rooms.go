package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const roomColumns = "id, room_no, guest_name, checkin, checkout, status, assigned_to, notes, created_by, updated_at"

func scanRoom(row interface{ Scan(...any) error }) (*Room, error) {
	r := &Room{}
	err := row.Scan(&r.ID, &r.RoomNo, &r.GuestName, &r.Checkin, &r.Checkout,
		&r.Status, &r.AssignedTo, &r.Notes, &r.CreatedBy, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRoom inserts a venue room assignment and returns the stored record.
func (c *Conn) CreateRoom(ctx context.Context, r Room) (*Room, error) {
	if r.Status == "" {
		r.Status = StatusPending
	}
	id, err := c.insert(ctx,
		`INSERT INTO rooms (room_no, guest_name, checkin, checkout, status, assigned_to, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoomNo, r.GuestName, r.Checkin, r.Checkout, r.Status,
		r.AssignedTo, r.Notes, r.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return c.GetRoomByID(ctx, id)
}

// GetRoomByID retrieves a room assignment by id.
func (c *Conn) GetRoomByID(ctx context.Context, id int64) (*Room, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+roomColumns+` FROM rooms WHERE id = ?`), id)
	r, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return r, nil
}

// ListRooms returns all room assignments ordered by room number.
func (c *Conn) ListRooms(ctx context.Context) ([]*Room, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY room_no, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// UpdateRoom overwrites a room assignment's editable fields.
func (c *Conn) UpdateRoom(ctx context.Context, r Room) error {
	affected, err := c.Exec(ctx,
		`UPDATE rooms SET room_no = ?, guest_name = ?, checkin = ?, checkout = ?, status = ?, assigned_to = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		r.RoomNo, r.GuestName, r.Checkin, r.Checkout, r.Status,
		r.AssignedTo, r.Notes, nowUTC(), r.ID)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRoom removes a room assignment.
func (c *Conn) DeleteRoom(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
