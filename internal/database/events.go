package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const eventColumns = "id, title, date, time, notes, assigned_to, status, created_by, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	e := &Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Notes,
		&e.AssignedTo, &e.Status, &e.CreatedBy, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent inserts an event and returns the stored record.
func (c *Conn) CreateEvent(ctx context.Context, e Event) (*Event, error) {
	if e.Status == "" {
		e.Status = StatusPending
	}
	id, err := c.insert(ctx,
		`INSERT INTO events (title, date, time, notes, assigned_to, status, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Date, e.Time, e.Notes, e.AssignedTo, e.Status, e.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return c.GetEventByID(ctx, id)
}

// GetEventByID retrieves an event by id.
func (c *Conn) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events ordered by date and time.
func (c *Conn) ListEvents(ctx context.Context) ([]*Event, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date, time`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent overwrites an event's editable fields.
func (c *Conn) UpdateEvent(ctx context.Context, e Event) error {
	affected, err := c.Exec(ctx,
		`UPDATE events SET title = ?, date = ?, time = ?, notes = ?, assigned_to = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		e.Title, e.Date, e.Time, e.Notes, e.AssignedTo, e.Status, nowUTC(), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event.
func (c *Conn) DeleteEvent(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
