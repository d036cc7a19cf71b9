package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const noteColumns = "id, category, title, content, created_by, updated_at"

func scanNote(row interface{ Scan(...any) error }) (*Note, error) {
	n := &Note{}
	err := row.Scan(&n.ID, &n.Category, &n.Title, &n.Content, &n.CreatedBy, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNote inserts a note and returns the stored record.
func (c *Conn) CreateNote(ctx context.Context, n Note) (*Note, error) {
	id, err := c.insert(ctx,
		`INSERT INTO notes (category, title, content, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		n.Category, n.Title, n.Content, n.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return c.GetNoteByID(ctx, id)
}

// GetNoteByID retrieves a note by id.
func (c *Conn) GetNoteByID(ctx context.Context, id int64) (*Note, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+noteColumns+` FROM notes WHERE id = ?`), id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

// ListNotes returns all notes, newest first.
func (c *Conn) ListNotes(ctx context.Context) ([]*Note, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote overwrites a note's editable fields.
func (c *Conn) UpdateNote(ctx context.Context, n Note) error {
	affected, err := c.Exec(ctx,
		`UPDATE notes SET category = ?, title = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		n.Category, n.Title, n.Content, nowUTC(), n.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes a note.
func (c *Conn) DeleteNote(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
