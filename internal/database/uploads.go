package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const uploadColumns = "id, category, title, external_link, uploaded_by, updated_at"

func scanUpload(row interface{ Scan(...any) error }) (*Upload, error) {
	u := &Upload{}
	err := row.Scan(&u.ID, &u.Category, &u.Title, &u.ExternalLink, &u.UploadedBy, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUpload inserts an upload link and returns the stored record.
// Files live elsewhere (drive links and the like); only the link is kept.
func (c *Conn) CreateUpload(ctx context.Context, u Upload) (*Upload, error) {
	id, err := c.insert(ctx,
		`INSERT INTO uploads (category, title, external_link, uploaded_by, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Category, u.Title, u.ExternalLink, u.UploadedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return c.GetUploadByID(ctx, id)
}

// GetUploadByID retrieves an upload by id.
func (c *Conn) GetUploadByID(ctx context.Context, id int64) (*Upload, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+uploadColumns+` FROM uploads WHERE id = ?`), id)
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return u, nil
}

// ListUploads returns all uploads, newest first.
func (c *Conn) ListUploads(ctx context.Context) ([]*Upload, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+uploadColumns+` FROM uploads ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// UpdateUpload overwrites an upload's editable fields.
func (c *Conn) UpdateUpload(ctx context.Context, u Upload) error {
	affected, err := c.Exec(ctx,
		`UPDATE uploads SET category = ?, title = ?, external_link = ?, updated_at = ?
		 WHERE id = ?`,
		u.Category, u.Title, u.ExternalLink, nowUTC(), u.ID)
	if err != nil {
		return fmt.Errorf("failed to update upload: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUpload removes an upload link.
func (c *Conn) DeleteUpload(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
