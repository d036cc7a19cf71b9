package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const vendorColumns = "id, category, vendor_name, contact_person, phone, status, assigned_to, notes, created_by, updated_at"

func scanVendor(row interface{ Scan(...any) error }) (*Vendor, error) {
	v := &Vendor{}
	err := row.Scan(&v.ID, &v.Category, &v.VendorName, &v.ContactPerson, &v.Phone,
		&v.Status, &v.AssignedTo, &v.Notes, &v.CreatedBy, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVendor inserts a vendor and returns the stored record.
func (c *Conn) CreateVendor(ctx context.Context, v Vendor) (*Vendor, error) {
	if v.Status == "" {
		v.Status = StatusPending
	}
	id, err := c.insert(ctx,
		`INSERT INTO vendors (category, vendor_name, contact_person, phone, status, assigned_to, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Category, v.VendorName, v.ContactPerson, v.Phone, v.Status,
		v.AssignedTo, v.Notes, v.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return c.GetVendorByID(ctx, id)
}

// GetVendorByID retrieves a vendor by id.
func (c *Conn) GetVendorByID(ctx context.Context, id int64) (*Vendor, error) {
	row := c.conn.QueryRowContext(ctx,
		c.dialect.Rebind(`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`), id)
	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return v, nil
}

// ListVendors returns all vendors grouped by category.
func (c *Conn) ListVendors(ctx context.Context) ([]*Vendor, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// UpdateVendor overwrites a vendor's editable fields.
func (c *Conn) UpdateVendor(ctx context.Context, v Vendor) error {
	affected, err := c.Exec(ctx,
		`UPDATE vendors SET category = ?, vendor_name = ?, contact_person = ?, phone = ?, status = ?, assigned_to = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		v.Category, v.VendorName, v.ContactPerson, v.Phone, v.Status,
		v.AssignedTo, v.Notes, nowUTC(), v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVendor removes a vendor.
func (c *Conn) DeleteVendor(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
