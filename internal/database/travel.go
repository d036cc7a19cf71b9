package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// travel is joined against guests so listings can show the guest name.
// The link is soft: a dangling guest_id yields a blank name, never an
// error.
const travelSelect = `
	SELECT t.id, t.guest_id, COALESCE(g.name, ''), t.arrival_date, t.arrival_time,
	       t.mode, t.ref_no, t.pickup_required, t.pickup_person, t.vehicle,
	       t.checkin_date, t.checkout_date, t.status, t.assigned_to, t.notes,
	       t.created_by, t.updated_at
	FROM travel t LEFT JOIN guests g ON g.id = t.guest_id`

func scanTravel(row interface{ Scan(...any) error }) (*Travel, error) {
	t := &Travel{}
	err := row.Scan(&t.ID, &t.GuestID, &t.GuestName, &t.ArrivalDate, &t.ArrivalTime,
		&t.Mode, &t.RefNo, &t.PickupRequired, &t.PickupPerson, &t.Vehicle,
		&t.CheckinDate, &t.CheckoutDate, &t.Status, &t.AssignedTo, &t.Notes,
		&t.CreatedBy, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTravel inserts a travel record and returns the stored record.
func (c *Conn) CreateTravel(ctx context.Context, t Travel) (*Travel, error) {
	if t.Status == "" {
		t.Status = StatusPending
	}
	id, err := c.insert(ctx,
		`INSERT INTO travel (guest_id, arrival_date, arrival_time, mode, ref_no, pickup_required, pickup_person, vehicle, checkin_date, checkout_date, status, assigned_to, notes, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.GuestID, t.ArrivalDate, t.ArrivalTime, t.Mode, t.RefNo, t.PickupRequired,
		t.PickupPerson, t.Vehicle, t.CheckinDate, t.CheckoutDate, t.Status,
		t.AssignedTo, t.Notes, t.CreatedBy, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create travel record: %w", err)
	}
	return c.GetTravelByID(ctx, id)
}

// GetTravelByID retrieves a travel record by id.
func (c *Conn) GetTravelByID(ctx context.Context, id int64) (*Travel, error) {
	row := c.conn.QueryRowContext(ctx, c.dialect.Rebind(travelSelect+` WHERE t.id = ?`), id)
	t, err := scanTravel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get travel record: %w", err)
	}
	return t, nil
}

// ListTravel returns all travel records ordered by arrival.
func (c *Conn) ListTravel(ctx context.Context) ([]*Travel, error) {
	rows, err := c.conn.QueryContext(ctx, travelSelect+` ORDER BY t.arrival_date, t.arrival_time, t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list travel records: %w", err)
	}
	defer rows.Close()

	var records []*Travel
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan travel record: %w", err)
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

// UpdateTravel overwrites a travel record's editable fields.
func (c *Conn) UpdateTravel(ctx context.Context, t Travel) error {
	affected, err := c.Exec(ctx,
		`UPDATE travel SET guest_id = ?, arrival_date = ?, arrival_time = ?, mode = ?, ref_no = ?, pickup_required = ?, pickup_person = ?, vehicle = ?, checkin_date = ?, checkout_date = ?, status = ?, assigned_to = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		t.GuestID, t.ArrivalDate, t.ArrivalTime, t.Mode, t.RefNo, t.PickupRequired,
		t.PickupPerson, t.Vehicle, t.CheckinDate, t.CheckoutDate, t.Status,
		t.AssignedTo, t.Notes, nowUTC(), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update travel record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTravel removes a travel record.
func (c *Conn) DeleteTravel(ctx context.Context, id int64) error {
	affected, err := c.Exec(ctx, `DELETE FROM travel WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete travel record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
