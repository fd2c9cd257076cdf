package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkgate/internal/db"
)

type TicketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(database *sql.DB) *TicketRepository {
	return &TicketRepository{DB: database}
}

// Create persists a new open ticket and fills in its generated fields.
func (r *TicketRepository) Create(t *db.Ticket) error {
	query := `
		INSERT INTO tickets
		(license_plate, spot_number, vehicle_class, entry_time, price, driver_email, driver_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		t.LicensePlate,
		t.SpotNumber,
		string(t.VehicleClass),
		t.EntryTime,
		t.Price,
		t.DriverEmail,
		t.DriverPhone,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating ticket for plate %s: %w", t.LicensePlate, err)
	}
	return nil
}

// GetOpenByPlate returns the most recent open ticket for the plate, or
// (nil, nil) when the vehicle is not currently parked. At most one open
// ticket should exist per plate; ordering by entry time guards against a
// store that unexpectedly holds more.
func (r *TicketRepository) GetOpenByPlate(plate string) (*db.Ticket, error) {
	var t db.Ticket
	query := `
		SELECT id, license_plate, spot_number, vehicle_class, entry_time, price, driver_email, driver_phone, created_at, updated_at
		FROM tickets
		WHERE license_plate = $1 AND exit_time IS NULL
		ORDER BY entry_time DESC
		LIMIT 1`
	err := r.DB.QueryRow(query, plate).Scan(
		&t.ID, &t.LicensePlate, &t.SpotNumber, &t.VehicleClass, &t.EntryTime,
		&t.Price, &t.DriverEmail, &t.DriverPhone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying open ticket for plate %s: %w", plate, err)
	}
	return &t, nil
}

// Close stamps exit time and price onto the still-open row. The boolean
// reports whether the update was confirmed as applied; the caller decides
// what a false means, it is not an error here.
func (r *TicketRepository) Close(id int, exitTime time.Time, price float64) (bool, error) {
	result, err := r.DB.Exec(
		`UPDATE tickets SET exit_time = $1, price = $2, updated_at = NOW() WHERE id = $3 AND exit_time IS NULL`,
		exitTime, price, id,
	)
	if err != nil {
		return false, fmt.Errorf("error closing ticket %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking close of ticket %d: %w", id, err)
	}
	return affected > 0, nil
}

// CountByPlate counts every ticket ever recorded for the plate, open ones
// included. A count above one on departure marks the vehicle as recurring.
func (r *TicketRepository) CountByPlate(plate string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM tickets WHERE license_plate = $1`, plate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting tickets for plate %s: %w", plate, err)
	}
	return count, nil
}
