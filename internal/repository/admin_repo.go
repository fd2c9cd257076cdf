package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"parkgate/internal/db"
	"parkgate/internal/entities"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

// ListTickets returns tickets filtered by entry date (YYYY-MM-DD), vehicle
// class and open/closed state; empty filters are skipped.
func (r *AdminRepository) ListTickets(date string, class db.VehicleClass, openOnly bool) ([]db.Ticket, error) {
	query := `
	SELECT id, license_plate, spot_number, vehicle_class, entry_time, exit_time, price, created_at, updated_at
	FROM tickets
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND DATE(entry_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if class != "" {
		query += " AND vehicle_class = $" + strconv.Itoa(idx)
		args = append(args, string(class))
		idx++
	}
	if openOnly {
		query += " AND exit_time IS NULL"
	}
	query += " ORDER BY entry_time DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []db.Ticket
	for rows.Next() {
		var t db.Ticket
		err := rows.Scan(
			&t.ID, &t.LicensePlate, &t.SpotNumber, &t.VehicleClass,
			&t.EntryTime, &t.ExitTime, &t.Price, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating tickets: %w", err)
	}
	return tickets, nil
}

// GetOccupancy aggregates total and free spots per vehicle class.
func (r *AdminRepository) GetOccupancy() ([]entities.OccupancySummary, error) {
	rows, err := r.DB.Query(`
		SELECT vehicle_class,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE available) AS free
		FROM spots
		GROUP BY vehicle_class
		ORDER BY vehicle_class`)
	if err != nil {
		return nil, fmt.Errorf("error querying occupancy: %w", err)
	}
	defer rows.Close()

	var summaries []entities.OccupancySummary
	for rows.Next() {
		var s entities.OccupancySummary
		if err := rows.Scan(&s.VehicleClass, &s.TotalSpots, &s.FreeSpots); err != nil {
			return nil, fmt.Errorf("error scanning occupancy row: %w", err)
		}
		s.OccupiedSpots = s.TotalSpots - s.FreeSpots
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating occupancy rows: %w", err)
	}
	return summaries, nil
}
