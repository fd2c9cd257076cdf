package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"parkgate/internal/db"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(database *sql.DB) *AuditRepository {
	return &AuditRepository{DB: database}
}

// GetOrphanedSpots finds spots marked unavailable that no open ticket
// references. They show up when a workflow died between allocating the spot
// and opening (or after closing) a ticket.
func (r *AuditRepository) GetOrphanedSpots() ([]db.Spot, error) {
	query := `
		SELECT s.number, s.vehicle_class
		FROM spots s
		WHERE NOT s.available
		  AND NOT EXISTS (
			SELECT 1 FROM tickets t
			WHERE t.spot_number = s.number
			  AND t.vehicle_class = s.vehicle_class
			  AND t.exit_time IS NULL
		  )
		ORDER BY s.vehicle_class, s.number`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying orphaned spots: %w", err)
	}
	defer rows.Close()

	var spots []db.Spot
	for rows.Next() {
		var s db.Spot
		if err := rows.Scan(&s.Number, &s.VehicleClass); err != nil {
			return nil, fmt.Errorf("error scanning orphaned spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating orphaned spots: %w", err)
	}
	return spots, nil
}

// ReleaseSpotNumbers releases a batch of spots of one class in a single
// statement.
func (r *AuditRepository) ReleaseSpotNumbers(class db.VehicleClass, numbers []int) (int64, error) {
	if len(numbers) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(
		`UPDATE spots SET available = TRUE WHERE vehicle_class = $1 AND number = ANY($2)`,
		string(class), pq.Array(numbers),
	)
	if err != nil {
		return 0, fmt.Errorf("error releasing spots %v (%s): %w", numbers, class, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking released spots (%s): %w", class, err)
	}
	return affected, nil
}

// GetStaleOpenTickets lists tickets still open with an entry time before
// the cutoff, for manual reconciliation.
func (r *AuditRepository) GetStaleOpenTickets(before time.Time) ([]db.Ticket, error) {
	query := `
		SELECT id, license_plate, spot_number, vehicle_class, entry_time
		FROM tickets
		WHERE exit_time IS NULL AND entry_time < $1
		ORDER BY entry_time`
	rows, err := r.DB.Query(query, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []db.Ticket
	for rows.Next() {
		var t db.Ticket
		if err := rows.Scan(&t.ID, &t.LicensePlate, &t.SpotNumber, &t.VehicleClass, &t.EntryTime); err != nil {
			return nil, fmt.Errorf("error scanning stale ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating stale tickets: %w", err)
	}
	return tickets, nil
}
