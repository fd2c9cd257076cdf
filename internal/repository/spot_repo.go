package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
)

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(database *sql.DB) *SpotRepository {
	return &SpotRepository{DB: database}
}

// FindAvailable returns the lowest-numbered free spot of the class. A full
// pool is reported through ok=false, not an error.
func (r *SpotRepository) FindAvailable(class db.VehicleClass) (int, bool, error) {
	var number int
	err := r.DB.QueryRow(
		`SELECT number FROM spots WHERE vehicle_class = $1 AND available ORDER BY number LIMIT 1`,
		string(class),
	).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error querying available spot for class %s: %w", class, err)
	}
	return number, true, nil
}

// Allocate marks the spot unavailable. The conditional update doubles as a
// compare-and-set on the availability flag, so two arrivals racing for the
// same spot cannot both succeed.
func (r *SpotRepository) Allocate(number int, class db.VehicleClass) error {
	result, err := r.DB.Exec(
		`UPDATE spots SET available = FALSE WHERE number = $1 AND vehicle_class = $2 AND available`,
		number, string(class),
	)
	if err != nil {
		return fmt.Errorf("error allocating spot %d (%s): %w", number, class, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking allocation of spot %d (%s): %w", number, class, err)
	}
	if affected == 0 {
		return fmt.Errorf("spot %d (%s): %w", number, class, apperrors.ErrSpotAlreadyTaken)
	}
	return nil
}

// Release marks the spot available again. Releasing an already-available
// spot is a no-op, which keeps double releases harmless.
func (r *SpotRepository) Release(number int, class db.VehicleClass) error {
	_, err := r.DB.Exec(
		`UPDATE spots SET available = TRUE WHERE number = $1 AND vehicle_class = $2`,
		number, string(class),
	)
	if err != nil {
		return fmt.Errorf("error releasing spot %d (%s): %w", number, class, err)
	}
	return nil
}

// ListSpots returns the whole inventory, ordered by class then number.
func (r *SpotRepository) ListSpots() ([]db.Spot, error) {
	rows, err := r.DB.Query(`SELECT number, vehicle_class, available FROM spots ORDER BY vehicle_class, number`)
	if err != nil {
		return nil, fmt.Errorf("error listing spots: %w", err)
	}
	defer rows.Close()

	var spots []db.Spot
	for rows.Next() {
		var s db.Spot
		if err := rows.Scan(&s.Number, &s.VehicleClass, &s.Available); err != nil {
			return nil, fmt.Errorf("error scanning spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spots: %w", err)
	}
	return spots, nil
}

// AddSpots extends the inventory of a class by count spots, numbered after
// the current maximum for that class.
func (r *SpotRepository) AddSpots(class db.VehicleClass, count int) error {
	if count <= 0 {
		return fmt.Errorf("spot count must be positive, got %d", count)
	}
	_, err := r.DB.Exec(`
		INSERT INTO spots (number, vehicle_class, available)
		SELECT base.max_number + gs.n, $1, TRUE
		FROM generate_series(1, $2) AS gs(n),
		     (SELECT COALESCE(MAX(number), 0) AS max_number FROM spots WHERE vehicle_class = $1) AS base`,
		string(class), count,
	)
	if err != nil {
		return fmt.Errorf("error adding %d spots for class %s: %w", count, class, err)
	}
	return nil
}
