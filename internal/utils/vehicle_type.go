package utils

import (
	"strings"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
)

// ClassFromSelector maps the gate terminal selector to a vehicle class.
// 1 = car, 2 = bike; anything else is rejected before the pool is queried.
func ClassFromSelector(selector int) (db.VehicleClass, error) {
	switch selector {
	case 1:
		return db.Car, nil
	case 2:
		return db.Bike, nil
	default:
		return "", apperrors.ErrInvalidSelection
	}
}

// ParseClass normalizes a textual class name ("car", "BIKE", ...) as it
// arrives in query parameters and admin requests.
func ParseClass(name string) (db.VehicleClass, error) {
	c := db.VehicleClass(strings.ToUpper(strings.TrimSpace(name)))
	if !c.Valid() {
		return "", apperrors.ErrUnknownVehicleClass
	}
	return c, nil
}
