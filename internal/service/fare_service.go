package service

import (
	"fmt"
	"time"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
)

// Hourly rates per vehicle class, in euros.
const (
	CarRatePerHour  = 1.50
	BikeRatePerHour = 1.00

	// GraceMinutes is the free period at the start of every visit.
	GraceMinutes = 30
)

const (
	carRateCents  = 150
	bikeRateCents = 100

	// Recurring vehicles pay 95% of the regular fare.
	recurringPct = 95
)

type FareService struct{}

func NewFareService() *FareService {
	return &FareService{}
}

// ComputeFare prices a stay from its entry and exit stamps. Duration is the
// difference of the minute-truncated timestamps, so fractional-minute
// remainders are dropped. The result is rounded half-up to whole cents,
// once, after the full multiplication.
func (s *FareService) ComputeFare(entryTime, exitTime time.Time, class db.VehicleClass, discount bool) (float64, error) {
	if exitTime.IsZero() || exitTime.Before(entryTime) {
		return 0, fmt.Errorf("%w: entry %s, exit %s",
			apperrors.ErrInvalidInterval, entryTime.Format(time.RFC3339), exitTime.Format(time.RFC3339))
	}

	minutes := exitTime.Unix()/60 - entryTime.Unix()/60
	if minutes <= GraceMinutes {
		return 0, nil
	}

	var rateCents int64
	switch class {
	case db.Car:
		rateCents = carRateCents
	case db.Bike:
		rateCents = bikeRateCents
	default:
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownVehicleClass, class)
	}

	pct := int64(100)
	if discount {
		pct = recurringPct
	}

	// Integer cents keep the half-up rounding exact; rounding the float
	// product instead misses cases like 1.425 -> 1.43.
	const denom = 60 * 100
	cents := (minutes*rateCents*pct + denom/2) / denom
	return float64(cents) / 100, nil
}
