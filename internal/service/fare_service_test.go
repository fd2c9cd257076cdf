package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
)

func TestComputeFareCarOneHour(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-60 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Car, false)

	require.NoError(t, err)
	assert.Equal(t, 1.5, price)
}

func TestComputeFareBikeOneHour(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-60 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Bike, false)

	require.NoError(t, err)
	assert.Equal(t, 1.0, price)
}

func TestComputeFareCarFortyFiveMinutes(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-45 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Car, false)

	require.NoError(t, err)
	assert.Equal(t, 1.13, price)
}

func TestComputeFareBikeFortyFiveMinutes(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-45 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Bike, false)

	require.NoError(t, err)
	assert.Equal(t, 0.75, price)
}

func TestComputeFareCarFullDay(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-24 * time.Hour)

	price, err := svc.ComputeFare(entry, exit, db.Car, false)

	require.NoError(t, err)
	assert.Equal(t, 36.0, price)
}

func TestComputeFareGracePeriod(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()

	for _, class := range []db.VehicleClass{db.Car, db.Bike} {
		for _, minutes := range []int{1, 15, 30} {
			entry := exit.Add(-time.Duration(minutes) * time.Minute)

			price, err := svc.ComputeFare(entry, exit, class, false)
			require.NoError(t, err)
			assert.Zerof(t, price, "%s %dmin should be free", class, minutes)

			// Discount eligibility does not change a free stay.
			price, err = svc.ComputeFare(entry, exit, class, true)
			require.NoError(t, err)
			assert.Zero(t, price)
		}
	}
}

func TestComputeFareCarWithDiscount(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-60 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Car, true)

	require.NoError(t, err)
	// 1.425 rounded half-up, not banker's rounding.
	assert.Equal(t, 1.43, price)
}

func TestComputeFareBikeWithDiscount(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-60 * time.Minute)

	price, err := svc.ComputeFare(entry, exit, db.Bike, true)

	require.NoError(t, err)
	assert.Equal(t, 0.95, price)
}

func TestComputeFareFutureEntryTime(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(60 * time.Minute)

	_, err := svc.ComputeFare(entry, exit, db.Bike, false)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInterval)
}

func TestComputeFareZeroExitTime(t *testing.T) {
	svc := NewFareService()
	entry := time.Now().Add(-60 * time.Minute)

	_, err := svc.ComputeFare(entry, time.Time{}, db.Car, false)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInterval)
}

func TestComputeFareUnknownVehicleClass(t *testing.T) {
	svc := NewFareService()
	exit := time.Now()
	entry := exit.Add(-60 * time.Minute)

	_, err := svc.ComputeFare(entry, exit, db.VehicleClass("TRUCK"), false)

	assert.ErrorIs(t, err, apperrors.ErrUnknownVehicleClass)
}

func TestComputeFareFractionalMinutesTruncated(t *testing.T) {
	svc := NewFareService()
	// 60 minutes and 59 seconds still bills 60 whole minutes.
	exit := time.Unix(1_700_000_039, 0)
	entry := exit.Add(-(60*time.Minute + 59*time.Second))

	price, err := svc.ComputeFare(entry, exit, db.Car, false)

	require.NoError(t, err)
	assert.Equal(t, 1.5, price)
}
