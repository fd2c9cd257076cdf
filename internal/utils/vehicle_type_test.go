package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/db"
	apperrors "parkgate/internal/errors"
)

func TestClassFromSelector(t *testing.T) {
	class, err := ClassFromSelector(1)
	require.NoError(t, err)
	assert.Equal(t, db.Car, class)

	class, err = ClassFromSelector(2)
	require.NoError(t, err)
	assert.Equal(t, db.Bike, class)

	for _, selector := range []int{0, 3, -1, 99} {
		_, err = ClassFromSelector(selector)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)
	}
}

func TestParseClass(t *testing.T) {
	for _, name := range []string{"car", "CAR", " Car "} {
		class, err := ParseClass(name)
		require.NoError(t, err)
		assert.Equal(t, db.Car, class)
	}

	class, err := ParseClass("bike")
	require.NoError(t, err)
	assert.Equal(t, db.Bike, class)

	_, err = ParseClass("truck")
	assert.ErrorIs(t, err, apperrors.ErrUnknownVehicleClass)
}
