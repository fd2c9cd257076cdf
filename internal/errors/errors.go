package errors

import (
	"errors"
	"net/http"
)

// Domain errors surfaced by the visit workflow. Callers are expected to
// match these with errors.Is; persistence and fare details are wrapped
// around them where useful.
var (
	ErrInvalidSelection    = errors.New("invalid vehicle class selection")
	ErrNoAvailableSpot     = errors.New("no available spot for vehicle class")
	ErrSpotAlreadyTaken    = errors.New("spot is already taken")
	ErrNoOpenTicket        = errors.New("no open ticket for vehicle")
	ErrInvalidInterval     = errors.New("exit time is before entry time")
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")
)

// StatusFor maps a workflow error to the HTTP status the API should answer
// with. Anything unrecognized is an internal error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSelection), errors.Is(err, ErrInvalidInterval), errors.Is(err, ErrUnknownVehicleClass):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoOpenTicket):
		return http.StatusNotFound
	case errors.Is(err, ErrNoAvailableSpot), errors.Is(err, ErrSpotAlreadyTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
