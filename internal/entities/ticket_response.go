package entities

import "time"

type TicketResponse struct {
	ID           int        `json:"id"`
	LicensePlate string     `json:"license_plate"`
	SpotNumber   int        `json:"spot_number"`
	VehicleClass string     `json:"vehicle_class"`
	EntryTime    time.Time  `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
	Price        float64    `json:"price"`
}
