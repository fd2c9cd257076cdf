package db

import "time"

// VehicleClass is the fixed designation of a spot and the class a driver
// selects at the entry gate. The set is closed; adding a class also means
// adding a rate constant for it in the fare service.
type VehicleClass string

const (
	Car  VehicleClass = "CAR"
	Bike VehicleClass = "BIKE"
)

func (c VehicleClass) Valid() bool {
	return c == Car || c == Bike
}

// Spot numbers are unique within a vehicle class, not globally.
type Spot struct {
	Number       int
	VehicleClass VehicleClass
	Available    bool
}

// Ticket is the billing record for one visit. ExitTime and Price stay unset
// while the ticket is open; closing it is the only mutation after creation.
type Ticket struct {
	ID           int
	LicensePlate string
	SpotNumber   int
	VehicleClass VehicleClass
	EntryTime    time.Time
	ExitTime     *time.Time
	Price        float64
	DriverEmail  string
	DriverPhone  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *Ticket) Open() bool {
	return t.ExitTime == nil
}
