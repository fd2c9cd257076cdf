package api

// Entry gate
type RegisterEntryRequest struct {
	VehicleClass int    `json:"vehicle_class"` // selector: 1 = car, 2 = bike
	LicensePlate string `json:"license_plate"`
	DriverEmail  string `json:"driver_email,omitempty"`
	DriverPhone  string `json:"driver_phone,omitempty"`
}

// Exit gate
type RegisterExitRequest struct {
	LicensePlate string `json:"license_plate"`
}

// Admin inventory
type AddSpotsRequest struct {
	VehicleClass string `json:"vehicle_class"`
	Count        int    `json:"count"`
}
