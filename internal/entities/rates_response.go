package entities

type RateResponse struct {
	VehicleClass string  `json:"vehicle_class"`
	HourlyRate   float64 `json:"hourly_rate"`
	GraceMinutes int     `json:"grace_minutes"`
}
