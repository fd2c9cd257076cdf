package entities

type OccupancySummary struct {
	VehicleClass  string `json:"vehicle_class"`
	TotalSpots    int    `json:"total_spots"`
	FreeSpots     int    `json:"free_spots"`
	OccupiedSpots int    `json:"occupied_spots"`
}
