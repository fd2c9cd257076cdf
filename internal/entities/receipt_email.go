package entities

type ReceiptEmailData struct {
	LicensePlate       string
	SpotNumber         int
	VehicleClass       string
	EntryTimeFormatted string
	ExitTimeFormatted  string
	Price              float64
	Discounted         bool
	CurrentYear        int
}
