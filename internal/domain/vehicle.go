package domain

// VehicleType represents the kind of vehicle a trip is offered on.
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeAuto VehicleType = "auto"
)

// Vehicle represents a vehicle owned by a driver. A driver has at most one
// vehicle per type; trip posting creates one lazily when none exists.
type Vehicle struct {
	ID          string
	OwnerID     string
	Type        VehicleType
	Model       string
	NumberPlate string
	SeatsTotal  int
}
