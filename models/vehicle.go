package models

import "time"

// VehicleType is a coarse category (sedan, SUV, scooter).
type VehicleType struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// VehicleModel is a catalog entry (make/trim). Individual rentable units are
// Vehicle records pointing at a model.
type VehicleModel struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Brand         string    `bson:"brand" json:"brand"`
	VehicleTypeID string    `bson:"vehicle_type_id" json:"vehicleTypeId"`
	PricePerDay   float64   `bson:"price_per_day" json:"pricePerDay"`
	Seats         int       `bson:"seats" json:"seats"`
	Fuel          string    `bson:"fuel" json:"fuel"`
	Transmission  string    `bson:"transmission" json:"transmission"`
	Features      []string  `bson:"features,omitempty" json:"features,omitempty"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// VehicleStatus is the lifecycle state of a physical unit.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleDeleted     VehicleStatus = "deleted"
)

// ValidVehicleStatus reports whether s is a settable unit status.
func ValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleAvailable, VehicleRented, VehicleMaintenance, VehicleDeleted:
		return true
	}
	return false
}

// Vehicle is a physical unit of a model at a branch location. Units with
// status "deleted" are excluded from every listing and count.
type Vehicle struct {
	ID             string        `bson:"id" json:"id"`
	VehicleModelID string        `bson:"vehicle_model_id" json:"vehicleModelId"`
	LicensePlate   string        `bson:"license_plate" json:"licensePlate"`
	Location       string        `bson:"location" json:"location"`
	Status         VehicleStatus `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}

// ModelQuery carries catalog search filters. Page/Size of zero disables
// pagination.
type ModelQuery struct {
	Keyword       string
	VehicleTypeID string
	Brand         string
	MinPrice      float64
	MaxPrice      float64
	Page          int
	Size          int
}

// VehicleQuery carries unit listing filters for the back office.
type VehicleQuery struct {
	Keyword string
	Status  VehicleStatus
	Page    int
	Size    int
}
