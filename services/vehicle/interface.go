package vehicle

import (
	vehicleRepo "rentvehicle/database/repository/vehicle"
	"rentvehicle/models"
)

// VehicleService handles the catalog (types and models) and the physical
// fleet units behind it.
type VehicleService interface {
	// Vehicle types
	CreateType(t *models.VehicleType) (*models.VehicleType, error)
	ListTypes() ([]models.VehicleType, error)
	UpdateType(t *models.VehicleType) (*models.VehicleType, error)
	DeleteType(id string) error

	// Catalog models
	CreateModel(m *models.VehicleModel) (*models.VehicleModel, error)
	GetModel(id string) (*ModelDetail, error)
	SearchModels(q models.ModelQuery) (*ModelPage, error)
	Brands() ([]string, error)
	UpdateModel(m *models.VehicleModel) (*models.VehicleModel, error)
	DeleteModel(id string) error

	// Fleet units
	CreateUnit(v *models.Vehicle) (*models.Vehicle, error)
	ListUnits(q models.VehicleQuery) (*UnitPage, error)
	UpdateUnitStatus(id string, status models.VehicleStatus) error
	ModelLocations(modelID string) ([]string, error)
}

// DefaultVehicleService is the production implementation.
type DefaultVehicleService struct {
	Types  vehicleRepo.VehicleTypeRepository
	Models vehicleRepo.VehicleModelRepository
	Units  vehicleRepo.VehicleRepository
}

// ModelDetail is a catalog entry together with its rentable units and the
// branch locations they can be picked up from.
type ModelDetail struct {
	Model     models.VehicleModel `json:"model"`
	Units     []models.Vehicle    `json:"units"`
	Locations []string            `json:"locations"`
}

// ModelPage is one page of catalog search results.
type ModelPage struct {
	Items []models.VehicleModel `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
}

// UnitPage is one page of fleet units for the back office.
type UnitPage struct {
	Items []models.Vehicle `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}
