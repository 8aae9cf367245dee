package vehicleRepo

import "rentvehicle/models"

// VehicleTypeRepository defines persistence for vehicle categories.
type VehicleTypeRepository interface {
	Create(t *models.VehicleType) error
	GetByID(id string) (*models.VehicleType, error)
	GetByName(name string) (*models.VehicleType, error)
	GetAll() ([]models.VehicleType, error)
	Update(t *models.VehicleType) error
	Delete(id string) error
}

// VehicleModelRepository defines persistence for catalog entries.
type VehicleModelRepository interface {
	Create(m *models.VehicleModel) error
	GetByID(id string) (*models.VehicleModel, error)
	Search(q models.ModelQuery) ([]models.VehicleModel, int64, error)
	Brands() ([]string, error)
	Update(m *models.VehicleModel) error
	Delete(id string) error
}

// VehicleRepository defines persistence for physical units. Every listing
// excludes units with status "deleted".
type VehicleRepository interface {
	Create(v *models.Vehicle) error
	GetByID(id string) (*models.Vehicle, error)
	GetByLicensePlate(plate string) (*models.Vehicle, error)
	List(q models.VehicleQuery) ([]models.Vehicle, int64, error)
	ListByModel(modelID string) ([]models.Vehicle, error)
	ListAvailableByModel(modelID string) ([]models.Vehicle, error)
	UpdateStatus(id string, status models.VehicleStatus) error
}
