package vehicle

import (
	"sort"
	"strings"

	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUnit registers a physical vehicle under a catalog model.
func (s *DefaultVehicleService) CreateUnit(v *models.Vehicle) (*models.Vehicle, error) {
	v.LicensePlate = strings.ToUpper(strings.TrimSpace(v.LicensePlate))
	v.Location = strings.TrimSpace(v.Location)
	if v.LicensePlate == "" {
		return nil, utils.ErrInvalidReq
	}

	model, err := s.Models.GetByID(v.VehicleModelID)
	if err != nil {
		utils.GetLogger().Error("CreateUnit: failed to fetch model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if model == nil {
		return nil, utils.ErrModelNotFound
	}

	existing, err := s.Units.GetByLicensePlate(v.LicensePlate)
	if err != nil {
		utils.GetLogger().Error("CreateUnit: failed to check plate", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing != nil {
		return nil, utils.ErrLicensePlateExists
	}

	v.ID = uuid.NewString()
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	if !models.ValidVehicleStatus(v.Status) {
		return nil, utils.ErrInvalidVehicleState
	}
	if err := s.Units.Create(v); err != nil {
		utils.GetLogger().Error("CreateUnit: failed to create unit", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return v, nil
}

// ListUnits runs a paginated fleet listing for the back office.
func (s *DefaultVehicleService) ListUnits(q models.VehicleQuery) (*UnitPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 20
	}

	items, total, err := s.Units.List(q)
	if err != nil {
		utils.GetLogger().Error("ListUnits: listing failed", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return &UnitPage{Items: items, Total: total, Page: q.Page, Size: q.Size}, nil
}

// UpdateUnitStatus moves a unit through its lifecycle. Setting "deleted"
// retires the unit from every listing.
func (s *DefaultVehicleService) UpdateUnitStatus(id string, status models.VehicleStatus) error {
	if !models.ValidVehicleStatus(status) {
		return utils.ErrInvalidVehicleState
	}

	unit, err := s.Units.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("UpdateUnitStatus: failed to fetch unit", zap.Error(err))
		return utils.ErrUncategorized
	}
	if unit == nil {
		return utils.ErrVehicleNotFound
	}

	if err := s.Units.UpdateStatus(id, status); err != nil {
		utils.GetLogger().Error("UpdateUnitStatus: failed to update status", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}

// ModelLocations returns the distinct pickup locations of the model's
// available units. Units without a recorded location are skipped.
func (s *DefaultVehicleService) ModelLocations(modelID string) ([]string, error) {
	units, err := s.Units.ListAvailableByModel(modelID)
	if err != nil {
		utils.GetLogger().Error("ModelLocations: failed to list units", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	seen := make(map[string]bool)
	locations := make([]string, 0, len(units))
	for _, u := range units {
		loc := strings.TrimSpace(u.Location)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return locations, nil
}
