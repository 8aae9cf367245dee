package vehicle

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	brandsCacheKey = "vehicleBrands"
	brandsCacheTTL = 10 * time.Minute
)

// CreateType adds a new vehicle category.
func (s *DefaultVehicleService) CreateType(t *models.VehicleType) (*models.VehicleType, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, utils.ErrInvalidReq
	}

	existing, err := s.Types.GetByName(t.Name)
	if err != nil {
		utils.GetLogger().Error("CreateType: failed to check name", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing != nil {
		return nil, utils.ErrVehicleTypeExists
	}

	t.ID = uuid.NewString()
	if err := s.Types.Create(t); err != nil {
		utils.GetLogger().Error("CreateType: failed to create type", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return t, nil
}

// ListTypes returns every vehicle category.
func (s *DefaultVehicleService) ListTypes() ([]models.VehicleType, error) {
	types, err := s.Types.GetAll()
	if err != nil {
		utils.GetLogger().Error("ListTypes: failed to list types", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return types, nil
}

// UpdateType renames or redescribes a vehicle category.
func (s *DefaultVehicleService) UpdateType(t *models.VehicleType) (*models.VehicleType, error) {
	existing, err := s.Types.GetByID(t.ID)
	if err != nil {
		utils.GetLogger().Error("UpdateType: failed to fetch type", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing == nil {
		return nil, utils.ErrVehicleTypeNotFound
	}
	if err := s.Types.Update(t); err != nil {
		utils.GetLogger().Error("UpdateType: failed to update type", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return t, nil
}

// DeleteType removes a vehicle category.
func (s *DefaultVehicleService) DeleteType(id string) error {
	existing, err := s.Types.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("DeleteType: failed to fetch type", zap.Error(err))
		return utils.ErrUncategorized
	}
	if existing == nil {
		return utils.ErrVehicleTypeNotFound
	}
	if err := s.Types.Delete(id); err != nil {
		utils.GetLogger().Error("DeleteType: failed to delete type", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}

// CreateModel adds a catalog entry.
func (s *DefaultVehicleService) CreateModel(m *models.VehicleModel) (*models.VehicleModel, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Brand = strings.TrimSpace(m.Brand)
	if m.Name == "" || m.Brand == "" || m.PricePerDay <= 0 {
		return nil, utils.ErrInvalidReq
	}
	vt, err := s.Types.GetByID(m.VehicleTypeID)
	if err != nil {
		utils.GetLogger().Error("CreateModel: failed to fetch type", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if vt == nil {
		return nil, utils.ErrVehicleTypeNotFound
	}

	m.ID = uuid.NewString()
	if err := s.Models.Create(m); err != nil {
		utils.GetLogger().Error("CreateModel: failed to create model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	s.invalidateBrandsCache()
	return m, nil
}

// GetModel returns a catalog entry with its units and pickup locations.
func (s *DefaultVehicleService) GetModel(id string) (*ModelDetail, error) {
	model, err := s.Models.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetModel: failed to fetch model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if model == nil {
		return nil, utils.ErrModelNotFound
	}

	units, err := s.Units.ListByModel(id)
	if err != nil {
		utils.GetLogger().Error("GetModel: failed to list units", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	locations, err := s.ModelLocations(id)
	if err != nil {
		return nil, err
	}

	return &ModelDetail{Model: *model, Units: units, Locations: locations}, nil
}

// SearchModels runs a paginated catalog search.
func (s *DefaultVehicleService) SearchModels(q models.ModelQuery) (*ModelPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 20
	}

	items, total, err := s.Models.Search(q)
	if err != nil {
		utils.GetLogger().Error("SearchModels: search failed", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return &ModelPage{Items: items, Total: total, Page: q.Page, Size: q.Size}, nil
}

// Brands returns the distinct catalog brands, cached in Redis.
func (s *DefaultVehicleService) Brands() ([]string, error) {
	client := utils.GetCacheClient()
	ctx := context.Background()

	if data, err := client.Get(ctx, brandsCacheKey).Result(); err == nil {
		var brands []string
		if err := json.Unmarshal([]byte(data), &brands); err == nil {
			return brands, nil
		}
	}

	brands, err := s.Models.Brands()
	if err != nil {
		utils.GetLogger().Error("Brands: failed to list brands", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if data, err := json.Marshal(brands); err == nil {
		if err := client.Set(ctx, brandsCacheKey, data, brandsCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Brands: failed to cache brands", zap.Error(err))
		}
	}
	return brands, nil
}

// UpdateModel edits a catalog entry.
func (s *DefaultVehicleService) UpdateModel(m *models.VehicleModel) (*models.VehicleModel, error) {
	existing, err := s.Models.GetByID(m.ID)
	if err != nil {
		utils.GetLogger().Error("UpdateModel: failed to fetch model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing == nil {
		return nil, utils.ErrModelNotFound
	}
	if m.PricePerDay <= 0 {
		return nil, utils.ErrInvalidReq
	}
	if err := s.Models.Update(m); err != nil {
		utils.GetLogger().Error("UpdateModel: failed to update model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	s.invalidateBrandsCache()
	return m, nil
}

// DeleteModel removes a catalog entry.
func (s *DefaultVehicleService) DeleteModel(id string) error {
	existing, err := s.Models.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("DeleteModel: failed to fetch model", zap.Error(err))
		return utils.ErrUncategorized
	}
	if existing == nil {
		return utils.ErrModelNotFound
	}
	if err := s.Models.Delete(id); err != nil {
		utils.GetLogger().Error("DeleteModel: failed to delete model", zap.Error(err))
		return utils.ErrUncategorized
	}
	s.invalidateBrandsCache()
	return nil
}

func (s *DefaultVehicleService) invalidateBrandsCache() {
	if err := utils.GetCacheClient().Del(context.Background(), brandsCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate brands cache", zap.Error(err))
	}
}
