package booking

import (
	"sort"
	"strings"

	"rentvehicle/models"
	"rentvehicle/utils"

	"go.uber.org/zap"
)

// Availability describes which units of a model can be rented for a date
// range, and the pickup locations those units cover. Locations always
// reflect the whole range; Units honor the optional location filter.
type Availability struct {
	VehicleModelID string           `json:"vehicleModelId"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	Locations      []string         `json:"locations"`
	Units          []models.Vehicle `json:"units"`
}

// CheckAvailability computes rentable units for a model and date range.
// A unit qualifies when its status is available and no pending or approved
// booking intersects the requested [start, end) range.
func (s *DefaultBookingService) CheckAvailability(modelID, location, startDate, endDate string) (*Availability, error) {
	if _, err := CountRentalDays(startDate, endDate); err != nil {
		return nil, utils.ErrInvalidBookingDates
	}

	model, err := s.Models.GetByID(modelID)
	if err != nil {
		utils.GetLogger().Error("CheckAvailability: failed to fetch model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if model == nil {
		return nil, utils.ErrModelNotFound
	}

	units, err := s.Units.ListAvailableByModel(modelID)
	if err != nil {
		utils.GetLogger().Error("CheckAvailability: failed to list units", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	location = strings.TrimSpace(location)
	seen := make(map[string]bool)
	result := &Availability{
		VehicleModelID: modelID,
		StartDate:      startDate,
		EndDate:        endDate,
		Locations:      []string{},
		Units:          []models.Vehicle{},
	}
	for _, u := range units {
		overlapping, err := s.Bookings.CountOverlapping(u.ID, startDate, endDate, blockingStatuses)
		if err != nil {
			utils.GetLogger().Error("CheckAvailability: overlap check failed",
				zap.String("vehicleId", u.ID), zap.Error(err))
			return nil, utils.ErrUncategorized
		}
		if overlapping > 0 {
			continue
		}

		loc := strings.TrimSpace(u.Location)
		if loc != "" && !seen[loc] {
			seen[loc] = true
			result.Locations = append(result.Locations, loc)
		}
		if location != "" && loc != location {
			continue
		}
		result.Units = append(result.Units, u)
	}
	sort.Strings(result.Locations)

	return result, nil
}
