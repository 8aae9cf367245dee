package booking

import (
	"fmt"
	"strings"

	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validPaymentMethods = map[string]bool{
	"cash": true,
	"card": true,
}

// Create places a rental order for a specific unit. The order starts out
// pending and holds the unit's dates until an admin decides on it.
func (s *DefaultBookingService) Create(userID string, input models.CreateBookingInput) (*models.Booking, error) {
	days, err := CountRentalDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidBookingDates
	}
	if input.StartDate < today() {
		return nil, utils.ErrInvalidBookingDates
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if !validPaymentMethods[method] {
		return nil, utils.ErrInvalidPayMethod
	}

	model, err := s.Models.GetByID(input.VehicleModelID)
	if err != nil {
		utils.GetLogger().Error("Create booking: failed to fetch model", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if model == nil {
		return nil, utils.ErrModelNotFound
	}

	unit, err := s.Units.GetByID(input.VehicleID)
	if err != nil {
		utils.GetLogger().Error("Create booking: failed to fetch unit", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if unit == nil || unit.VehicleModelID != model.ID {
		return nil, utils.ErrVehicleNotFound
	}
	if unit.Status != models.VehicleAvailable {
		return nil, utils.ErrVehicleUnavailable
	}

	overlapping, err := s.Bookings.CountOverlapping(unit.ID, input.StartDate, input.EndDate, blockingStatuses)
	if err != nil {
		utils.GetLogger().Error("Create booking: overlap check failed", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if overlapping > 0 {
		return nil, utils.ErrBookingConflict
	}

	b := &models.Booking{
		ID:             uuid.NewString(),
		UserID:         userID,
		VehicleModelID: model.ID,
		VehicleID:      unit.ID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		TotalDays:      days,
		TotalPrice:     TotalPrice(model.PricePerDay, days),
		Status:         models.BookingPending,
		PaymentMethod:  method,
	}
	if err := s.Bookings.Create(b); err != nil {
		utils.GetLogger().Error("Create booking: failed to persist", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	s.queueMail(b, "Booking received",
		fmt.Sprintf("We received your booking for %s %s from %s to %s. Total: %.2f. We will confirm it shortly.",
			model.Brand, model.Name, b.StartDate, b.EndDate, b.TotalPrice))

	return b, nil
}

// Get returns one booking. Regular users can only read their own.
func (s *DefaultBookingService) Get(bookingID, requesterID string, requesterRole models.Role) (*models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return nil, err
	}
	if requesterRole != models.RoleAdmin && b.UserID != requesterID {
		return nil, utils.ErrBookingNotAuthorized
	}
	return b, nil
}

// ListMine returns the requester's bookings, newest first.
func (s *DefaultBookingService) ListMine(userID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(userID)
	if err != nil {
		utils.GetLogger().Error("ListMine: failed to list bookings", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return bookings, nil
}

// ListAll returns bookings for the back office, optionally filtered by status.
func (s *DefaultBookingService) ListAll(status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !models.ValidBookingStatus(status) {
		return nil, utils.ErrInvalidBookingStatus
	}
	bookings, err := s.Bookings.ListAll(status)
	if err != nil {
		utils.GetLogger().Error("ListAll: failed to list bookings", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return bookings, nil
}

// Approve confirms a pending booking and marks the unit as rented.
func (s *DefaultBookingService) Approve(bookingID string) (*models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case models.BookingPending:
	case models.BookingApproved:
		return nil, utils.ErrBookingApproved
	default:
		return nil, utils.ErrInvalidBookingStatus
	}

	if err := s.Bookings.UpdateStatus(b.ID, models.BookingApproved); err != nil {
		utils.GetLogger().Error("Approve: failed to update booking", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if err := s.Units.UpdateStatus(b.VehicleID, models.VehicleRented); err != nil {
		utils.GetLogger().Error("Approve: failed to mark unit rented",
			zap.String("vehicleId", b.VehicleID), zap.Error(err))
	}
	b.Status = models.BookingApproved

	s.notify(b.UserID, "Booking approved",
		fmt.Sprintf("Your booking from %s to %s is confirmed.", b.StartDate, b.EndDate))
	s.queueMail(b, "Booking approved",
		fmt.Sprintf("Your booking from %s to %s has been approved. Total due: %.2f.",
			b.StartDate, b.EndDate, b.TotalPrice))

	return b, nil
}

// Cancel withdraws a booking. Owners can cancel while pending; admins can
// also cancel an approved booking, which frees the unit.
func (s *DefaultBookingService) Cancel(bookingID, requesterID string, requesterRole models.Role) (*models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return nil, err
	}

	isAdmin := requesterRole == models.RoleAdmin
	if !isAdmin && b.UserID != requesterID {
		return nil, utils.ErrBookingNotAuthorized
	}

	switch b.Status {
	case models.BookingPending:
	case models.BookingApproved:
		if !isAdmin {
			return nil, utils.ErrBookingCannotCancel
		}
	default:
		return nil, utils.ErrBookingCannotCancel
	}

	wasApproved := b.Status == models.BookingApproved
	if err := s.Bookings.UpdateStatus(b.ID, models.BookingCanceled); err != nil {
		utils.GetLogger().Error("Cancel: failed to update booking", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if wasApproved {
		if err := s.Units.UpdateStatus(b.VehicleID, models.VehicleAvailable); err != nil {
			utils.GetLogger().Error("Cancel: failed to free unit",
				zap.String("vehicleId", b.VehicleID), zap.Error(err))
		}
	}
	b.Status = models.BookingCanceled

	s.queueMail(b, "Booking canceled",
		fmt.Sprintf("Your booking from %s to %s has been canceled.", b.StartDate, b.EndDate))

	return b, nil
}

// Complete closes out an approved booking after the vehicle is returned and
// frees the unit.
func (s *DefaultBookingService) Complete(bookingID string) (*models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingApproved {
		return nil, utils.ErrInvalidBookingStatus
	}

	if err := s.Bookings.UpdateStatus(b.ID, models.BookingCompleted); err != nil {
		utils.GetLogger().Error("Complete: failed to update booking", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if err := s.Units.UpdateStatus(b.VehicleID, models.VehicleAvailable); err != nil {
		utils.GetLogger().Error("Complete: failed to free unit",
			zap.String("vehicleId", b.VehicleID), zap.Error(err))
	}
	b.Status = models.BookingCompleted

	s.notify(b.UserID, "Rental completed",
		"Thanks for renting with us. We hope to see you again.")

	return b, nil
}

func (s *DefaultBookingService) fetch(bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch booking", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if b == nil {
		return nil, utils.ErrBookingNotFound
	}
	return b, nil
}

// notify pushes to the user's browser, best effort.
func (s *DefaultBookingService) notify(userID, title, body string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.PushToUser(userID, title, body); err != nil {
		utils.GetLogger().Warn("Push notification failed",
			zap.String("userId", userID), zap.Error(err))
	}
}

// queueMail hands a booking mail event to the background worker, best effort.
func (s *DefaultBookingService) queueMail(b *models.Booking, subject, body string) {
	if s.Mail == nil {
		return
	}
	user, err := s.Users.GetByID(b.UserID)
	if err != nil {
		utils.GetLogger().Warn("Mail event skipped, user lookup failed",
			zap.String("userId", b.UserID), zap.Error(err))
		return
	}
	event := models.MailEvent{
		BookingID: b.ID,
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Subject:   subject,
		Body:      body,
	}
	if err := s.Mail.EnqueueMail(event); err != nil {
		utils.GetLogger().Warn("Failed to enqueue mail event",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}
