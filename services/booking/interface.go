package booking

import (
	bookingRepo "rentvehicle/database/repository/booking"
	userRepo "rentvehicle/database/repository/user"
	vehicleRepo "rentvehicle/database/repository/vehicle"
	"rentvehicle/models"
)

// BookingService handles the rental order lifecycle.
type BookingService interface {
	CheckAvailability(modelID, location, startDate, endDate string) (*Availability, error)
	Create(userID string, input models.CreateBookingInput) (*models.Booking, error)
	Get(bookingID, requesterID string, requesterRole models.Role) (*models.Booking, error)
	ListMine(userID string) ([]models.Booking, error)
	ListAll(status models.BookingStatus) ([]models.Booking, error)

	Approve(bookingID string) (*models.Booking, error)
	Cancel(bookingID, requesterID string, requesterRole models.Role) (*models.Booking, error)
	Complete(bookingID string) (*models.Booking, error)
}

// Notifier delivers push notifications to a user's registered browser.
type Notifier interface {
	PushToUser(userID, title, body string) error
}

// MailQueue enqueues booking mail events for the background worker.
type MailQueue interface {
	EnqueueMail(event models.MailEvent) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Units    vehicleRepo.VehicleRepository
	Models   vehicleRepo.VehicleModelRepository
	Users    userRepo.UserRepository
	Notifier Notifier
	Mail     MailQueue
}

// blockingStatuses are the booking states that hold a unit's dates.
var blockingStatuses = []models.BookingStatus{models.BookingPending, models.BookingApproved}
