package bookingRepo

import "rentvehicle/models"

// BookingRepository defines persistence operations for rental orders.
type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByUser(userID string) ([]models.Booking, error)
	ListAll(status models.BookingStatus) ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error
	// CountOverlapping counts bookings for the unit in the given statuses
	// whose [start, end) range intersects the requested one.
	CountOverlapping(vehicleID, startDate, endDate string, statuses []models.BookingStatus) (int64, error)
}
