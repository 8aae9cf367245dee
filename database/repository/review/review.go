package reviewRepo

import "rentvehicle/models"

// ReviewRepository defines persistence operations for booking reviews.
type ReviewRepository interface {
	Create(r *models.Review) error
	// GetByID returns (nil, nil) when no review matches.
	GetByID(id string) (*models.Review, error)
	// GetByBooking returns (nil, nil) when the booking has no review yet.
	GetByBooking(bookingID string) (*models.Review, error)
	ListByModel(modelID string) ([]models.Review, error)
	ListByUser(userID string) ([]models.Review, error)
	GetAll() ([]models.Review, error)
	Update(r *models.Review) error
	Delete(id string) error
}
