package userRepo

import "rentvehicle/models"

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no account matches.
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateStatus(userID, status string) error
	UpdateFCMToken(userID, token string) error
	GetAll() ([]models.User, error)
	// Search matches the keyword against names and emails, case-insensitive.
	Search(keyword string) ([]models.User, error)
}
