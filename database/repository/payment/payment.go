package paymentRepo

import "rentvehicle/models"

// PaymentRepository defines persistence operations for deposit payments.
type PaymentRepository interface {
	Create(p *models.Payment) error
	GetByBookingID(bookingID string) (*models.Payment, error)
	UpdateStatus(id string, status models.PaymentStatus) error
}
