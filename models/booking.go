package models

import "time"

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingApproved, BookingCompleted, BookingCanceled:
		return true
	}
	return false
}

// Booking is a rental order. Dates are calendar days in "YYYY-MM-DD" form;
// the end day is exclusive for the day count.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	UserID         string        `bson:"user_id" json:"userId"`
	VehicleModelID string        `bson:"vehicle_model_id" json:"vehicleModelId"`
	VehicleID      string        `bson:"vehicle_id" json:"vehicleId"`
	StartDate      string        `bson:"start_date" json:"startDate"`
	EndDate        string        `bson:"end_date" json:"endDate"`
	TotalDays      int           `bson:"total_days" json:"totalDays"`
	TotalPrice     float64       `bson:"total_price" json:"totalPrice"`
	Status         BookingStatus `bson:"status" json:"status"`
	PaymentMethod  string        `bson:"payment_method" json:"paymentMethod"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}

// CreateBookingInput is the checkout submission payload.
type CreateBookingInput struct {
	VehicleModelID string `json:"vehicleModelId" binding:"required"`
	VehicleID      string `json:"vehicleId" binding:"required"`
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate" binding:"required"`
	PaymentMethod  string `json:"paymentMethod" binding:"required"`
}
