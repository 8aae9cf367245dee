package models

import "time"

// Review is a customer rating left on a finished booking. The model and
// reviewer name are denormalized so the catalog page renders without joins.
type Review struct {
	ID             string    `bson:"id" json:"id"`
	BookingID      string    `bson:"booking_id" json:"bookingId"`
	UserID         string    `bson:"user_id" json:"userId"`
	UserName       string    `bson:"user_name" json:"userName"`
	VehicleModelID string    `bson:"vehicle_model_id" json:"vehicleModelId"`
	Rating         int       `bson:"rating" json:"rating"`
	Comment        string    `bson:"comment" json:"comment"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateReviewInput is the review submission payload.
type CreateReviewInput struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}
