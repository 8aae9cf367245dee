package models

import "time"

// PaymentStatus is the deposit payment state.
type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "created"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records a Stripe deposit intent for an approved booking.
type Payment struct {
	ID             string        `bson:"id" json:"id"`
	BookingID      string        `bson:"booking_id" json:"bookingId"`
	UserID         string        `bson:"user_id" json:"userId"`
	Amount         float64       `bson:"amount" json:"amount"`
	Currency       string        `bson:"currency" json:"currency"`
	Method         string        `bson:"method" json:"method"`
	StripeIntentID string        `bson:"stripe_intent_id,omitempty" json:"-"`
	ClientSecret   string        `bson:"-" json:"clientSecret,omitempty"`
	Status         PaymentStatus `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}

// MailEvent is the payload queued for the mail worker when a booking
// changes state.
type MailEvent struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
