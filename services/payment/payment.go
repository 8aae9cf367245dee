package payment

import (
	"math"

	bookingRepo "rentvehicle/database/repository/booking"
	paymentRepo "rentvehicle/database/repository/payment"
	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentService handles card deposits for approved bookings. Cash bookings
// settle at pickup and never reach this service.
type PaymentService interface {
	CreateIntent(userID, bookingID string) (*models.Payment, error)
	GetByBooking(userID, bookingID string, role models.Role) (*models.Payment, error)
	MarkSucceeded(userID, bookingID string, role models.Role) (*models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Payments paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository

	// RetrieveIntent fetches a payment intent by ID. Nil uses the live
	// Stripe API.
	RetrieveIntent func(intentID string) (*stripe.PaymentIntent, error)
}

func (s *DefaultPaymentService) retrieveIntent(intentID string) (*stripe.PaymentIntent, error) {
	if s.RetrieveIntent != nil {
		return s.RetrieveIntent(intentID)
	}
	return paymentintent.Get(intentID, nil)
}

const depositCurrency = "usd"

// CreateIntent opens a Stripe payment intent for the booking total and
// returns the client secret the storefront confirms with.
func (s *DefaultPaymentService) CreateIntent(userID, bookingID string) (*models.Payment, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		utils.GetLogger().Error("CreateIntent: failed to fetch booking", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if b == nil {
		return nil, utils.ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, utils.ErrBookingNotAuthorized
	}
	if b.Status != models.BookingApproved {
		return nil, utils.ErrInvalidBookingStatus
	}
	if b.PaymentMethod != "card" {
		return nil, utils.ErrInvalidPayMethod
	}

	existing, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		utils.GetLogger().Error("CreateIntent: failed to check existing payment", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing != nil && existing.Status == models.PaymentSucceeded {
		return nil, utils.ErrPaymentProcessed
	}

	amountCents := int64(math.Round(b.TotalPrice * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(depositCurrency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("userId", b.UserID)

	intent, err := paymentintent.New(params)
	if err != nil {
		utils.GetLogger().Error("CreateIntent: stripe intent failed",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, utils.ErrPaymentFailed
	}

	p := &models.Payment{
		ID:             uuid.NewString(),
		BookingID:      b.ID,
		UserID:         b.UserID,
		Amount:         b.TotalPrice,
		Currency:       depositCurrency,
		Method:         b.PaymentMethod,
		StripeIntentID: intent.ID,
		ClientSecret:   intent.ClientSecret,
		Status:         models.PaymentCreated,
	}
	if err := s.Payments.Create(p); err != nil {
		utils.GetLogger().Error("CreateIntent: failed to persist payment", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return p, nil
}

// GetByBooking returns the deposit record for a booking. Regular users can
// only read their own.
func (s *DefaultPaymentService) GetByBooking(userID, bookingID string, role models.Role) (*models.Payment, error) {
	p, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		utils.GetLogger().Error("GetByBooking: failed to fetch payment", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if p == nil {
		return nil, utils.ErrPaymentNotFound
	}
	if role != models.RoleAdmin && p.UserID != userID {
		return nil, utils.ErrBookingNotAuthorized
	}
	return p, nil
}

// MarkSucceeded records a confirmed deposit after the storefront completes
// the Stripe flow. Only the paying customer (or an admin) can confirm, and
// the intent status is re-read from Stripe rather than trusted from the
// request.
func (s *DefaultPaymentService) MarkSucceeded(userID, bookingID string, role models.Role) (*models.Payment, error) {
	p, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		utils.GetLogger().Error("MarkSucceeded: failed to fetch payment", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if p == nil {
		return nil, utils.ErrPaymentNotFound
	}
	if role != models.RoleAdmin && p.UserID != userID {
		return nil, utils.ErrBookingNotAuthorized
	}
	if p.Status == models.PaymentSucceeded {
		return nil, utils.ErrPaymentProcessed
	}

	intent, err := s.retrieveIntent(p.StripeIntentID)
	if err != nil {
		utils.GetLogger().Error("MarkSucceeded: failed to retrieve intent",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, utils.ErrPaymentFailed
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, utils.ErrPaymentFailed
	}

	if err := s.Payments.UpdateStatus(p.ID, models.PaymentSucceeded); err != nil {
		utils.GetLogger().Error("MarkSucceeded: failed to update payment", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	p.Status = models.PaymentSucceeded
	return p, nil
}
