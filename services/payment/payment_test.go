package payment

import (
	"errors"
	"testing"

	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/stripe/stripe-go/v76"
)

type fakePaymentRepo struct {
	payments      map[string]*models.Payment // keyed by booking ID
	statusUpdates map[string]models.PaymentStatus
}

func newFakePaymentRepo(payments ...*models.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{
		payments:      make(map[string]*models.Payment),
		statusUpdates: make(map[string]models.PaymentStatus),
	}
	for _, p := range payments {
		r.payments[p.BookingID] = p
	}
	return r
}

func (r *fakePaymentRepo) Create(p *models.Payment) error { r.payments[p.BookingID] = p; return nil }
func (r *fakePaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	return r.payments[bookingID], nil
}
func (r *fakePaymentRepo) UpdateStatus(id string, status models.PaymentStatus) error {
	r.statusUpdates[id] = status
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingRepo) Create(b *models.Booking) error { return nil }
func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.bookings[id], nil
}
func (r *fakeBookingRepo) ListByUser(userID string) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) ListAll(status models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error { return nil }
func (r *fakeBookingRepo) CountOverlapping(vehicleID, startDate, endDate string, statuses []models.BookingStatus) (int64, error) {
	return 0, nil
}

func testPayment() *models.Payment {
	return &models.Payment{
		ID:             "pay-1",
		BookingID:      "bk-1",
		UserID:         "user-a",
		Amount:         120,
		Currency:       "usd",
		Method:         "card",
		StripeIntentID: "pi_123",
		Status:         models.PaymentCreated,
	}
}

// succeededIntent scripts the intent lookup with the given status.
func succeededIntent(status stripe.PaymentIntentStatus) func(string) (*stripe.PaymentIntent, error) {
	return func(id string) (*stripe.PaymentIntent, error) {
		return &stripe.PaymentIntent{ID: id, Status: status}, nil
	}
}

func newTestService(payments *fakePaymentRepo) *DefaultPaymentService {
	return &DefaultPaymentService{
		Payments:       payments,
		Bookings:       &fakeBookingRepo{bookings: map[string]*models.Booking{}},
		RetrieveIntent: succeededIntent(stripe.PaymentIntentStatusSucceeded),
	}
}

func TestMarkSucceeded_OwnerConfirms(t *testing.T) {
	payments := newFakePaymentRepo(testPayment())
	svc := newTestService(payments)

	p, err := svc.MarkSucceeded("user-a", "bk-1", models.RoleUser)
	if err != nil {
		t.Fatalf("MarkSucceeded: %v", err)
	}
	if p.Status != models.PaymentSucceeded {
		t.Errorf("status = %q, want %q", p.Status, models.PaymentSucceeded)
	}
	if got := payments.statusUpdates["pay-1"]; got != models.PaymentSucceeded {
		t.Errorf("persisted status = %q, want %q", got, models.PaymentSucceeded)
	}
}

func TestMarkSucceeded_RejectsOtherUser(t *testing.T) {
	payments := newFakePaymentRepo(testPayment())
	svc := newTestService(payments)

	_, err := svc.MarkSucceeded("user-b", "bk-1", models.RoleUser)
	if !errors.Is(err, utils.ErrBookingNotAuthorized) {
		t.Fatalf("err = %v, want %v", err, utils.ErrBookingNotAuthorized)
	}
	if len(payments.statusUpdates) != 0 {
		t.Errorf("payment status was updated despite the rejection")
	}
}

func TestMarkSucceeded_AdminConfirms(t *testing.T) {
	payments := newFakePaymentRepo(testPayment())
	svc := newTestService(payments)

	if _, err := svc.MarkSucceeded("admin-1", "bk-1", models.RoleAdmin); err != nil {
		t.Fatalf("MarkSucceeded as admin: %v", err)
	}
}

func TestMarkSucceeded_ChecksIntentWithStripe(t *testing.T) {
	tests := []struct {
		name     string
		retrieve func(string) (*stripe.PaymentIntent, error)
	}{
		{"intent not succeeded", succeededIntent(stripe.PaymentIntentStatusRequiresPaymentMethod)},
		{"intent lookup fails", func(string) (*stripe.PaymentIntent, error) {
			return nil, errors.New("stripe is down")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := newFakePaymentRepo(testPayment())
			svc := newTestService(payments)
			svc.RetrieveIntent = tt.retrieve

			_, err := svc.MarkSucceeded("user-a", "bk-1", models.RoleUser)
			if !errors.Is(err, utils.ErrPaymentFailed) {
				t.Fatalf("err = %v, want %v", err, utils.ErrPaymentFailed)
			}
			if len(payments.statusUpdates) != 0 {
				t.Errorf("payment marked succeeded without a succeeded intent")
			}
		})
	}
}

func TestMarkSucceeded_AlreadyProcessed(t *testing.T) {
	p := testPayment()
	p.Status = models.PaymentSucceeded
	svc := newTestService(newFakePaymentRepo(p))

	_, err := svc.MarkSucceeded("user-a", "bk-1", models.RoleUser)
	if !errors.Is(err, utils.ErrPaymentProcessed) {
		t.Fatalf("err = %v, want %v", err, utils.ErrPaymentProcessed)
	}
}

func TestMarkSucceeded_UnknownBooking(t *testing.T) {
	svc := newTestService(newFakePaymentRepo())

	_, err := svc.MarkSucceeded("user-a", "bk-404", models.RoleUser)
	if !errors.Is(err, utils.ErrPaymentNotFound) {
		t.Fatalf("err = %v, want %v", err, utils.ErrPaymentNotFound)
	}
}

func TestCreateIntent_Preconditions(t *testing.T) {
	approved := &models.Booking{
		ID: "bk-1", UserID: "user-a", Status: models.BookingApproved,
		PaymentMethod: "card", TotalPrice: 120,
	}
	tests := []struct {
		name    string
		mutate  func(b *models.Booking)
		userID  string
		wantErr error
	}{
		{"stranger", nil, "user-b", utils.ErrBookingNotAuthorized},
		{"not approved", func(b *models.Booking) { b.Status = models.BookingPending }, "user-a", utils.ErrInvalidBookingStatus},
		{"cash booking", func(b *models.Booking) { b.PaymentMethod = "cash" }, "user-a", utils.ErrInvalidPayMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := *approved
			if tt.mutate != nil {
				tt.mutate(&b)
			}
			svc := newTestService(newFakePaymentRepo())
			svc.Bookings = &fakeBookingRepo{bookings: map[string]*models.Booking{"bk-1": &b}}

			_, err := svc.CreateIntent(tt.userID, "bk-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
