package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"rentvehicle/database"
	"rentvehicle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{coll: database.Collection("payments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(p *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the payment for a booking, nil when absent.
func (r *MongoPaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Payment
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment for booking %s: %w", bookingID, err)
	}
	return &p, nil
}

// UpdateStatus sets the payment status.
func (r *MongoPaymentRepo) UpdateStatus(id string, status models.PaymentStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}
