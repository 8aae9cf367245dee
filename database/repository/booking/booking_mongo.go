package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking, returning nil when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *MongoBookingRepo) ListByUser(userID string) ([]models.Booking, error) {
	return r.list(bson.M{"user_id": userID})
}

// ListAll returns every booking, optionally filtered by status.
func (r *MongoBookingRepo) ListAll(status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets the booking status.
func (r *MongoBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// CountOverlapping counts bookings for the unit whose [start, end) range
// intersects the requested one. Dates are "YYYY-MM-DD" strings, which
// compare correctly lexicographically.
func (r *MongoBookingRepo) CountOverlapping(vehicleID, startDate, endDate string, statuses []models.BookingStatus) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"vehicle_id": vehicleID,
		"status":     bson.M{"$in": statuses},
		"start_date": bson.M{"$lt": endDate},
		"end_date":   bson.M{"$gt": startDate},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}
