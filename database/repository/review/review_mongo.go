package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vehicle_model_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by ID, returning nil when absent.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// GetByBooking retrieves the review left on a booking, returning nil when
// the booking has none.
func (r *MongoReviewRepo) GetByBooking(bookingID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) list(filter bson.M) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ListByModel returns the reviews for a vehicle model, newest first.
func (r *MongoReviewRepo) ListByModel(modelID string) ([]models.Review, error) {
	return r.list(bson.M{"vehicle_model_id": modelID})
}

// ListByUser returns the reviews a customer has written, newest first.
func (r *MongoReviewRepo) ListByUser(userID string) ([]models.Review, error) {
	return r.list(bson.M{"user_id": userID})
}

// GetAll returns every review, for the back office moderation table.
func (r *MongoReviewRepo) GetAll() ([]models.Review, error) {
	return r.list(bson.M{})
}

// Update modifies an existing review document.
func (r *MongoReviewRepo) Update(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": review.ID}, bson.M{"$set": review})
	if err != nil {
		return fmt.Errorf("failed to update review with id %s: %w", review.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review with id %s not found", review.ID)
	}
	return nil
}

// Delete removes a review document.
func (r *MongoReviewRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review with id %s not found", id)
	}
	return nil
}
