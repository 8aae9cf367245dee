package vehicleRepo

import (
	"context"
	"fmt"
	"time"

	"rentvehicle/database"
	"rentvehicle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVehicleRepo implements the unit repository using MongoDB.
type MongoVehicleRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepo creates a new VehicleRepository using MongoDB.
func NewMongoVehicleRepo() VehicleRepository {
	repo := &MongoVehicleRepo{coll: database.Collection("vehicles")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoVehicleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "license_plate", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vehicle_model_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new unit document.
func (r *MongoVehicleRepo) Create(v *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetByID retrieves a unit by its unique ID.
func (r *MongoVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var v models.Vehicle
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle with id %s: %w", id, err)
	}
	return &v, nil
}

// GetByLicensePlate retrieves a unit by plate, returning nil when absent.
func (r *MongoVehicleRepo) GetByLicensePlate(plate string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var v models.Vehicle
	err := r.coll.FindOne(ctx, bson.M{"license_plate": plate}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle with plate %s: %w", plate, err)
	}
	return &v, nil
}

// List returns units for the back office with optional keyword/status
// filters. Deleted units never appear.
func (r *MongoVehicleRepo) List(q models.VehicleQuery) ([]models.Vehicle, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$ne": models.VehicleDeleted}}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Keyword != "" {
		filter["license_plate"] = bson.M{"$regex": primitive.Regex{Pattern: q.Keyword, Options: "i"}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if q.Page > 0 && q.Size > 0 {
		opts.SetSkip(int64((q.Page - 1) * q.Size)).SetLimit(int64(q.Size))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, total, nil
}

// ListByModel returns all non-deleted units of a model.
func (r *MongoVehicleRepo) ListByModel(modelID string) ([]models.Vehicle, error) {
	return r.listByModelWithStatus(modelID, bson.M{"$ne": models.VehicleDeleted})
}

// ListAvailableByModel returns units of a model with status "available".
func (r *MongoVehicleRepo) ListAvailableByModel(modelID string) ([]models.Vehicle, error) {
	return r.listByModelWithStatus(modelID, models.VehicleAvailable)
}

func (r *MongoVehicleRepo) listByModelWithStatus(modelID string, status any) ([]models.Vehicle, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"vehicle_model_id": modelID, "status": status}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "license_plate", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for model %s: %w", modelID, err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateStatus sets the unit status. Deleting a unit is a status update.
func (r *MongoVehicleRepo) UpdateStatus(id string, status models.VehicleStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle with id %s not found", id)
	}
	return nil
}
