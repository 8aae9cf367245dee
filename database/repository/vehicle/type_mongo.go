package vehicleRepo

import (
	"fmt"
	"time"

	"rentvehicle/database"
	"rentvehicle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVehicleTypeRepo implements the category repository using MongoDB.
type MongoVehicleTypeRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleTypeRepo creates a new VehicleTypeRepository using MongoDB.
func NewMongoVehicleTypeRepo() VehicleTypeRepository {
	repo := &MongoVehicleTypeRepo{coll: database.Collection("vehicle_types")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoVehicleTypeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new category.
func (r *MongoVehicleTypeRepo) Create(t *models.VehicleType) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create vehicle type: %w", err)
	}
	return nil
}

// GetByID retrieves a category, returning nil when absent.
func (r *MongoVehicleTypeRepo) GetByID(id string) (*models.VehicleType, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var t models.VehicleType
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle type with id %s: %w", id, err)
	}
	return &t, nil
}

// GetByName retrieves a category by name, returning nil when absent.
func (r *MongoVehicleTypeRepo) GetByName(name string) (*models.VehicleType, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var t models.VehicleType
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle type with name %s: %w", name, err)
	}
	return &t, nil
}

// GetAll lists every category.
func (r *MongoVehicleTypeRepo) GetAll() ([]models.VehicleType, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []models.VehicleType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle types: %w", err)
	}
	return types, nil
}

// Update modifies an existing category.
func (r *MongoVehicleTypeRepo) Update(t *models.VehicleType) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": t.ID}, bson.M{"$set": t})
	if err != nil {
		return fmt.Errorf("failed to update vehicle type with id %s: %w", t.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle type with id %s not found", t.ID)
	}
	return nil
}

// Delete removes a category.
func (r *MongoVehicleTypeRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle type with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle type with id %s not found", id)
	}
	return nil
}
