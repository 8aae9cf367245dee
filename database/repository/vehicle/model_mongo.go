package vehicleRepo

import (
	"fmt"
	"time"

	"rentvehicle/database"
	"rentvehicle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVehicleModelRepo implements the catalog repository using MongoDB.
type MongoVehicleModelRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleModelRepo creates a new VehicleModelRepository using MongoDB.
func NewMongoVehicleModelRepo() VehicleModelRepository {
	repo := &MongoVehicleModelRepo{coll: database.Collection("vehicle_models")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoVehicleModelRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "vehicle_type_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new catalog entry.
func (r *MongoVehicleModelRepo) Create(m *models.VehicleModel) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create vehicle model: %w", err)
	}
	return nil
}

// GetByID retrieves a catalog entry, returning nil when absent.
func (r *MongoVehicleModelRepo) GetByID(id string) (*models.VehicleModel, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var m models.VehicleModel
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle model with id %s: %w", id, err)
	}
	return &m, nil
}

// Search lists catalog entries with keyword/brand/type/price filters and
// optional pagination, returning the unpaginated total for the pager.
func (r *MongoVehicleModelRepo) Search(q models.ModelQuery) ([]models.VehicleModel, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Keyword != "" {
		regex := primitive.Regex{Pattern: q.Keyword, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": regex}},
			bson.M{"brand": bson.M{"$regex": regex}},
		}
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.VehicleTypeID != "" {
		filter["vehicle_type_id"] = q.VehicleTypeID
	}
	price := bson.M{}
	if q.MinPrice > 0 {
		price["$gte"] = q.MinPrice
	}
	if q.MaxPrice > 0 {
		price["$lte"] = q.MaxPrice
	}
	if len(price) > 0 {
		filter["price_per_day"] = price
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicle models: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if q.Page > 0 && q.Size > 0 {
		opts.SetSkip(int64((q.Page - 1) * q.Size)).SetLimit(int64(q.Size))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search vehicle models: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.VehicleModel
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicle models: %w", err)
	}
	return results, total, nil
}

// Brands returns the distinct brand names in the catalog.
func (r *MongoVehicleModelRepo) Brands() ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "brand", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	brands := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			brands = append(brands, s)
		}
	}
	return brands, nil
}

// Update modifies an existing catalog entry.
func (r *MongoVehicleModelRepo) Update(m *models.VehicleModel) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": m.ID}, bson.M{"$set": m})
	if err != nil {
		return fmt.Errorf("failed to update vehicle model with id %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle model with id %s not found", m.ID)
	}
	return nil
}

// Delete removes a catalog entry.
func (r *MongoVehicleModelRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle model with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle model with id %s not found", id)
	}
	return nil
}
