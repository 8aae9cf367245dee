package database

import (
	"context"
	"time"

	"rentvehicle/config"
	"rentvehicle/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection. Startup aborts
// when the database is unreachable.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetMaxPoolSize(50)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		utils.GetLogger().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		utils.GetLogger().Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB",
		zap.String("database", config.AppConfig.DatabaseName))
}

// CloseDB releases the connection pool during shutdown.
func CloseDB() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoClient.Disconnect(ctx); err != nil {
		utils.GetLogger().Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
}

// Collection returns a handle in the configured database.
func Collection(name string) *mongo.Collection {
	return MongoClient.Database(config.AppConfig.DatabaseName).Collection(name)
}
