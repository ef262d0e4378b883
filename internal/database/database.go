package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchcraft/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second

	// CollectionPitches and CollectionUsers name the document collections.
	CollectionPitches = "pitches"
	CollectionUsers   = "users"
)

// Connect opens a MongoDB connection, verifies it with a ping, and ensures
// the indexes the application relies on.
func Connect(cfg *config.AppConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return client, db, nil
}

// ensureIndexes creates the indexes used by owner-scoped lookups and the
// newest-first listing, plus the unique username constraint.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	pitchIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(CollectionPitches).Indexes().CreateMany(ctx, pitchIndexes); err != nil {
		return fmt.Errorf("pitches indexes: %w", err)
	}

	unique := true
	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	}
	if _, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	return nil
}

// Disconnect closes the client with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
