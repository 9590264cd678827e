package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pokedex-service/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the mongo client and verifies the connection with a
// ping before handing the database out.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("database connected successfully", "database", cfg.Database)
	return client.Database(cfg.Database), nil
}

func Close(ctx context.Context, database *mongo.Database) {
	if database != nil {
		_ = database.Client().Disconnect(ctx)
	}
}

// EnsureIndexes creates the unique indexes the uniqueness rules rely
// on: pokemon names and trainer emails. The pre-insert lookups in the
// services give friendly conflict messages, these indexes make the
// guarantee hold under concurrent creates.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := database.Collection("pokemons").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create pokemons name index: %w", err)
	}

	_, err = database.Collection("trainers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create trainers email index: %w", err)
	}

	slog.Info("database indexes ensured")
	return nil
}
