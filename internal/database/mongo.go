package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo wraps a MongoDB client bound to one database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Database returns the bound database.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("mongodb connected", "database", database)

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the indexes the stores rely on. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		"tasks": {
			{Keys: bson.D{{Key: "isTrashed", Value: 1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "team", Value: 1}}},
		},
		"notices": {
			{Keys: bson.D{{Key: "task", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := m.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}

	slog.Info("mongodb indexes ensured")

	return nil
}

// Ping checks the connection to MongoDB.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if err := m.client.Disconnect(ctx); err != nil {
		slog.Error("mongodb disconnect failed", "error", err)
		return
	}
	slog.Info("mongodb connection closed")
}
