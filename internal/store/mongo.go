// Package store provides the MongoDB connection handling shared by the
// praca repositories.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. The storage vocabulary follows the surrounding
// system (Portuguese keys and collection names).
const (
	CollectionUsers        = "usuarios"
	CollectionTotems       = "totens"
	CollectionQuestions    = "perguntas"
	CollectionInteractions = "interacoes"
	CollectionFacilities   = "servicos"
)

// connectTimeout bounds the initial connection and ping.
const connectTimeout = 10 * time.Second

// Connect establishes a MongoDB client, verifies connectivity with a
// ping, and returns a handle to the named database. The returned client
// should be disconnected by the caller on shutdown.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongodb uri is required")
	}
	if dbName == "" {
		return nil, nil, fmt.Errorf("mongodb database name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best-effort cleanup; the ping error is the one worth reporting.
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}
