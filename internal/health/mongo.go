// Package health provides dependency health checks for the readiness
// endpoint.
package health

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// checkTimeout bounds a single probe so a stuck database cannot hang
// the readiness endpoint.
const checkTimeout = 5 * time.Second

// MongoChecker implements health checking for the MongoDB connection.
type MongoChecker struct {
	client *mongo.Client
}

// NewMongoChecker creates a health checker over a connected client.
func NewMongoChecker(client *mongo.Client) *MongoChecker {
	return &MongoChecker{client: client}
}

// HealthCheck pings the primary.
func (c *MongoChecker) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary())
}
