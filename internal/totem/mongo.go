package totem

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onnwee/praca/internal/tracing"
)

// MongoRepository is the MongoDB-backed implementation of Repository.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a totem repository over the given collection.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

// Save stores or replaces a totem keyed by totem_id (upsert).
func (r *MongoRepository) Save(ctx context.Context, t *Totem) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpsert)
	defer func() { end(err) }()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"totem_id": t.TotemID},
		bson.M{"$set": t},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save totem %s: %w", t.TotemID, err)
	}
	return nil
}

// GetByID retrieves a totem by its ID, or (nil, nil) if absent.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (t *Totem, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	var found Totem
	err = r.collection.FindOne(ctx, bson.M{"totem_id": id}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get totem %s: %w", id, err)
	}
	return &found, nil
}

// List returns all registered totems.
func (r *MongoRepository) List(ctx context.Context) (totems []*Totem, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list totems: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &totems); err != nil {
		return nil, fmt.Errorf("failed to decode totems: %w", err)
	}
	return totems, nil
}

// Delete removes a totem. Deleting an absent totem is a no-op.
func (r *MongoRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.M{"totem_id": id}); err != nil {
		return fmt.Errorf("failed to delete totem %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every totem.
func (r *MongoRepository) DeleteAll(ctx context.Context) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete totems: %w", err)
	}
	return nil
}
