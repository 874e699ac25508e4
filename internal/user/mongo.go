package user

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

// NewMongoRepository creates a user repository over the given collection.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

// Save stores or replaces a user keyed by vem_hash (upsert).
func (r *MongoRepository) Save(ctx context.Context, u *User) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpsert)
	defer func() { end(err) }()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"vem_hash": u.UserHash},
		bson.M{"$set": u},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", u.UserHash, err)
	}
	return nil
}

// GetByHash retrieves a user, or (nil, nil) if absent.
func (r *MongoRepository) GetByHash(ctx context.Context, userHash string) (u *User, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	var found User
	err = r.collection.FindOne(ctx, bson.M{"vem_hash": userHash}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userHash, err)
	}
	return &found, nil
}

// List returns all users.
func (r *MongoRepository) List(ctx context.Context) (users []*User, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// IncrementPoints performs the add-and-fetch as a single
// findOneAndUpdate so concurrent increments for the same user are
// linearized by the server. The pipeline form lets the balance floor at
// zero inside the same atomic step.
func (r *MongoRepository) IncrementPoints(ctx context.Context, userHash string, delta int64) (points int64, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpdate)
	defer func() { end(err) }()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"pontuacao": bson.M{"$max": bson.A{
				int64(0),
				bson.M{"$add": bson.A{"$pontuacao", delta}},
			}},
			"ultima_atualizacao": "$$NOW",
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"vem_hash": userHash}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, userHash)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment points for user %s: %w", userHash, err)
	}
	return updated.Points, nil
}

// Delete removes a user. Deleting an absent user is a no-op.
func (r *MongoRepository) Delete(ctx context.Context, userHash string) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.M{"vem_hash": userHash}); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userHash, err)
	}
	return nil
}

// DeleteAll removes every user.
func (r *MongoRepository) DeleteAll(ctx context.Context) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
