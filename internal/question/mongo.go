package question

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

// NewMongoRepository creates a question repository over the given collection.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

// Save stores or replaces a question keyed by pergunta_id (upsert).
func (r *MongoRepository) Save(ctx context.Context, q *Question) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpsert)
	defer func() { end(err) }()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"pergunta_id": q.QuestionID},
		bson.M{"$set": q},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save question %s: %w", q.QuestionID, err)
	}
	return nil
}

// GetByID retrieves a question by ID, or (nil, nil) if absent.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (q *Question, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	var found Question
	err = r.collection.FindOne(ctx, bson.M{"pergunta_id": id}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}
	return &found, nil
}

// Latest returns the question with the most recent data_criacao, or
// (nil, nil) when the collection is empty.
func (r *MongoRepository) Latest(ctx context.Context) (q *Question, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	opts := options.FindOne().SetSort(bson.D{{Key: "data_criacao", Value: -1}})
	var found Question
	err = r.collection.FindOne(ctx, bson.M{}, opts).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest question: %w", err)
	}
	return &found, nil
}

// List returns all questions.
func (r *MongoRepository) List(ctx context.Context) (questions []*Question, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

// Delete removes a question. Deleting an absent question is a no-op.
func (r *MongoRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.M{"pergunta_id": id}); err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every question.
func (r *MongoRepository) DeleteAll(ctx context.Context) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	return nil
}
