package interaction

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

// NewMongoRepository creates an interaction repository over the given
// collection.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

// Upsert stores the interaction keyed by its natural key. A second
// answer from the same user to the same question at the same totem
// overwrites the first.
func (r *MongoRepository) Upsert(ctx context.Context, i *Interaction) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpsert)
	defer func() { end(err) }()

	filter := bson.M{
		"vem_hash":    i.UserHash,
		"pergunta_id": i.QuestionID,
		"totem_id":    i.TotemID,
	}
	_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$set": i}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert interaction: %w", err)
	}
	return nil
}

// List returns all recorded interactions.
func (r *MongoRepository) List(ctx context.Context) (interactions []*Interaction, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &interactions); err != nil {
		return nil, fmt.Errorf("failed to decode interactions: %w", err)
	}
	return interactions, nil
}

// CountByAnswer groups one question's interactions by answer value
// using an aggregation pipeline.
func (r *MongoRepository) CountByAnswer(ctx context.Context, questionID string) (counts map[string]int64, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationAggregate)
	defer func() { end(err) }()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"pergunta_id": questionID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$resposta",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate interactions for question %s: %w", questionID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Answer string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation rows: %w", err)
	}

	counts = make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Answer] = row.Count
	}
	return counts, nil
}

// HasInteracted reports whether the user answered the question at any
// totem. The totem is deliberately absent from the filter.
func (r *MongoRepository) HasInteracted(ctx context.Context, userHash, questionID string) (found bool, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	filter := bson.M{"vem_hash": userHash, "pergunta_id": questionID}
	err = r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check interaction: %w", err)
	}
	return true, nil
}

// DeleteByQuestion removes every interaction for a question.
func (r *MongoRepository) DeleteByQuestion(ctx context.Context, questionID string) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{"pergunta_id": questionID}); err != nil {
		return fmt.Errorf("failed to delete interactions for question %s: %w", questionID, err)
	}
	return nil
}

// DeleteAll removes every interaction.
func (r *MongoRepository) DeleteAll(ctx context.Context) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete interactions: %w", err)
	}
	return nil
}
