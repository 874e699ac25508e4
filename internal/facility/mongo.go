package facility

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

// NewMongoRepository creates a facility repository over the given collection.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

// Save stores or replaces a facility keyed by servico_id (upsert).
func (r *MongoRepository) Save(ctx context.Context, f *Facility) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationUpsert)
	defer func() { end(err) }()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"servico_id": f.FacilityID},
		bson.M{"$set": f},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save facility %s: %w", f.FacilityID, err)
	}
	return nil
}

// GetByID retrieves a facility, or (nil, nil) if absent.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (f *Facility, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	var found Facility
	err = r.collection.FindOne(ctx, bson.M{"servico_id": id}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get facility %s: %w", id, err)
	}
	return &found, nil
}

// List returns facilities, restricted to active ones when activeOnly is set.
func (r *MongoRepository) List(ctx context.Context, activeOnly bool) ([]*Facility, error) {
	filter := bson.M{}
	if activeOnly {
		filter["ativo"] = true
	}
	return r.find(ctx, filter)
}

// ListByType returns the active facilities of the given type.
func (r *MongoRepository) ListByType(ctx context.Context, facilityType string) ([]*Facility, error) {
	return r.find(ctx, bson.M{"ativo": true, "tipo": facilityType})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) (facilities []*Facility, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationFind)
	defer func() { end(err) }()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return facilities, nil
}

// CountByType groups the active facilities by tipo on the server.
func (r *MongoRepository) CountByType(ctx context.Context) (counts map[string]int64, err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationAggregate)
	defer func() { end(err) }()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ativo": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$tipo",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count facilities by type: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode type counts: %w", err)
	}

	counts = make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// Delete removes a facility. Deleting an absent facility is a no-op.
func (r *MongoRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.M{"servico_id": id}); err != nil {
		return fmt.Errorf("failed to delete facility %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every facility.
func (r *MongoRepository) DeleteAll(ctx context.Context) (err error) {
	ctx, end := tracing.StartDBSpan(ctx, r.collection.Name(), tracing.DBOperationDelete)
	defer func() { end(err) }()

	if _, err = r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete facilities: %w", err)
	}
	return nil
}
