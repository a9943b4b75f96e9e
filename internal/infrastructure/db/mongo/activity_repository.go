package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

const collectionActivities = "activities"

type activityDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EntityType string             `bson:"entity_type"`
	EntityID   string             `bson:"entity_id"`
	Action     string             `bson:"action"`
	From       string             `bson:"from,omitempty"`
	To         string             `bson:"to,omitempty"`
	ActorID    string             `bson:"actor_id,omitempty"`
	At         time.Time          `bson:"at"`
}

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// EnsureIndexes creates the lookup indexes used by List.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("activity indexes: %w", err)
	}
	return nil
}

// Insert appends one entry to the activity collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDocument{
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Action:     a.Action,
		From:       a.From,
		To:         a.To,
		ActorID:    a.ActorID,
		At:         a.At.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

// List returns entries newest first.
func (r *ActivityRepository) List(ctx context.Context, f ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := activityFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []activityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode activities: %w", err)
	}

	out := make([]*domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Activity{
			ID:         d.ID.Hex(),
			EntityType: d.EntityType,
			EntityID:   d.EntityID,
			Action:     d.Action,
			From:       d.From,
			To:         d.To,
			ActorID:    d.ActorID,
			At:         d.At,
		})
	}
	return out, total, nil
}

func activityFilter(f ports.ActivityFilter) bson.M {
	filter := bson.M{}
	if f.EntityType != "" {
		filter["entity_type"] = f.EntityType
	}
	if f.EntityID != "" {
		filter["entity_id"] = f.EntityID
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	return filter
}
