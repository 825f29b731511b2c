// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds admin activity entries.
const Collection = "activity_logs"

// Store manages the admin activity log.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log inserts one entry, stamping ID and Timestamp when unset.
func (s *Store) Log(ctx context.Context, e models.ActivityLog) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.ActivityLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ActivityLog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.ActivityLog, error) {
	return s.find(ctx, bson.M{}, limit)
}

// ByUser returns one user's entries, newest first.
func (s *Store) ByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.ActivityLog, error) {
	return s.find(ctx, bson.M{"user_id": userID}, limit)
}

// ByAction returns entries of one action, newest first.
func (s *Store) ByAction(ctx context.Context, action string, limit int64) ([]models.ActivityLog, error) {
	return s.find(ctx, bson.M{"action": action}, limit)
}
