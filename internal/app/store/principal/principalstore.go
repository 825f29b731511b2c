// internal/app/store/principal/principalstore.go
package principalstore

import (
	"context"
	"time"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds the principal's message. The site shows only the latest.
const Collection = "principal_messages"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func newest() bson.D { return storekit.Sort("created_at", -1, "_id", -1) }

func (s *Store) Create(ctx context.Context, m models.PrincipalMessage) (models.PrincipalMessage, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.PrincipalMessage{}, err
	}
	return m, nil
}

// Latest returns the most recently created message, or storekit.ErrNotFound.
func (s *Store) Latest(ctx context.Context) (models.PrincipalMessage, error) {
	var m models.PrincipalMessage
	err := s.c.FindOne(ctx, bson.M{}, options.FindOne().SetSort(newest())).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return m, storekit.ErrNotFound
	}
	return m, err
}

// List returns every stored message, newest first.
func (s *Store) List(ctx context.Context) ([]models.PrincipalMessage, error) {
	return storekit.FindAll[models.PrincipalMessage](ctx, s.c, nil, options.Find().SetSort(newest()))
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PrincipalMessage, error) {
	return storekit.FindByID[models.PrincipalMessage](ctx, s.c, id)
}

// Update carries the editable fields. A nil Photo keeps the current one.
type Update struct {
	PrincipalName string
	MessageText   string
	Qualification string
	FromYear      string
	ToYear        string
	Photo         *models.Photo
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) (models.PrincipalMessage, error) {
	set := bson.M{
		"principal_name": u.PrincipalName,
		"message_text":   u.MessageText,
		"qualification":  u.Qualification,
		"from_year":      u.FromYear,
		"to_year":        u.ToYear,
		"updated_at":     time.Now().UTC(),
	}
	storekit.SetPhoto(set, u.Photo)
	return storekit.UpdateByID[models.PrincipalMessage](ctx, s.c, id, bson.M{"$set": set})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.PrincipalMessage, error) {
	return storekit.DeleteByID[models.PrincipalMessage](ctx, s.c, id)
}

// DeleteAll removes every message and returns the removed documents so their
// photos can be destroyed.
func (s *Store) DeleteAll(ctx context.Context) ([]models.PrincipalMessage, error) {
	existing, err := s.List(ctx)
	if err != nil || len(existing) == 0 {
		return existing, err
	}
	ids := make([]primitive.ObjectID, 0, len(existing))
	for _, m := range existing {
		ids = append(ids, m.ID)
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return existing, nil
}
