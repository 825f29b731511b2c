// internal/app/store/achievements/achievementstore.go
package achievementstore

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

// Collection holds school achievements.
const Collection = "achievements"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, a models.Achievement) (models.Achievement, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.UploadDate.IsZero() {
		a.UploadDate = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Achievement{}, err
	}
	return a, nil
}

// List returns achievements newest first.
func (s *Store) List(ctx context.Context) ([]models.Achievement, error) {
	opts := options.Find().SetSort(storekit.Sort("upload_date", -1, "_id", -1))
	return storekit.FindAll[models.Achievement](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Achievement, error) {
	return storekit.FindByID[models.Achievement](ctx, s.c, id)
}

// UpdateText replaces the title and description.
func (s *Store) UpdateText(ctx context.Context, id primitive.ObjectID, title, description string) (models.Achievement, error) {
	return storekit.UpdateByID[models.Achievement](ctx, s.c, id, bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updated_at":  time.Now().UTC(),
	}})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Achievement, error) {
	return storekit.DeleteByID[models.Achievement](ctx, s.c, id)
}
