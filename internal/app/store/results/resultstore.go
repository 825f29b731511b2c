// internal/app/store/results/resultstore.go
package resultstore

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

// Collection holds board examination toppers.
const Collection = "results"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, r models.Result) (models.Result, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	if r.UploadDate.IsZero() {
		r.UploadDate = now
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Result{}, err
	}
	return r, nil
}

// List groups results by board and puts the highest percentage first.
func (s *Store) List(ctx context.Context) ([]models.Result, error) {
	opts := options.Find().SetSort(storekit.Sort("type", 1, "percentage", -1, "_id", 1))
	return storekit.FindAll[models.Result](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Result, error) {
	return storekit.FindByID[models.Result](ctx, s.c, id)
}

// Update carries the editable fields of a result.
type Update struct {
	Type        string
	StudentName string
	Percentage  float64
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) (models.Result, error) {
	return storekit.UpdateByID[models.Result](ctx, s.c, id, bson.M{"$set": bson.M{
		"type":         u.Type,
		"student_name": u.StudentName,
		"percentage":   u.Percentage,
		"updated_at":   time.Now().UTC(),
	}})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Result, error) {
	return storekit.DeleteByID[models.Result](ctx, s.c, id)
}
