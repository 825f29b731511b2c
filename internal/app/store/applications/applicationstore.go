// internal/app/store/applications/applicationstore.go
package applicationstore

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

// Collection holds admission applications.
const Collection = "applications"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a submitted application, stamping its id and submission date.
func (s *Store) Create(ctx context.Context, a models.Application) (models.Application, error) {
	a.ID = primitive.NewObjectID()
	if a.SubmissionDate.IsZero() {
		a.SubmissionDate = time.Now().UTC()
	}
	if a.FormDetails == nil {
		a.FormDetails = map[string]string{}
	}
	if a.UploadedFilesInfo == nil {
		a.UploadedFilesInfo = []models.UploadedFile{}
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Application{}, err
	}
	return a, nil
}

// List returns every application, most recent submission first.
func (s *Store) List(ctx context.Context) ([]models.Application, error) {
	opts := options.Find().SetSort(storekit.Sort("submission_date", -1, "_id", -1))
	return storekit.FindAll[models.Application](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Application, error) {
	return storekit.FindByID[models.Application](ctx, s.c, id)
}

// Delete removes an application and returns it so its files can be destroyed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Application, error) {
	return storekit.DeleteByID[models.Application](ctx, s.c, id)
}

// Count returns the number of stored applications.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
