// internal/app/store/faculty/facultystore.go
package facultystore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds faculty and staff profiles.
const Collection = "faculty"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create saves a profile with trimmed text fields.
func (s *Store) Create(ctx context.Context, f models.Faculty) (models.Faculty, error) {
	f.ID = primitive.NewObjectID()
	f.Name = strings.TrimSpace(f.Name)
	f.SubjectOrDesignation = strings.TrimSpace(f.SubjectOrDesignation)
	f.Qualification = strings.TrimSpace(f.Qualification)
	f.Description = strings.TrimSpace(f.Description)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Faculty{}, err
	}
	return f, nil
}

// List returns profiles ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Faculty, error) {
	opts := options.Find().SetSort(storekit.Sort("name", 1, "_id", 1))
	return storekit.FindAll[models.Faculty](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Faculty, error) {
	return storekit.FindByID[models.Faculty](ctx, s.c, id)
}

// Update carries the editable fields. A nil Photo keeps the current one.
type Update struct {
	Name                 string
	SubjectOrDesignation string
	Qualification        string
	Description          string
	Photo                *models.Photo
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) (models.Faculty, error) {
	set := bson.M{
		"name":                   strings.TrimSpace(u.Name),
		"subject_or_designation": strings.TrimSpace(u.SubjectOrDesignation),
		"qualification":          strings.TrimSpace(u.Qualification),
		"description":            strings.TrimSpace(u.Description),
	}
	storekit.SetPhoto(set, u.Photo)
	return storekit.UpdateByID[models.Faculty](ctx, s.c, id, bson.M{"$set": set})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Faculty, error) {
	return storekit.DeleteByID[models.Faculty](ctx, s.c, id)
}
