// internal/app/store/alumni/alumnistore.go
package alumnistore

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

// Collection holds alumni profiles.
const Collection = "alumni"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create saves a profile. A blank graduation year is stored as "N/A".
func (s *Store) Create(ctx context.Context, a models.Alumnus) (models.Alumnus, error) {
	a.ID = primitive.NewObjectID()
	if a.GraduationYear == "" {
		a.GraduationYear = models.DefaultGraduationYear
	}
	if a.UploadDate.IsZero() {
		a.UploadDate = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Alumnus{}, err
	}
	return a, nil
}

// List returns profiles, most recently added first.
func (s *Store) List(ctx context.Context) ([]models.Alumnus, error) {
	opts := options.Find().SetSort(storekit.Sort("upload_date", -1, "_id", -1))
	return storekit.FindAll[models.Alumnus](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Alumnus, error) {
	return storekit.FindByID[models.Alumnus](ctx, s.c, id)
}

// Update carries the editable fields of a profile. A nil Photo keeps the
// current one.
type Update struct {
	Name               string
	TitleOrAchievement string
	Description        string
	GraduationYear     string
	Photo              *models.Photo
}

// Update applies u and returns the updated profile.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) (models.Alumnus, error) {
	year := u.GraduationYear
	if year == "" {
		year = models.DefaultGraduationYear
	}
	set := bson.M{
		"name":                 u.Name,
		"title_or_achievement": u.TitleOrAchievement,
		"description":          u.Description,
		"graduation_year":      year,
	}
	storekit.SetPhoto(set, u.Photo)
	return storekit.UpdateByID[models.Alumnus](ctx, s.c, id, bson.M{"$set": set})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Alumnus, error) {
	return storekit.DeleteByID[models.Alumnus](ctx, s.c, id)
}
