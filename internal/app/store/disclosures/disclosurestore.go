// internal/app/store/disclosures/disclosurestore.go
package disclosurestore

import (
	"context"
	"time"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds mandatory public disclosure documents.
const Collection = "disclosure_documents"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, d models.DisclosureDocument) (models.DisclosureDocument, error) {
	d.ID = primitive.NewObjectID()
	if d.UploadDate.IsZero() {
		d.UploadDate = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.DisclosureDocument{}, err
	}
	return d, nil
}

// List returns documents grouped by type, then by title.
func (s *Store) List(ctx context.Context) ([]models.DisclosureDocument, error) {
	opts := options.Find().SetSort(storekit.Sort("type", 1, "title", 1, "_id", 1))
	return storekit.FindAll[models.DisclosureDocument](ctx, s.c, nil, opts)
}

// Recent returns documents newest first, the order the public page uses.
func (s *Store) Recent(ctx context.Context) ([]models.DisclosureDocument, error) {
	opts := options.Find().SetSort(storekit.Sort("upload_date", -1, "_id", -1))
	return storekit.FindAll[models.DisclosureDocument](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.DisclosureDocument, error) {
	return storekit.FindByID[models.DisclosureDocument](ctx, s.c, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.DisclosureDocument, error) {
	return storekit.DeleteByID[models.DisclosureDocument](ctx, s.c, id)
}
