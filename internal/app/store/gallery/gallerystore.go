// internal/app/store/gallery/gallerystore.go
package gallerystore

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

// Collection holds gallery photos and videos.
const Collection = "gallery_items"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, it models.GalleryItem) (models.GalleryItem, error) {
	it.ID = primitive.NewObjectID()
	if it.UploadDate.IsZero() {
		it.UploadDate = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, it); err != nil {
		return models.GalleryItem{}, err
	}
	return it, nil
}

// List returns items newest first. A non-empty kind limits the result to
// photos or videos.
func (s *Store) List(ctx context.Context, kind string) ([]models.GalleryItem, error) {
	filter := bson.M{}
	if kind != "" {
		filter["type"] = kind
	}
	opts := options.Find().SetSort(storekit.Sort("upload_date", -1, "_id", -1))
	return storekit.FindAll[models.GalleryItem](ctx, s.c, filter, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	return storekit.FindByID[models.GalleryItem](ctx, s.c, id)
}

// UpdateText replaces the title and description.
func (s *Store) UpdateText(ctx context.Context, id primitive.ObjectID, title, description string) (models.GalleryItem, error) {
	return storekit.UpdateByID[models.GalleryItem](ctx, s.c, id, bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
	}})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	return storekit.DeleteByID[models.GalleryItem](ctx, s.c, id)
}
