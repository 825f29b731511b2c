// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds messages from the public contact form.
const Collection = "contact_messages"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create trims and saves a message, stamping Date when unset.
func (s *Store) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	m.ID = primitive.NewObjectID()
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Mobile = strings.TrimSpace(m.Mobile)
	m.Subject = strings.TrimSpace(m.Subject)
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ContactMessage{}, err
	}
	return m, nil
}

// List returns every message, newest first.
func (s *Store) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(storekit.Sort("date", -1, "_id", -1))
	return storekit.FindAll[models.ContactMessage](ctx, s.c, nil, opts)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ContactMessage, error) {
	return storekit.FindByID[models.ContactMessage](ctx, s.c, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.ContactMessage, error) {
	return storekit.DeleteByID[models.ContactMessage](ctx, s.c, id)
}
