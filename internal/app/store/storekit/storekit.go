// Package storekit holds the small pieces every content store shares:
// sentinel errors, id parsing and typed find/modify helpers.
package storekit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrBadID is returned for ids that are not 24-char hex ObjectIDs.
	ErrBadID = errors.New("invalid id")
)

// ParseID converts a hex id, mapping failures to ErrBadID.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", hex, ErrBadID)
	}
	return oid, nil
}

// Sort builds a sort document from alternating key, direction pairs.
func Sort(pairs ...any) bson.D {
	d := make(bson.D, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		d = append(d, bson.E{Key: pairs[i].(string), Value: pairs[i+1]})
	}
	return d
}

// FindAll decodes every match. The result is never nil so it encodes as [].
func FindAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID loads one document by id.
func FindByID[T any](ctx context.Context, c *mongo.Collection, id primitive.ObjectID) (T, error) {
	var v T
	err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	return v, notFound(err)
}

// UpdateByID applies update and returns the document as it is afterwards.
func UpdateByID[T any](ctx context.Context, c *mongo.Collection, id primitive.ObjectID, update any) (T, error) {
	var v T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&v)
	return v, notFound(err)
}

// DeleteByID removes one document and returns what was removed.
func DeleteByID[T any](ctx context.Context, c *mongo.Collection, id primitive.ObjectID) (T, error) {
	var v T
	err := c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v)
	return v, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// SetPhoto adds the media fields of p to a $set document when p is non-nil.
func SetPhoto(set bson.M, p *models.Photo) {
	if p == nil {
		return
	}
	set["cloudinary_url"] = p.CloudinaryURL
	set["cloudinary_public_id"] = p.CloudinaryPublicID
	set["resource_type"] = p.ResourceType
}
