// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/auxilium/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Collections with a JSON-Schema validator
	ensure("users", usersSchema())
	ensure("applications", applicationsSchema())
	ensure("contact_messages", contactMessagesSchema())
	ensure("gallery_items", galleryItemsSchema())
	ensure("results", resultsSchema())
	ensure("disclosure_documents", disclosureSchema())
	ensure("activity_logs", activityLogsSchema())

	// These don't strictly need validators; we still ensure the collections exist.
	for _, coll := range []string{"alumni", "faculty", "principal_messages", "achievements", "admin_sessions"} {
		ensure(coll, nil)
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// nonBlank matches a string with at least one non-space character.
func nonBlank() bson.M {
	return bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
}

func enumOf(values ...string) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "username_ci", "password_hash", "role"},
			"properties": bson.M{
				"username":      nonBlank(),
				"username_ci":   nonBlank(),
				"password_hash": nonBlank(),
				"role":          bson.M{"enum": enumOf(models.RoleSuperAdmin, models.RoleAdmin, models.RoleGuest)},
				"last_login":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func applicationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"submission_date", "pupil_name", "uploaded_files_info"},
			"properties": bson.M{
				"submission_date":     bson.M{"bsonType": "date"},
				"pupil_name":          bson.M{"bsonType": "string"},
				"admission_class":     bson.M{"bsonType": "string"},
				"date_of_birth":       bson.M{"bsonType": bson.A{"date", "null"}},
				"form_details":        bson.M{"bsonType": bson.A{"object", "null"}},
				"uploaded_files_info": bson.M{"bsonType": bson.A{"array", "null"}},
			},
		},
	}
}

func contactMessagesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "message", "date"},
			"properties": bson.M{
				"name":    nonBlank(),
				"email":   nonBlank(),
				"message": nonBlank(),
				"date":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func galleryItemsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "title", "upload_date"},
			"properties": bson.M{
				"type":                 bson.M{"enum": enumOf(models.GalleryPhoto, models.GalleryVideo)},
				"title":                nonBlank(),
				"cloudinary_public_id": bson.M{"bsonType": "string"},
				"upload_date":          bson.M{"bsonType": "date"},
			},
		},
	}
}

func resultsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "student_name", "percentage"},
			"properties": bson.M{
				"type":         bson.M{"enum": enumOf(models.ResultICSE, models.ResultISC)},
				"student_name": nonBlank(),
				"percentage": bson.M{
					"bsonType": bson.A{"double", "int", "long", "decimal"},
					"minimum":  0,
					"maximum":  100,
				},
			},
		},
	}
}

func disclosureSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "title"},
			"properties": bson.M{
				"type":                 bson.M{"enum": enumOf(models.DisclosureTypes...)},
				"title":                nonBlank(),
				"cloudinary_public_id": bson.M{"bsonType": "string"},
			},
		},
	}
}

func activityLogsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"action", "timestamp"},
			"properties": bson.M{
				"user_id":   bson.M{"bsonType": "objectId"},
				"username":  bson.M{"bsonType": "string"},
				"action":    nonBlank(),
				"details":   bson.M{"bsonType": "string"},
				"timestamp": bson.M{"bsonType": "date"},
			},
		},
	}
}
