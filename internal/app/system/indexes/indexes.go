// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each index set is idempotent; problems are
collected so one bad collection does not hide the others.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{"users", usersIndexes()},
		{"applications", applicationsIndexes()},
		{"contact_messages", sortIndex("contact_messages", "date")},
		{"gallery_items", galleryIndexes()},
		{"alumni", sortIndex("alumni", "upload_date")},
		{"faculty", facultyIndexes()},
		{"principal_messages", sortIndex("principal_messages", "created_at")},
		{"achievements", sortIndex("achievements", "upload_date")},
		{"results", resultsIndexes()},
		{"disclosure_documents", disclosureIndexes()},
		{"activity_logs", activityIndexes()},
		{"admin_sessions", sessionIndexes()},
	}

	var problems []string
	for _, s := range sets {
		if err := ensureIndexSet(ctx, db.Collection(s.coll), s.models); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                       */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// isDuplicateKeyErr reports E11000, which means a unique index cannot be
// built over the data already present.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

// ensureIndexSet creates missing indexes and rebuilds ones whose name or
// uniqueness drifted. An index with the same keys but a different name is
// dropped and recreated under the desired name.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	log := zap.L().With(zap.String("collection", coll.Name()))
	var errs []string

	// A missing collection lists no indexes; that is fine.
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		existing = map[string]existingIndex{}
	}

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == boolVal(unique) && (name == "" || ex.Name == name) {
				log.Debug("index present", zap.String("name", ex.Name), zap.String("keys", sig))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
			log.Info("dropped drifted index", zap.String("name", ex.Name), zap.String("keys", sig))
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && boolVal(unique) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on %s (duplicates present)", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			log.Warn("index ensure failed", zap.String("name", name), zap.String("keys", sig), zap.Error(err))
			continue
		}
		log.Info("index ensured",
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", boolVal(unique)),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func sortIndex(coll, field string) []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: field, Value: -1}},
		Options: options.Index().SetName(fmt.Sprintf("idx_%s_%s_desc", coll, field)),
	}}
}

func usersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Usernames are unique case-insensitively.
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_username_ci"),
		},
		// Admin list filters on role.
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_role_username_ci"),
		},
	}
}

func applicationsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "submission_date", Value: -1}},
			Options: options.Index().SetName("idx_applications_submission_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "admission_class", Value: 1}, {Key: "submission_date", Value: -1}},
			Options: options.Index().SetName("idx_applications_class_submission_date"),
		},
	}
}

func galleryIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("idx_gallery_items_upload_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("idx_gallery_items_type_upload_date"),
		},
	}
}

func facultyIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_faculty_name"),
	}}
}

func resultsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "percentage", Value: -1}},
		Options: options.Index().SetName("idx_results_type_percentage"),
	}}
}

func disclosureIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("idx_disclosure_documents_upload_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetName("idx_disclosure_documents_type_title"),
		},
	}
}

func activityIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_logs_timestamp_desc"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_logs_user_timestamp"),
		},
	}
}

func sessionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Expired sessions are removed by MongoDB itself.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_admin_sessions_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_admin_sessions_user"),
		},
	}
}
