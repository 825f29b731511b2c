// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds admin panel sessions.
const Collection = "admin_sessions"

// DefaultMaxAge is used for expiry when the cookie is a browser-session
// cookie (MaxAge 0).
const DefaultMaxAge = 24 * time.Hour

// record is one stored session. Data holds the session values encoded with
// the store's codecs; the cookie carries only the signed id.
type record struct {
	ID        string    `bson:"_id"`
	Data      string    `bson:"data"`
	UserID    string    `bson:"user_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Store is a gorilla sessions.Store backed by MongoDB.
type Store struct {
	c       *mongo.Collection
	codecs  []securecookie.Codec
	Options *gsessions.Options
}

var _ gsessions.Store = (*Store)(nil)

// New returns a Store. keyPairs are passed to securecookie: a hash key
// and an optional encryption key, repeated for key rotation.
func New(db *mongo.Database, keyPairs ...[]byte) *Store {
	s := &Store{
		c:      db.Collection(Collection),
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &gsessions.Options{
			Path:     "/",
			MaxAge:   int(DefaultMaxAge / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	s.MaxAge(s.Options.MaxAge)
	return s
}

// MaxAge sets the lifetime of new sessions and of the signed ids.
func (s *Store) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, c := range s.codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// EnsureIndexes adds the TTL index that lets MongoDB drop expired sessions
// and an index for removing a user's sessions.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_admin_sessions_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_admin_sessions_user"),
		},
	})
	return err
}

// Get returns the named session, cached per request.
func (s *Store) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a fresh one when
// the cookie is missing, forged or points at an expired record.
func (s *Store) New(r *http.Request, name string) (*gsessions.Session, error) {
	sess := gsessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return sess, nil
	}
	found, err := s.load(r.Context(), name, id, sess)
	if err != nil {
		return sess, err
	}
	if found {
		sess.ID = id
		sess.IsNew = false
	}
	return sess, nil
}

// Save writes the session and sets the cookie. A negative MaxAge deletes
// the record and expires the cookie.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *gsessions.Session) error {
	ctx := r.Context()
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.Delete(ctx, sess.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, gsessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := s.save(ctx, sess); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

func (s *Store) load(ctx context.Context, name, id string, sess *gsessions.Session) (bool, error) {
	var rec record
	err := s.c.FindOne(ctx, bson.M{"_id": id, "expires_at": bson.M{"$gt": time.Now().UTC()}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := securecookie.DecodeMulti(name, rec.Data, &sess.Values, s.codecs...); err != nil {
		// Stale data under rotated keys: treat as no session.
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, sess *gsessions.Session) error {
	data, err := securecookie.EncodeMulti(sess.Name(), sess.Values, s.codecs...)
	if err != nil {
		return err
	}
	maxAge := time.Duration(sess.Options.MaxAge) * time.Second
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	now := time.Now().UTC()
	userID, _ := sess.Values["user_id"].(string)

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": sess.ID},
		bson.M{
			"$set": bson.M{
				"data":       data,
				"user_id":    userID,
				"updated_at": now,
				"expires_at": now.Add(maxAge),
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Delete removes one session record.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByUser signs a user out everywhere.
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteExpired removes records past expires_at. The TTL index does the
// same lazily; the sweep worker calls this to keep the count exact.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of live sessions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$gt": time.Now().UTC()}})
}
