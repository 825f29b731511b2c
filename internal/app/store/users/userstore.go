package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds admin accounts.
const Collection = "users"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var (
	// ErrDuplicateUsername is returned when the folded username is taken.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	errBadRole           = errors.New(`role must be "admin"|"guest"|"superadmin"`)
	errEmptyUsername     = errors.New("username is required")
)

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleGuest, models.RoleSuperAdmin:
		return true
	}
	return false
}

// Create inserts a new user. passwordHash must already be a bcrypt hash.
func (s *Store) Create(ctx context.Context, username, passwordHash, role string) (models.User, error) {
	username = authutil.NormalizeUsername(username)
	if username == "" {
		return models.User{}, errEmptyUsername
	}
	if role == "" {
		role = models.RoleGuest
	}
	if !validRole(role) {
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by case-insensitive username. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	folded := text.Fold(authutil.NormalizeUsername(username))
	if err := s.c.FindOne(ctx, bson.M{"username_ci": folded}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UsernameExists reports whether the folded username is taken.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at.UTC()}})
	return err
}

// ListAdmins returns every admin and superadmin, by username.
func (s *Store) ListAdmins(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "username_ci", Value: 1}}).
		SetProjection(bson.M{"password_hash": 0})
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$in": []string{models.RoleAdmin, models.RoleSuperAdmin}}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a user. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureResult says what EnsureSuperAdmin did.
type EnsureResult int

const (
	Unchanged EnsureResult = iota
	Created
	Promoted
)

func (r EnsureResult) String() string {
	switch r {
	case Created:
		return "created"
	case Promoted:
		return "promoted"
	default:
		return "unchanged"
	}
}

// EnsureSuperAdmin creates username as a superadmin, or promotes an existing
// account of that name. An existing account keeps its password.
func (s *Store) EnsureSuperAdmin(ctx context.Context, username, passwordHash string) (EnsureResult, error) {
	u, err := s.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := s.Create(ctx, username, passwordHash, models.RoleSuperAdmin); err != nil {
			if errors.Is(err, ErrDuplicateUsername) {
				return Unchanged, nil
			}
			return Unchanged, err
		}
		return Created, nil
	case err != nil:
		return Unchanged, err
	case u.Role == models.RoleSuperAdmin:
		return Unchanged, nil
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
		"role":       models.RoleSuperAdmin,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return Unchanged, err
	}
	return Promoted, nil
}
