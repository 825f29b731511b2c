package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateUser creates a user with the given password and role.
func (f *Fixtures) CreateUser(ctx context.Context, username, password, role string) models.User {
	f.t.Helper()
	hash, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateAdmin creates an admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, "password123", models.RoleAdmin)
}

// CreateSuperAdmin creates a superadmin account.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, "password123", models.RoleSuperAdmin)
}

// CreateApplication stores an admission with one document per field given.
func (f *Fixtures) CreateApplication(ctx context.Context, pupil string, at time.Time, fields ...string) models.Application {
	f.t.Helper()
	app := models.Application{
		ID:             primitive.NewObjectID(),
		SubmissionDate: at,
		PupilName:      pupil,
		AdmissionClass: "LKG",
		FormDetails:    map[string]string{"pupilName": pupil, "admissionClass": "LKG"},
	}
	for _, field := range fields {
		id := "admissions/" + field + "/" + primitive.NewObjectID().Hex()
		app.UploadedFilesInfo = append(app.UploadedFilesInfo, models.UploadedFile{
			FieldName:          field,
			OriginalName:       field + ".pdf",
			MimeType:           "application/pdf",
			Size:               1024,
			CloudinaryURL:      "https://media.test/raw/authenticated/" + id,
			CloudinaryPublicID: id,
			ResourceType:       "raw",
		})
	}
	f.insert(ctx, "applications", app)
	return app
}

// CreateContactMessage stores a contact form message.
func (f *Fixtures) CreateContactMessage(ctx context.Context, name string, at time.Time) models.ContactMessage {
	f.t.Helper()
	m := models.ContactMessage{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Email:   "parent@example.com",
		Message: "Hello",
		Date:    at,
	}
	f.insert(ctx, "contact_messages", m)
	return m
}
