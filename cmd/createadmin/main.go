// Command createadmin creates the first superadmin account.
//
// Settings come from the environment (a .env file in the working directory
// is loaded first) and may be overridden with flags:
//
//	MONGO_URI            --mongo_uri
//	MONGO_DATABASE       --mongo_database
//	SUPERADMIN_USERNAME  --username
//	SUPERADMIN_PASSWORD  --password
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type settings struct {
	MongoURI string
	Database string
	Username string
	Password string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not read .env", zap.Error(err))
	}

	s, err := parseSettings(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Fatal("invalid arguments", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, s, os.Stdout, logger); err != nil {
		logger.Fatal("createadmin failed", zap.Error(err))
	}
}

func parseSettings(args []string, getenv func(string) string) (settings, error) {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	s := settings{}
	fs.StringVar(&s.MongoURI, "mongo_uri", orDefault(getenv("MONGO_URI"), "mongodb://localhost:27017"), "MongoDB connection URI")
	fs.StringVar(&s.Database, "mongo_database", orDefault(getenv("MONGO_DATABASE"), "auxilium"), "MongoDB database name")
	fs.StringVar(&s.Username, "username", getenv("SUPERADMIN_USERNAME"), "superadmin username")
	fs.StringVar(&s.Password, "password", getenv("SUPERADMIN_PASSWORD"), "superadmin password")
	if err := fs.Parse(args); err != nil {
		return settings{}, err
	}

	s.Username = authutil.NormalizeUsername(s.Username)
	if s.Username == "" || s.Password == "" {
		return settings{}, errors.New("SUPERADMIN_USERNAME and SUPERADMIN_PASSWORD are required")
	}
	return s, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// run creates the superadmin unless an account with that username exists.
func run(ctx context.Context, s settings, out io.Writer, logger *zap.Logger) error {
	hash, err := authutil.HashPassword(s.Password)
	if err != nil {
		return err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := userstore.New(client.Database(s.Database))
	if _, err := users.GetByUsername(ctx, s.Username); err == nil {
		fmt.Fprintf(out, "Superadmin user '%s' already exists.\n", s.Username)
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("look up %q: %w", s.Username, err)
	}

	u, err := users.Create(ctx, s.Username, hash, models.RoleSuperAdmin)
	if errors.Is(err, userstore.ErrDuplicateUsername) {
		fmt.Fprintf(out, "Superadmin user '%s' already exists.\n", s.Username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create %q: %w", s.Username, err)
	}

	logger.Info("superadmin created", zap.String("username", u.Username), zap.String("id", u.ID.Hex()))
	fmt.Fprintf(out, "Superadmin user '%s' created successfully.\n", u.Username)
	return nil
}
