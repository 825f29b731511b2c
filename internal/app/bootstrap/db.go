// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/auxilium/internal/app/store/sessions"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/indexes"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the MongoDB client and builds the other back ends
// (session store, media, mail) that handlers share.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.DefaultShort)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize),
		zap.Uint64("min_pool", appCfg.MongoMinPoolSize))

	up, err := newMedia(appCfg, logger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, err
	}
	sender, err := newMailSender(appCfg, logger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, err
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Sessions:      newSessionStore(coreCfg, appCfg, db),
		Media:         up,
		Mailer:        newMailer(sender, appCfg, logger),
		Metrics:       metrics.New(),
		bg:            &background{},
	}, nil
}

// newSessionStore builds the MongoDB-backed gorilla session store.
// Secure cookies are enabled in production mode.
func newSessionStore(coreCfg *config.CoreConfig, appCfg AppConfig, db *mongo.Database) *sessions.Store {
	secure := coreCfg != nil && coreCfg.Env == "prod"
	store := sessions.New(db, []byte(appCfg.SessionKey))
	store.Options = auth.Options(appCfg.SessionDomain, appCfg.SessionMaxAge, secure)
	store.MaxAge(store.Options.MaxAge)
	return store
}

// EnsureSchema creates the collections with their JSON-Schema validators,
// then the indexes every collection relies on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("indexes ensured", zap.String("database", appCfg.MongoDatabase))
	return nil
}
