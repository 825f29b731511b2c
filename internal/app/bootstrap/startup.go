// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/viewdata"
	"github.com/dalemusser/auxilium/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It applies
// the configured timeouts and site name, bootstraps the configured
// superadmin, and starts the expired-session sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	viewdata.Init(appCfg.SiteName)

	if appCfg.SuperAdminUsername != "" {
		if err := ensureSuperAdmin(ctx, deps.MongoDatabase, appCfg.SuperAdminUsername, appCfg.SuperAdminPassword, logger); err != nil {
			return err
		}
	}

	if deps.Sessions != nil {
		cleanup := workers.NewSessionCleanup(deps.Sessions, logger.Named("sessions"), appCfg.SessionCleanupInterval)
		cleanup.Start()
		deps.bg.add(cleanup.Stop)
	}
	return nil
}

// ensureSuperAdmin creates the configured superadmin if missing, or
// promotes an existing account with that username.
func ensureSuperAdmin(ctx context.Context, db *mongo.Database, username, password string, logger *zap.Logger) error {
	username = authutil.NormalizeUsername(username)
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return fmt.Errorf("superadmin password: %w", err)
	}

	res, err := userstore.New(db).EnsureSuperAdmin(ctx, username, hash)
	if err != nil {
		logger.Error("superadmin bootstrap failed", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("ensure superadmin: %w", err)
	}
	logger.Info("superadmin bootstrap", zap.String("username", username), zap.String("result", res.String()))
	return nil
}
