// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	achievementsfeature "github.com/dalemusser/auxilium/internal/app/features/achievements"
	activityfeature "github.com/dalemusser/auxilium/internal/app/features/activity"
	admissionsfeature "github.com/dalemusser/auxilium/internal/app/features/admissions"
	alumnifeature "github.com/dalemusser/auxilium/internal/app/features/alumni"
	contactfeature "github.com/dalemusser/auxilium/internal/app/features/contact"
	dashboardfeature "github.com/dalemusser/auxilium/internal/app/features/dashboard"
	disclosurefeature "github.com/dalemusser/auxilium/internal/app/features/disclosure"
	errorsfeature "github.com/dalemusser/auxilium/internal/app/features/errors"
	facultyfeature "github.com/dalemusser/auxilium/internal/app/features/faculty"
	galleryfeature "github.com/dalemusser/auxilium/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/auxilium/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/auxilium/internal/app/features/heartbeat"
	loginfeature "github.com/dalemusser/auxilium/internal/app/features/login"
	logoutfeature "github.com/dalemusser/auxilium/internal/app/features/logout"
	principalfeature "github.com/dalemusser/auxilium/internal/app/features/principal"
	resultsfeature "github.com/dalemusser/auxilium/internal/app/features/results"
	sitefeature "github.com/dalemusser/auxilium/internal/app/features/site"
	systemusersfeature "github.com/dalemusser/auxilium/internal/app/features/systemusers"
	userinfofeature "github.com/dalemusser/auxilium/internal/app/features/userinfo"
	activitystore "github.com/dalemusser/auxilium/internal/app/store/activity"
	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It boots the template engine for the
// admin pages, builds the session manager over the MongoDB session store,
// and hands both to newRouter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if err := auth.CheckKey(appCfg.SessionKey, logger); err != nil {
		return nil, err
	}
	sessionMgr := auth.NewWithStore(deps.Sessions, appCfg.SessionName, logger)

	// Fresh user data on every request, so deleted admins lose access at once.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	limiter := ratelimit.NewLoginLimiter(appCfg.LoginIPLimit, appCfg.LoginUserLimit)
	deps.bg.add(limiter.Stop)

	return newRouter(appCfg, deps, sessionMgr, limiter, logger), nil
}

// newRouter mounts every feature. It is split from BuildHandler so tests can
// supply their own session manager and back ends.
func newRouter(appCfg AppConfig, deps DBDeps, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) http.Handler {
	db := deps.MongoDatabase
	up := deps.Media
	if up == nil {
		up = media.Disabled{}
	}
	m := deps.Metrics
	errLog := errorsfeature.NewErrorLogger(logger)
	activity := activitylog.New(activitystore.New(db), logger.Named("activity"), appCfg.ActivityLog)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)
	r.Use(corsHandler(appCfg.CORSAllowedOrigins))

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	_, mediaOff := up.(media.Disabled)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, !mediaOff, appCfg.MailTransport, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", appCfg.PublicDir))

	galleryHandler := galleryfeature.NewHandler(db, up, activity, m, errLog, logger)
	alumniHandler := alumnifeature.NewHandler(db, up, activity, m, errLog, logger)
	facultyHandler := facultyfeature.NewHandler(db, up, activity, m, errLog, logger)
	principalHandler := principalfeature.NewHandler(db, up, activity, m, errLog, logger)
	achievementsHandler := achievementsfeature.NewHandler(db, up, activity, m, errLog, logger)
	resultsHandler := resultsfeature.NewHandler(db, up, activity, m, errLog, logger)
	disclosureHandler := disclosurefeature.NewHandler(db, up, activity, m, errLog, logger)
	admissionsHandler := admissionsfeature.NewHandler(db, up, appCfg.SignedURLTTL, activity, m, errLog, logger)

	// Public JSON API used by the website
	r.Route("/api", func(api chi.Router) {
		contactHandler := contactfeature.NewHandler(db, deps.Mailer, appCfg.MailNotifyTo, m, errLog, logger)
		api.Mount("/contact", contactfeature.Routes(contactHandler))
		admissionsfeature.PublicRoutes(api, admissionsHandler)

		api.Mount("/gallery", galleryfeature.PublicRoutes(galleryHandler))
		api.Mount("/alumni", alumnifeature.PublicRoutes(alumniHandler))
		api.Mount("/faculty", facultyfeature.PublicRoutes(facultyHandler))
		api.Mount("/principal-message", principalfeature.PublicRoutes(principalHandler))
		api.Mount("/achievements", achievementsfeature.PublicRoutes(achievementsHandler))
		api.Mount("/results", resultsfeature.PublicRoutes(resultsHandler))
		api.Mount("/disclosure", disclosurefeature.PublicRoutes(disclosureHandler))
	})

	// Admin panel
	r.Route("/admin", func(admin chi.Router) {
		dashboardfeature.Routes(admin, dashboardfeature.NewHandler(logger))

		loginHandler := loginfeature.NewHandler(db, sessionMgr, limiter, activity, m, errLog, logger)
		admin.Mount("/login", loginfeature.Routes(loginHandler))
		logoutHandler := logoutfeature.NewHandler(sessionMgr, activity, logger)
		admin.Mount("/logout", logoutfeature.Routes(logoutHandler))
		userinfofeature.MountRoutes(admin, userinfofeature.NewHandler())
		admin.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatfeature.NewHandler(sessionMgr, logger), sessionMgr))

		admin.Mount("/applications", admissionsfeature.AdminRoutes(admissionsHandler, sessionMgr))
		admin.Mount("/gallery", galleryfeature.AdminRoutes(galleryHandler, sessionMgr))
		admin.Mount("/alumni", alumnifeature.AdminRoutes(alumniHandler, sessionMgr))
		admin.Mount("/faculty", facultyfeature.AdminRoutes(facultyHandler, sessionMgr))
		admin.Mount("/principal-message", principalfeature.AdminRoutes(principalHandler, sessionMgr))
		admin.Mount("/achievements", achievementsfeature.AdminRoutes(achievementsHandler, sessionMgr))
		admin.Mount("/results", resultsfeature.AdminRoutes(resultsHandler, sessionMgr))
		admin.Mount("/disclosure", disclosurefeature.AdminRoutes(disclosureHandler, sessionMgr))

		// Superadmin only
		sysUsersHandler := systemusersfeature.NewHandler(db, deps.Sessions, activity, errLog, logger)
		systemusersfeature.Routes(admin, sysUsersHandler, sessionMgr)
		activityHandler := activityfeature.NewHandler(db, errLog, logger)
		admin.Mount("/activity", activityfeature.Routes(activityHandler, sessionMgr))
	})

	// Everything else is the public website, with index.html fallback.
	siteHandler := sitefeature.NewHandler(appCfg.PublicDir, logger)
	r.NotFound(siteHandler.ServeHTTP)

	return r
}

// corsHandler allows the website origins to call the API. Credentials are
// only allowed with an explicit origin list.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			wildcard = true
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
