// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries everything specific to the school site: the database,
// the admin session, media and mail credentials, and site behavior.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Admin session configuration
	SessionKey             string        // Secret key for signing session ids (must be strong in production)
	SessionName            string        // Cookie name (default: auxilium-admin)
	SessionDomain          string        // Cookie domain (blank means current host)
	SessionMaxAge          time.Duration // Cookie lifetime and server-side expiry
	SessionCleanupInterval time.Duration // How often expired sessions are swept

	// Cloudinary media configuration. CloudinaryURL, when set, overrides
	// the three separate credentials.
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	SignedURLTTL        time.Duration // Lifetime of signed links to private admission documents

	// Mail configuration
	MailTransport string // smtp, gmail, sendgrid or off
	MailSMTPHost  string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort  int    // SMTP server port (e.g., 1025 for Mailpit, 587 for most relays)
	MailSMTPUser  string
	MailSMTPPass  string
	MailFrom      string // From email address
	MailFromName  string // From display name
	MailNotifyTo  string // Receives contact form notifications (blank disables)

	// Gmail OAuth2 and SendGrid credentials
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	SendGridAPIKey    string

	// Admin activity logging: all, db, log or off
	ActivityLog string

	// Login throttling: attempts per IP per minute and per username per
	// five minutes
	LoginIPLimit   int
	LoginUserLimit int

	// Optional superadmin created or promoted at startup
	SuperAdminUsername string
	SuperAdminPassword string

	// Site
	SiteName           string
	PublicDir          string   // Static website served with index.html fallback
	CORSAllowedOrigins []string // Origins allowed to call /api and /admin

	// Handler timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
