// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds LexHub-specific configuration, loaded in LoadConfig from
// environment variables (LEXHUB_*), config files, or command-line flags.
// Framework-level settings (ports, TLS, log level) live in WAFFLE's
// CoreConfig; everything specific to this application goes here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: lexhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Multi-firm (subdomain tenancy) configuration
	MultiFirm     bool   // Enable subdomain-based firm resolution
	PrimaryDomain string // Apex domain, e.g. "lexhub.example.com"

	// Base URL for OAuth callbacks and links
	BaseURL string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// SuperAdmin bootstrap: created (or promoted) on startup when set.
	SuperAdminEmail    string
	SuperAdminPassword string
}
