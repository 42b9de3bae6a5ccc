// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging, and request limits. AppConfig is where everything
// specific to the survey service lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: canopysurvey-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for absolute links (e.g., in exported reports)
	BaseURL string // e.g., "https://survey.canopyai.example" or "http://localhost:3000"

	// SeedQuestions controls whether the 30-question starter catalog is
	// inserted into an empty database at startup.
	SeedQuestions bool

	// Handler timeout overrides. Zero values keep the defaults.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
