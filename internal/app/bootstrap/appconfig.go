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
//   - Database connection timeouts
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token configuration for the local auth routes
	JWTSecret string        // HS256 signing secret (must be strong in production)
	JWTTTL    time.Duration // Token lifetime

	// Classifier model service
	ModelURL     string // Base URL of the model-serving endpoint (blank disables the classifier)
	ModelClasses string // Comma-separated fallback label list when the service publishes none

	// Uploaded forum media
	UploadLocalPath string // Local path uploads are written to (e.g., "./uploads/forum")
	UploadLocalURL  string // URL prefix uploads are served back under (e.g., "/files/forum")

	// Browser clients
	CORSOrigins string // Comma-separated allowed origins for the SPA (e.g., "http://localhost:3000")
}
