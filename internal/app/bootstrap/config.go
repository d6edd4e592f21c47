// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Tissue Finder.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: TISSUEFINDER_MONGO_URI, TISSUEFINDER_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tissue_finder", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer tokens for the local auth routes
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT signing secret (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "JWT token lifetime (e.g., 24h, 90m)"},

	// Classifier model service
	{Name: "model_url", Default: "", Desc: "Base URL of the model-serving endpoint (blank disables the classifier)"},
	{Name: "model_classes", Default: "", Desc: "Comma-separated fallback class labels"},

	// Uploaded forum media
	{Name: "upload_local_path", Default: "./uploads/forum", Desc: "Local storage path for uploaded forum media"},
	{Name: "upload_local_url", Default: "/files/forum", Desc: "URL prefix for serving uploaded forum media"},

	// Browser clients
	{Name: "cors_origins", Default: "http://localhost:3000", Desc: "Comma-separated allowed CORS origins for the SPA"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TISSUEFINDER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		ModelURL:     appValues.String("model_url"),
		ModelClasses: appValues.String("model_classes"),

		UploadLocalPath: appValues.String("upload_local_path"),
		UploadLocalURL:  appValues.String("upload_local_url"),

		CORSOrigins: appValues.String("cors_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// early, before attempting to connect. Production deployments must also
// replace the development JWT secret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be set in production")
	}

	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}

	return nil
}
