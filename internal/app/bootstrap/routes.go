// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	authlocalfeature "github.com/yvelmence/tissuefinder/internal/app/features/authlocal"
	forumfeature "github.com/yvelmence/tissuefinder/internal/app/features/forum"
	healthfeature "github.com/yvelmence/tissuefinder/internal/app/features/health"
	predictfeature "github.com/yvelmence/tissuefinder/internal/app/features/predict"
	quizfeature "github.com/yvelmence/tissuefinder/internal/app/features/quiz"
	tissuesfeature "github.com/yvelmence/tissuefinder/internal/app/features/tissues"
	"github.com/yvelmence/tissuefinder/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The route layout mirrors what the React client expects: the auth and
// prediction endpoints sit at the root, everything else under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL)

	r := chi.NewRouter()

	// The SPA is served from a different origin in development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitCSV(appCfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the verified caller into context when a
	// valid bearer token is present. The CRUD ownership checks do not use
	// it, but /protected and future role gates do.
	r.Use(tokens.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded forum media, served with pre-compressed file support
	r.Handle(appCfg.UploadLocalURL+"/*", fileserver.Handler(appCfg.UploadLocalURL, appCfg.UploadLocalPath))

	// Local accounts and the SPA's token check
	authHandler := authlocalfeature.NewHandler(deps.MongoDatabase, tokens, logger)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.With(auth.RequireSignedIn).Get("/protected", authHandler.ServeProtected)

	// Image classification
	predictHandler := predictfeature.NewHandler(logger)
	r.Post("/predict", predictHandler.HandlePredict)

	forumHandler := forumfeature.NewHandler(deps.MongoDatabase, appCfg.UploadLocalPath, appCfg.UploadLocalURL, logger)
	tissuesHandler := tissuesfeature.NewHandler(deps.MongoDatabase, logger)
	quizHandler := quizfeature.NewHandler(deps.MongoDatabase, logger)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/forum", forumfeature.Routes(forumHandler))
		api.Mount("/tissues", tissuesfeature.Routes(tissuesHandler))
		api.Get("/tissuelist", tissuesHandler.ServeNames)

		// The quiz endpoints predate the per-feature mounting convention
		// and keep their original flat paths.
		api.Get("/questions", quizHandler.ServeQuestionBank)
		api.Get("/quizzes", quizHandler.ServeQuizList)
		api.Get("/quizzes/{collectionName}", quizHandler.ServeQuizQuestions)
		api.Post("/create-quiz", quizHandler.HandleCreateQuiz)
	})

	return r, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
