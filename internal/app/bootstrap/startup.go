// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/yvelmence/tissuefinder/internal/app/system/classifier"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// The classifier model is loaded here. A load failure is logged but does
// not abort startup: the quiz, forum, and catalog features work without
// the model, and /predict reports "Model not loaded" until the service
// comes back and the app restarts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.ModelURL == "" {
		logger.Warn("model_url not configured, classifier disabled")
		return nil
	}

	var fallback []string
	if appCfg.ModelClasses != "" {
		for _, c := range strings.Split(appCfg.ModelClasses, ",") {
			if c = strings.TrimSpace(c); c != "" {
				fallback = append(fallback, c)
			}
		}
	}

	model, err := classifier.Load(ctx, appCfg.ModelURL, fallback, logger)
	if err != nil {
		logger.Error("classifier load failed, /predict will report model not loaded",
			zap.Error(err), zap.String("model_url", appCfg.ModelURL))
		return nil
	}
	classifier.SetDefault(model)
	return nil
}
