package app

import (
	"time"

	"github.com/axis-labs/axis-backend/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware allows every origin in development. In production only the
// configured origins may call the API. Credentials stay enabled in both modes
// because the session rides on a cookie.
func corsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-idempotence"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.IsDev() {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}
