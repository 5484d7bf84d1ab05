package app

import (
	"net/http"

	"github.com/axis-labs/axis-backend/internal/modules/admin"
	"github.com/axis-labs/axis-backend/internal/modules/auth"
	"github.com/axis-labs/axis-backend/internal/modules/sessions"
	"github.com/axis-labs/axis-backend/internal/modules/tasks"
	"github.com/axis-labs/axis-backend/internal/modules/users"
	"github.com/axis-labs/axis-backend/internal/pkg/privy"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(verifier *privy.Client) {
	a.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.engine.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	root := a.engine.Group("")

	sessionSvc := sessions.NewService(sessions.NewStore(a.db), verifier)
	sessions.NewHandler(sessionSvc, a.log, a.metrics, !a.cfg.IsDev()).RegisterRoutes(root)

	tasks.NewHandler(tasks.NewStore(a.db), a.log).RegisterRoutes(root)
	admin.NewHandler(admin.NewStore(a.db), a.log).RegisterRoutes(root)
	auth.NewHandler().RegisterRoutes(root)
	users.NewHandler().RegisterRoutes(root)
}
