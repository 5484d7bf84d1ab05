// Package auth carries the Privy login initiation endpoints. They are
// intentionally unimplemented stubs: the real login flow happens client-side
// against Privy, and the backend exchange lives in the sessions module.
package auth

import (
	"github.com/axis-labs/axis-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", h.login)
	g.POST("/verify", h.verify)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	response.OK(c, gin.H{"status": "pending"})
}

// POST /auth/verify
func (h *Handler) verify(c *gin.Context) {
	response.OK(c, gin.H{"status": "pending"})
}
