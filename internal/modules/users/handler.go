// Package users carries the current-user profile endpoints. Both are
// intentionally unimplemented stubs pending product definition.
package users

import (
	"github.com/axis-labs/axis-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/me")
	g.GET("", h.profile)
	g.GET("/history", h.history)
}

// GET /me
func (h *Handler) profile(c *gin.Context) {
	response.OK(c, gin.H{"message": "profile placeholder"})
}

// GET /me/history
func (h *Handler) history(c *gin.Context) {
	response.OK(c, gin.H{"sessions": []any{}})
}
