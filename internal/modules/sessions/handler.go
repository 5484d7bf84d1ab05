package sessions

import (
	"errors"
	"net/http"

	"github.com/axis-labs/axis-backend/internal/pkg/metrics"
	"github.com/axis-labs/axis-backend/internal/pkg/privy"
	"github.com/axis-labs/axis-backend/internal/pkg/response"
	sessionpkg "github.com/axis-labs/axis-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc          *Service
	logger       *zap.Logger
	collector    *metrics.Collector
	secureCookie bool
}

// NewHandler builds the sessions handler. secureCookie should be false only
// in development.
func NewHandler(svc *Service, logger *zap.Logger, collector *metrics.Collector, secureCookie bool) *Handler {
	return &Handler{svc: svc, logger: logger, collector: collector, secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/sessions")

	g.POST("/privy", h.exchangePrivyToken)

	// Intentionally unimplemented stubs: they accept and acknowledge only,
	// pending product definition of real start/telemetry/scoring semantics.
	g.POST("", h.startSession)
	g.POST("/:session_id/telemetry", h.uploadTelemetry)
	g.POST("/:session_id/complete", h.completeSession)
}

// POST /sessions/privy
func (h *Handler) exchangePrivyToken(c *gin.Context) {
	var dto exchangeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims, sess, err := h.svc.Exchange(c.Request.Context(), dto.Token)
	if err != nil {
		h.renderExchangeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionpkg.CookieName, sess.ID, int(h.svc.TTL().Seconds()), "/", "", h.secureCookie, true)

	h.collector.RecordExchange("ok")
	response.OK(c, exchangeResponse{
		AppID:     claims.AppID,
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
	})
}

// renderExchangeError translates the exchange error taxonomy exactly once.
// Causes go to the log, never verbatim to the caller.
func (h *Handler) renderExchangeError(c *gin.Context, err error) {
	var incomplete *ClaimsIncompleteError
	var verification *VerificationError

	switch {
	case errors.Is(err, privy.ErrInvalidToken):
		h.logger.Warn("privy token rejected", zap.Error(err))
		h.collector.RecordExchange("unauthorized")
		response.Unauthorized(c, "Invalid Privy access token")
	case errors.As(err, &incomplete):
		h.logger.Error("privy claims incomplete", zap.Strings("missing", incomplete.Missing))
		h.collector.RecordExchange("error")
		response.InternalError(c, incomplete.Error())
	case errors.As(err, &verification):
		h.logger.Error("privy verification failed", zap.Error(verification.Cause))
		h.collector.RecordExchange("error")
		response.InternalError(c, "Failed to verify Privy access token")
	default:
		h.logger.Error("session exchange persistence failed", zap.Error(err))
		h.collector.RecordExchange("error")
		response.InternalError(c, "Failed to persist session")
	}
}

// POST /sessions
func (h *Handler) startSession(c *gin.Context) {
	response.OK(c, gin.H{"session_id": "placeholder"})
}

// POST /sessions/:session_id/telemetry
func (h *Handler) uploadTelemetry(c *gin.Context) {
	response.OK(c, gin.H{"session_id": c.Param("session_id"), "status": "accepted"})
}

// POST /sessions/:session_id/complete
func (h *Handler) completeSession(c *gin.Context) {
	response.OK(c, gin.H{"session_id": c.Param("session_id"), "status": "completed"})
}
