package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/politely-failed/internal/http/middleware"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status         string `json:"status" example:"ok"`
	Version        string `json:"version" example:"1.0.0"`
	MessagesLoaded int    `json:"messagesLoaded" example:"63"`
	// Set only when Status is "error".
	Message string `json:"message,omitempty" example:"Failed to load messages: open data/messages.json: no such file or directory"`
}

// Health godoc
// @ID          health
// @Summary     Liveness and catalog status
// @Description Reports the catalog version and the number of loaded messages.
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Failure     500  {object}  handlers.HealthResponse "Catalog unavailable"
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ctx := c.Request.Context()

	version, err := h.svc.Version(ctx)
	if err == nil {
		var n int
		n, err = h.svc.MessageCount(ctx)
		if err == nil {
			ok(c, http.StatusOK, HealthResponse{Status: "ok", Version: version, MessagesLoaded: n})
			return
		}
	}

	lg := middleware.LoggerFrom(c)
	lg.Error().Err(err).Msg("health check failed")
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": errorMessage(err)})
}
