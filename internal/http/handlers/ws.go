package handlers

import (
	"net/http"

	"rewards_wheel/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades to a live wheel session. The wheel is checked before the
// upgrade so unknown ids get a plain 404.
func (h *Handler) WS(allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		wheelID := c.Query("wheel")
		if wheelID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wheel required"})
			return
		}

		ctx := c.Request.Context()
		if _, err := h.Wheels.Catalog(ctx, wheelID); err != nil {
			writeError(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.WithContext(ctx).Warn("ws upgrade failed", "error", err)
			return
		}

		if err := h.Hub.Serve(ctx, conn, wheelID); err != nil {
			logger.WithContext(ctx).Warn("live session failed", "wheel", wheelID, "error", err)
		}
	}
}
