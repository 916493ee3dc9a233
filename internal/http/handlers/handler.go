package handlers

import (
	"errors"
	"net/http"

	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/wheel"
	"rewards_wheel/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Wheels *service.WheelService
	Hub    *ws.Hub
}

func NewHandler(wheels *service.WheelService, hub *ws.Hub) *Handler {
	return &Handler{
		Wheels: wheels,
		Hub:    hub,
	}
}

// writeError maps service errors to status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCatalogNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wheel.ErrConfiguration),
		errors.Is(err, wheel.ErrInvalidDraw),
		errors.Is(err, service.ErrInvalidSeed):
		status = http.StatusBadRequest
	case errors.Is(err, wheel.ErrAlreadySpinning):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
