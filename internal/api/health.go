package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health. The recipe store being down only
// degrades the service since queries fall back to generation.
type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, store := "ok", "ok"
	if err := h.store.Ping(ctx); err != nil {
		status, store = "degraded", "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"store":     store,
		"timestamp": time.Now().UTC(),
	})
}
