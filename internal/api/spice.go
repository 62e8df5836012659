package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
)

// SpiceHandler lists the spices of the store.
type SpiceHandler struct {
	spices *service.SpiceService
}

func NewSpiceHandler(spices *service.SpiceService) *SpiceHandler {
	return &SpiceHandler{spices: spices}
}

func (h *SpiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	spices := router.Group("/spices")
	{
		spices.GET("", h.ListSpices)
		spices.GET("/:id", h.GetSpice)
	}
}

func (h *SpiceHandler) ListSpices(c *gin.Context) {
	spices, err := h.spices.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spices": spices})
}

func (h *SpiceHandler) GetSpice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(apperr.MalformedInput("invalid spice id"))
		return
	}

	spice, err := h.spices.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, spice)
}
