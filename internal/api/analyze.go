package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/middleware"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
)

// AnalyzeHandler answers recipe queries given as text, speech or a photo.
type AnalyzeHandler struct {
	recipes *service.RecipeService
	media   *service.MediaService
	log     *zap.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler instance
func NewAnalyzeHandler(recipes *service.RecipeService, media *service.MediaService, log *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{recipes: recipes, media: media, log: log}
}

// RegisterRoutes registers the analyze routes. Extra middleware, such as
// a rate limiter, runs before every analyze handler.
func (h *AnalyzeHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	analyze := router.Group("/analyze", extra...)
	{
		analyze.POST("/text", h.AnalyzeText)
		analyze.POST("/text/stream", h.AnalyzeTextStream)
		analyze.POST("/voice", h.AnalyzeVoice)
		analyze.POST("/image", h.AnalyzeImage)
	}
}

// AnalyzeText handles POST /analyze/text
func (h *AnalyzeHandler) AnalyzeText(c *gin.Context) {
	var req service.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.MalformedInput("invalid request body"))
		return
	}

	result, err := h.recipes.Analyze(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzeTextStream handles POST /analyze/text/stream. Generated text is
// sent as "chunk" events, followed by one "result" or "error" event.
func (h *AnalyzeHandler) AnalyzeTextStream(c *gin.Context) {
	var req service.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.MalformedInput("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		_ = c.Error(apperr.MalformedInput("query must not be empty"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	result, err := h.recipes.AnalyzeStream(c.Request.Context(), req, func(chunk string) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		h.log.Warn("streamed analysis failed", zap.Error(err))
		c.SSEvent("error", middleware.NewErrorResponse(err))
		c.Writer.Flush()
		return
	}
	c.SSEvent("result", result)
	c.Writer.Flush()
}

// AnalyzeVoice handles POST /analyze/voice with a multipart "file" recording.
func (h *AnalyzeHandler) AnalyzeVoice(c *gin.Context) {
	filename, _, audio, err := readUpload(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.media.AnalyzeVoice(c.Request.Context(), filename, audio)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzeImage handles POST /analyze/image with a multipart "file" photo.
func (h *AnalyzeHandler) AnalyzeImage(c *gin.Context) {
	_, contentType, image, err := readUpload(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.media.AnalyzeImage(c.Request.Context(), contentType, image)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readUpload returns the name, content type and bytes of the "file" form field.
func readUpload(c *gin.Context) (string, string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", "", nil, apperr.MalformedInput("file is too large")
		}
		return "", "", nil, apperr.MalformedInput("file is required")
	}
	f, err := header.Open()
	if err != nil {
		return "", "", nil, apperr.MalformedInput("file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", nil, apperr.MalformedInput("file could not be read")
	}
	return header.Filename, header.Header.Get("Content-Type"), data, nil
}
