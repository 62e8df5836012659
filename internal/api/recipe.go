package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/middleware"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
)

const maxSearchLimit = 20

// RecipeHandler serves the curated recipe store.
type RecipeHandler struct {
	recipes     *service.RecipeService
	adminSecret string
}

// NewRecipeHandler creates a new RecipeHandler instance. Mutations need an
// admin token signed with adminSecret.
func NewRecipeHandler(recipes *service.RecipeService, adminSecret string) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, adminSecret: adminSecret}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AdminAuth(h.adminSecret), h.CreateRecipe)
		recipes.DELETE("/:id", middleware.AdminAuth(h.adminSecret), h.DeleteRecipe)
	}
}

// SearchRecipes handles GET /recipes/search?query=&tags=a,b&limit=3
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			_ = c.Error(apperr.MalformedInput("limit must be a number between 1 and 20"))
			return
		}
		limit = n
	}

	var tags []string
	for _, t := range strings.Split(c.Query("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	recipes, err := h.recipes.Search(c.Request.Context(), c.Query("query"), tags, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		_ = c.Error(apperr.MalformedInput("invalid recipe: " + err.Error()))
		return
	}

	id, err := h.recipes.AddRecipe(c.Request.Context(), &recipe)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	deleted := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
