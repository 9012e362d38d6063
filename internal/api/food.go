package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-robot/backend/internal/service"
)

// FoodHandler serves ingredient lookups
type FoodHandler struct {
	foods service.IFoodService
	log   *zap.Logger
}

// NewFoodHandler creates a new FoodHandler instance
func NewFoodHandler(foods service.IFoodService, log *zap.Logger) *FoodHandler {
	return &FoodHandler{foods: foods, log: log.Named("foods")}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foods", h.Search)
}

// Search handles GET /foods?q=
func (h *FoodHandler) Search(c *gin.Context) {
	q, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: missingField("query", "q")})
		return
	}

	foods, err := h.foods.Search(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.log, "Failed to search foods", err)
		return
	}

	c.JSON(http.StatusOK, foods)
}
