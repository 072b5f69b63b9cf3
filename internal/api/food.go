package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// FoodHandler serves the food-entry CRUD endpoints. Every route here
// runs behind TokenAuth; the requester identity comes from the context.
type FoodHandler struct {
	foods *service.FoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foods *service.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

// RegisterRoutes registers the protected food endpoints.
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foods", h.List)
	router.POST("/foods", h.Create)
	router.DELETE("/foods/:id", h.Delete)
	router.GET("/dashboard", h.Dashboard)
}

type foodRequest struct {
	FoodName    string  `json:"food_name" binding:"required"`
	Ingredients string  `json:"ingredients" binding:"required"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

// List returns the requester's entries.
func (h *FoodHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entries, _, err := h.foods.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}

	if entries == nil {
		entries = []models.FoodEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Dashboard returns the requester's entries together with the four
// aggregate sums, computed fresh for this request.
func (h *FoodHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entries, totals, err := h.foods.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}

	if entries == nil {
		entries = []models.FoodEntry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"foods":  entries,
		"totals": totals,
	})
}

// Create logs a new entry for the requester. Omitted numeric fields
// default to zero.
func (h *FoodHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "food_name and ingredients are required"})
		return
	}

	entry := models.FoodEntry{
		FoodName:    req.FoodName,
		Ingredients: req.Ingredients,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fats:        req.Fats,
	}
	if _, err := h.foods.Create(c.Request.Context(), userID, &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create food entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Food added"})
}

// Delete removes one of the requester's entries.
func (h *FoodHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
		return
	}

	switch err := h.foods.Delete(c.Request.Context(), userID, uint(entryID)); {
	case errors.Is(err, service.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete food entry"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
	}
}
