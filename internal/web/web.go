// Package web serves the rendered-page surface. Pages authenticate with
// the session cookie; the JSON API under /api is handled separately.
package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/validation"
)

// Handler serves the rendered pages.
type Handler struct {
	auth       *service.AuthService
	foods      *service.FoodService
	sessionTTL time.Duration
}

// NewHandler creates a new web Handler.
func NewHandler(auth *service.AuthService, foods *service.FoodService, sessionTTL time.Duration) *Handler {
	return &Handler{auth: auth, foods: foods, sessionTTL: sessionTTL}
}

// RegisterRoutes registers the page routes. Protected pages go behind
// the session middleware.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)

	protected := router.Group("")
	protected.Use(middleware.SessionAuth(h.auth))
	{
		protected.GET("/logout", h.Logout)
		protected.GET("/dashboard", h.Dashboard)
		protected.GET("/add", h.ShowAddFood)
		protected.POST("/add", h.AddFood)
		protected.POST("/delete/:id", h.DeleteFood)
	}
}

// ShowRegister renders the empty registration form.
func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Errors": validation.Errors{}})
}

// Register handles a registration submission. Validation failure
// re-renders the form with field errors and commits nothing.
func (h *Handler) Register(c *gin.Context) {
	form := validation.RegisterForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	if errs := form.Validate(); !errs.OK() {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Errors":   errs,
			"Username": form.Username,
		})
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), form.Username, form.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"Errors":   validation.Errors{},
				"Error":    "Username already taken",
				"Username": form.Username,
			})
			return
		}
		log.Printf("register failed: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the empty login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Errors": validation.Errors{}})
}

// Login handles a login submission and establishes the session.
func (h *Handler) Login(c *gin.Context) {
	form := validation.LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	if errs := form.Validate(); !errs.OK() {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Errors":   errs,
			"Username": form.Username,
		})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Errors":   validation.Errors{},
			"Error":    "Invalid credentials",
			"Username": form.Username,
		})
		return
	}

	sessionID, err := h.auth.StartSession(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("failed to start session: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.SetCookie(middleware.SessionCookie, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the server-side session and the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.auth.EndSession(c.Request.Context(), sessionID); err != nil {
			log.Printf("failed to end session: %v", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard renders the current user's entries and totals.
func (h *Handler) Dashboard(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	entries, totals, err := h.foods.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to load dashboard: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username": c.GetString("username"),
		"Foods":    entries,
		"Total":    totals,
	})
}

// ShowAddFood renders the empty food form.
func (h *Handler) ShowAddFood(c *gin.Context) {
	c.HTML(http.StatusOK, "add_food.html", gin.H{
		"Errors": validation.Errors{},
		"Form":   validation.FoodForm{},
	})
}

// AddFood handles a food-entry submission for the current user.
func (h *Handler) AddFood(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	form, errs := validation.ParseFoodForm(map[string]string{
		"food_name":   c.PostForm("food_name"),
		"ingredients": c.PostForm("ingredients"),
		"calories":    c.PostForm("calories"),
		"protein":     c.PostForm("protein"),
		"carbs":       c.PostForm("carbs"),
		"fats":        c.PostForm("fats"),
	})
	if !errs.OK() {
		c.HTML(http.StatusOK, "add_food.html", gin.H{
			"Errors": errs,
			"Form":   form,
		})
		return
	}

	entry := models.FoodEntry{
		FoodName:    form.FoodName,
		Ingredients: form.Ingredients,
		Calories:    form.Calories,
		Protein:     form.Protein,
		Carbs:       form.Carbs,
		Fats:        form.Fats,
	}
	if _, err := h.foods.Create(c.Request.Context(), userID, &entry); err != nil {
		log.Printf("failed to create food entry: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteFood removes one of the current user's entries.
func (h *Handler) DeleteFood(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Not Found")
		return
	}

	switch err := h.foods.Delete(c.Request.Context(), userID, uint(entryID)); {
	case errors.Is(err, service.ErrFoodNotFound):
		c.String(http.StatusNotFound, "Not Found")
	case errors.Is(err, service.ErrNotOwner):
		c.String(http.StatusForbidden, "Unauthorized")
	case err != nil:
		log.Printf("failed to delete food entry: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
	default:
		c.Redirect(http.StatusFound, "/dashboard")
	}
}
