package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// setupTestAPI wires the JSON API against a throwaway sqlite database,
// mirroring the production router minus the page surface.
func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Named shared-cache DSN so every pooled connection sees the same
	// in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FoodEntry{}))

	authService := service.NewAuthService(db, "test-secret", service.NewMemorySessionStore(time.Hour))
	foodService := service.NewFoodService(db)

	router := gin.New()
	apiGroup := router.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(apiGroup)

	protected := apiGroup.Group("")
	protected.Use(middleware.TokenAuth(authService))
	NewFoodHandler(foodService).RegisterRoutes(protected)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns its API token.
func registerAndLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": password}
	w := doJSON(t, router, "POST", "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func addFood(t *testing.T, router *gin.Engine, token string, food map[string]any) {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/foods", token, food)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func listFoods(t *testing.T, router *gin.Engine, token string) []models.FoodEntry {
	t.Helper()
	w := doJSON(t, router, "GET", "/api/foods", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var foods []models.FoodEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &foods))
	return foods
}

func deletePath(id uint) string {
	return fmt.Sprintf("/api/foods/%d", id)
}
