package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/config"
	"github.com/macrolog/backend/internal/api"
	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/router"
	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/web"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires the persistence layer, services, handlers and routes into a
// ready-to-start server.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Sessions live in Redis; if it is unreachable the server still
	// comes up with in-process sessions so local runs work without it.
	var sessions service.SessionStore
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Warning: Redis unavailable, using in-memory sessions: %v", err)
		sessions = service.NewMemorySessionStore(cfg.SessionTTL)
	} else {
		sessions = service.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, sessions)
	foodService := service.NewFoodService(db)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewFoodHandler(foodService),
		web.NewHandler(authService, foodService, cfg.SessionTTL),
		authService,
		"templates/*.html",
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}, nil
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
