package handlers

import (
	"Crowdfunding/internal/metrics"
	"Crowdfunding/internal/middleware"
	"Crowdfunding/internal/repo"
	"Crowdfunding/internal/service"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров; limiter может быть nil
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	sqlDB *sql.DB,
	logger *zap.SugaredLogger,
	limiter *middleware.RateLimiter,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(metrics.InstrumentHandler)
	// nil: без ограничения частоты
	if limiter != nil {
		r.Use(limiter.Handler)
	}

	// Handlers
	userHandler := NewUserHandler(userService, logger)
	itemHandler := NewItemHandler(itemService, logger)

	// User routes
	r.Get("/user/list", userHandler.List)
	r.Post("/user/{name}", userHandler.Create)
	r.Get("/user/{name}", userHandler.Get)
	r.Put("/user/{name}", userHandler.Update)
	r.Delete("/user/{name}", userHandler.Delete)

	// Item routes
	r.Get("/item/list", itemHandler.List)
	r.Post("/item/{name}", itemHandler.Create)
	r.Get("/item/{name}", itemHandler.Get)
	r.Put("/item/{name}", itemHandler.Update)
	r.Delete("/item/{name}", itemHandler.Delete)
	r.Put("/item/{name}/donate", itemHandler.Donate)

	// Service routes
	r.Get("/health", healthHandler(sqlDB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return &Handler{Router: r}
}

func healthHandler(sqlDB *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := repo.Health(r.Context(), sqlDB)
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(stats)
	}
}
