package rest

import (
	"net/http"

	"inventory-backend/application/services"
	"inventory-backend/interfaces/http/rest/handlers"
	"inventory-backend/interfaces/http/rest/middleware"
	"inventory-backend/pkg/common"
	"inventory-backend/pkg/observability"
	"inventory-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	service *services.InventoryService
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewRouter creates a new router instance. metrics may be nil, in which case
// /metrics is not mounted.
func NewRouter(
	service *services.InventoryService,
	logger *zap.Logger,
	metrics *observability.Collector,
) *Router {
	return &Router{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()
	inventoryHandler := handlers.NewInventoryHandler(rt.service, rt.logger)

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger, rt.metrics))
	router.Use(middleware.Recoverer(rt.logger))

	// Any origin may call the API
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Must be set before mounting so sub-routers inherit them
	router.NotFound(inventoryHandler.NotFound)
	router.MethodNotAllowed(inventoryHandler.MethodNotAllowed)

	router.Get("/health", rt.healthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/inventory", func(r chi.Router) {
		r.Get("/", inventoryHandler.Get)
		r.Post("/", inventoryHandler.Create)
		r.Get("/{id}", inventoryHandler.Get)
		r.Put("/{id}", inventoryHandler.Update)
		r.Delete("/{id}", inventoryHandler.Delete)
	})

	return router
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	resp := healthResponse{Status: "healthy", Timestamp: utils.NowRFC3339()}
	if err := common.RespondJSON(w, http.StatusOK, resp); err != nil {
		rt.logger.Error("Failed to encode response", zap.Error(err))
	}
}
