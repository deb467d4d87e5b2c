package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vibecoding/vibe-backend/internal/api/docs"
	generationapi "github.com/vibecoding/vibe-backend/internal/api/generation"
	"github.com/vibecoding/vibe-backend/internal/api/middleware"
	"github.com/vibecoding/vibe-backend/internal/entity"
	"github.com/vibecoding/vibe-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	serviceName = "vibe-coding-backend"
	apiPrefix   = "/api/v1/ai"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(generationHandler *generationapi.Handler, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)         // Recover from panics
	r.Use(chimiddleware.RequestID)         // Add request ID
	r.Use(middleware.Logger(logger))       // Log requests
	r.Use(middleware.CORS(allowedOrigins)) // Handle CORS

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{
			"message": "Vibe-Coding Backend API",
			"docs":    "/docs",
			"health":  apiPrefix + "/health",
		})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, entity.HealthResponse{Status: "healthy", Service: serviceName})
		})

		generationapi.RegisterRoutes(r, generationHandler)
	})

	return r
}
