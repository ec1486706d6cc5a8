package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitech-app/user-service/internal/auth"
	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/pkg/health"
	"github.com/fitech-app/user-service/pkg/middleware"
)

// NewRouter creates a chi router with all service routes registered.
func NewRouter(
	userService *service.UserService,
	personService *service.PersonService,
	unitService *service.UnitOfMeasureService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("user"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Auth endpoints (public)
	authHandler := NewAuthHandler(userService)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", withJSONBody(authHandler.Register))
		r.Post("/login", withJSONBody(authHandler.Login))
		// Verification links arrive from email clients, so this is a GET.
		r.Get("/verify-email", authHandler.VerifyEmail)
	})

	// Token validator that bridges to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{Username: claims.Username}, nil
	}

	userHandler := NewUserHandler(userService)
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/", userHandler.List)
		r.Get("/username-exists", userHandler.UsernameExists)
		r.Get("/email-exists", userHandler.EmailExists)
		r.Get("/{id}", userHandler.GetByID)
		r.With(ContentTypeJSON).Put("/{id}", userHandler.Update)
	})

	personHandler := NewPersonHandler(personService)
	r.Route("/api/v1/persons", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/", personHandler.List)
		r.With(ContentTypeJSON).Post("/", personHandler.Create)
		r.Get("/{id}", personHandler.GetByID)
		r.With(ContentTypeJSON).Put("/{id}", personHandler.Update)
	})

	unitHandler := NewUnitOfMeasureHandler(unitService)
	r.Route("/api/v1/units-of-measure", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/", unitHandler.List)
		r.With(ContentTypeJSON).Post("/", unitHandler.Create)
		r.Get("/{id}", unitHandler.GetByID)
		r.With(ContentTypeJSON).Put("/{id}", unitHandler.Update)
		r.Delete("/{id}", unitHandler.Delete)
	})

	return r
}

// withJSONBody wraps a handler func with the JSON content-type check.
func withJSONBody(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ContentTypeJSON(h).ServeHTTP(w, r)
	}
}
