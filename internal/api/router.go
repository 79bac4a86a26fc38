package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/storefront-be/internal/api/handlers"
	"github.com/isdelr/storefront-be/internal/auth"
	"github.com/isdelr/storefront-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenService, authService services.AuthServiceProvider, productService services.ProductServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the mobile/dev frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	statusHandler := handlers.NewStatusHandler()
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", statusHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(tokens.RequireAuth).Get("/me", authHandler.GetMe)
		})

		r.Route("/products", func(r chi.Router) {
			// Public catalog reads
			r.Get("/", productHandler.GetAll)
			r.Get("/categories", productHandler.GetCategories)
			r.Get("/category/{category}", productHandler.GetByCategory)
			r.Get("/{id}", productHandler.Get)

			// Mutations require a valid bearer token
			r.Group(func(r chi.Router) {
				r.Use(tokens.RequireAuth)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
