package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mrops-br/store-api/internal/infrastructure/config"
	"github.com/mrops-br/store-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/store-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/store-api/internal/infrastructure/http/response"
	"github.com/mrops-br/store-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	products  *handler.ProductHandler
	carts     *handler.CartHandler
	favorites *handler.FavoriteHandler
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	srv       *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	products *handler.ProductHandler,
	carts *handler.CartHandler,
	favorites *handler.FavoriteHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		products:  products,
		carts:     carts,
		favorites: favorites,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	// Structured JSON logging middleware (replaces chimiddleware.Logger)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)

	// Permissive CORS so any frontend can talk to the API
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	// Add HTTP route to context so all logs include it automatically
	s.router.Use(middleware.HTTPRouteContext())

	// OpenTelemetry request metrics
	meter := s.telemetry.MeterProvider.Meter("store-api")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.RequestDurationMiddleware(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)

	s.router.Route("/products", func(r chi.Router) {
		r.Post("/", s.products.CreateProduct)
		r.Get("/", s.products.ListProducts)
		r.Get("/{id}", s.products.GetProduct)
		r.Put("/{id}", s.products.UpdateProduct)
		r.Delete("/{id}", s.products.DeleteProduct)
	})

	s.router.Route("/carts", func(r chi.Router) {
		r.Post("/", s.carts.CreateCart)
		r.Get("/", s.carts.ListCarts)
		r.Get("/{id}", s.carts.GetCart)
		r.Delete("/{id}", s.carts.DeleteCart)
		r.Post("/{id}/items", s.carts.AddItem)
		r.Delete("/{id}/items/{productID}", s.carts.RemoveItem)
	})

	s.router.Route("/favorites", func(r chi.Router) {
		r.Get("/", s.favorites.ListFavorites)
		r.Post("/{productID}", s.favorites.AddFavorite)
		r.Delete("/{productID}", s.favorites.RemoveFavorite)
	})

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleIndex serves the API index at the root path
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Store API",
		"version": "0.1.0",
		"endpoints": map[string]string{
			"products":  "/products",
			"carts":     "/carts",
			"favorites": "/favorites",
			"health":    "/health",
			"metrics":   "/metrics",
		},
	})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	s.logger.Info("Starting HTTP server",
		slog.String("address", addr),
	)

	// Wrap the entire router with otelhttp for automatic HTTP metrics and tracing
	h := otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		// Add route pattern to metrics attributes
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					routePattern = pattern
				}
			}
			return []attribute.KeyValue{
				attribute.String("http.route", routePattern),
			}
		}),
	)

	s.srv = &http.Server{Addr: addr, Handler: h}

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
