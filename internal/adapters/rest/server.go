package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_ports "realestate-search-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

func NewServer(port string, handlers *SearchHandlers, baseLogger core_ports.LoggerPort, allowedOrigins []string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(handlers, baseLogger, allowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты и middleware
func NewRouter(handlers *SearchHandlers, baseLogger core_ports.LoggerPort, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader, "X-Search-Complete", "X-Search-Stop-Reason"},
		MaxAge:         300,
	}))

	r.Get("/", handlers.HandleDefaultSearch)
	r.Get("/healthz", handlers.HandleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", handlers.HandleSearch)
		r.Post("/search/batch", handlers.HandleBatchSearch)
		r.Post("/listings/{listingID}/contact-agent", handlers.HandleContactAgent)
	})

	return r
}

// Start запускает HTTP-сервер
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
