package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"html2md/internal/config"
	"html2md/internal/converter"
	"html2md/internal/fetch"
	"html2md/internal/gating"
	"html2md/internal/handler"
	"html2md/internal/middleware"
	"html2md/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"fetch_timeout", cfg.FetchTimeout.String(),
	)

	// Load the content gate policy (embedded)
	policy, err := gating.LoadPolicy()
	if err != nil {
		log.Fatalf("Failed to load gate policy: %v", err)
	}

	// Wire collaborators: outbound fetcher and the markdown converter
	fetcher := fetch.NewClient(cfg.FetchTimeout)
	htmlConverter := converter.NewHTMLConverter()

	conversionService := service.NewConversionService(fetcher, htmlConverter, policy, logger)
	htmlHandler := handler.NewHTMLHandler(conversionService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", htmlHandler.HealthCheck)
	mux.HandleFunc("GET /html", htmlHandler.Convert)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLog → Routes
	root = middleware.RequestLog(logger)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
