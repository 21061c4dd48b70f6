// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"net/http"

	"phonenumber_service/platform/config"
	"phonenumber_service/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Metrics serves the Prometheus scrape endpoint; nil disables /metrics.
	Metrics http.Handler
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
