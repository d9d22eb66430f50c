package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/config"
)

var (
	devOrigins     = []string{"http://localhost:3000", "http://localhost:3001", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}
)

// CORSMiddleware lets browser tills call the API. Till retries depend on the
// Idempotency-Key header, so it is always allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsSettings(cfg))
}

func corsSettings(cfg *config.CORSConfig) cors.Config {
	settings := cors.Config{
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     withHeader(orDefault(cfg.AllowedHeaders, defaultHeaders), IdempotencyKeyHeader),
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := orDefault(cfg.AllowedOrigins, devOrigins)
	if slices.Contains(origins, "*") {
		// browsers refuse credentials on a wildcard origin
		settings.AllowAllOrigins = true
		settings.AllowCredentials = false
		return settings
	}
	settings.AllowOrigins = origins
	return settings
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}

func withHeader(headers []string, header string) []string {
	if slices.Contains(headers, header) {
		return headers
	}
	return append(headers, header)
}
