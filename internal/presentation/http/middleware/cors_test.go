package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCORSSettings(t *testing.T) {
	defaults := corsSettings(&config.CORSConfig{})
	assert.Equal(t, devOrigins, defaults.AllowOrigins)
	assert.Contains(t, defaults.AllowHeaders, IdempotencyKeyHeader)
	assert.True(t, defaults.AllowCredentials)

	custom := corsSettings(&config.CORSConfig{
		AllowedOrigins: []string{"https://till.example.com"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	assert.Equal(t, []string{"https://till.example.com"}, custom.AllowOrigins)
	assert.Equal(t, []string{"Authorization", "Content-Type", IdempotencyKeyHeader}, custom.AllowHeaders)

	wildcard := corsSettings(&config.CORSConfig{AllowedOrigins: []string{"*"}})
	assert.True(t, wildcard.AllowAllOrigins)
	assert.Empty(t, wildcard.AllowOrigins)
	assert.False(t, wildcard.AllowCredentials)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://till.example.com"}}))
	router.POST("/sales", func(c *gin.Context) { c.Status(http.StatusCreated) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://till.example.com")
	assert.Equal(t, "https://till.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)

	w = preflight("https://elsewhere.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
