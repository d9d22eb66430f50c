package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[userID.String()+"/"+key], nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.UserID.String()+"/"+ikey.Key] = ikey
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.keys {
		if v.ExpiresAt.Before(cutoff) {
			delete(r.keys, k)
			n++
		}
	}
	return n, nil
}

func idempotentRouter(repo *memIdempotencyRepo, userID uuid.UUID, status int, calls *int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.Use(Idempotency(IdempotencyConfig{Repo: repo, Logger: logrus.New()}))
	r.POST("/sales", func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func post(r http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSameRequest(t *testing.T) {
	repo := newMemIdempotencyRepo()
	calls := 0
	r := idempotentRouter(repo, uuid.New(), http.StatusCreated, &calls)

	first := post(r, "checkout-1", `{"items":[1]}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := post(r, "checkout-1", `{"items":[1]}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// no key, no replay
	post(r, "", `{"items":[1]}`)
	assert.Equal(t, 2, calls)
}

func TestIdempotency_KeyReusedForDifferentBody(t *testing.T) {
	repo := newMemIdempotencyRepo()
	calls := 0
	r := idempotentRouter(repo, uuid.New(), http.StatusCreated, &calls)

	post(r, "checkout-2", `{"items":[1]}`)
	w := post(r, "checkout-2", `{"items":[2]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	repo := newMemIdempotencyRepo()
	calls := 0
	r := idempotentRouter(repo, uuid.New(), http.StatusConflict, &calls)

	post(r, "checkout-3", `{}`)
	w := post(r, "checkout-3", `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ExpiredKeyRunsAgain(t *testing.T) {
	repo := newMemIdempotencyRepo()
	userID := uuid.New()
	repo.keys[userID.String()+"/checkout-4"] = &entity.IdempotencyKey{
		Key:          "checkout-4",
		UserID:       userID,
		Endpoint:     "POST /sales",
		RequestHash:  requestHash("/sales", []byte(`{}`)),
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"call":0}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	calls := 0
	r := idempotentRouter(repo, userID, http.StatusCreated, &calls)

	w := post(r, "checkout-4", `{}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)

	stored, _ := repo.GetByKey(context.Background(), "checkout-4", userID)
	require.NotNil(t, stored)
	assert.False(t, stored.IsExpired())
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	calls := 0
	r := idempotentRouter(newMemIdempotencyRepo(), uuid.New(), http.StatusCreated, &calls)
	w := post(r, strings.Repeat("k", 256), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, calls)
}

func TestClientRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewClientRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("10.0.0.1"))
	assert.Equal(t, http.StatusOK, get("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.1"))
	assert.Equal(t, http.StatusOK, get("10.0.0.2"))
	assert.Equal(t, 2, rl.Tracked())
}

func TestAuthMiddleware_SetsActor(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", "clockshop", time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "Wanjiru", "wanjiru@example.com", []string{"cashier"})
	require.NoError(t, err)

	var actor service.Actor
	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/me", func(c *gin.Context) {
		actor = service.ActorFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(path, auth string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, call("/me", ""))
	assert.Equal(t, http.StatusUnauthorized, call("/me", "Bearer not-a-token"))
	assert.Equal(t, http.StatusOK, call("/me", "Bearer "+token))
	require.NotNil(t, actor.ID)
	assert.Equal(t, userID, *actor.ID)
	assert.Equal(t, "Wanjiru", actor.Name)

	assert.Equal(t, http.StatusForbidden, call("/admin", "Bearer "+token))
}
