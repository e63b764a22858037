package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/api/notes/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/notes", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		c.JSON(http.StatusCreated, body)
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	router := newTestRouter(CORSMiddleware([]string{"http://localhost:3000"}))

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")
	})

	t.Run("unknown origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard", func(t *testing.T) {
		router := newTestRouter(CORSMiddleware([]string{"*"}))
		req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
		req.Header.Set("Origin", "http://anything.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestTracingMiddleware(t *testing.T) {
	router := newTestRouter(RequestTracingMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\r\ninjected")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid\r\ninjected", w.Header().Get(RequestIDHeader))
}

func TestEnhancedRecoveryMiddleware(t *testing.T) {
	router := newTestRouter(RequestTracingMiddleware(), EnhancedRecoveryMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["message"])
	assert.NotEmpty(t, body["request_id"])
}

func TestRequestSizeLimiter(t *testing.T) {
	router := newTestRouter(RequestSizeLimiter(16))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"a very long title indeed"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"ok"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCacheControlMiddleware(t *testing.T) {
	router := newTestRouter(CacheControlMiddleware("no-store"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	router := newTestRouter(RequestTracingMiddleware(), RequestLogger(logger))

	req := httptest.NewRequest(http.MethodGet, "/api/notes/abc?searchTerm=cats", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/notes/abc", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "searchTerm=cats", entry["query"])
	assert.Equal(t, "Chrome", entry["browser"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestMetricsMiddlewareAndHandler(t *testing.T) {
	router := newTestRouter(MetricsMiddleware())
	router.GET("/metrics", MetricsHandler())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/notes/123", nil))
	TrackNoteOperation("get")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/notes/:id",status="200"}`)
	assert.Contains(t, body, `notes_operations_total{operation="get"}`)
}

func TestClientRateLimiter(t *testing.T) {
	limiter := NewClientRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("5.6.7.8"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("1.2.3.4"), "one token refills per second")

	now = now.Add(time.Hour)
	limiter.Allow("9.9.9.9")
	assert.Equal(t, 2, limiter.Cleanup())
}

func TestClientRateLimiterConcurrentAllow(t *testing.T) {
	limiter := NewClientRateLimiter(1000, 50)

	var wg sync.WaitGroup
	var allowed atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if limiter.Allow("1.2.3.4") {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Positive(t, allowed.Load())
	assert.LessOrEqual(t, allowed.Load(), int64(8*200))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newTestRouter(RateLimitMiddleware(NewClientRateLimiter(0.001, 1)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	disabled := newTestRouter(RateLimitMiddleware(nil))
	for i := 0; i < 5; i++ {
		w = httptest.NewRecorder()
		disabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
