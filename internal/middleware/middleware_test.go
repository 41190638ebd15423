package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yukikurage/workforce-api/internal/constants"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items/:id", handlers...)
	return r
}

func TestRequireID(t *testing.T) {
	var got uint64
	r := newRouter(RequireID(), func(c *gin.Context) {
		got, _ = GetID(c)
		c.Status(http.StatusOK)
	})

	tests := []struct {
		path   string
		status int
		id     uint64
	}{
		{"/items/42", http.StatusOK, 42},
		{"/items/abc", http.StatusBadRequest, 0},
		{"/items/0", http.StatusBadRequest, 0},
		{"/items/-1", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		got = 0
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
		assert.Equal(t, tt.id, got, tt.path)
	}
}

func TestGetIDMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetID(c)
	assert.False(t, ok)
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	var seen string
	r := newRouter(RequestID(), func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(constants.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newRouter(RequestID(), AccessLog(zap.New(core)), func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set(constants.HeaderRequestID, "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "/items/:id", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}
