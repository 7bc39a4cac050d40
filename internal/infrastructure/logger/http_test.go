package logger

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
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func performRequest(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestNew_DefaultsToInfo(t *testing.T) {
	log, err := New(&Config{Format: "json", Output: "stdout"})
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestRequestLogger_TagsRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := newObservedLogger()

	engine := gin.New()
	engine.Use(func(c *gin.Context) { c.Set("request_id", "req-123") })
	engine.Use(RequestLogger(log))
	engine.GET("/clients", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/clients?page=2", nil)
	req.Header.Set("X-Company-ID", "7b6a9c1e-4f2d-4f6a-9a53-0d8f3c2e1b4a")
	performRequest(engine, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "7b6a9c1e-4f2d-4f6a-9a53-0d8f3c2e1b4a", fields["company_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/clients", fields["path"])
	assert.Equal(t, "page=2", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestRequestLogger_ServerErrorLogsAtErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := newObservedLogger()

	engine := gin.New()
	engine.Use(RequestLogger(log))
	engine.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	performRequest(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestRecovery_Returns500AndLogsPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := newObservedLogger()

	engine := gin.New()
	engine.Use(func(c *gin.Context) { c.Set("request_id", "req-456") })
	engine.Use(Recovery(log))
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := performRequest(engine, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "req-456", entry.ContextMap()["request_id"])
}
