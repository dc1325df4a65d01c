package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedEngine(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Tracing(TracingConfig{ServiceName: "test-service", Enabled: true}))
	engine.Use(SpanEnricher())
	engine.Use(SpanErrorMarker())
	engine.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.Status(http.StatusUnprocessableEntity)
	})
	return engine, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestSpanEnricher(t *testing.T) {
	t.Run("attaches request and client IDs", func(t *testing.T) {
		engine, recorder := newTracedEngine(t)
		clientID := "a2f5cc9e-4f5c-4b88-a2e3-91d40f1a2b3c"

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Client-ID", clientID)
		engine.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		requestID, ok := spanAttr(spans[0], "request_id")
		require.True(t, ok)
		assert.NotEmpty(t, requestID.AsString())

		gotClient, ok := spanAttr(spans[0], "client_id")
		require.True(t, ok)
		assert.Equal(t, clientID, gotClient.AsString())
	})

	t.Run("ignores a malformed client ID", func(t *testing.T) {
		engine, recorder := newTracedEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Client-ID", "not-a-uuid")
		engine.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		_, ok := spanAttr(spans[0], "client_id")
		assert.False(t, ok)
	})
}

func TestSpanErrorMarker(t *testing.T) {
	t.Run("4xx responses mark the span", func(t *testing.T) {
		engine, recorder := newTracedEngine(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)

		status, ok := spanAttr(spans[0], "http.status_code")
		require.True(t, ok)
		assert.Equal(t, int64(http.StatusUnprocessableEntity), status.AsInt64())
	})

	t.Run("2xx responses leave the span status unset", func(t *testing.T) {
		engine, recorder := newTracedEngine(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
	})
}

func TestTracingDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Tracing(TracingConfig{Enabled: false}))
	engine.Use(SpanEnricher())
	engine.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
