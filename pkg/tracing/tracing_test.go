package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.ExporterType = "zipkin"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SamplingRate = 1.5
	assert.Error(t, cfg.Validate())
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ServiceName = ""
	_, err := Setup(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupNoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ExporterType = ExporterNoop
	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	ctx, span := StartSpan(context.Background(), "fd.book")
	assert.NotEmpty(t, TraceID(ctx))
	End(span, assert.AnError)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fd.book", spans[0].Name())
	assert.Len(t, spans[0].Events(), 1)

	assert.Empty(t, TraceID(context.Background()))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceID string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/fd-list", func(c *gin.Context) {
		traceID = TraceID(c.Request.Context())
		c.Status(http.StatusBadGateway)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fd-list", nil))

	assert.NotEmpty(t, traceID)
	assert.NotEmpty(t, w.Header().Get("traceparent"))
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /fd-list", spans[0].Name())
}
