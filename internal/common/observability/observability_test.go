package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"truecheck/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestObservability_RecordsIntoRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("truecheck-test", reg, logger.NewTestLogger(t))
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordVerification(ctx, "extended", "success")
	obs.RecordDuration(ctx, 120*time.Millisecond, "extended")

	w := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `verifications_processed_total{`)
	assert.Contains(t, body, `outcome="success"`)
	assert.Contains(t, body, `verifications_duration_milliseconds_bucket{`)
	assert.Contains(t, body, `shape="extended"`)
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordVerification(context.Background(), "simple", "error")
		obs.RecordDuration(context.Background(), time.Second, "simple")
		obs.Shutdown()
	})
}

func TestInitTracing_None(t *testing.T) {
	shutdown, err := InitTracing("none", "truecheck", nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Unknown(t *testing.T) {
	_, err := InitTracing("zipkin", "truecheck", nil)
	assert.Error(t, err)
}

func TestInitTracing_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	var buf bytes.Buffer
	shutdown, err := InitTracing("stdout", "truecheck", &buf)
	require.NoError(t, err)

	_, span := Tracer("test").Start(context.Background(), "verify")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name": "verify"`)
}
