package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolExecution(t *testing.T) {
	m := NewMetrics()

	m.RecordToolExecution("screens.generate", true, 50*time.Millisecond)
	m.RecordToolExecution("screens.generate", false, 10*time.Millisecond)

	success := testutil.ToFloat64(m.ToolExecutions.WithLabelValues("screens.generate", "success"))
	failure := testutil.ToFloat64(m.ToolExecutions.WithLabelValues("screens.generate", "error"))
	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failure)
}

func TestIndependentRegistries(t *testing.T) {
	// Two collectors in one process must not collide.
	first := NewMetrics()
	second := NewMetrics()

	first.RecordVisionCall("gemini-2.5-pro", true, time.Second)

	assert.Equal(t, float64(1), testutil.ToFloat64(first.VisionCalls.WithLabelValues("gemini-2.5-pro", "success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(second.VisionCalls.WithLabelValues("gemini-2.5-pro", "success")))
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	count := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200"))
	assert.Equal(t, float64(1), count)
}

func TestTimer(t *testing.T) {
	m := NewMetrics()

	timer := NewTimer(m, "dna.analyze")
	timer.Stop(true)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ToolExecutions.WithLabelValues("dna.analyze", "success")))
}

func TestSessionAndWSGauges(t *testing.T) {
	m := NewMetrics()

	m.SetActiveSessions(3)
	m.WSConnected()
	m.WSConnected()
	m.WSDisconnected()

	assert.Equal(t, float64(3), testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WSConnections))
}
