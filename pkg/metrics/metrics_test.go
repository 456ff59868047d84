package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(ItineraryRequests.WithLabelValues("success"))
	ItineraryRequests.WithLabelValues("success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ItineraryRequests.WithLabelValues("success")))

	BackendOnline.Set(1)
	assert.Equal(t, float64(1), testutil.ToFloat64(BackendOnline))
	BackendOnline.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(BackendOnline))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RenderingDefects.Inc()
	HealthProbes.WithLabelValues("online").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.True(t, strings.Contains(out, "itinctl_render_defects_total"), "missing rendering counter")
	assert.True(t, strings.Contains(out, `itinctl_health_probes_total{status="online"}`), "missing probe counter")
}
