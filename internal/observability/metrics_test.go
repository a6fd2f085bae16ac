package observability

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// read returns the current value of a single counter or gauge.
func read(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	var m dto.Metric
	require.NoError(t, (<-ch).Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics("test")

	m.RecordRequest("/api/v1/recalculate", "POST", "200", 0.01)
	m.RecordRequest("/api/v1/recalculate", "POST", "200", 0.02)
	m.RecordRecalculation()
	m.RecordSweep("delay", 61, false)
	m.RecordSweep("bunker", 7, true)
	m.RecordSweep("bunker", 3, true)
	m.RecordRecommendation("HEDGE")
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.SetDatasetSize(10, 3, 500)
	m.SetCacheEntries(4)

	assert.Equal(t, 2.0, read(t, m.HTTPRequests.WithLabelValues("/api/v1/recalculate", "POST", "200")))
	assert.Equal(t, 1.0, read(t, m.Recalculations))
	assert.Equal(t, 61.0, read(t, m.SweepSteps.WithLabelValues("delay")))
	assert.Equal(t, 10.0, read(t, m.SweepSteps.WithLabelValues("bunker")))
	assert.Equal(t, 2.0, read(t, m.ThresholdsFound.WithLabelValues("bunker", "true")))
	assert.Equal(t, 1.0, read(t, m.ThresholdsFound.WithLabelValues("delay", "false")))
	assert.Equal(t, 1.0, read(t, m.Recommendations.WithLabelValues("HEDGE")))
	assert.Equal(t, 1.0, read(t, m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 500.0, read(t, m.DatasetRecords.WithLabelValues("scenarios")))
	assert.Equal(t, 4.0, read(t, m.CacheEntries))
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	a := NewMetrics("")
	b := NewMetrics("")
	a.RecordRecalculation()
	assert.Equal(t, 1.0, read(t, a.Recalculations))
	assert.Equal(t, 0.0, read(t, b.Recalculations))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics("")
	m.RecordRecalculation()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "freight_calc_calc_recalculations_total 1")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", "200", 0)
	m.RecordRecalculation()
	m.RecordSweep("delay", 1, true)
	m.RecordRecommendation("ASSIGN")
	m.RecordCacheLookup(true)
	m.SetDatasetSize(1, 1, 1)
	assert.Nil(t, m.Registry())
	assert.NotNil(t, m.Handler())
}
