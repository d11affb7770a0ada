package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuMetricsRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := NewMenuMetricsRecorder(registry)

	r.RecordBuild("crm", "source", 5*time.Millisecond, 12)
	r.RecordBuild("crm", "cache", time.Millisecond, 12)
	r.RecordWarning("orphan_node")
	r.RecordResolve(true)
	r.RecordResolve(false)
	r.RecordResolve(false)
	r.SetSnapshots(1)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.buildsTotal.WithLabelValues("source")))
	assert.Equal(t, float64(12), testutil.ToFloat64(r.routes.WithLabelValues("crm")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.warnings.WithLabelValues("orphan_node")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.resolves.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.snapshots))

	r.RecordReset("crm")
	assert.Equal(t, 0, testutil.CollectAndCount(r.routes))
}

func TestMenuMetricsRecorder_Nil(t *testing.T) {
	var r *MenuMetricsRecorder
	assert.NotPanics(t, func() {
		r.RecordBuild("k", "source", time.Second, 1)
		r.RecordWarning("x")
		r.RecordResolve(true)
		r.RecordReset("k")
		r.SetSnapshots(3)
	})
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(MetricsConfig{Enable: true})
	r := ProvideMenuMetricsRecorder(s)
	r.RecordResolve(true)

	assert.Equal(t, "/metrics", s.Config().Path)
	assert.False(t, s.Dedicated())
	require.NoError(t, s.Start())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "menuroute_resolves_total"))
}
