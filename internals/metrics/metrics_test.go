package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	before := testutil.ToFloat64(TapIns.WithLabelValues("new"))
	TapIns.WithLabelValues("new").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(TapIns.WithLabelValues("new")))

	ObserveRequest("GET", "/events", "200", 15*time.Millisecond)
	require.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/events", "200")), 1.0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(body), "anggotaku_tapins_total")
	require.Contains(t, string(body), "anggotaku_http_requests_total")
}
