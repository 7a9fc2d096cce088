package controller_test

import (
	"linkguard/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	h, err := controller.WithMetrics(reg, next)
	require.NoError(t, err)

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/open", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	}

	count, err := testutil.GatherAndCount(reg, "linkguard_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count, "one series for GET 403")

	// a second middleware on the same registry shares the histogram
	_, err = controller.WithMetrics(reg, next)
	require.NoError(t, err)
}
