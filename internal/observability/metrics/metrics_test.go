package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := Register(reg)
	require.NoError(t, err)
	require.True(t, Enabled())

	// second call must not fail on duplicates
	_, err = Register(reg)
	require.NoError(t, err)

	ObserveLogin("password", false)
	ObserveLogin("password", false)
	ObserveCourtLookup("tjsp", "found", 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("password", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(CourtLookupsTotal.WithLabelValues("tjsp", "found")))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "lexdesk_login_attempts_total")
}
