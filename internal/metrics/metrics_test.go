package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveRequest("/keypair", "POST", 200, time.Millisecond)
	m.ObserveRequest("/keypair", "POST", 200, time.Millisecond)
	m.ObserveRequest("/message/sign", "POST", 400, time.Millisecond)
	m.KeypairGenerated()
	m.InstructionBuilt("create_token")
	m.SignatureVerified(true)
	m.SignatureVerified(false)
	m.SignatureVerified(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/keypair", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/message/sign", "POST", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keypairsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.instructionsBuilt.WithLabelValues("create_token")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("false")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/health", "GET", 200, time.Millisecond)
		m.KeypairGenerated()
		m.InstructionBuilt("send_sol")
		m.SignatureVerified(true)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.KeypairGenerated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "wallet_server_keypairs_generated_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
