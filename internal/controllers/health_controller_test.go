package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	h := newHarness(t, "Jeera Rice", "Paneer Tikka")
	h.load(t)
	hc := NewHealthController(h.state)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, "loaded", resp["catalog_status"])
	assert.Equal(t, float64(2), resp["dishes"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(newHarness(t).state)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealth_IdleBeforeFetch(t *testing.T) {
	hc := NewHealthController(newHarness(t).state)

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "idle", resp["catalog_status"])
	assert.Equal(t, float64(0), resp["dishes"])
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0h0m0s"},
		{45 * time.Second, "0h0m45s"},
		{90 * time.Minute, "1h30m0s"},
		{26*time.Hour + 5*time.Second, "26h0m5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.d))
	}
}
