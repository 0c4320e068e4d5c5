package gridcarbon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) gateways.Carbon {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := DefaultSettings(server.URL, "test-token")
	settings.RetryMax = 0
	c, err := NewClient(settings)
	require.NoError(t, err)
	return c
}

func TestCurrentIntensity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/intensity/current", r.URL.Path)
		assert.Equal(t, "eu-west-1", r.URL.Query().Get("region"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"region": "eu-west-1",
			"intensityGPerKWh": 278.6,
			"updatedAt": "2025-09-15T13:30:00Z"
		}`))
	})

	sample, err := c.CurrentIntensity(context.Background(), "eu-west-1")
	require.NoError(t, err)
	assert.InDelta(t, 278.6, sample.Value, 1e-9)
	assert.Equal(t, time.Date(2025, 9, 15, 13, 30, 0, 0, time.UTC), sample.Timestamp)
}

func TestHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/intensity/history", r.URL.Path)
		assert.Equal(t, "24", r.URL.Query().Get("hours"))
		_, _ = w.Write([]byte(`{
			"region": "eu-west-1",
			"samples": [
				{"timestamp": "2025-09-15T11:00:00Z", "intensityGPerKWh": 300},
				{"timestamp": "2025-09-15T12:00:00Z", "intensityGPerKWh": 310.5}
			]
		}`))
	})

	samples, err := c.History(context.Background(), "eu-west-1", 24)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.InDelta(t, 300, samples[0].Value, 1e-9)
	assert.InDelta(t, 310.5, samples[1].Value, 1e-9)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, gateways.ErrAuthentication},
		{"forbidden", http.StatusForbidden, gateways.ErrAuthentication},
		{"not found", http.StatusNotFound, gateways.ErrUnavailable},
		{"no content", http.StatusNoContent, gateways.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.CurrentIntensity(context.Background(), "eu-west-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnexpectedStatusIsPlainError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.CurrentIntensity(context.Background(), "eu-west-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, gateways.ErrAuthentication)
	assert.NotErrorIs(t, err, gateways.ErrUnavailable)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Settings{})
	assert.Error(t, err)
}
