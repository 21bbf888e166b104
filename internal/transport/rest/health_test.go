package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func serveHealth(t *testing.T, fn http.HandlerFunc) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{err: errors.New("down")}, nil, "v1")

	code, resp := serveHealth(t, h.Live)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReady(t *testing.T) {
	t.Parallel()

	code, resp := serveHealth(t, NewHealthHandler(&pingerMock{}, nil, "v1").Ready)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)

	code, resp = serveHealth(t, NewHealthHandler(&pingerMock{err: errors.New("refused")}, nil, "v1").Ready)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.Status)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	down := errors.New("down")

	tests := []struct {
		name       string
		db         error
		cache      *pingerMock
		wantCode   int
		wantStatus string
		wantCache  string
	}{
		{"db only ok", nil, nil, http.StatusOK, "ok", ""},
		{"db and cache ok", nil, &pingerMock{}, http.StatusOK, "ok", "ok"},
		{"cache down degrades", nil, &pingerMock{err: down}, http.StatusOK, "degraded", "down"},
		{"db down", down, &pingerMock{}, http.StatusServiceUnavailable, "down", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cache pinger
			if tt.cache != nil {
				cache = tt.cache
			}
			h := NewHealthHandler(&pingerMock{err: tt.db}, cache, "1.2.3")

			code, resp := serveHealth(t, h.Health)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)

			db := resp.Components["database"]
			if tt.db == nil {
				assert.Equal(t, "ok", db.Status)
				assert.NotEmpty(t, db.Latency)
			} else {
				assert.Equal(t, "down", db.Status)
			}

			c, ok := resp.Components["cache"]
			if tt.wantCache == "" {
				assert.False(t, ok)
			} else {
				assert.Equal(t, tt.wantCache, c.Status)
			}
		})
	}
}
