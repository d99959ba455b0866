package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
	"tonsor/config"
	"tonsor/infras/backend"
	"tonsor/infras/otel/mocks"
	"tonsor/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, retries int) *backend.Client {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.APIPrefix = "/api"
	cfg.Backend.RoutePrefix = "/api-route"
	cfg.Backend.TimeoutSeconds = 2
	cfg.Backend.WriteTimeoutSeconds = 2
	cfg.Backend.ProbeTimeoutSeconds = 1
	cfg.Backend.MaxRetries = retries

	return backend.New(cfg, mocks.NewOtel())
}

func TestGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/barbers-test", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Mario Rossi"}})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 0)

	var out []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	err := c.Get(context.Background(), c.APIPath("/barbers-test"), &out)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mario Rossi", out[0].Name)
}

func TestGetWithTokenAndQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("barber_id"))
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("date"))
		assert.Equal(t, "available-slots", r.URL.Query().Get("path"))
		assert.Equal(t, "no-cache, no-store, must-revalidate", r.Header.Get("Cache-Control"))

		_ = json.NewEncoder(w).Encode(map[string]any{"slots": []any{}})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 0)

	query := url.Values{}
	query.Set("barber_id", "5")
	query.Set("date", "2024-06-10")

	var out map[string]any
	err := c.Get(context.Background(), c.RoutePath("available-slots"), &out,
		backend.WithToken("tok-123"), backend.WithQuery(query), backend.WithNoCache())

	require.NoError(t, err)
}

func TestStatusErrorsMapToFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "conflict with message",
			status:   http.StatusConflict,
			body:     `{"message":"slot already booked"}`,
			wantCode: http.StatusConflict,
			wantMsg:  "slot already booked",
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Unauthenticated."}`,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Unauthenticated.",
		},
		{
			name:     "server error without body",
			status:   http.StatusInternalServerError,
			body:     "",
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := newTestClient(ts.URL, 0)

			err := c.Get(context.Background(), "/whatever", nil)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			var fail *failure.Failure
			require.ErrorAs(t, err, &fail)
			assert.Equal(t, tt.wantMsg, fail.Message)
		})
	}
}

func TestConflictBodyStillDecoded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"taken","debug":{"appointment_id":42}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 0)

	var out struct {
		Debug struct {
			AppointmentID int `json:"appointment_id"`
		} `json:"debug"`
	}
	err := c.Post(context.Background(), "/book", map[string]any{}, &out)

	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))
	assert.Equal(t, 42, out.Debug.AppointmentID)
}

func TestMalformedResponseIsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slots": [`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 0)

	var out map[string]any
	err := c.Get(context.Background(), "/slots", &out)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestTimeoutBecomesTimeoutFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer ts.Close()

	cfg := &config.Config{}
	cfg.Backend.BaseURL = ts.URL
	cfg.Backend.APIPrefix = "/api"
	cfg.Backend.TimeoutSeconds = 1
	cfg.Backend.WriteTimeoutSeconds = 1
	cfg.Backend.ProbeTimeoutSeconds = 1

	c := backend.New(cfg, mocks.NewOtel())

	err := c.Get(context.Background(), "/slow", nil)

	require.Error(t, err)
	assert.True(t, failure.IsTimeout(err))
}

func TestTransportErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Drop the first connection to force a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 2)

	var out map[string]any
	err := c.Get(context.Background(), "/flaky", &out)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProbeUsesTestConnectionEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/test-connection", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 0)

	require.NoError(t, c.Probe(context.Background()))
}
